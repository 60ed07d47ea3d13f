package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectPutter is the subset of *s3.Client used by S3Sink.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ ObjectPutter = (*s3.Client)(nil)

// S3Sink uploads snapshots to one S3 object.
type S3Sink struct {
	client ObjectPutter
	bucket string
	key    string
}

// NewS3Sink creates a sink writing to bucket/key.
func NewS3Sink(client ObjectPutter, bucket, key string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, key: key}
}

// NewS3Client creates a client for region using credentials from the
// standard AWS_* environment variables.
func NewS3Client(region string) *s3.Client {
	return s3.New(s3.Options{
		Region:      region,
		Credentials: aws.NewCredentialsCache(aws.CredentialsProviderFunc(envCredentials)),
	})
}

func envCredentials(context.Context) (aws.Credentials, error) {
	creds := aws.Credentials{
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "environment",
	}
	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return aws.Credentials{}, fmt.Errorf("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
	}
	return creds, nil
}

// Put implements Sink.
func (s *S3Sink) Put(ctx context.Context, snap Snapshot) error {
	if snap.Created.IsZero() {
		snap.Created = time.Now()
	}
	in := &s3.PutObjectInput{
		Bucket:   aws.String(s.bucket),
		Key:      aws.String(s.key),
		Body:     bytes.NewReader(snap.Body),
		Metadata: metadata(snap),
	}
	if snap.ContentType != "" {
		in.ContentType = aws.String(snap.ContentType)
	}
	if _, err := s.client.PutObject(ctx, in); err != nil {
		return failed(s, err)
	}
	return nil
}

func (s *S3Sink) String() string { return "s3://" + s.bucket + "/" + s.key }
