package export

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vango-dev/ember/internal/config"
	"github.com/vango-dev/ember/internal/errors"
)

// Snapshot is one rendered page.
type Snapshot struct {
	Body        []byte
	ContentType string

	// Demo and Steps describe how the snapshot was produced. They are
	// stored as object metadata where the sink supports it.
	Demo  string
	Steps []string

	// Created defaults to the time Put is called.
	Created time.Time
}

// Sink stores snapshots.
type Sink interface {
	Put(ctx context.Context, s Snapshot) error
	// String names the destination for log lines.
	String() string
}

// Open returns the sink for target. Standard output targets write to stdout.
func Open(target config.Target, cfg config.ExportConfig, stdout io.Writer) (Sink, error) {
	switch target.Scheme {
	case "":
		return &WriterSink{W: stdout}, nil
	case "file":
		return &FileSink{Path: target.Path}, nil
	case "s3":
		client := NewS3Client(cfg.Region)
		return NewS3Sink(client, target.Bucket, target.Key), nil
	}
	return nil, errors.New("E040").WithDetail(fmt.Sprintf("Unsupported scheme %q.", target.Scheme))
}

// WriterSink writes snapshot bodies to an io.Writer.
type WriterSink struct {
	W io.Writer
}

// Put implements Sink.
func (s *WriterSink) Put(_ context.Context, snap Snapshot) error {
	if _, err := s.W.Write(snap.Body); err != nil {
		return failed(s, err)
	}
	return nil
}

func (s *WriterSink) String() string { return "stdout" }

// FileSink writes snapshots to a local path, creating parent directories.
type FileSink struct {
	Path string
}

// Put implements Sink. The file is written next to its destination and
// renamed into place.
func (s *FileSink) Put(_ context.Context, snap Snapshot) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return failed(s, err)
	}

	tmp, err := os.CreateTemp(dir, ".ember-*")
	if err != nil {
		return failed(s, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(snap.Body); err != nil {
		tmp.Close()
		return failed(s, err)
	}
	if err := tmp.Close(); err != nil {
		return failed(s, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return failed(s, err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return failed(s, err)
	}
	return nil
}

func (s *FileSink) String() string { return s.Path }

func failed(s Sink, err error) error {
	return errors.New("E041").
		WithDetail(fmt.Sprintf("Writing to %s failed.", s)).
		Wrap(err)
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// Page wraps serialised body markup in a minimal HTML document.
func Page(title, body string) []byte {
	var buf bytes.Buffer
	// The template only fails on writer errors, which bytes.Buffer never returns.
	_ = pageTemplate.Execute(&buf, struct {
		Title string
		Body  template.HTML
	}{title, template.HTML(body)})
	return buf.Bytes()
}

func metadata(snap Snapshot) map[string]string {
	md := map[string]string{
		"export-time": snap.Created.UTC().Format(time.RFC3339),
	}
	if snap.Demo != "" {
		md["demo"] = snap.Demo
	}
	if len(snap.Steps) > 0 {
		md["steps"] = strings.Join(snap.Steps, ",")
	}
	return md
}
