package ui

import (
	"errors"
	"fmt"
	"strings"

	emberrors "github.com/vango-dev/ember/internal/errors"
)

// ErrorKind is the closed set of construction failures.
type ErrorKind uint8

const (
	MissingMountTarget ErrorKind = iota + 1
	MissingCondition
	UnsupportedExpressionType
	UnsupportedChildType
)

// Sentinel errors matched with errors.Is.
var (
	ErrMissingMountTarget        = errors.New("ember: mount target is nil")
	ErrMissingCondition          = errors.New("ember: condition missing")
	ErrUnsupportedExpressionType = errors.New("ember: unsupported expression type")
	ErrUnsupportedChildType      = errors.New("ember: unsupported child type")
)

// String returns the name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case MissingMountTarget:
		return "MissingMountTarget"
	case MissingCondition:
		return "MissingCondition"
	case UnsupportedExpressionType:
		return "UnsupportedExpressionType"
	case UnsupportedChildType:
		return "UnsupportedChildType"
	default:
		return "Unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case MissingMountTarget:
		return ErrMissingMountTarget
	case MissingCondition:
		return ErrMissingCondition
	case UnsupportedExpressionType:
		return ErrUnsupportedExpressionType
	case UnsupportedChildType:
		return ErrUnsupportedChildType
	default:
		return nil
	}
}

// code maps a kind onto the shared error registry.
func (k ErrorKind) code() string {
	switch k {
	case MissingMountTarget:
		return "E001"
	case MissingCondition:
		return "E002"
	case UnsupportedExpressionType:
		return "E003"
	case UnsupportedChildType:
		return "E004"
	default:
		return ""
	}
}

// BuildError reports invalid input to a tree construction primitive.
type BuildError struct {
	Kind ErrorKind

	// Construct names the primitive that failed ("If", "ElseIf", "Mount", ...).
	Construct string

	// Value is the offending value for the Unsupported* kinds.
	Value any
}

func newBuildError(kind ErrorKind, construct string, value any) *BuildError {
	return &BuildError{Kind: kind, Construct: construct, Value: value}
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	msg := e.Kind.sentinel().Error()
	if e.Construct != "" {
		msg += " in " + e.Construct
	}
	switch e.Kind {
	case UnsupportedExpressionType, UnsupportedChildType:
		msg += fmt.Sprintf(" (%T: %v)", e.Value, e.Value)
	}
	return msg
}

// Unwrap returns the sentinel for errors.Is support.
func (e *BuildError) Unwrap() error {
	return e.Kind.sentinel()
}

// Code returns the registry code for this error, e.g. "E003".
func (e *BuildError) Code() string {
	return e.Kind.code()
}

// Diagnostic converts the error into a formatted registry error for
// terminal display.
func (e *BuildError) Diagnostic() *emberrors.EmberError {
	var detail []string
	if e.Construct != "" {
		detail = append(detail, fmt.Sprintf("Raised by %s.", e.Construct))
	}
	if e.Kind == UnsupportedExpressionType || e.Kind == UnsupportedChildType {
		detail = append(detail, fmt.Sprintf("Got a value of type %T.", e.Value))
	}
	d := emberrors.New(e.Code()).Wrap(e)
	if len(detail) > 0 {
		d = d.WithDetail(strings.Join(detail, " "))
	}
	return d
}
