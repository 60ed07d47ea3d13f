package errors

import (
	"bufio"
	"errors"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryBuild   Category = "build"
	CategoryRuntime Category = "runtime"
	CategoryConfig  Category = "config"
	CategoryCLI     Category = "cli"
	CategoryExport  Category = "export"
	CategoryPreview Category = "preview"
)

// Location represents a position in a source or configuration file.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// EmberError is a structured error with location, suggestions and
// documentation.
type EmberError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	Location *Location

	// Context holds the file lines surrounding Location.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *EmberError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *EmberError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds a file location and reads the lines around it.
func (e *EmberError) WithLocation(file string, line, column int) *EmberError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *EmberError) WithSuggestion(s string) *EmberError {
	e.Suggestion = s
	return e
}

// WithDetail replaces the registered explanation.
func (e *EmberError) WithDetail(d string) *EmberError {
	e.Detail = d
	return e
}

// WithContext sets the context lines shown under the location.
func (e *EmberError) WithContext(lines []string) *EmberError {
	e.Context = lines
	return e
}

// Wrap wraps another error.
func (e *EmberError) Wrap(err error) *EmberError {
	e.Wrapped = err
	return e
}

// readContextLines reads up to contextSize lines centred on targetLine.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates an EmberError from a registered error code.
func New(code string) *EmberError {
	template, ok := registry[code]
	if !ok {
		return &EmberError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &EmberError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates an EmberError with a formatted message and no code.
func Newf(category Category, format string, args ...any) *EmberError {
	return &EmberError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Diagnosable is implemented by errors that know their registered form.
type Diagnosable interface {
	Diagnostic() *EmberError
}

// FromError converts err into an EmberError. Errors that already are one, or
// that implement Diagnosable, keep their own code; anything else is wrapped
// under code.
func FromError(err error, code string) *EmberError {
	if err == nil {
		return nil
	}
	var ee *EmberError
	if errors.As(err, &ee) {
		return ee
	}
	var d Diagnosable
	if errors.As(err, &d) {
		return d.Diagnostic()
	}
	return New(code).Wrap(err)
}
