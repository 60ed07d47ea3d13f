package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "build error",
			code:    "E001",
			wantMsg: "Mount target is missing",
			wantCat: CategoryBuild,
		},
		{
			name:    "config error",
			code:    "E020",
			wantMsg: "Configuration file is malformed",
			wantCat: CategoryConfig,
		},
		{
			name:    "export error",
			code:    "E041",
			wantMsg: "Export failed",
			wantCat: CategoryExport,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "flag %q is required", "--out")
	if err.Message != `flag "--out" is required` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Error() != err.Message {
		t.Errorf("Error() without code should be the message, got %q", err.Error())
	}
}

func TestEmberError_Error(t *testing.T) {
	err := New("E003")
	if got, want := err.Error(), "E003: Unsupported expression result"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err.Wrap(fmt.Errorf("got chan int"))
	if got, want := err.Error(), "E003: Unsupported expression result: got chan int"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestEmberError_WithLocation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ember.toml")
	content := "[preview]\naddr = :7070\nlog_level = \"info\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	err := New("E020").WithLocation(path, 2, 8)
	if err.Location.Line != 2 || err.Location.Column != 8 {
		t.Errorf("Location = %+v", err.Location)
	}
	if len(err.Context) != 3 {
		t.Fatalf("expected 3 context lines, got %d", len(err.Context))
	}
	if err.Context[1] != "addr = :7070" {
		t.Errorf("Context[1] = %q", err.Context[1])
	}
}

func TestEmberError_Wrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := New("E041").Wrap(cause)
	if err.Unwrap() != cause {
		t.Error("Unwrap() should return the wrapped error")
	}
}

type diagnosed struct{}

func (diagnosed) Error() string { return "diagnosed" }

func (diagnosed) Diagnostic() *EmberError { return New("E004") }

func TestFromError(t *testing.T) {
	if FromError(nil, "E041") != nil {
		t.Error("FromError(nil) should return nil")
	}

	ee := New("E030")
	if got := FromError(fmt.Errorf("ctx: %w", ee), "E041"); got != ee {
		t.Error("FromError should unwrap an existing EmberError")
	}

	if got := FromError(diagnosed{}, "E041"); got.Code != "E004" {
		t.Errorf("Diagnosable should keep its own code, got %q", got.Code)
	}

	plain := fmt.Errorf("boom")
	got := FromError(plain, "E041")
	if got.Code != "E041" || got.Wrapped != plain {
		t.Errorf("plain error should be wrapped under the fallback code, got %+v", got)
	}
}

func TestLocation_String(t *testing.T) {
	tests := []struct {
		loc  *Location
		want string
	}{
		{&Location{File: "a.toml", Line: 3, Column: 2}, "a.toml:3:2"},
		{&Location{File: "a.toml", Line: 3}, "a.toml:3"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := tt.loc.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E021").
		WithContext([]string{"[export]", `target = "ftp://x"`}).
		WithSuggestion("Use s3://bucket/key").
		Wrap(fmt.Errorf("unsupported scheme"))
	err.Location = &Location{File: "ember.toml", Line: 2, Column: 10}

	out := err.Format()
	for _, want := range []string{
		"ERROR E021: Invalid configuration value",
		"ember.toml:2:10",
		`→    2 │ target = "ftp://x"`,
		"Cause: unsupported scheme",
		"Hint: Use s3://bucket/key",
		"Learn more: https://ember.dev/docs/errors/E021",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("Format() should not emit colors when disabled")
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("E050")
	err.Location = &Location{File: "ember.json", Line: 1}
	if got, want := err.FormatCompact(), "ember.json:1: E050: Preview node not found"; got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("E040").WithSuggestion("use a path")
	var decoded map[string]any
	if jerr := json.Unmarshal([]byte(err.FormatJSON()), &decoded); jerr != nil {
		t.Fatalf("FormatJSON() produced invalid JSON: %v", jerr)
	}
	if decoded["code"] != "E040" || decoded["category"] != "export" || decoded["suggestion"] != "use a path" {
		t.Errorf("unexpected JSON fields: %v", decoded)
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Fprint(&buf, diagnosed{})
	if !strings.Contains(buf.String(), "ERROR E004") {
		t.Errorf("expected registered format, got %q", buf.String())
	}

	buf.Reset()
	Fprint(&buf, fmt.Errorf("plain"))
	if got := buf.String(); got != "\nERROR: plain\n\n" {
		t.Errorf("expected plain format, got %q", got)
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Fatal("registry should not be empty")
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Errorf("codes not sorted: %q before %q", codes[i-1], codes[i])
		}
	}
	for _, code := range []string{"E001", "E002", "E003", "E004"} {
		if _, ok := GetTemplate(code); !ok {
			t.Errorf("build code %s should be registered", code)
		}
	}
}

func TestRegister(t *testing.T) {
	Register("E900", ErrorTemplate{Category: CategoryRuntime, Message: "custom"})
	defer delete(registry, "E900")

	if got := New("E900").Message; got != "custom" {
		t.Errorf("Message = %q, want %q", got, "custom")
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six", 10)
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q exceeds width", l)
		}
	}
	if strings.Join(lines, " ") != "one two three four five six" {
		t.Errorf("wrapText lost words: %v", lines)
	}
	if wrapText("", 10) != nil {
		t.Error("empty text should produce no lines")
	}
}

func TestDetectColors(t *testing.T) {
	defer EnableColors()

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	DetectColors(f)
	if ColorsEnabled() {
		t.Error("a regular file is not a terminal")
	}

	EnableColors()
	DetectColors(nil)
	if ColorsEnabled() {
		t.Error("nil file should disable colors")
	}
}
