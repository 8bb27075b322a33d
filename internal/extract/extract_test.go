package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resumescreen/internal/errors"
)

func TestIsSupported(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bool
	}{
		{"pdf", "resume.pdf", true},
		{"pdf uppercase", "RESUME.PDF", true},
		{"docx", "resume.docx", true},
		{"plain text", "resume.txt", true},
		{"markdown", "resume.md", true},
		{"doc legacy", "resume.doc", false},
		{"image", "resume.png", false},
		{"no extension", "resume", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSupported(tt.path); got != tt.want {
				t.Errorf("IsSupported(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestTextPlainFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	content := "Jane Doe\nSkills: Python, SQL\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := Text(path)
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if got != content {
		t.Errorf("Text() = %q, want %q", got, content)
	}
}

func TestTextMissingFile(t *testing.T) {
	_, err := Text(filepath.Join(t.TempDir(), "missing.pdf"))
	if err == nil {
		t.Fatal("Text() expected error for missing file")
	}
	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("Text() error type = %T, want *errors.AppError", err)
	}
	if appErr.Code != errors.ErrCodeFileNotFound {
		t.Errorf("error code = %q, want %q", appErr.Code, errors.ErrCodeFileNotFound)
	}
}

func TestTextUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.png")
	if err := os.WriteFile(path, []byte("not a resume"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, err := Text(path)
	if err == nil {
		t.Fatal("Text() expected error for unsupported format")
	}
	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("Text() error type = %T, want *errors.AppError", err)
	}
	if appErr.Code != errors.ErrCodeUnsupportedFormat {
		t.Errorf("error code = %q, want %q", appErr.Code, errors.ErrCodeUnsupportedFormat)
	}
}

func TestTextCorruptPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corrupt.pdf")
	if err := os.WriteFile(path, []byte("this is not a pdf"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, err := Text(path)
	if err == nil {
		t.Fatal("Text() expected error for corrupt PDF")
	}
	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("Text() error type = %T, want *errors.AppError", err)
	}
	if appErr.Type != errors.ErrorTypeParse && appErr.Type != errors.ErrorTypeIO {
		t.Errorf("error type = %q, want parse or io", appErr.Type)
	}
}

func TestTextCorruptDOCX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corrupt.docx")
	if err := os.WriteFile(path, []byte("not a zip archive"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, err := Text(path)
	if err == nil {
		t.Fatal("Text() expected error for corrupt DOCX")
	}
	if !strings.Contains(err.Error(), errors.ErrCodeParseFailed) {
		t.Errorf("error = %v, want code %s", err, errors.ErrCodeParseFailed)
	}
}
