package common

import (
	"testing"
)

func TestValidateOutputFormat(t *testing.T) {
	screenFormats := []string{"json", "csv", "text", "markdown"}
	recordFormats := []string{"json", "text"}

	tests := []struct {
		name             string
		format           string
		supportedFormats []string
		expectError      bool
		expectedError    string
	}{
		{
			name:             "json report",
			format:           "json",
			supportedFormats: screenFormats,
		},
		{
			name:             "csv report",
			format:           "csv",
			supportedFormats: screenFormats,
		},
		{
			name:             "markdown report",
			format:           "markdown",
			supportedFormats: screenFormats,
		},
		{
			name:             "unknown format",
			format:           "xml",
			supportedFormats: screenFormats,
			expectError:      true,
			expectedError:    `unsupported output format "xml", supported formats: json, csv, text, markdown`,
		},
		{
			name:             "case sensitive",
			format:           "JSON",
			supportedFormats: screenFormats,
			expectError:      true,
			expectedError:    `unsupported output format "JSON", supported formats: json, csv, text, markdown`,
		},
		{
			name:             "empty format string",
			format:           "",
			supportedFormats: screenFormats,
			expectError:      true,
			expectedError:    `unsupported output format "", supported formats: json, csv, text, markdown`,
		},
		{
			name:             "no restriction configured",
			format:           "xml",
			supportedFormats: []string{},
		},
		{
			name:             "single-record command accepts text",
			format:           "text",
			supportedFormats: recordFormats,
		},
		{
			name:             "single-record command rejects csv",
			format:           "csv",
			supportedFormats: recordFormats,
			expectError:      true,
			expectedError:    `unsupported output format "csv", supported formats: json, text`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format, tt.supportedFormats)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got none")
					return
				}
				if tt.expectedError != "" && err.Error() != tt.expectedError {
					t.Errorf("Expected error '%s', got '%s'", tt.expectedError, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("Expected no error but got: %v", err)
				}
			}
		})
	}
}

func TestGetSupportedFormats(t *testing.T) {
	formats := []string{"json", "csv", "text", "markdown"}

	result := GetSupportedFormats(formats)
	if len(result) != len(formats) {
		t.Fatalf("Expected %d formats, got %d", len(formats), len(result))
	}
	for i, want := range formats {
		if result[i] != want {
			t.Errorf("Expected format[%d] = %q, got %q", i, want, result[i])
		}
	}

	if got := GetSupportedFormats(nil); len(got) != 0 {
		t.Errorf("Expected no formats, got %v", got)
	}
}

func BenchmarkValidateOutputFormat(b *testing.B) {
	supportedFormats := []string{"json", "csv", "text", "markdown"}

	b.Run("valid format", func(b *testing.B) {
		for b.Loop() {
			_ = ValidateOutputFormat("csv", supportedFormats)
		}
	})

	b.Run("invalid format", func(b *testing.B) {
		for b.Loop() {
			_ = ValidateOutputFormat("xml", supportedFormats)
		}
	})
}
