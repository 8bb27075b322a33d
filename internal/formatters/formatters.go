package formatters

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"resumescreen/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ScreenResult", &ScreenTextFormatter{})
	registry.RegisterFormatter("markdown", "ScreenResult", &ScreenMarkdownFormatter{})
	registry.RegisterFormatter("csv", "ScreenResult", &ScreenCSVFormatter{})
	registry.RegisterFormatter("text", "CandidateRecord", &CandidateTextFormatter{})
	registry.RegisterFormatter("text", "MatchOutput", &MatchTextFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.ScreenResult:
		return "ScreenResult"
	case types.CandidateRecord:
		return "CandidateRecord"
	case types.MatchOutput:
		return "MatchOutput"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// ScreenTextFormatter renders a screening result as plain text
type ScreenTextFormatter struct{}

func (stf *ScreenTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ScreenResult)
	if !ok {
		return "", fmt.Errorf("expected ScreenResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== SCREENING RESULT ===\n\n")
	output.WriteString(fmt.Sprintf("Job: %s\n", result.JobTitle))
	output.WriteString(fmt.Sprintf("Mode: %s\n", result.Mode))
	output.WriteString(fmt.Sprintf("Candidates: %d total, %d scored, %d failed\n\n",
		result.Total, result.Scored, result.Failed))

	for i, entry := range result.Candidates {
		name := entry.Candidate.Name
		if name == "" {
			name = entry.Candidate.SourceFile
		}

		if entry.Failed() {
			output.WriteString(fmt.Sprintf("%d. %s [FAILED]\n", i+1, name))
			output.WriteString(fmt.Sprintf("   Error: %s\n\n", entry.Error))
			continue
		}

		output.WriteString(fmt.Sprintf("%d. %s (%.3f) %s\n", i+1, name, entry.FinalScore, entry.Label))
		if entry.SemanticScore != nil {
			output.WriteString(fmt.Sprintf("   Rule: %.3f  Semantic: %.3f\n",
				entry.RuleScore, *entry.SemanticScore))
		} else {
			output.WriteString(fmt.Sprintf("   Rule: %.3f\n", entry.RuleScore))
		}
		if len(entry.MatchedSkills) > 0 {
			output.WriteString(fmt.Sprintf("   Matched: %s\n", strings.Join(entry.MatchedSkills, ", ")))
		}
		if len(entry.MissingSkills) > 0 {
			output.WriteString(fmt.Sprintf("   Missing: %s\n", strings.Join(entry.MissingSkills, ", ")))
		}
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (stf *ScreenTextFormatter) SupportedType() string {
	return "ScreenResult"
}

// ScreenMarkdownFormatter renders a screening result as markdown
type ScreenMarkdownFormatter struct{}

func (smf *ScreenMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ScreenResult)
	if !ok {
		return "", fmt.Errorf("expected ScreenResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Screening Result\n\n")
	output.WriteString(fmt.Sprintf("**Job:** %s\n\n", result.JobTitle))
	output.WriteString(fmt.Sprintf("**Mode:** %s\n\n", result.Mode))
	output.WriteString(fmt.Sprintf("**Candidates:** %d total, %d scored, %d failed\n\n",
		result.Total, result.Scored, result.Failed))

	output.WriteString("| Rank | Candidate | Score | Label |\n")
	output.WriteString("|------|-----------|-------|-------|\n")
	for i, entry := range result.Candidates {
		name := entry.Candidate.Name
		if name == "" {
			name = entry.Candidate.SourceFile
		}
		if entry.Failed() {
			output.WriteString(fmt.Sprintf("| %d | %s | - | failed |\n", i+1, name))
			continue
		}
		output.WriteString(fmt.Sprintf("| %d | %s | %.3f | %s |\n",
			i+1, name, entry.FinalScore, entry.Label))
	}

	failed := false
	for _, entry := range result.Candidates {
		if entry.Failed() {
			failed = true
			break
		}
	}
	if failed {
		output.WriteString("\n## Failures\n\n")
		for _, entry := range result.Candidates {
			if entry.Failed() {
				output.WriteString(fmt.Sprintf("- **%s**: %s\n", entry.Candidate.SourceFile, entry.Error))
			}
		}
	}

	return output.String(), nil
}

func (smf *ScreenMarkdownFormatter) SupportedType() string {
	return "ScreenResult"
}

// ScreenCSVFormatter renders a screening result as CSV, one row per
// candidate in rank order. Failed entries are skipped.
type ScreenCSVFormatter struct{}

func (scf *ScreenCSVFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ScreenResult)
	if !ok {
		return "", fmt.Errorf("expected ScreenResult, got %T", data)
	}

	var output strings.Builder
	w := csv.NewWriter(&output)

	if err := w.Write([]string{"rank", "name", "email", "source_file", "final_score", "label"}); err != nil {
		return "", err
	}

	rank := 0
	for _, entry := range result.Candidates {
		if entry.Failed() {
			continue
		}
		rank++
		row := []string{
			strconv.Itoa(rank),
			entry.Candidate.Name,
			entry.Candidate.Email,
			entry.Candidate.SourceFile,
			strconv.FormatFloat(entry.FinalScore, 'f', 4, 64),
			entry.Label,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	return output.String(), w.Error()
}

func (scf *ScreenCSVFormatter) SupportedType() string {
	return "ScreenResult"
}

// CandidateTextFormatter renders a single parsed candidate record
type CandidateTextFormatter struct{}

func (ctf *CandidateTextFormatter) Format(data any) (string, error) {
	record, ok := data.(types.CandidateRecord)
	if !ok {
		return "", fmt.Errorf("expected CandidateRecord, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== CANDIDATE ===\n\n")
	output.WriteString(fmt.Sprintf("Name: %s\n", record.Name))
	output.WriteString(fmt.Sprintf("Email: %s\n", record.Email))
	output.WriteString(fmt.Sprintf("Phone: %s\n", record.Phone))
	output.WriteString(fmt.Sprintf("Location: %s\n", record.Location))
	output.WriteString(fmt.Sprintf("Source: %s (parsed via %s)\n\n", record.SourceFile, record.ParseMethod))

	if record.Summary != "" {
		output.WriteString("Summary:\n")
		output.WriteString(record.Summary)
		output.WriteString("\n\n")
	}

	if len(record.Skills) > 0 {
		output.WriteString(fmt.Sprintf("Skills: %s\n\n", strings.Join(record.Skills, ", ")))
	}

	if len(record.Experience) > 0 {
		output.WriteString("Experience:\n")
		for _, exp := range record.Experience {
			output.WriteString(fmt.Sprintf("- %s, %s (%s)\n", exp.Title, exp.Company, exp.Dates))
		}
		output.WriteString("\n")
	}

	if len(record.Education) > 0 {
		output.WriteString("Education:\n")
		for _, edu := range record.Education {
			output.WriteString(fmt.Sprintf("- %s %s, %s %s\n", edu.Degree, edu.Field, edu.School, edu.Year))
		}
	}

	return output.String(), nil
}

func (ctf *CandidateTextFormatter) SupportedType() string {
	return "CandidateRecord"
}

// MatchTextFormatter renders a pairwise similarity result
type MatchTextFormatter struct{}

func (mtf *MatchTextFormatter) Format(data any) (string, error) {
	output, ok := data.(types.MatchOutput)
	if !ok {
		return "", fmt.Errorf("expected MatchOutput, got %T", data)
	}
	return fmt.Sprintf("Similarity: %.4f\n", output.Similarity), nil
}

func (mtf *MatchTextFormatter) SupportedType() string {
	return "MatchOutput"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
