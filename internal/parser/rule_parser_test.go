package parser

import (
	"context"
	"strings"
	"testing"

	"resumescreen/internal/errors"
	"resumescreen/internal/types"
)

const sampleResume = `Jane Smith
Austin, TX
jane.smith@example.com
(512) 555-0134

Professional Summary
Senior backend engineer with eight years of experience building distributed systems.

Skills
Python, Go, PostgreSQL, Docker, Kubernetes, CI/CD pipelines, RESTful APIs

Experience
Jan 2020 - Present
Senior Software Engineer at Initech Solutions
• Designed microservices handling 50k requests per second
• Led migration from MySQL to PostgreSQL

Mar 2016 - Dec 2019
Software Developer at Globex Corporation
• Built internal tooling in Python and Go

Education
Bachelor of Science, Computer Science
University of Texas at Austin, 2015`

func TestRuleParserParse(t *testing.T) {
	p := NewRuleParser(nil)

	record, err := p.Parse(context.Background(), "jane.pdf", sampleResume)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if record.ID == "" {
		t.Error("Expected generated candidate ID")
	}
	if record.SourceFile != "jane.pdf" {
		t.Errorf("Expected source file 'jane.pdf', got %q", record.SourceFile)
	}
	if record.ParseMethod != types.ParseMethodRule {
		t.Errorf("Expected parse method rule, got %s", record.ParseMethod)
	}
	if record.Name != "Jane Smith" {
		t.Errorf("Expected name 'Jane Smith', got %q", record.Name)
	}
	if record.Email != "jane.smith@example.com" {
		t.Errorf("Expected email, got %q", record.Email)
	}
	if record.Phone != "(512) 555-0134" {
		t.Errorf("Expected normalized phone, got %q", record.Phone)
	}
	if record.Location != "Austin, TX" {
		t.Errorf("Expected location 'Austin, TX', got %q", record.Location)
	}
	if !strings.Contains(record.Summary, "distributed systems") {
		t.Errorf("Expected summary content, got %q", record.Summary)
	}

	wantSkills := []string{"Python", "Go", "PostgreSQL", "Docker", "Kubernetes", "CI/CD", "REST", "Microservices"}
	got := make(map[string]bool)
	for _, s := range record.Skills {
		got[s] = true
	}
	for _, want := range wantSkills {
		if !got[want] {
			t.Errorf("Expected skill %q in %v", want, record.Skills)
		}
	}
	if got["MySQL"] != true {
		t.Errorf("Expected MySQL mentioned in experience bullets to be picked up, got %v", record.Skills)
	}

	if len(record.Experience) < 2 {
		t.Fatalf("Expected at least 2 experience entries, got %d", len(record.Experience))
	}
	first := record.Experience[0]
	if !strings.Contains(first.Title, "Engineer") {
		t.Errorf("Expected engineer title, got %q", first.Title)
	}
	if !strings.Contains(first.Company, "Initech") {
		t.Errorf("Expected Initech company, got %q", first.Company)
	}
	if !strings.Contains(first.Dates, "2020") || !strings.Contains(first.Dates, "Present") {
		t.Errorf("Expected date range with Present, got %q", first.Dates)
	}
	if !strings.Contains(first.Description, "microservices") {
		t.Errorf("Expected bullet content in description, got %q", first.Description)
	}

	if len(record.Education) != 1 {
		t.Fatalf("Expected 1 education entry, got %d", len(record.Education))
	}
	edu := record.Education[0]
	if !strings.HasPrefix(edu.Degree, "Bachelor") {
		t.Errorf("Expected bachelor degree, got %q", edu.Degree)
	}
	if !strings.Contains(edu.School, "University of Texas") {
		t.Errorf("Expected school, got %q", edu.School)
	}
	if edu.Year != "2015" {
		t.Errorf("Expected year 2015, got %q", edu.Year)
	}
}

func TestRuleParserEmptyText(t *testing.T) {
	p := NewRuleParser(nil)

	_, err := p.Parse(context.Background(), "empty.txt", "   \n\t  ")
	if err == nil {
		t.Fatal("Expected error for empty resume text")
	}

	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("Expected *errors.AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeParseFailed {
		t.Errorf("Expected code %s, got %s", errors.ErrCodeParseFailed, appErr.Code)
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"512-555-0134", "(512) 555-0134"},
		{"1-512-555-0134", "(512) 555-0134"},
		{"(512) 555-0134", "(512) 555-0134"},
		{"+44 20 7946 0958", "+44 20 7946 0958"},
	}

	for _, tt := range tests {
		if got := normalizePhone(tt.input); got != tt.want {
			t.Errorf("normalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIdentifySectionHeader(t *testing.T) {
	tests := []struct {
		line string
		want sectionType
		ok   bool
	}{
		{"Professional Summary", sectionSummary, true},
		{"WORK EXPERIENCE:", sectionExperience, true},
		{"Education and Training", sectionEducation, true},
		{"Technical Skills", sectionSkills, true},
		{"Certifications", sectionCerts, true},
		{"I worked on many projects over the years at a large company doing things", "", false},
		{"Jane Smith", "", false},
	}

	for _, tt := range tests {
		got, ok := identifySectionHeader(tt.line)
		if ok != tt.ok || got != tt.want {
			t.Errorf("identifySectionHeader(%q) = (%q, %v), want (%q, %v)",
				tt.line, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNewParserFactory(t *testing.T) {
	p, err := New("rule", nil, nil)
	if err != nil {
		t.Fatalf("Expected rule parser, got error: %v", err)
	}
	if p.Method() != types.ParseMethodRule {
		t.Errorf("Expected rule method, got %s", p.Method())
	}

	if _, err := New("llm", nil, nil); err == nil {
		t.Error("Expected error for llm parser without provider")
	}

	if _, err := New("magic", nil, nil); err == nil {
		t.Error("Expected error for unknown parser kind")
	}
}
