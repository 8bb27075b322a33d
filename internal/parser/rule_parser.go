package parser

import (
	"context"
	"regexp"
	"strings"

	"resumescreen/internal/errors"
	"resumescreen/internal/types"

	"github.com/google/uuid"
)

type sectionType string

const (
	sectionHeader     sectionType = "header"
	sectionSummary    sectionType = "summary"
	sectionSkills     sectionType = "skills"
	sectionExperience sectionType = "experience"
	sectionEducation  sectionType = "education"
	sectionCerts      sectionType = "certifications"
	sectionProjects   sectionType = "projects"
)

// Section headers are matched against a cleaned, lowercased line.
var sectionPatterns = map[sectionType][]*regexp.Regexp{
	sectionSummary: compileAll(
		`^(professional\s+)?summary$`,
		`^(career\s+)?objective$`,
		`^profile$`,
		`^about(\s+me)?$`,
		`^overview$`,
		`^career\s+highlights?$`,
	),
	sectionExperience: compileAll(
		`^(professional\s+)?experience$`,
		`^work\s+(experience|history)$`,
		`^employment(\s+history)?$`,
		`^career\s+history$`,
		`^relevant\s+experience$`,
	),
	sectionEducation: compileAll(
		`^education(\s+and\s+training)?$`,
		`^academic\s+(background|history)$`,
		`^academic\s+credentials$`,
		`^training$`,
		`^education\s+&\s+certifications?$`,
	),
	sectionSkills: compileAll(
		`^(technical\s+)?skills?$`,
		`^core\s+competenc(y|ies)$`,
		`^areas?\s+of\s+expertise$`,
		`^technical\s+expertise$`,
		`^skill\s+highlights?$`,
		`^qualifications$`,
		`^capabilities$`,
	),
	sectionCerts: compileAll(
		`^certifications?$`,
		`^licenses?(\s+and\s+certifications?)?$`,
		`^professional\s+certifications?$`,
		`^credentials?$`,
	),
	sectionProjects: compileAll(
		`^projects?$`,
		`^(personal\s+)?portfolio$`,
		`^key\s+projects?$`,
		`^notable\s+projects?$`,
	),
}

var jobTitlePatterns = compileAll(
	`(?i)\b(CEO|CFO|CTO|COO|CMO|CIO|VP|Vice\s+President)\b`,
	`(?i)\b(Director|Manager|Supervisor|Lead|Head\s+of|Chief)\b`,
	`(?i)\b(Coordinator|Administrator|Specialist|Analyst)\b`,
	`(?i)\b(Engineer|Developer|Programmer|Architect|Designer)\b`,
	`(?i)\b(Scientist|Researcher|Technician)\b`,
	`(?i)\b(Consultant|Advisor|Strategist|Executive)\b`,
	`(?i)\b(Representative|Associate|Assistant|Officer)\b`,
)

var companyIndicatorPatterns = compileAll(
	`(?i)\b(Inc|LLC|Corp|Corporation|Company|Ltd|Limited|Group|Partners|LLP)\b`,
	`(?i)\b(Associates|Solutions|Services|Consulting|Technologies|Systems)\b`,
	`(?i)\b(University|College|Institute|School|Academy)\b`,
	`(?i)\b(Hospital|Medical|Health|Clinic)\b`,
	`(?i)\b(Bank|Financial|Capital|Investments)\b`,
)

var (
	bulletCharRe      = regexp.MustCompile(`[•·▪▫◦‣⁃➤→]`)
	spacesRe          = regexp.MustCompile(`[ \t]+`)
	blankLinesRe      = regexp.MustCompile(`\n{3,}`)
	headerTrailRe     = regexp.MustCompile(`[:\-\s]+$`)
	headerLeadRe      = regexp.MustCompile(`^\W+`)
	emailRe           = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe           = regexp.MustCompile(`(\+?1[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	nonDigitRe        = regexp.MustCompile(`\D`)
	locationRe        = regexp.MustCompile(`([A-Z][a-z]+(\s+[A-Z][a-z]+)*),?\s*([A-Z]{2})\b`)
	nameRejectRe      = regexp.MustCompile(`@|\d{3}[-.\s]\d{3}|http|www\.`)
	nameWordRe        = regexp.MustCompile(`^[A-Za-z'\-.]+$`)
	entryDateStartRe  = regexp.MustCompile(`^\s*(\d{1,2}/\d{4}|\w+\s+\d{4})`)
	dateRangeRe       = regexp.MustCompile(`(?i)(\w+\s+\d{4}|\d{1,2}/\d{4})\s*(-|–|—|to)\s*(\w+\s+\d{4}|\d{1,2}/\d{4}|Present|Current)`)
	yearRe            = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	bulletLineRe      = regexp.MustCompile(`^\s*[•\-*]\s*`)
	companyAtRe       = regexp.MustCompile(`\b(at|@)\s+([A-Z][^\n,]+?)(\s*[-–]|\s*\n|$)`)
	titlePhraseRe     = regexp.MustCompile(`(?i)[A-Za-z][A-Za-z ]*?(Engineer|Developer|Programmer|Architect|Designer|Manager|Director|Supervisor|Lead|Analyst|Specialist|Coordinator|Administrator|Consultant|Scientist|Researcher|Technician|Officer|Executive|Assistant|Associate|Representative)\b`)
	locationSuffixRe  = regexp.MustCompile(`\s*[-–]\s*.*$`)
	degreeSplitRe     = regexp.MustCompile(`(?i)\b(Bachelor|Master|Ph\.?D|Doctor|Associate|Diploma|Certificate|MBA|B\.[A-Z]|M\.[A-Z])\b`)
	schoolRe          = regexp.MustCompile(`([A-Z][^\n]*(University|College|Institute|School)[^\n]*)`)
	nameExcludeWords  = []string{"summary", "objective", "highlights", "focused", "driven", "results"}
)

// degreePatterns capture the degree name and optionally the field of study
var degreePatterns = compileAll(
	`(?i)(Bachelor('?s)?|B\.?Sc\.?|BS|B\.?S\.?|B\.?Eng\.?|BEng)\b\s*(of\s+)?([A-Za-z ]+?)(\s*[-,]|$)`,
	`(?i)(Master('?s)?|M\.?Sc\.?|MS|M\.?S\.?|M\.?Eng\.?|MEng)\b\s*(of\s+)?([A-Za-z ]+?)(\s*[-,]|$)`,
	`(?i)(Ph\.?D\.?|Doctor(ate)?)\b\s*(in\s+)?([A-Za-z ]+?)(\s*[-,]|$)`,
	`(?i)(Associate('?s)?)\b\s*(of\s+)?([A-Za-z ]+?)(\s*[-,]|$)`,
	`(?i)\b(MBA|MFA|MEd|MPH|MPA|JD|MD)\b`,
)

// Known skills checked against the full resume text
var techSkills = []string{
	"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Ruby", "Go",
	"Rust", "Swift", "Kotlin", "SQL", "PHP", "Perl", "Scala",
	"React", "Angular", "Vue", "Django", "Flask", "Spring", "Node.js",
	"Express", ".NET", "Rails", "Laravel",
	"MySQL", "PostgreSQL", "MongoDB", "Redis", "Oracle", "SQL Server",
	"Cassandra", "DynamoDB", "Elasticsearch",
	"Git", "Docker", "Kubernetes", "Jenkins", "AWS", "Azure", "GCP",
	"Terraform", "Ansible", "JIRA", "Confluence",
}

var softSkills = []string{
	"Leadership", "Communication", "Problem Solving", "Collaboration",
	"Management", "Analytical", "Strategic", "Critical Thinking",
	"Project Management", "Time Management", "Presentation",
}

// skillVariants map canonical names to the spellings found in resumes
var skillVariants = map[string][]*regexp.Regexp{
	"REST":          compileAll(`(?i)\bREST\b`, `(?i)\bRESTful\b`),
	"GraphQL":       compileAll(`(?i)\bGraph\s?QL\b`),
	"NoSQL":         compileAll(`(?i)\bNo\s?SQL\b`),
	"CI/CD":         compileAll(`(?i)\bCI\s*/\s*CD\b`, `(?i)\bCI[- ]?CD\b`),
	"Microservices": compileAll(`(?i)\bmicroservices?(\s+architecture)?\b`),
}

var skillVariantOrder = []string{"REST", "GraphQL", "NoSQL", "CI/CD", "Microservices"}

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}

// RuleParser extracts candidate data with section detection and
// regex heuristics. It never calls external services.
type RuleParser struct {
	logger *errors.Logger
}

func NewRuleParser(logger *errors.Logger) *RuleParser {
	return &RuleParser{logger: logger}
}

func (p *RuleParser) Method() types.ParseMethod {
	return types.ParseMethodRule
}

// Parse builds a candidate record from raw resume text
func (p *RuleParser) Parse(_ context.Context, sourceFile, rawText string) (types.CandidateRecord, error) {
	if strings.TrimSpace(rawText) == "" {
		return types.CandidateRecord{}, errors.NewParseError(errors.ErrCodeParseFailed,
			"Resume text is empty", nil).WithContext("file", sourceFile)
	}

	text := cleanResume(rawText)
	sections := detectSections(text)

	record := types.CandidateRecord{
		ID:          uuid.NewString(),
		SourceFile:  sourceFile,
		RawText:     rawText,
		ParseMethod: types.ParseMethodRule,
	}

	extractContact(text, &record)
	record.Skills = extractSkills(text)
	record.Experience = extractExperience(sections)
	record.Education = extractEducation(sections)

	if summary, ok := sections[sectionSummary]; ok {
		if len(summary) > 500 {
			summary = summary[:500]
		}
		record.Summary = summary
	}

	if p.logger != nil {
		p.logger.Debug("Rule parser finished",
			"file", sourceFile,
			"name", record.Name,
			"skills", len(record.Skills),
			"experience", len(record.Experience),
			"education", len(record.Education))
	}

	return record, nil
}

// cleanResume normalizes line endings, bullets, and whitespace while
// keeping the line structure intact for section detection.
func cleanResume(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = bulletCharRe.ReplaceAllString(text, "•")
	text = spacesRe.ReplaceAllString(text, " ")
	text = blankLinesRe.ReplaceAllString(text, "\n\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

func detectSections(text string) map[sectionType]string {
	sections := make(map[sectionType]string)
	lines := strings.Split(text, "\n")

	current := sectionHeader
	var content []string

	flush := func() {
		if len(content) == 0 {
			return
		}
		body := strings.TrimSpace(strings.Join(content, "\n"))
		if body != "" {
			sections[current] = body
		}
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if len(content) > 0 {
				content = append(content, "")
			}
			continue
		}

		if st, ok := identifySectionHeader(line); ok {
			flush()
			current = st
			content = nil
		} else {
			content = append(content, line)
		}
	}
	flush()

	return sections
}

func identifySectionHeader(line string) (sectionType, bool) {
	clean := strings.ToLower(strings.TrimSpace(line))
	clean = headerTrailRe.ReplaceAllString(clean, "")
	clean = headerLeadRe.ReplaceAllString(clean, "")

	// Long lines are body text, not headers
	if len(clean) > 50 {
		return "", false
	}

	for st, patterns := range sectionPatterns {
		for _, re := range patterns {
			if re.MatchString(clean) {
				return st, true
			}
		}
	}
	return "", false
}

// extractContact pulls name, email, phone, and location from the top
// of the resume. The first 1000 characters cover the header block.
func extractContact(text string, record *types.CandidateRecord) {
	header := text
	if len(header) > 1000 {
		header = header[:1000]
	}

	record.Email = emailRe.FindString(header)

	if phone := phoneRe.FindString(header); phone != "" {
		record.Phone = normalizePhone(phone)
	}

	if m := locationRe.FindStringSubmatch(header); m != nil {
		record.Location = m[1] + ", " + m[3]
	}

	record.Name = extractName(header, record.Email)
}

// normalizePhone formats US numbers as (XXX) XXX-XXXX and leaves
// anything else untouched.
func normalizePhone(phone string) string {
	digits := nonDigitRe.ReplaceAllString(phone, "")
	if len(digits) == 11 && strings.HasPrefix(digits, "1") {
		digits = digits[1:]
	}
	if len(digits) == 10 {
		return "(" + digits[0:3] + ") " + digits[3:6] + "-" + digits[6:10]
	}
	return phone
}

func extractName(header, email string) string {
	lines := strings.Split(header, "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if email != "" && strings.Contains(line, email) {
			continue
		}
		if nameRejectRe.MatchString(line) {
			continue
		}
		if _, isHeader := identifySectionHeader(line); isHeader {
			continue
		}

		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		if !looksLikeName(words) {
			continue
		}

		lower := strings.ToLower(line)
		excluded := false
		for _, kw := range nameExcludeWords {
			if strings.Contains(lower, kw) {
				excluded = true
				break
			}
		}
		if !excluded {
			return line
		}
	}
	return ""
}

func looksLikeName(words []string) bool {
	for _, w := range words {
		initial := len(w) <= 2 && strings.HasSuffix(w, ".")
		if !initial && (w[0] < 'A' || w[0] > 'Z') {
			return false
		}
		if !nameWordRe.MatchString(w) {
			return false
		}
	}
	return true
}

// extractSkills matches the known skill vocabulary against the full
// text and folds common variants onto canonical names.
func extractSkills(text string) []string {
	var skills []string
	seen := make(map[string]struct{})

	add := func(skill string) {
		if _, ok := seen[skill]; ok {
			return
		}
		seen[skill] = struct{}{}
		skills = append(skills, skill)
	}

	for _, skill := range techSkills {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(skill) + `\b`)
		if re.MatchString(text) {
			add(skill)
		}
	}

	for _, canonical := range skillVariantOrder {
		for _, re := range skillVariants[canonical] {
			if re.MatchString(text) {
				add(canonical)
				break
			}
		}
	}

	for _, skill := range softSkills {
		re := regexp.MustCompile(`(?i)\b` + skill + `\b`)
		if re.MatchString(text) {
			add(skill)
		}
	}

	return skills
}

func extractExperience(sections map[sectionType]string) []types.ExperienceEntry {
	expText := sections[sectionExperience]
	if expText == "" {
		return nil
	}

	var experiences []types.ExperienceEntry
	for _, entry := range splitJobEntries(expText) {
		exp := parseJobEntry(entry)
		if exp.Company != "" || exp.Title != "" {
			experiences = append(experiences, exp)
		}
	}
	return experiences
}

// splitJobEntries breaks the experience section into per-job chunks.
// A line starting with a date, a job title, or a company indicator
// opens a new entry.
func splitJobEntries(text string) []string {
	var entries []string
	var current []string

	for _, line := range strings.Split(text, "\n") {
		newEntry := entryDateStartRe.MatchString(line)

		if !newEntry {
			for _, re := range jobTitlePatterns[:5] {
				if re.MatchString(line) {
					newEntry = true
					break
				}
			}
		}
		if !newEntry {
			for _, re := range companyIndicatorPatterns[:3] {
				if re.MatchString(line) {
					newEntry = true
					break
				}
			}
		}

		// A lone date line belongs to the entry that follows it
		if newEntry && len(current) > 0 && !datesOnly(current) {
			entries = append(entries, strings.Join(current, "\n"))
			current = []string{line}
		} else {
			current = append(current, line)
		}
	}
	if len(current) > 0 {
		entries = append(entries, strings.Join(current, "\n"))
	}
	return entries
}

func datesOnly(lines []string) bool {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !entryDateStartRe.MatchString(line) || !dateRangeRe.MatchString(line) {
			return false
		}
	}
	return true
}

func parseJobEntry(entry string) types.ExperienceEntry {
	var exp types.ExperienceEntry

	// Title lives on the first line that is not a bare date range
	lines := strings.Split(entry, "\n")
	firstLine := ""
	for _, line := range lines {
		if strings.TrimSpace(line) != "" && !datesOnly([]string{line}) {
			firstLine = line
			break
		}
	}

	if m := dateRangeRe.FindStringSubmatch(entry); m != nil {
		exp.Dates = m[1] + " - " + m[3]
	}

	// Prefer the full title phrase, fall back to the bare keyword
	if m := titlePhraseRe.FindString(firstLine); m != "" {
		exp.Title = strings.TrimSpace(m)
	} else {
		for _, re := range jobTitlePatterns {
			if m := re.FindString(firstLine); m != "" {
				exp.Title = strings.TrimSpace(m)
				break
			}
		}
	}

	exp.Company = extractCompany(entry)

	var bullets []string
	for _, line := range lines[1:] {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "•") || bulletLineRe.MatchString(line) {
			bullet := strings.TrimSpace(bulletLineRe.ReplaceAllString(line, ""))
			if bullet != "" {
				bullets = append(bullets, bullet)
			}
		}
	}
	exp.Description = strings.Join(bullets, "\n")

	return exp
}

func extractCompany(text string) string {
	if m := companyAtRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[2])
	}

	for _, indicator := range companyIndicatorPatterns {
		for _, line := range strings.Split(text, "\n") {
			if m := indicator.FindString(line); m != "" {
				// Take the line up to any location suffix
				company := locationSuffixRe.ReplaceAllString(line, "")
				company = strings.TrimSpace(strings.Split(company, ",")[0])
				if company != "" && company[0] >= 'A' && company[0] <= 'Z' {
					return company
				}
			}
		}
	}
	return ""
}

func extractEducation(sections map[sectionType]string) []types.EducationEntry {
	eduText := sections[sectionEducation]
	if eduText == "" {
		return nil
	}

	var educations []types.EducationEntry
	for _, entry := range splitEducationEntries(eduText) {
		edu := parseEducationEntry(entry)
		if edu.Degree != "" || edu.School != "" {
			educations = append(educations, edu)
		}
	}
	return educations
}

func splitEducationEntries(text string) []string {
	var entries []string
	var current []string

	for _, line := range strings.Split(text, "\n") {
		if degreeSplitRe.MatchString(line) && len(current) > 0 {
			entries = append(entries, strings.Join(current, "\n"))
			current = []string{line}
		} else {
			current = append(current, line)
		}
	}
	if len(current) > 0 {
		entries = append(entries, strings.Join(current, "\n"))
	}

	if len(entries) == 0 {
		return []string{text}
	}
	return entries
}

func parseEducationEntry(entry string) types.EducationEntry {
	var edu types.EducationEntry

	for _, re := range degreePatterns {
		if m := re.FindStringSubmatch(entry); m != nil {
			edu.Degree = m[1]
			// Field of study is the fourth capture group when present
			if len(m) > 4 {
				edu.Field = strings.TrimSpace(m[4])
			}
			break
		}
	}

	if m := schoolRe.FindStringSubmatch(entry); m != nil {
		school := locationSuffixRe.ReplaceAllString(m[1], "")
		edu.School = strings.TrimSpace(school)
	}

	// Latest year in the entry is usually graduation
	years := yearRe.FindAllString(entry, -1)
	for _, y := range years {
		if y > edu.Year {
			edu.Year = y
		}
	}

	return edu
}
