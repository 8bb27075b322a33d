package types

import "time"

// ParseMethod identifies which parser produced a candidate record
type ParseMethod string

const (
	ParseMethodRule ParseMethod = "rule"
	ParseMethodLLM  ParseMethod = "llm"
)

// ScreenMode selects how candidates are scored
type ScreenMode string

const (
	ModeRuleOnly     ScreenMode = "rule"
	ModeSemanticOnly ScreenMode = "semantic"
	ModeCombined     ScreenMode = "combined"
)

// ValidModes lists the accepted screening modes
func ValidModes() []ScreenMode {
	return []ScreenMode{ModeRuleOnly, ModeSemanticOnly, ModeCombined}
}

// JobDescription represents the position candidates are screened against.
// It is built once from the job file and never mutated afterwards.
type JobDescription struct {
	Title              string   `json:"title" validate:"required"`
	RequiredSkills     []string `json:"requiredSkills"`
	PreferredSkills    []string `json:"preferredSkills"`
	MustHaveSkills     []string `json:"mustHaveSkills"`
	RequiredExperience []string `json:"requiredExperience"`
	EducationRequired  string   `json:"educationRequired"`
	PreferredCompanies []string `json:"preferredCompanies"`
	RawText            string   `json:"rawText" validate:"required_without=RequiredSkills"`
}

// ExperienceEntry represents one position held by a candidate
type ExperienceEntry struct {
	Company     string `json:"company,omitempty"`
	Title       string `json:"title,omitempty"`
	Dates       string `json:"dates,omitempty"`
	Description string `json:"description,omitempty"`
}

// ProjectEntry represents one personal or professional project
type ProjectEntry struct {
	Name         string   `json:"name,omitempty"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// EducationEntry represents one degree or program
type EducationEntry struct {
	Degree string `json:"degree,omitempty"`
	Field  string `json:"field,omitempty"`
	School string `json:"school,omitempty"`
	Year   string `json:"year,omitempty"`
}

// CandidateRecord is the structured form of a single resume.
// Records are never mutated after the parser returns them.
type CandidateRecord struct {
	ID          string            `json:"id"`
	SourceFile  string            `json:"sourceFile"`
	Name        string            `json:"name,omitempty"`
	Email       string            `json:"email,omitempty"`
	Phone       string            `json:"phone,omitempty"`
	Location    string            `json:"location,omitempty"`
	Summary     string            `json:"summary,omitempty"`
	Skills      []string          `json:"skills,omitempty"`
	Experience  []ExperienceEntry `json:"experience,omitempty"`
	Education   []EducationEntry  `json:"education,omitempty"`
	Projects    []ProjectEntry    `json:"projects,omitempty"`
	RawText     string            `json:"rawText,omitempty"`
	ParseMethod ParseMethod       `json:"parseMethod"`
}

// ScoreBreakdown holds the per-component contributions behind a rule score
type ScoreBreakdown struct {
	SkillScore      float64 `json:"skillScore"`
	ExperienceScore float64 `json:"experienceScore"`
	EducationScore  float64 `json:"educationScore"`
	ProjectsScore   float64 `json:"projectsScore"`
	CompanyScore    float64 `json:"companyScore"`
	MustHavePenalty float64 `json:"mustHavePenalty"`
}

// ScoredCandidate is the terminal, scored form of a candidate.
// SemanticScore is nil when the mode never computed one. Failed entries
// carry zero scores and a non-empty Error.
type ScoredCandidate struct {
	Candidate     CandidateRecord `json:"candidate"`
	RuleScore     float64         `json:"ruleScore"`
	SemanticScore *float64        `json:"semanticScore,omitempty"`
	FinalScore    float64         `json:"finalScore"`
	Label         string          `json:"label,omitempty"`
	MatchedSkills []string        `json:"matchedSkills,omitempty"`
	MissingSkills []string        `json:"missingSkills,omitempty"`
	Breakdown     *ScoreBreakdown `json:"breakdown,omitempty"`
	Error         string          `json:"error,omitempty"`
}

// Failed reports whether this entry represents a processing failure
func (s ScoredCandidate) Failed() bool {
	return s.Error != ""
}

// ScreenResult is the ranked output of one screening run
type ScreenResult struct {
	JobTitle    string            `json:"jobTitle"`
	Mode        ScreenMode        `json:"mode"`
	GeneratedAt time.Time         `json:"generatedAt"`
	Candidates  []ScoredCandidate `json:"candidates"`
	Total       int               `json:"total"`
	Scored      int               `json:"scored"`
	Failed      int               `json:"failed"`
}

// ExtractCandidateInput represents the input for LLM candidate extraction
type ExtractCandidateInput struct {
	ResumeText string `json:"resumeText"`
}

// ExtractCandidateOutput mirrors the structured extraction response schema
type ExtractCandidateOutput struct {
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	Location   string            `json:"location"`
	Summary    string            `json:"summary"`
	Skills     []string          `json:"skills"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education"`
	Projects   []ProjectEntry    `json:"projects"`
}

// MatchInput represents the input for a pairwise similarity check
type MatchInput struct {
	TextA string `json:"textA"`
	TextB string `json:"textB"`
}

// MatchOutput represents the result of a pairwise similarity check
type MatchOutput struct {
	Similarity float64 `json:"similarity"`
}
