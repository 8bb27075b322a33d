package scoring

import (
	"math"
	"testing"

	"resumescreen/internal/config"
	"resumescreen/internal/types"
)

func testScoringConfig() *config.ScoringConfig {
	return &config.ScoringConfig{
		Mode: "rule",
		TopN: 10,
		Weights: config.ScoreWeights{
			Skill:      0.5,
			Experience: 0.3,
			Education:  0.2,
			Projects:   0.1,
			Company:    0.1,
			Rule:       0.5,
			Semantic:   0.5,
		},
		RuleWeights: config.RuleWeights{
			RequiredSkillPoint:  10,
			PreferredSkillPoint: 3,
			ProjectTechPoint:    2,
			ProjectsCap:         10,
			CompanyPoint:        8,
			CompanyCap:          20,
			MustHavePenalty:     30,
		},
		Thresholds: config.ThresholdsConfig{
			Suitable: 0.8,
			Maybe:    0.5,
		},
	}
}

func TestRuleScoreHalfOverlap(t *testing.T) {
	// Job requires {python, sql}, candidate has {python, java}:
	// one of two required skills matches, no other components.
	scorer := NewRuleBasedScorer(testScoringConfig(), nil)

	candidate := types.CandidateRecord{
		ID:     "c1",
		Skills: []string{"python", "java"},
	}
	job := types.JobDescription{
		Title:          "Backend Developer",
		RequiredSkills: []string{"python", "sql"},
	}

	score, breakdown, matched, missing, err := scorer.Score(candidate, job)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}

	if math.Abs(score-0.5) > 1e-9 {
		t.Errorf("Expected score 0.5, got %f", score)
	}
	if math.Abs(breakdown.SkillScore-0.5) > 1e-9 {
		t.Errorf("Expected skill score 0.5, got %f", breakdown.SkillScore)
	}
	if len(matched) != 1 || matched[0] != "python" {
		t.Errorf("Expected matched [python], got %v", matched)
	}
	if len(missing) != 1 || missing[0] != "sql" {
		t.Errorf("Expected missing [sql], got %v", missing)
	}
}

func TestRuleScoreDeterministic(t *testing.T) {
	scorer := NewRuleBasedScorer(testScoringConfig(), nil)

	candidate := types.CandidateRecord{
		ID:     "c1",
		Skills: []string{"Python", "Docker", "Kubernetes", "PostgreSQL"},
		Experience: []types.ExperienceEntry{
			{Title: "Backend Engineer", Description: "Built APIs in Python"},
		},
		Education: []types.EducationEntry{
			{Degree: "Bachelor of Science", Field: "Computer Science"},
		},
	}
	job := types.JobDescription{
		Title:              "Platform Engineer",
		RequiredSkills:     []string{"python", "docker"},
		PreferredSkills:    []string{"kubernetes", "terraform"},
		RequiredExperience: []string{"backend", "apis"},
		EducationRequired:  "bachelor computer science",
	}

	first, _, _, _, err := scorer.Score(candidate, job)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}

	for i := 0; i < 10; i++ {
		again, _, _, _, err := scorer.Score(candidate, job)
		if err != nil {
			t.Fatalf("Score failed on run %d: %v", i, err)
		}
		if again != first {
			t.Fatalf("Score not deterministic: run %d gave %f, first gave %f", i, again, first)
		}
	}

	if first < 0 || first > 1 {
		t.Errorf("Score out of range: %f", first)
	}
}

func TestRuleScorePartialCompoundSkills(t *testing.T) {
	scorer := NewRuleBasedScorer(testScoringConfig(), nil)

	// "rest api development" has no exact counterpart, but "rest"
	// appears inside the candidate's "restful services" skill.
	candidate := types.CandidateRecord{
		ID:     "c1",
		Skills: []string{"restful services"},
	}
	job := types.JobDescription{
		Title:          "API Developer",
		RequiredSkills: []string{"rest api development"},
	}

	score, _, matched, _, err := scorer.Score(candidate, job)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}

	if len(matched) != 1 {
		t.Fatalf("Expected compound skill matched, got %v", matched)
	}
	if math.Abs(score-1.0) > 1e-9 {
		t.Errorf("Expected score 1.0, got %f", score)
	}
}

func TestRuleScoreMustHavePenalty(t *testing.T) {
	scorer := NewRuleBasedScorer(testScoringConfig(), nil)

	candidate := types.CandidateRecord{
		ID:     "c1",
		Skills: []string{"python", "sql"},
	}
	job := types.JobDescription{
		Title:          "Data Engineer",
		RequiredSkills: []string{"python", "sql"},
		MustHaveSkills: []string{"spark"},
	}

	score, breakdown, _, _, err := scorer.Score(candidate, job)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}

	// Full skill match minus the 30-point penalty on the 100 scale
	if math.Abs(score-0.7) > 1e-9 {
		t.Errorf("Expected score 0.7 after must-have penalty, got %f", score)
	}
	if math.Abs(breakdown.MustHavePenalty-0.3) > 1e-9 {
		t.Errorf("Expected penalty 0.3, got %f", breakdown.MustHavePenalty)
	}
}

func TestRuleScorePenaltyFloor(t *testing.T) {
	scorer := NewRuleBasedScorer(testScoringConfig(), nil)

	candidate := types.CandidateRecord{
		ID:     "c1",
		Skills: []string{"cobol"},
	}
	job := types.JobDescription{
		Title:          "Data Engineer",
		RequiredSkills: []string{"python"},
		MustHaveSkills: []string{"python"},
	}

	score, _, _, _, err := scorer.Score(candidate, job)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if score != 0 {
		t.Errorf("Expected score floored at 0, got %f", score)
	}
}

func TestRuleScoreMissingTitle(t *testing.T) {
	scorer := NewRuleBasedScorer(testScoringConfig(), nil)

	_, _, _, _, err := scorer.Score(types.CandidateRecord{}, types.JobDescription{})
	if err == nil {
		t.Fatal("Expected validation error for job without title")
	}
}

func TestRuleScoreProjectsComponent(t *testing.T) {
	scorer := NewRuleBasedScorer(testScoringConfig(), nil)

	candidate := types.CandidateRecord{
		ID:     "c1",
		Skills: []string{"python", "sql"},
		Projects: []types.ProjectEntry{
			{Name: "ETL Pipeline", Technologies: []string{"Python"}},
			{Name: "Reporting Dashboard", Description: "Dashboards over a sql warehouse"},
		},
	}
	job := types.JobDescription{
		Title:          "Data Engineer",
		RequiredSkills: []string{"python", "sql"},
	}

	score, breakdown, _, _, err := scorer.Score(candidate, job)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}

	// Python via technologies, sql via the free-text entry: 4 of 10 points
	if math.Abs(breakdown.ProjectsScore-0.4) > 1e-9 {
		t.Errorf("Expected projects score 0.4, got %f", breakdown.ProjectsScore)
	}
	// skill 1.0 * 0.5 + projects 0.4 * 0.1, renormalized over 0.6
	if math.Abs(score-0.9) > 1e-9 {
		t.Errorf("Expected score 0.9, got %f", score)
	}
}

func TestRuleScoreProjectsSkippedWithoutProjects(t *testing.T) {
	scorer := NewRuleBasedScorer(testScoringConfig(), nil)

	candidate := types.CandidateRecord{
		ID:     "c1",
		Skills: []string{"python", "java"},
	}
	job := types.JobDescription{
		Title:          "Backend Developer",
		RequiredSkills: []string{"python", "sql"},
	}

	score, breakdown, _, _, err := scorer.Score(candidate, job)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}

	// A resume with no projects must not be dragged down by a zero
	// projects component, the skill ratio stands alone.
	if breakdown.ProjectsScore != 0 {
		t.Errorf("Expected projects score 0, got %f", breakdown.ProjectsScore)
	}
	if math.Abs(score-0.5) > 1e-9 {
		t.Errorf("Expected score 0.5, got %f", score)
	}
}

func TestRuleScoreCompanyComponent(t *testing.T) {
	scorer := NewRuleBasedScorer(testScoringConfig(), nil)

	candidate := types.CandidateRecord{
		ID: "c1",
		Experience: []types.ExperienceEntry{
			{Company: "Google LLC", Title: "SWE"},
			{Company: "Stripe, Inc.", Title: "Engineer"},
			{Company: "Acme Corp", Title: "Developer"},
		},
	}
	job := types.JobDescription{
		Title:              "Senior Engineer",
		PreferredCompanies: []string{"Google", "stripe"},
	}

	score, breakdown, _, _, err := scorer.Score(candidate, job)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}

	// Two matching employers at 8 points each against a cap of 20
	if math.Abs(breakdown.CompanyScore-0.8) > 1e-9 {
		t.Errorf("Expected company score 0.8, got %f", breakdown.CompanyScore)
	}
	// Only the company component participates here
	if math.Abs(score-0.8) > 1e-9 {
		t.Errorf("Expected score 0.8, got %f", score)
	}
}

func TestCompanyScoreCapped(t *testing.T) {
	w := testScoringConfig().RuleWeights

	experience := []types.ExperienceEntry{
		{Company: "Google"},
		{Company: "Google Cloud"},
		{Company: "Google DeepMind"},
	}

	got := companyScore(experience, []string{"google"}, w)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Expected capped company score 1.0, got %f", got)
	}
}

func TestEducationScore(t *testing.T) {
	tests := []struct {
		name      string
		education []types.EducationEntry
		required  string
		want      float64
	}{
		{
			name: "full match degree and field",
			education: []types.EducationEntry{
				{Degree: "Bachelor of Arts", Field: "Computer Science"},
			},
			required: "bachelor computer science",
			want:     1.0,
		},
		{
			name: "partial match degree only",
			education: []types.EducationEntry{
				{Degree: "Bachelor of Arts", Field: "History"},
			},
			required: "bachelor computer science",
			want:     0.5,
		},
		{
			name: "no match",
			education: []types.EducationEntry{
				{Degree: "Diploma", Field: "Welding"},
			},
			required: "bachelor computer science",
			want:     0,
		},
		{
			name:      "no education entries",
			education: nil,
			required:  "bachelor",
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := educationScore(tt.education, tt.required)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("educationScore() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestExperienceScore(t *testing.T) {
	experience := []types.ExperienceEntry{
		{Title: "Senior Backend Engineer", Description: "Built Python services on Kubernetes"},
		{Title: "Data Analyst", Description: "SQL reporting"},
	}

	got := experienceScore(experience, []string{"backend", "python", "rust"})
	want := 2.0 / 3.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("experienceScore() = %f, want %f", got, want)
	}
}
