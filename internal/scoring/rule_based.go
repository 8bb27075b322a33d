package scoring

import (
	"sort"
	"strings"

	"resumescreen/internal/config"
	"resumescreen/internal/errors"
	"resumescreen/internal/preprocess"
	"resumescreen/internal/types"
)

// RuleBasedScorer computes a deterministic keyword-overlap score in
// [0, 1] for a candidate against a job description. Components whose
// job-side requirement is empty do not participate in the average.
type RuleBasedScorer struct {
	weights    config.RuleWeights
	components config.ScoreWeights
	logger     *errors.Logger
}

func NewRuleBasedScorer(cfg *config.ScoringConfig, logger *errors.Logger) *RuleBasedScorer {
	return &RuleBasedScorer{
		weights:    cfg.RuleWeights,
		components: cfg.Weights,
		logger:     logger,
	}
}

// Score returns the rule score, the per-component breakdown, and the
// matched and missing required skills.
func (s *RuleBasedScorer) Score(candidate types.CandidateRecord, job types.JobDescription) (float64, *types.ScoreBreakdown, []string, []string, error) {
	if job.Title == "" {
		return 0, nil, nil, nil, errors.NewValidationError(errors.ErrCodeMissingField,
			"Job description has no title", nil)
	}

	// Resume skills are expanded with synonyms so "AWS" matches a job
	// asking for "Amazon Web Services". Job-side sets stay unexpanded,
	// they define the denominator of the skill ratio.
	resumeSkills := preprocess.NormalizeSkillSet(candidate.Skills)
	requiredSkills := normalizeJobSkills(job.RequiredSkills)
	preferredSkills := normalizeJobSkills(job.PreferredSkills)

	matchedRequired := matchSkills(requiredSkills, resumeSkills)
	matchedPreferred := matchSkills(preferredSkills, resumeSkills)

	breakdown := &types.ScoreBreakdown{}

	var weightedSum, weightTotal float64

	if len(requiredSkills) > 0 || len(preferredSkills) > 0 {
		maxPoints := float64(len(requiredSkills))*s.weights.RequiredSkillPoint +
			float64(len(preferredSkills))*s.weights.PreferredSkillPoint
		gotPoints := float64(len(matchedRequired))*s.weights.RequiredSkillPoint +
			float64(len(matchedPreferred))*s.weights.PreferredSkillPoint
		breakdown.SkillScore = gotPoints / maxPoints

		weightedSum += s.components.Skill * breakdown.SkillScore
		weightTotal += s.components.Skill
	}

	if len(job.RequiredExperience) > 0 {
		breakdown.ExperienceScore = experienceScore(candidate.Experience, job.RequiredExperience)
		weightedSum += s.components.Experience * breakdown.ExperienceScore
		weightTotal += s.components.Experience
	}

	if job.EducationRequired != "" {
		breakdown.EducationScore = educationScore(candidate.Education, job.EducationRequired)
		weightedSum += s.components.Education * breakdown.EducationScore
		weightTotal += s.components.Education
	}

	// Projects have no job-side field of their own; they earn credit
	// against the required skills, and only when the resume lists any.
	if len(requiredSkills) > 0 && len(candidate.Projects) > 0 {
		breakdown.ProjectsScore = projectsScore(candidate.Projects, requiredSkills, s.weights)
		weightedSum += s.components.Projects * breakdown.ProjectsScore
		weightTotal += s.components.Projects
	}

	if len(job.PreferredCompanies) > 0 {
		breakdown.CompanyScore = companyScore(candidate.Experience, job.PreferredCompanies, s.weights)
		weightedSum += s.components.Company * breakdown.CompanyScore
		weightTotal += s.components.Company
	}

	score := 0.0
	if weightTotal > 0 {
		score = weightedSum / weightTotal
	}

	// Missing must-have skills cost a flat penalty on the 100-point scale
	mustHave := normalizeJobSkills(job.MustHaveSkills)
	for skill := range mustHave {
		if _, ok := resumeSkills[skill]; !ok {
			breakdown.MustHavePenalty = s.weights.MustHavePenalty / 100.0
			score -= breakdown.MustHavePenalty
			break
		}
	}
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	matched := sortedKeys(matchedRequired)
	var missing []string
	for skill := range requiredSkills {
		if _, ok := matchedRequired[skill]; !ok {
			missing = append(missing, skill)
		}
	}
	sort.Strings(missing)

	return score, breakdown, matched, missing, nil
}

// matchSkills intersects job skills with resume skills, with
// token-level partial matching for compound skills. A compound job
// skill counts as matched when any of its tokens longer than two
// characters appears inside a resume skill.
func matchSkills(jobSkills, resumeSkills map[string]struct{}) map[string]struct{} {
	matched := make(map[string]struct{})

	for skill := range jobSkills {
		if _, ok := resumeSkills[skill]; ok {
			matched[skill] = struct{}{}
			continue
		}

		parts := strings.Fields(skill)
	partLoop:
		for _, part := range parts {
			if len(part) <= 2 {
				continue
			}
			for resumeSkill := range resumeSkills {
				if strings.Contains(resumeSkill, part) {
					matched[skill] = struct{}{}
					break partLoop
				}
			}
		}
	}

	return matched
}

// experienceScore is the fraction of required experience terms found
// in the candidate's titles or descriptions.
func experienceScore(experience []types.ExperienceEntry, required []string) float64 {
	if len(required) == 0 {
		return 0
	}

	var haystack strings.Builder
	for _, exp := range experience {
		haystack.WriteString(strings.ToLower(exp.Title))
		haystack.WriteString(" ")
		haystack.WriteString(strings.ToLower(exp.Description))
		haystack.WriteString(" ")
	}
	text := haystack.String()

	found := 0
	for _, term := range required {
		if strings.Contains(text, strings.ToLower(strings.TrimSpace(term))) {
			found++
		}
	}
	return float64(found) / float64(len(required))
}

// educationScore gives full credit when both the degree level and the
// field match, partial credit for the degree level alone.
func educationScore(education []types.EducationEntry, required string) float64 {
	req := strings.ToLower(required)
	reqWords := strings.Fields(req)
	if len(reqWords) == 0 {
		return 0
	}
	base := reqWords[0]

	best := 0.0
	for _, edu := range education {
		degree := strings.ToLower(edu.Degree)
		field := strings.ToLower(edu.Field)

		if !strings.Contains(degree, base) {
			continue
		}

		fieldMatched := false
		for _, word := range reqWords[1:] {
			if len(word) > 2 && (strings.Contains(field, word) || strings.Contains(degree, word)) {
				fieldMatched = true
				break
			}
		}

		if fieldMatched {
			return 1.0
		}
		if best < 0.5 {
			best = 0.5
		}
	}
	return best
}

// projectsScore awards points per required skill used in a project,
// capped, then normalized to [0, 1]. A skill counts when it appears in
// the project's technologies or, for free-text entries, in the name or
// description.
func projectsScore(projects []types.ProjectEntry, requiredSkills map[string]struct{}, w config.RuleWeights) float64 {
	if w.ProjectsCap <= 0 {
		return 0
	}

	points := 0.0
	for _, proj := range projects {
		techs := preprocess.NormalizeSkillSet(proj.Technologies)
		text := strings.ToLower(proj.Name + " " + proj.Description)

		for skill := range requiredSkills {
			if _, ok := techs[skill]; ok {
				points += w.ProjectTechPoint
				continue
			}
			if len(techs) == 0 && strings.Contains(text, skill) {
				points += w.ProjectTechPoint
			}
		}
	}

	if points > w.ProjectsCap {
		points = w.ProjectsCap
	}
	return points / w.ProjectsCap
}

// companyScore awards points per position held at a preferred company,
// capped, then normalized to [0, 1].
func companyScore(experience []types.ExperienceEntry, preferred []string, w config.RuleWeights) float64 {
	if w.CompanyCap <= 0 {
		return 0
	}

	points := 0.0
	for _, exp := range experience {
		company := strings.ToLower(exp.Company)
		if company == "" {
			continue
		}
		for _, pref := range preferred {
			pref = strings.ToLower(strings.TrimSpace(pref))
			if pref != "" && strings.Contains(company, pref) {
				points += w.CompanyPoint
				break
			}
		}
	}

	if points > w.CompanyCap {
		points = w.CompanyCap
	}
	return points / w.CompanyCap
}

func normalizeJobSkills(raw []string) map[string]struct{} {
	skills := make(map[string]struct{}, len(raw))
	for _, s := range raw {
		if n := preprocess.NormalizeSkill(s); n != "" {
			skills[n] = struct{}{}
		}
	}
	return skills
}

func sortedKeys(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
