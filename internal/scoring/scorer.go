package scoring

import (
	"context"
	"sort"
	"strings"
	"time"

	"resumescreen/internal/config"
	"resumescreen/internal/errors"
	"resumescreen/internal/match"
	"resumescreen/internal/types"
)

const (
	LabelSuitable    = "Suitable"
	LabelMaybe       = "Maybe Suitable"
	LabelNotSuitable = "Not Suitable"
)

// Scorer combines rule-based and semantic scores into a ranked list.
// A failure for one candidate is recorded and never aborts the batch.
type Scorer struct {
	rule    *RuleBasedScorer
	matcher *match.Matcher
	config  *config.ScoringConfig
	logger  *errors.Logger
}

func NewScorer(cfg *config.ScoringConfig, matcher *match.Matcher, logger *errors.Logger) *Scorer {
	return &Scorer{
		rule:    NewRuleBasedScorer(cfg, logger),
		matcher: matcher,
		config:  cfg,
		logger:  logger,
	}
}

// ScoreCandidate scores one candidate according to the configured mode
func (s *Scorer) ScoreCandidate(ctx context.Context, candidate types.CandidateRecord, job types.JobDescription) (types.ScoredCandidate, error) {
	mode := types.ScreenMode(s.config.Mode)

	ruleScore, breakdown, matched, missing, err := s.rule.Score(candidate, job)
	if err != nil {
		return types.ScoredCandidate{}, err
	}

	scored := types.ScoredCandidate{
		Candidate:     candidate,
		RuleScore:     ruleScore,
		MatchedSkills: matched,
		MissingSkills: missing,
		Breakdown:     breakdown,
	}

	if mode == types.ModeSemanticOnly || mode == types.ModeCombined {
		if s.matcher == nil {
			return types.ScoredCandidate{}, errors.NewConfigError(errors.ErrCodeInvalidConfig,
				"Semantic scoring requires a matcher", nil)
		}
		semantic, err := s.matcher.Similarity(ctx, candidateText(candidate), jobText(job))
		if err != nil {
			return types.ScoredCandidate{}, err
		}
		scored.SemanticScore = &semantic
	}

	switch mode {
	case types.ModeRuleOnly:
		scored.FinalScore = ruleScore
	case types.ModeSemanticOnly:
		scored.FinalScore = *scored.SemanticScore
	case types.ModeCombined:
		wr := s.config.Weights.Rule
		ws := s.config.Weights.Semantic
		scored.FinalScore = (wr*ruleScore + ws**scored.SemanticScore) / (wr + ws)
	default:
		return types.ScoredCandidate{}, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"Unknown screening mode: "+s.config.Mode, nil)
	}

	scored.Label = s.Label(scored.FinalScore)
	return scored, nil
}

// ScoreAll scores every candidate and returns the ranked result.
// Failed entries keep zero scores and carry the error message.
func (s *Scorer) ScoreAll(ctx context.Context, candidates []types.CandidateRecord, job types.JobDescription) types.ScreenResult {
	scored := make([]types.ScoredCandidate, 0, len(candidates))
	failed := 0

	for _, candidate := range candidates {
		entry, err := s.ScoreCandidate(ctx, candidate, job)
		if err != nil {
			failed++
			if s.logger != nil {
				s.logger.LogError(err, "Scoring failed",
					"candidate", candidate.SourceFile)
			}
			entry = types.ScoredCandidate{
				Candidate: candidate,
				Error:     err.Error(),
			}
		}
		scored = append(scored, entry)
	}

	Sort(scored)

	return types.ScreenResult{
		JobTitle:    job.Title,
		Mode:        types.ScreenMode(s.config.Mode),
		GeneratedAt: time.Now().UTC(),
		Candidates:  scored,
		Total:       len(candidates),
		Scored:      len(candidates) - failed,
		Failed:      failed,
	}
}

// Label maps a final score onto a suitability label
func (s *Scorer) Label(score float64) string {
	switch {
	case score >= s.config.Thresholds.Suitable:
		return LabelSuitable
	case score >= s.config.Thresholds.Maybe:
		return LabelMaybe
	default:
		return LabelNotSuitable
	}
}

// Sort orders candidates by descending final score. The sort is
// stable, equal scores keep their input order. Failed entries sink
// below scored ones.
func Sort(candidates []types.ScoredCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Failed() != candidates[j].Failed() {
			return !candidates[i].Failed()
		}
		return candidates[i].FinalScore > candidates[j].FinalScore
	})
}

// candidateText builds the text blob embedded for a candidate,
// preferring the raw resume text.
func candidateText(candidate types.CandidateRecord) string {
	if strings.TrimSpace(candidate.RawText) != "" {
		return candidate.RawText
	}

	parts := []string{candidate.Summary, strings.Join(candidate.Skills, " ")}
	for _, exp := range candidate.Experience {
		parts = append(parts, exp.Title, exp.Description)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// jobText builds the text blob embedded for a job description
func jobText(job types.JobDescription) string {
	if strings.TrimSpace(job.RawText) != "" {
		return job.RawText
	}

	parts := []string{
		job.Title,
		strings.Join(job.RequiredSkills, " "),
		strings.Join(job.PreferredSkills, " "),
		strings.Join(job.RequiredExperience, " "),
		job.EducationRequired,
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
