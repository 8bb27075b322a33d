package pipeline

import (
	"context"
	"os"
	"time"

	"resumescreen/internal/common"
	"resumescreen/internal/config"
	"resumescreen/internal/errors"
	"resumescreen/internal/extract"
	"resumescreen/internal/observability"
	"resumescreen/internal/parser"
	"resumescreen/internal/scoring"
	"resumescreen/internal/types"
	"resumescreen/internal/utils"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Pipeline drives a screening run: list resume files, extract text,
// parse, score, rank. Failures for individual resumes become failed
// entries; only setup errors abort the run.
type Pipeline struct {
	config  *config.Config
	parser  parser.Parser
	scorer  *scoring.Scorer
	files   *common.FileProcessor
	metrics *observability.PipelineMetrics
	logger  *errors.Logger
}

func New(cfg *config.Config, p parser.Parser, scorer *scoring.Scorer, metrics *observability.PipelineMetrics, logger *errors.Logger) *Pipeline {
	return &Pipeline{
		config:  cfg,
		parser:  p,
		scorer:  scorer,
		files:   common.NewFileProcessor(logger),
		metrics: metrics,
		logger:  logger,
	}
}

// Run screens every resume in resumeDir against the job description
// at jobFile and returns the ranked result.
func (p *Pipeline) Run(ctx context.Context, resumeDir, jobFile string) (types.ScreenResult, error) {
	tracer := otel.Tracer("resumescreen.pipeline")
	ctx, span := tracer.Start(ctx, "pipeline.run")
	defer span.End()

	job, err := LoadJobDescription(jobFile, p.files)
	if err != nil {
		span.RecordError(err)
		return types.ScreenResult{}, err
	}

	files, err := utils.ListResumeFiles(resumeDir, p.config.App.MaxFileSize)
	if err != nil {
		wrapped := errors.NewIOError(errors.ErrCodeFileNotReadable,
			"Cannot list resume directory", err).WithContext("dir", resumeDir)
		span.RecordError(wrapped)
		return types.ScreenResult{}, wrapped
	}

	span.SetAttributes(
		attribute.String("job.title", job.Title),
		attribute.String("mode", p.config.Scoring.Mode),
		attribute.Int("resume.count", len(files)),
	)

	p.logger.Info("Screening run started",
		"job", job.Title,
		"mode", p.config.Scoring.Mode,
		"parser", string(p.parser.Method()),
		"resumes", len(files))

	var parsed []types.CandidateRecord
	var failures []types.ScoredCandidate

	for _, file := range files {
		record, err := p.processFile(ctx, file)
		if err != nil {
			p.metrics.ObserveParseFailure()
			p.logger.LogError(err, "Resume processing failed", "file", file)
			failures = append(failures, types.ScoredCandidate{
				Candidate: types.CandidateRecord{SourceFile: file},
				Error:     err.Error(),
			})
			continue
		}
		p.metrics.ObserveCandidate()
		parsed = append(parsed, record)
	}

	start := time.Now()
	result := p.scorer.ScoreAll(ctx, parsed, job)
	p.metrics.ObserveScoringDuration(time.Since(start))

	// Fold processing failures into the ranked result
	result.Candidates = append(result.Candidates, failures...)
	scoring.Sort(result.Candidates)
	result.Total += len(failures)
	result.Failed += len(failures)

	p.metrics.ObserveRun(result.Total, result.Scored, result.Failed)

	span.SetAttributes(
		attribute.Int("result.total", result.Total),
		attribute.Int("result.scored", result.Scored),
		attribute.Int("result.failed", result.Failed),
	)

	p.logger.Info("Screening run finished",
		"total", result.Total,
		"scored", result.Scored,
		"failed", result.Failed)

	return result, nil
}

// ParseFile extracts and parses one resume without scoring it
func (p *Pipeline) ParseFile(ctx context.Context, file string) (types.CandidateRecord, error) {
	return p.processFile(ctx, file)
}

func (p *Pipeline) processFile(ctx context.Context, file string) (types.CandidateRecord, error) {
	if info, err := os.Stat(file); err == nil {
		p.logger.Debug("Processing resume",
			"file", file,
			"size", utils.FormatFileSize(info.Size()))
	}

	text, err := extract.Text(file)
	if err != nil {
		return types.CandidateRecord{}, err
	}
	return p.parser.Parse(ctx, file, text)
}

// TopN returns a copy of the result holding only the best n scored
// candidates. Failed entries never count against n.
func TopN(result types.ScreenResult, n int) types.ScreenResult {
	if n <= 0 {
		return result
	}

	trimmed := result
	trimmed.Candidates = nil
	for _, entry := range result.Candidates {
		if entry.Failed() {
			continue
		}
		trimmed.Candidates = append(trimmed.Candidates, entry)
		if len(trimmed.Candidates) == n {
			break
		}
	}
	return trimmed
}
