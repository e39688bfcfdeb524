// Package analysis runs the full per-session pipeline: telemetry, diagnosis
// and quick feedback, for one session or a batch of them.
package analysis

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/RyanBlaney/sonido-vocal/config"
	"github.com/RyanBlaney/sonido-vocal/diagnosis"
	"github.com/RyanBlaney/sonido-vocal/feedback"
	"github.com/RyanBlaney/sonido-vocal/logging"
	"github.com/RyanBlaney/sonido-vocal/model"
	"github.com/RyanBlaney/sonido-vocal/telemetry"
)

// Report is everything the persistence layer stores for a session
type Report struct {
	SessionID string                 `json:"sessionId" yaml:"sessionId"`
	Telemetry model.SessionTelemetry `json:"telemetry" yaml:"telemetry"`
	Diagnosis model.VocalDiagnosis   `json:"diagnosis" yaml:"diagnosis"`
	Result    model.AnalysisResult   `json:"result" yaml:"result"`
}

// Pipeline wires the aggregator, engine and summarizer together. All three
// are safe for concurrent use, so a single Pipeline serves any number of
// sessions at once.
type Pipeline struct {
	config     *config.Config
	aggregator *telemetry.Aggregator
	engine     *diagnosis.Engine
	summarizer *feedback.Summarizer
	logger     logging.Logger
}

// NewPipeline builds a pipeline from cfg. A nil cfg uses config.Default.
// Engine options are passed through, e.g. diagnosis.WithSeed.
func NewPipeline(cfg *config.Config, opts ...diagnosis.Option) *Pipeline {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Pipeline{
		config:     cfg,
		aggregator: telemetry.NewAggregator(cfg.Telemetry),
		engine:     diagnosis.NewEngine(cfg.Diagnosis, opts...),
		summarizer: feedback.NewSummarizer(cfg.Feedback),
		logger: logging.WithFields(logging.Fields{
			"component": "analysis_pipeline",
		}),
	}
}

// Analyze runs one session. Telemetry and feedback read the same samples
// concurrently; diagnosis follows telemetry. A session without an ID gets
// a fresh UUID.
func (p *Pipeline) Analyze(ctx context.Context, s model.Session) Report {
	id := s.ID
	if id == "" {
		id = uuid.NewString()
	}
	logger := p.logger.WithContext(ctx).WithFields(logging.Fields{
		"session_id": id,
		"samples":    len(s.Samples),
	})

	var (
		wg     sync.WaitGroup
		tel    model.SessionTelemetry
		result model.AnalysisResult
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		tel = p.aggregator.Compute(s.Samples, s.SongDuration)
	}()
	go func() {
		defer wg.Done()
		result = p.summarizer.Analyze(s.Samples)
	}()
	wg.Wait()

	diag := p.engine.Diagnose(tel)

	logger.Info("Session analyzed", logging.Fields{
		"score":         result.Score,
		"primary_issue": diag.PrimaryIssue,
		"severity":      diag.Severity,
	})

	return Report{
		SessionID: id,
		Telemetry: tel,
		Diagnosis: diag,
		Result:    result,
	}
}

// Telemetry computes only the telemetry record for a session
func (p *Pipeline) Telemetry(s model.Session) model.SessionTelemetry {
	return p.aggregator.Compute(s.Samples, s.SongDuration)
}

// Diagnose runs only the rule engine over a stored telemetry record
func (p *Pipeline) Diagnose(t model.SessionTelemetry) model.VocalDiagnosis {
	return p.engine.Diagnose(t)
}

// AnalyzeBatch analyzes sessions on at most workers goroutines (the
// configured pipeline worker count when workers <= 0). Reports come back in
// input order. On cancellation the sessions not yet started are skipped and
// ctx.Err() is returned alongside the reports finished so far; skipped
// entries are left zero.
func (p *Pipeline) AnalyzeBatch(ctx context.Context, sessions []model.Session, workers int) ([]Report, error) {
	if workers <= 0 {
		workers = p.config.Pipeline.Workers
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > len(sessions) {
		workers = len(sessions)
	}

	reports := make([]Report, len(sessions))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				reports[i] = p.Analyze(ctx, sessions[i])
			}
		}()
	}

	var err error
feed:
	for i := range sessions {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		p.logger.Warn("Batch interrupted", logging.Fields{
			"sessions": len(sessions),
			"error":    err.Error(),
		})
		return reports, fmt.Errorf("batch analysis interrupted: %w", err)
	}
	return reports, nil
}
