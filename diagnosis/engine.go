// Package diagnosis ranks heuristic findings over session telemetry and
// prescribes corrective exercises.
package diagnosis

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/RyanBlaney/sonido-vocal/config"
	"github.com/RyanBlaney/sonido-vocal/logging"
	"github.com/RyanBlaney/sonido-vocal/model"
)

// RandomSource picks the congratulation message when nothing triggers.
// *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// Issue is a triggered rule, alive only while ranking
type Issue struct {
	Rule          RuleID
	Diagnosis     string
	Prescription  []string
	Severity      model.Severity
	Weight        int
	AffectedRange model.AffectedRange
}

var excellentMessages = []string{
	"Excellent performance: no vocal issues detected",
	"Outstanding control: pitch and timing on target",
	"Great session: your technique is solid",
}

const excellentDiagnosis = "No rule triggered. Pitch accuracy, stability, timing and range " +
	"all stayed within healthy limits for this session."

var maintenancePrescription = []string{
	"Keep a daily 10-15 minute warm-up routine",
	"Take on more demanding repertoire to keep progressing",
	"Record sessions regularly to track consistency",
}

// Engine evaluates a rule table over telemetry. It is safe for concurrent
// use; the only mutable state is the random source, behind a mutex.
type Engine struct {
	config config.DiagnosisConfig
	rules  []Rule
	logger logging.Logger

	mu  sync.Mutex
	rnd RandomSource
}

// Option configures an Engine
type Option func(*Engine)

// WithRandom injects the source used to pick the excellent-case message
func WithRandom(r RandomSource) Option {
	return func(e *Engine) {
		if r != nil {
			e.rnd = r
		}
	}
}

// WithSeed seeds a private math/rand source
func WithSeed(seed int64) Option {
	return WithRandom(rand.New(rand.NewSource(seed)))
}

// WithRules replaces the rule table
func WithRules(rules []Rule) Option {
	return func(e *Engine) {
		e.rules = rules
	}
}

// WithExtraRules appends rules after the current table
func WithExtraRules(rules ...Rule) Option {
	return func(e *Engine) {
		e.rules = append(append([]Rule(nil), e.rules...), rules...)
	}
}

// NewEngine creates an engine over the stock rules built from cfg
func NewEngine(cfg config.DiagnosisConfig, opts ...Option) *Engine {
	e := &Engine{
		config: cfg,
		rules:  DefaultRules(cfg),
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: logging.WithFields(logging.Fields{
			"component": "diagnosis_engine",
		}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewDefaultEngine creates an engine with stock thresholds
func NewDefaultEngine(opts ...Option) *Engine {
	return NewEngine(config.DefaultDiagnosisConfig(), opts...)
}

// Rules returns a copy of the rule table in evaluation order
func (e *Engine) Rules() []Rule {
	return append([]Rule(nil), e.rules...)
}

// Evaluate returns every triggered rule as an Issue, ranked by descending
// weight. Ties keep rule-table order.
func (e *Engine) Evaluate(t model.SessionTelemetry) []Issue {
	var issues []Issue
	for _, r := range e.rules {
		if r.Trigger == nil || !r.Trigger(t) {
			continue
		}
		sev := model.SeverityMild
		if r.Severity != nil {
			sev = r.Severity(t)
		}
		rng := model.RangeFull
		if r.Range != nil {
			rng = r.Range(t)
		}
		issues = append(issues, Issue{
			Rule:          r.ID,
			Diagnosis:     r.Diagnosis,
			Prescription:  r.Prescription,
			Severity:      sev,
			Weight:        Weight(sev, e.config.Weights),
			AffectedRange: rng,
		})
	}
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Weight > issues[j].Weight
	})
	return issues
}

// Diagnose selects the primary issue for a session. It always succeeds;
// with nothing triggered it returns a congratulation.
func (e *Engine) Diagnose(t model.SessionTelemetry) model.VocalDiagnosis {
	issues := e.Evaluate(t)
	if len(issues) == 0 {
		e.logger.Debug("No rules triggered")
		return e.excellent()
	}

	primary := issues[0]
	secondary := make([]string, 0, len(issues)-1)
	for _, is := range issues[1:] {
		secondary = append(secondary, is.Diagnosis)
	}

	e.logger.Debug("Diagnosis selected", logging.Fields{
		"primary":   primary.Rule,
		"severity":  primary.Severity,
		"triggered": len(issues),
	})

	return model.VocalDiagnosis{
		PrimaryIssue:    primary.Diagnosis,
		SecondaryIssues: secondary,
		Diagnosis:       e.render(primary.Rule, primary.Diagnosis, t),
		Prescription:    append([]string(nil), primary.Prescription...),
		Severity:        primary.Severity,
		AffectedRange:   primary.AffectedRange,
	}
}

func (e *Engine) render(id RuleID, fallback string, t model.SessionTelemetry) string {
	for _, r := range e.rules {
		if r.ID == id && r.Template != nil {
			return r.Template(t)
		}
	}
	return fallback
}

func (e *Engine) excellent() model.VocalDiagnosis {
	e.mu.Lock()
	i := e.rnd.Intn(len(excellentMessages))
	e.mu.Unlock()

	return model.VocalDiagnosis{
		PrimaryIssue:    excellentMessages[i],
		SecondaryIssues: []string{},
		Diagnosis:       excellentDiagnosis,
		Prescription:    append([]string(nil), maintenancePrescription...),
		Severity:        model.SeverityMild,
		AffectedRange:   model.RangeFull,
	}
}

// ExcellentMessages lists the possible congratulation issues
func ExcellentMessages() []string {
	return append([]string(nil), excellentMessages...)
}
