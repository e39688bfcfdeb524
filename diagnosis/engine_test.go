package diagnosis

import (
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/RyanBlaney/sonido-vocal/model"
)

type fixedRandom int

func (f fixedRandom) Intn(n int) int { return int(f) % n }

func cleanTelemetry() model.SessionTelemetry {
	t := model.EmptyTelemetry(30)
	t.ActiveSingingTime = 30
	t.SilenceTime = 0
	return t
}

func TestSeverityFor(t *testing.T) {
	tests := []struct {
		value float64
		want  model.Severity
	}{
		{5, model.SeverityMild}, // below the mild line is still mild
		{10, model.SeverityMild},
		{19.9, model.SeverityMild},
		{20, model.SeverityModerate},
		{34.9, model.SeverityModerate},
		{35, model.SeveritySevere},
		{500, model.SeveritySevere},
	}
	for _, tt := range tests {
		if got := SeverityFor(tt.value, 10, 20, 35); got != tt.want {
			t.Errorf("SeverityFor(%v) = %s, want %s", tt.value, got, tt.want)
		}
	}
}

func TestAffectedRangeFor(t *testing.T) {
	tests := []struct {
		missed []string
		want   model.AffectedRange
	}{
		{nil, model.RangeMid},
		{[]string{"G4", "A4"}, model.RangeMid},
		{[]string{"C3"}, model.RangeLow},
		{[]string{"C5", "G4"}, model.RangeHigh},
		{[]string{"E2", "B5"}, model.RangeFull},
		{[]string{"unknown"}, model.RangeLow}, // no octave reads as octave 0
	}
	for _, tt := range tests {
		if got := AffectedRangeFor(tt.missed); got != tt.want {
			t.Errorf("AffectedRangeFor(%v) = %s, want %s", tt.missed, got, tt.want)
		}
	}
}

func TestDiagnose_Excellent(t *testing.T) {
	for i, msg := range ExcellentMessages() {
		e := NewDefaultEngine(WithRandom(fixedRandom(i)))
		got := e.Diagnose(cleanTelemetry())

		if got.PrimaryIssue != msg {
			t.Errorf("PrimaryIssue = %q, want %q", got.PrimaryIssue, msg)
		}
		if got.Severity != model.SeverityMild || got.AffectedRange != model.RangeFull {
			t.Errorf("severity/range = %s/%s, want mild/full", got.Severity, got.AffectedRange)
		}
		if got.SecondaryIssues == nil || len(got.SecondaryIssues) != 0 {
			t.Errorf("SecondaryIssues = %#v, want empty", got.SecondaryIssues)
		}
		if len(got.Prescription) == 0 {
			t.Error("excellent diagnosis should carry a maintenance prescription")
		}
	}
}

func TestDiagnose_SeededIsReproducible(t *testing.T) {
	a := NewDefaultEngine(WithSeed(42)).Diagnose(cleanTelemetry())
	b := NewDefaultEngine(WithSeed(42)).Diagnose(cleanTelemetry())
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed gave different diagnoses: %q vs %q", a.PrimaryIssue, b.PrimaryIssue)
	}
}

func TestDiagnose_ConstantFlat(t *testing.T) {
	tel := cleanTelemetry()
	tel.PitchDeviationAverage = -30
	tel.RangeCoverage.NotesMissed = []string{"C4"}

	got := NewDefaultEngine().Diagnose(tel)
	if got.PrimaryIssue != "Hypo-pitch: singing consistently flat" {
		t.Errorf("PrimaryIssue = %q", got.PrimaryIssue)
	}
	if got.Severity != model.SeverityModerate {
		t.Errorf("Severity = %s, want moderate", got.Severity)
	}
	if got.AffectedRange != model.RangeMid {
		t.Errorf("AffectedRange = %s, want mid", got.AffectedRange)
	}
	if !strings.Contains(got.Diagnosis, "30.0 cents below") {
		t.Errorf("Diagnosis = %q", got.Diagnosis)
	}
	if len(got.SecondaryIssues) != 0 {
		t.Errorf("SecondaryIssues = %v", got.SecondaryIssues)
	}
}

func TestDiagnose_SharpSevere(t *testing.T) {
	tel := cleanTelemetry()
	tel.PitchDeviationAverage = 40
	tel.RangeCoverage.NotesMissed = []string{"D5", "A2"}

	got := NewDefaultEngine().Diagnose(tel)
	if got.PrimaryIssue != "Hyper-pitch: singing consistently sharp" || got.Severity != model.SeveritySevere {
		t.Errorf("got %q / %s", got.PrimaryIssue, got.Severity)
	}
	if got.AffectedRange != model.RangeFull {
		t.Errorf("AffectedRange = %s, want full", got.AffectedRange)
	}
	// both register rules also fire and rank below
	want := []string{"Difficulty with high notes", "Difficulty with low notes"}
	if !reflect.DeepEqual(got.SecondaryIssues, want) {
		t.Errorf("SecondaryIssues = %v, want %v", got.SecondaryIssues, want)
	}
}

func TestDiagnose_SevereOutranksMildRegardlessOfOrder(t *testing.T) {
	tel := cleanTelemetry()
	tel.VibratoRate = 7.2      // R4, mild
	tel.StabilityVariance = 60 // R3, severe

	reversed := DefaultRules(NewDefaultEngine().config)
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}

	for name, e := range map[string]*Engine{
		"default order":  NewDefaultEngine(),
		"reversed order": NewDefaultEngine(WithRules(reversed)),
	} {
		got := e.Diagnose(tel)
		if got.PrimaryIssue != "Pitch instability (tremolo)" || got.Severity != model.SeveritySevere {
			t.Errorf("%s: primary = %q (%s)", name, got.PrimaryIssue, got.Severity)
		}
		if !reflect.DeepEqual(got.SecondaryIssues, []string{"Excessive vibrato rate"}) {
			t.Errorf("%s: secondary = %v", name, got.SecondaryIssues)
		}
	}
}

func TestEvaluate_TiesKeepTableOrder(t *testing.T) {
	tel := cleanTelemetry()
	tel.VibratoRate = 8
	tel.EarlyNotesCount = 4
	tel.LateNotesCount = 1

	issues := NewDefaultEngine().Evaluate(tel)
	if len(issues) != 2 {
		t.Fatalf("issues = %+v, want 2", issues)
	}
	if issues[0].Rule != RuleExcessiveVibrato || issues[1].Rule != RuleAnticipation {
		t.Errorf("order = %s, %s; want R4, R8", issues[0].Rule, issues[1].Rule)
	}
	if issues[0].Weight != 10 || issues[1].Weight != 10 {
		t.Errorf("weights = %d, %d; want 10, 10", issues[0].Weight, issues[1].Weight)
	}
}

func TestDiagnose_Timing(t *testing.T) {
	tel := cleanTelemetry()
	tel.RhythmicOffsetAverage = -120

	got := NewDefaultEngine().Diagnose(tel)
	if got.PrimaryIssue != "Inconsistent timing" || got.Severity != model.SeverityModerate {
		t.Errorf("got %q / %s", got.PrimaryIssue, got.Severity)
	}
	if !strings.Contains(got.Diagnosis, "120 ms ahead of") {
		t.Errorf("Diagnosis = %q", got.Diagnosis)
	}
}

func TestDiagnose_TemplateFallback(t *testing.T) {
	custom := Rule{
		ID:           "R9",
		Diagnosis:    "Session too short",
		Prescription: []string{"Sing the whole song"},
		Trigger:      func(t model.SessionTelemetry) bool { return t.ActiveSingingTime < 10 },
		Severity:     fixedSeverity(model.SeveritySevere),
		Range:        fixedRange(model.RangeFull),
	}
	tel := cleanTelemetry()
	tel.ActiveSingingTime = 2
	tel.VibratoRate = 9

	got := NewDefaultEngine(WithExtraRules(custom)).Diagnose(tel)
	if got.PrimaryIssue != "Session too short" || got.Diagnosis != "Session too short" {
		t.Errorf("primary = %q, diagnosis = %q", got.PrimaryIssue, got.Diagnosis)
	}
	if !reflect.DeepEqual(got.Prescription, []string{"Sing the whole song"}) {
		t.Errorf("Prescription = %v", got.Prescription)
	}
	if !reflect.DeepEqual(got.SecondaryIssues, []string{"Excessive vibrato rate"}) {
		t.Errorf("SecondaryIssues = %v", got.SecondaryIssues)
	}
}

func TestDiagnose_Concurrent(t *testing.T) {
	e := NewDefaultEngine(WithSeed(7))
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := e.Diagnose(cleanTelemetry())
			if got.Severity != model.SeverityMild {
				t.Errorf("Severity = %s", got.Severity)
			}
		}()
	}
	wg.Wait()
}
