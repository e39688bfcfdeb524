package report

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/RyanBlaney/sonido-vocal/analysis"
	"github.com/RyanBlaney/sonido-vocal/diagnosis"
	"github.com/RyanBlaney/sonido-vocal/model"
)

func flatReport(t *testing.T) analysis.Report {
	t.Helper()
	samples := make([]model.PerformanceSample, 30)
	for i := range samples {
		samples[i] = model.PerformanceSample{
			TimestampMs:       int64(i) * 100,
			DetectedFrequency: 432.5, // about 30 cents flat
			TargetFrequency:   440,
			TargetNote:        "A4",
		}
	}
	p := analysis.NewPipeline(nil, diagnosis.WithSeed(1))
	return p.Analyze(context.Background(), model.Session{ID: "s1", SongDuration: 5, Samples: samples})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{"text", FormatText, false},
		{"table", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestWrite_JSON(t *testing.T) {
	r := flatReport(t)
	var buf bytes.Buffer
	if err := Write(&buf, r, FormatJSON); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got["sessionId"] != "s1" {
		t.Errorf("sessionId = %v", got["sessionId"])
	}
	diag, ok := got["diagnosis"].(map[string]any)
	if !ok || diag["severity"] != "moderate" || diag["affectedRange"] != "mid" {
		t.Errorf("diagnosis = %v", got["diagnosis"])
	}
	tel, ok := got["telemetry"].(map[string]any)
	if !ok {
		t.Fatalf("telemetry missing: %v", got)
	}
	if _, ok := tel["rangeCoverage"].(map[string]any)["notesAchieved"].([]any); !ok {
		t.Errorf("notesAchieved should encode as a list: %v", tel["rangeCoverage"])
	}
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, flatReport(t), FormatYAML); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"sessionId: s1", "severity: moderate", "pitchDeviationAverage:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWrite_Text(t *testing.T) {
	r := flatReport(t)
	var buf bytes.Buffer
	if err := Write(&buf, r, FormatText); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Session s1",
		"Score:",
		"Hypo-pitch: singing consistently flat",
		"moderate, mid range",
		"1. " + r.Diagnosis.Prescription[0],
		"Telemetry:",
		"missed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWrite_TextBatchAndFallback(t *testing.T) {
	r := flatReport(t)
	var buf bytes.Buffer
	if err := Write(&buf, []analysis.Report{r, r}, FormatText); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n := strings.Count(buf.String(), "Session s1"); n != 2 {
		t.Errorf("found %d session headers, want 2", n)
	}

	buf.Reset()
	if err := Write(&buf, map[string]string{"note": "A4"}, FormatText); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "note: A4") {
		t.Errorf("fallback output = %q", buf.String())
	}
}

func TestWrite_Unsupported(t *testing.T) {
	if err := Write(&bytes.Buffer{}, 1, Format("xml")); err == nil {
		t.Error("expected error for unsupported format")
	}
}
