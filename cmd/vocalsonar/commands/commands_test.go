package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/RyanBlaney/sonido-vocal/logging"
)

func runCmd(t *testing.T, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr

	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()
	os.Stdout = wOut
	os.Stderr = wErr

	cfgFile = ""
	outputFormat = "text"
	verbose = false

	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	wOut.Close()
	wErr.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	var outBuf, errBuf bytes.Buffer
	outBuf.ReadFrom(rOut)
	errBuf.ReadFrom(rErr)

	stdout = outBuf.String()
	stderr = errBuf.String()
	if err != nil {
		exitCode = 1
		stderr += err.Error()
	}

	resetFlags(rootCmd)
	logging.SetGlobalLogger(&logging.NoOpLogger{})
	return
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
		f.Value.Set(f.DefValue)
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// sessionJSON renders n samples of A4 detuned by cents
func sessionJSON(id string, n int, cents float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, `{"sessionId": %q, "songDuration": %d, "samples": [`, id, n/10)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"timestamp": %d, "detectedFrequency": %.6f, "targetFrequency": 440, "targetNote": "A4"}`,
			i*100, 440*math.Pow(2, cents/1200))
	}
	b.WriteString("]}")
	return b.String()
}

func TestAnalyzeJSON(t *testing.T) {
	path := writeTestFile(t, "take.json", sessionJSON("flat-take", 50, -30))

	stdout, stderr, code := runCmd(t, "analyze", path, "-o", "json")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}

	var got struct {
		SessionID string `json:"sessionId"`
		Diagnosis struct {
			PrimaryIssue string `json:"primaryIssue"`
			Severity     string `json:"severity"`
		} `json:"diagnosis"`
		Result struct {
			Score int `json:"score"`
		} `json:"result"`
	}
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if got.SessionID != "flat-take" {
		t.Errorf("sessionId = %q", got.SessionID)
	}
	if got.Diagnosis.PrimaryIssue != "Hypo-pitch: singing consistently flat" || got.Diagnosis.Severity != "moderate" {
		t.Errorf("diagnosis = %+v", got.Diagnosis)
	}
	if got.Result.Score != 68 {
		t.Errorf("score = %d, want 68", got.Result.Score)
	}
}

func TestAnalyzeBatchText(t *testing.T) {
	a := writeTestFile(t, "a.json", sessionJSON("take-a", 30, 0))
	b := writeTestFile(t, "b.json", sessionJSON("take-b", 30, 40))

	stdout, stderr, code := runCmd(t, "analyze", a, b, "--workers", "2", "--seed", "3")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	ia, ib := strings.Index(stdout, "Session take-a"), strings.Index(stdout, "Session take-b")
	if ia < 0 || ib < 0 || ia > ib {
		t.Errorf("reports missing or out of order:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Hyper-pitch: singing consistently sharp") {
		t.Errorf("expected sharp diagnosis for take-b:\n%s", stdout)
	}
}

func TestAnalyzeTooFewSamples(t *testing.T) {
	path := writeTestFile(t, "short.json", sessionJSON("short", 4, 0))

	_, stderr, code := runCmd(t, "analyze", path)
	if code == 0 {
		t.Fatal("expected failure for a session below min_valid_samples")
	}
	if !strings.Contains(stderr, "too few valid samples") {
		t.Errorf("stderr = %s", stderr)
	}
}

func TestAnalyzeWithConfig(t *testing.T) {
	cfg := writeTestFile(t, "cfg.yaml", "pipeline:\n  min_valid_samples: 2\n")
	path := writeTestFile(t, "short.json", sessionJSON("short", 4, 0))

	stdout, stderr, code := runCmd(t, "--config", cfg, "analyze", path, "-o", "yaml")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "sessionId: short") {
		t.Errorf("stdout = %s", stdout)
	}
}

func TestAnalyzeUnsupportedFile(t *testing.T) {
	path := writeTestFile(t, "take.wav", "RIFF")
	_, stderr, code := runCmd(t, "analyze", path)
	if code == 0 || !strings.Contains(stderr, "unsupported file format") {
		t.Fatalf("exit %d, stderr = %s", code, stderr)
	}
}

func TestTelemetryCommand(t *testing.T) {
	path := writeTestFile(t, "take.json", sessionJSON("t", 20, 0))

	stdout, stderr, code := runCmd(t, "telemetry", path, "--duration", "10", "-o", "json")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	// 20 samples at 100ms is 2s of singing in a 10s song
	if got["totalDuration"] != 10.0 || got["silenceTime"] != 8.0 {
		t.Errorf("durations = %v/%v", got["totalDuration"], got["silenceTime"])
	}
}

func TestDiagnoseCommand(t *testing.T) {
	path := writeTestFile(t, "telemetry.yaml", `pitchDeviationAverage: 0
stabilityVariance: 60
vibratoRate: 7.5
rangeCoverage:
  notesMissed: []
  notesAchieved: [A4]
`)

	stdout, stderr, code := runCmd(t, "diagnose", path, "-o", "json")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	var got struct {
		PrimaryIssue    string   `json:"primaryIssue"`
		SecondaryIssues []string `json:"secondaryIssues"`
		Severity        string   `json:"severity"`
	}
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if got.PrimaryIssue != "Pitch instability (tremolo)" || got.Severity != "severe" {
		t.Errorf("got %+v", got)
	}
	if len(got.SecondaryIssues) != 1 || got.SecondaryIssues[0] != "Excessive vibrato rate" {
		t.Errorf("secondary = %v", got.SecondaryIssues)
	}
}

func TestNoteCommand(t *testing.T) {
	stdout, stderr, code := runCmd(t, "note", "A4", "-o", "json")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	var got noteInfo
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Note != "A4" || got.Frequency != 440 || got.MIDI != 69 || got.Register != "mid" {
		t.Errorf("got %+v", got)
	}

	stdout, _, code = runCmd(t, "note", "523.25")
	if code != 0 || !strings.Contains(stdout, "note: C5") || !strings.Contains(stdout, "register: high") {
		t.Errorf("exit %d, stdout = %s", code, stdout)
	}
}

func TestNoteCommandInvalid(t *testing.T) {
	for _, arg := range []string{"H2", "-5"} {
		if _, _, code := runCmd(t, "note", arg); code == 0 {
			t.Errorf("note %q should fail", arg)
		}
	}
}

func TestVersion(t *testing.T) {
	stdout, _, code := runCmd(t, "version")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(stdout, "vocalsonar") {
		t.Fatalf("expected 'vocalsonar', got: %s", stdout)
	}
}

func TestVersionJSON(t *testing.T) {
	stdout, _, code := runCmd(t, "version", "-o", "json")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(stdout, `"version"`) {
		t.Fatalf("expected JSON, got: %s", stdout)
	}
}
