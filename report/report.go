// Package report writes analysis results for people and for machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"

	"github.com/RyanBlaney/sonido-vocal/analysis"
	"github.com/RyanBlaney/sonido-vocal/model"
)

// Format represents the output format type
type Format string

const (
	// FormatJSON outputs as indented JSON
	FormatJSON Format = "json"
	// FormatYAML outputs as YAML
	FormatYAML Format = "yaml"
	// FormatText outputs a styled summary for the terminal
	FormatText Format = "text"
)

// ParseFormat validates a format name. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatText, nil
	case FormatJSON, FormatYAML, FormatText:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// Theme defines the color scheme of the text output.
type Theme struct {
	Primary lipgloss.Color
	Warn    lipgloss.Color
	Bad     lipgloss.Color
	Dim     lipgloss.Color
}

// DefaultTheme is the default bright green theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Warn:    lipgloss.Color("#ffd866"),
	Bad:     lipgloss.Color("#ff6188"),
	Dim:     lipgloss.Color("#6e7681"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Dim   lipgloss.Style
	Good  lipgloss.Style
	Warn  lipgloss.Style
	Bad   lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Label: lipgloss.NewStyle().Bold(true),
		Dim:   lipgloss.NewStyle().Foreground(t.Dim),
		Good:  lipgloss.NewStyle().Foreground(t.Primary),
		Warn:  lipgloss.NewStyle().Foreground(t.Warn),
		Bad:   lipgloss.NewStyle().Bold(true).Foreground(t.Bad),
	}
}

// Write encodes v to w. Text output understands reports, telemetry records
// and diagnoses; anything else falls back to YAML.
func Write(w io.Writer, v any, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatText, "":
		return writeText(w, v, NewStyles(DefaultTheme))
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeText(w io.Writer, v any, st Styles) error {
	var out string
	switch r := v.(type) {
	case analysis.Report:
		out = RenderReport(r, st)
	case []analysis.Report:
		parts := make([]string, len(r))
		for i := range r {
			parts[i] = RenderReport(r[i], st)
		}
		out = strings.Join(parts, "\n")
	case model.SessionTelemetry:
		out = RenderTelemetry(r, st)
	case model.VocalDiagnosis:
		out = RenderDiagnosis(r, st)
	default:
		return Write(w, v, FormatYAML)
	}
	_, err := io.WriteString(w, out)
	return err
}

// RenderReport renders a full session report
func RenderReport(r analysis.Report, st Styles) string {
	var b strings.Builder
	b.WriteString(st.Title.Render("Session "+r.SessionID) + "\n\n")
	b.WriteString(renderScore(r.Result, st))
	b.WriteString("\n")
	b.WriteString(RenderDiagnosis(r.Diagnosis, st))
	b.WriteString("\n")
	b.WriteString(RenderTelemetry(r.Telemetry, st))
	return b.String()
}

func renderScore(res model.AnalysisResult, st Styles) string {
	fb := res.Feedback
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", st.Label.Render("Score:"), scoreStyle(float64(res.Score), st).Render(fmt.Sprintf("%d/100", res.Score)))
	fmt.Fprintf(&b, "  pitch     %5.1f  (%.1f cents avg, %.0f%% in tune)\n", fb.PitchAccuracy, fb.AverageCentsDeviation, fb.InTunePercentage)
	fmt.Fprintf(&b, "  stability %5.1f  (%.1f cents jitter, %.0f%% steady)\n", fb.Stability, fb.JitterCents, fb.StabilityPercentage)
	fmt.Fprintf(&b, "  timing    %5.1f\n", fb.Timing)
	for _, rec := range fb.Recommendations {
		b.WriteString("  • " + rec + "\n")
	}
	return b.String()
}

// RenderDiagnosis renders the primary issue, prescription and secondary
// issues
func RenderDiagnosis(d model.VocalDiagnosis, st Styles) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n", st.Label.Render("Diagnosis:"), d.PrimaryIssue,
		severityStyle(d.Severity, st).Render("["+string(d.Severity)+", "+string(d.AffectedRange)+" range]"))
	if d.Diagnosis != "" {
		b.WriteString("  " + st.Dim.Render(d.Diagnosis) + "\n")
	}
	for i, p := range d.Prescription {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, p)
	}
	if len(d.SecondaryIssues) > 0 {
		b.WriteString(st.Label.Render("Also noticed:") + " " + strings.Join(d.SecondaryIssues, "; ") + "\n")
	}
	return b.String()
}

// RenderTelemetry renders the headline telemetry numbers
func RenderTelemetry(t model.SessionTelemetry, st Styles) string {
	rc := t.RangeCoverage
	var b strings.Builder
	b.WriteString(st.Label.Render("Telemetry:") + "\n")
	fmt.Fprintf(&b, "  pitch    %+.1f ± %.1f cents (%d sharp, %d flat)\n",
		t.PitchDeviationAverage, t.PitchDeviationStdDev, t.SharpNotesCount, t.FlatNotesCount)
	fmt.Fprintf(&b, "  rhythm   %+.0f ms (%d early, %d late)\n",
		t.RhythmicOffsetAverage, t.EarlyNotesCount, t.LateNotesCount)
	fmt.Fprintf(&b, "  vibrato  %.1f Hz, %.0f cents deep; variance %.1f Hz²\n",
		t.VibratoRate, t.VibratoDepth, t.StabilityVariance)
	fmt.Fprintf(&b, "  range    %s to %s, comfortable %s to %s\n",
		rc.LowestNote, rc.HighestNote, rc.ComfortableRange[0], rc.ComfortableRange[1])
	if len(rc.NotesMissed) > 0 {
		fmt.Fprintf(&b, "  missed   %s\n", st.Warn.Render(strings.Join(rc.NotesMissed, " ")))
	}
	fmt.Fprintf(&b, "  time     %.1fs singing, %.1fs silent of %.1fs\n",
		t.ActiveSingingTime, t.SilenceTime, t.TotalDuration)
	return b.String()
}

func scoreStyle(score float64, st Styles) lipgloss.Style {
	switch {
	case score >= 75:
		return st.Good
	case score >= 50:
		return st.Warn
	default:
		return st.Bad
	}
}

func severityStyle(s model.Severity, st Styles) lipgloss.Style {
	switch s {
	case model.SeveritySevere:
		return st.Bad
	case model.SeverityModerate:
		return st.Warn
	default:
		return st.Dim
	}
}
