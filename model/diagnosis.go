package model

import "fmt"

// Severity grades how strongly a diagnosed issue shows in the telemetry.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// ParseSeverity accepts the wire names of the severity enum.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case SeverityMild, SeverityModerate, SeveritySevere:
		return Severity(s), nil
	}
	return "", fmt.Errorf("unknown severity %q", s)
}

func (s Severity) MarshalText() ([]byte, error) {
	if _, err := ParseSeverity(string(s)); err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// AffectedRange names the part of the vocal range an issue shows up in.
type AffectedRange string

const (
	RangeLow  AffectedRange = "low"
	RangeMid  AffectedRange = "mid"
	RangeHigh AffectedRange = "high"
	RangeFull AffectedRange = "full"
)

// ParseAffectedRange accepts the wire names of the affected-range enum.
func ParseAffectedRange(s string) (AffectedRange, error) {
	switch AffectedRange(s) {
	case RangeLow, RangeMid, RangeHigh, RangeFull:
		return AffectedRange(s), nil
	}
	return "", fmt.Errorf("unknown affected range %q", s)
}

func (r AffectedRange) MarshalText() ([]byte, error) {
	if _, err := ParseAffectedRange(string(r)); err != nil {
		return nil, err
	}
	return []byte(r), nil
}

func (r *AffectedRange) UnmarshalText(text []byte) error {
	v, err := ParseAffectedRange(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// VocalDiagnosis is the ranked outcome of the rule engine for one session.
type VocalDiagnosis struct {
	PrimaryIssue    string        `json:"primaryIssue" yaml:"primaryIssue" msgpack:"primaryIssue"`
	SecondaryIssues []string      `json:"secondaryIssues" yaml:"secondaryIssues" msgpack:"secondaryIssues"`
	Diagnosis       string        `json:"diagnosis" yaml:"diagnosis" msgpack:"diagnosis"`
	Prescription    []string      `json:"prescription" yaml:"prescription" msgpack:"prescription"`
	Severity        Severity      `json:"severity" yaml:"severity" msgpack:"severity"`
	AffectedRange   AffectedRange `json:"affectedRange" yaml:"affectedRange" msgpack:"affectedRange"`
}
