// Package ingest reads sample sequences and stored telemetry records handed
// over by the capture and persistence layers.
//
// Sample files come in JSON, YAML or MessagePack and hold either a bare
// list of samples or a session object:
//
//	{"sessionId": "...", "songDuration": 30, "samples": [...]}
package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/RyanBlaney/sonido-vocal/model"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoSamples         = errors.New("no samples")
	ErrTooFewSamples     = errors.New("too few valid samples to analyze")
)

// Format is a supported encoding
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".msgpack", ".mp":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func unmarshal(data []byte, format Format, v any) error {
	switch format {
	case FormatJSON:
		return json.Unmarshal(data, v)
	case FormatYAML:
		return yaml.Unmarshal(data, v)
	case FormatMsgpack:
		return msgpack.Unmarshal(data, v)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// DecodeSession parses a session from data. A bare sample list yields a
// session with no ID and zero song duration.
func DecodeSession(data []byte, format Format) (model.Session, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return model.Session{}, ErrNoSamples
	}

	var samples []model.PerformanceSample
	if err := unmarshal(data, format, &samples); err == nil {
		return model.Session{Samples: samples}, nil
	} else if errors.Is(err, ErrUnsupportedFormat) {
		return model.Session{}, err
	}

	var s model.Session
	if err := unmarshal(data, format, &s); err != nil {
		return model.Session{}, fmt.Errorf("failed to parse %s session: %w", format, err)
	}
	return s, nil
}

// ReadSession decodes a session from r
func ReadSession(r io.Reader, format Format) (model.Session, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to read session: %w", err)
	}
	return DecodeSession(data, format)
}

// LoadSession reads a session file, choosing the format by extension. When
// the file carries no session ID the caller is expected to assign one.
func LoadSession(path string) (model.Session, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return model.Session{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to read file: %w", err)
	}
	s, err := DecodeSession(data, format)
	if err != nil {
		return model.Session{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// LoadTelemetry reads a stored SessionTelemetry record
func LoadTelemetry(path string) (model.SessionTelemetry, error) {
	var t model.SessionTelemetry
	format, err := FormatFromPath(path)
	if err != nil {
		return t, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("failed to read file: %w", err)
	}
	if err := unmarshal(data, format, &t); err != nil {
		return t, fmt.Errorf("failed to parse %s telemetry: %w", format, err)
	}
	return t, nil
}

// Encode writes a session in the given format
func Encode(w io.Writer, s model.Session, format Format) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = json.Marshal(s)
	case FormatYAML:
		data, err = yaml.Marshal(s)
	case FormatMsgpack:
		data, err = msgpack.Marshal(s)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s session: %w", format, err)
	}
	_, err = w.Write(data)
	return err
}

// Validate is the request-level check run before analysis: the session
// must hold samples and at least minValid of them must be voiced. The
// analysis itself accepts any input.
func Validate(s model.Session, minValid int) error {
	if len(s.Samples) == 0 {
		return ErrNoSamples
	}
	if n := s.ValidCount(); n < minValid {
		return fmt.Errorf("%w: %d valid, need %d", ErrTooFewSamples, n, minValid)
	}
	return nil
}
