package validate

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/depdoc/pkg/errors"
)

// Report output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the supported report formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// Report is the outcome of validating one manifest.
type Report struct {
	Manifest      string     `json:"manifest" yaml:"manifest"`
	Strict        Strictness `json:"strict" yaml:"strict"`
	Count         int        `json:"count" yaml:"count"`
	Discrepancies []Result   `json:"discrepancies" yaml:"discrepancies"`
}

// Strictness is the serializable form of a StrictMode.
type Strictness struct {
	VersionMismatch bool `json:"version_mismatch" yaml:"version_mismatch"`
	Missing         bool `json:"missing" yaml:"missing"`
	Extra           bool `json:"extra" yaml:"extra"`
}

// NewReport bundles results for manifest under policy.
func NewReport(manifest string, policy StrictMode, results []Result) *Report {
	if results == nil {
		results = []Result{}
	}
	return &Report{
		Manifest: manifest,
		Strict: Strictness{
			VersionMismatch: policy.IsStrictOnVersionMismatch(),
			Missing:         policy.IsStrictOnMissing(),
			Extra:           policy.IsStrictOnExtra(),
		},
		Count:         len(results),
		Discrepancies: slices.Clone(results),
	}
}

// OK reports whether no discrepancies were found.
func (r *Report) OK() bool { return r.Count == 0 }

// Write encodes the report to w in the given format.
func (r *Report) Write(w io.Writer, format string) error {
	switch format {
	case FormatText, "":
		return r.WriteText(w)
	case FormatJSON:
		return r.WriteJSON(w)
	case FormatYAML:
		return r.WriteYAML(w)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown report format %q (available: %v)", format, Formats)
	}
}

// WriteText writes one line per discrepancy.
func (r *Report) WriteText(w io.Writer) error {
	for _, res := range r.Discrepancies {
		if _, err := fmt.Fprintln(w, res.String()); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML writes the report as YAML.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}
