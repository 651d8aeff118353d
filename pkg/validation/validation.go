package validation

import (
	"fmt"

	"github.com/ChicagoDave/citycore/pkg/grid"
)

// Level indicates which subsystem produced the result.
type Level string

const (
	LevelConfig    Level = "config"
	LevelCatalog   Level = "catalog"
	LevelTopology  Level = "topology"
	LevelZoning    Level = "zoning"
	LevelPlacement Level = "placement"
)

// Severity indicates how critical a validation result is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Result is a single validation finding.
type Result struct {
	Level        Level       `json:"level"`
	Severity     Severity    `json:"severity"`
	Message      string      `json:"message"`
	Path         string      `json:"path,omitempty"`
	Cells        []grid.Cell `json:"cells,omitempty"`
	ActualValue  any         `json:"actual_value,omitempty"`
	Expected     string      `json:"expected,omitempty"`
	ConflictWith string      `json:"conflict_with,omitempty"`
	Suggestions  []string    `json:"suggestions,omitempty"`
}

// Report is the complete validation output.
type Report struct {
	Valid    bool     `json:"valid"`
	Errors   []Result `json:"errors"`
	Warnings []Result `json:"warnings"`
	Info     []Result `json:"info"`
	Summary  string   `json:"summary"`
}

// NewReport creates an empty valid report.
func NewReport() *Report {
	r := &Report{
		Valid:    true,
		Errors:   []Result{},
		Warnings: []Result{},
		Info:     []Result{},
	}
	r.updateSummary()
	return r
}

// AddError adds an error result and marks the report invalid.
func (r *Report) AddError(result Result) {
	result.Severity = SeverityError
	r.Errors = append(r.Errors, result)
	r.Valid = false
	r.updateSummary()
}

// AddWarning adds a warning result.
func (r *Report) AddWarning(result Result) {
	result.Severity = SeverityWarning
	r.Warnings = append(r.Warnings, result)
	r.updateSummary()
}

// AddInfo adds an informational result.
func (r *Report) AddInfo(result Result) {
	result.Severity = SeverityInfo
	r.Info = append(r.Info, result)
	r.updateSummary()
}

// Merge combines another report into this one. A nil report is ignored.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Info = append(r.Info, other.Info...)
	if !other.Valid {
		r.Valid = false
	}
	r.updateSummary()
}

// ByLevel returns the errors produced by the given level.
func (r *Report) ByLevel(level Level) []Result {
	var out []Result
	for _, e := range r.Errors {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

func (r *Report) updateSummary() {
	r.Summary = fmt.Sprintf("%d errors, %d warnings, %d info",
		len(r.Errors), len(r.Warnings), len(r.Info))
}
