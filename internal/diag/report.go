package diag

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"github.com/dar-lang/darc/internal/ast"
)

// Report is the canonical structured error value produced by the front end
// and the type-inference core. Every fatal diagnostic is a *Report.
type Report struct {
	Schema   string         `json:"schema"`
	Code     Code           `json:"code"`
	Phase    string         `json:"phase"`
	Message  string         `json:"message"`
	Location *ast.Pos       `json:"location,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// Error wraps a *Report so it satisfies the error interface while
// remaining recoverable via errors.As.
type Error struct {
	Rep *Report
}

func (e *Error) Error() string {
	if e.Rep == nil {
		return "unknown compiler error"
	}
	if e.Rep.Location != nil {
		return fmt.Sprintf("%s: %s: %s", e.Rep.Location.String(), e.Rep.Code, e.Rep.Message)
	}
	return fmt.Sprintf("%s: %s", e.Rep.Code, e.Rep.Message)
}

// As extracts the underlying *Report from an error chain, if present.
func As(err error) (*Report, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Rep, true
	}
	return nil, false
}

// Fatal builds an *Error carrying a Report for the given code, phase,
// location and formatted message. The annotator, specializer, and driver
// never call os.Exit directly — they return this value and let the caller
// (ultimately the CLI) decide how to surface it.
func Fatal(code Code, phase string, loc ast.Pos, format string, args ...any) *Error {
	return &Error{Rep: &Report{
		Schema:   "darc.error/v1",
		Code:     code,
		Phase:    phase,
		Message:  fmt.Sprintf(format, args...),
		Location: &loc,
	}}
}

// ToJSON renders the report as deterministic JSON.
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Print renders a colorized, human-readable line for the report. Color is
// governed globally by color.NoColor, which the color package initializes
// from its own terminal detection and the CLI overrides when -color or
// -no-color is given.
func (r *Report) Print() string {
	bold := color.New(color.Bold).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	if r.Location != nil {
		return fmt.Sprintf("%s %s: %s", bold(r.Location.String()), red(string(r.Code)), r.Message)
	}
	return fmt.Sprintf("%s: %s", red(string(r.Code)), r.Message)
}
