// Package trace records specialization decisions made during a compile
// for the CLI's -trace flag: a JSON log a reader can use to see which
// callees got a fresh monomorphization versus reused an existing one,
// and what each root ultimately resolved to.
package trace

import (
	"encoding/json"
	"io"

	"github.com/dar-lang/darc/internal/types"
)

// Decision is one specialize() call's outcome for a single callee.
type Decision struct {
	Callee string `json:"callee"`
	Reused bool   `json:"reused"`
	Type   string `json:"type,omitempty"`
	Hash   string `json:"hash,omitempty"`
}

// RootResult is the final materialized type (or failure) of one
// top-level root after its required-return-type check.
type RootResult struct {
	Root  string `json:"root"`
	Type  string `json:"type,omitempty"`
	Hash  string `json:"hash,omitempty"`
	Error string `json:"error,omitempty"`
}

// Recorder accumulates decisions and root results over one compile. The
// core is single-threaded, so no synchronization is needed.
type Recorder struct {
	Decisions []Decision   `json:"decisions"`
	Roots     []RootResult `json:"roots"`
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends one specialization decision. ty may be nil if solving
// failed or was not attempted; this does not itself represent an error,
// since greedy unification can still succeed even when ty can't be
// solved yet (a self-recursive call sees a Recurrence stub, not an
// error).
func (r *Recorder) Record(callee string, reused bool, ty types.Type) {
	d := Decision{Callee: callee, Reused: reused}
	if ty != nil {
		d.Type = ty.String()
		d.Hash = ty.Hash()
	}
	r.Decisions = append(r.Decisions, d)
}

// RecordRoot appends one root's final outcome.
func (r *Recorder) RecordRoot(name string, ty types.Type, err error) {
	res := RootResult{Root: name}
	if err != nil {
		res.Error = err.Error()
	} else if ty != nil {
		res.Type = ty.String()
		res.Hash = ty.Hash()
	}
	r.Roots = append(r.Roots, res)
}

// WriteJSON renders the recorded trace as indented JSON.
func (r *Recorder) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
