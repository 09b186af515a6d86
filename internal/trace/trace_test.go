package trace

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/dar-lang/darc/internal/types"
)

func TestRecordOmitsTypeWhenNil(t *testing.T) {
	r := NewRecorder()
	r.Record("f", false, nil)
	if r.Decisions[0].Type != "" || r.Decisions[0].Hash != "" {
		t.Errorf("expected empty Type/Hash for a nil type, got %+v", r.Decisions[0])
	}
}

func TestRecordCapturesTypeAndHash(t *testing.T) {
	r := NewRecorder()
	r.Record("f", true, &types.Primitive{Kind: types.Int64})
	d := r.Decisions[0]
	if d.Callee != "f" || !d.Reused || d.Type != "Int64" || d.Hash != "i" {
		t.Errorf("got %+v, want callee f reused=true Int64/i", d)
	}
}

func TestRecordRootWithError(t *testing.T) {
	r := NewRecorder()
	r.RecordRoot("main", nil, errors.New("boom"))
	if r.Roots[0].Error != "boom" {
		t.Errorf("got error %q, want boom", r.Roots[0].Error)
	}
	if r.Roots[0].Type != "" {
		t.Error("expected no Type recorded alongside an error")
	}
}

func TestWriteJSONIsValidAndDeterministic(t *testing.T) {
	r := NewRecorder()
	r.Record("f", false, &types.Primitive{Kind: types.Bool})
	r.RecordRoot("main", &types.Primitive{Kind: types.Int64}, nil)

	var buf bytes.Buffer
	if err := r.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var decoded Recorder
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output was not valid JSON: %v", err)
	}
	if len(decoded.Decisions) != 1 || len(decoded.Roots) != 1 {
		t.Fatalf("got %d decisions and %d roots, want 1 and 1", len(decoded.Decisions), len(decoded.Roots))
	}

	var again bytes.Buffer
	if err := r.WriteJSON(&again); err != nil {
		t.Fatalf("second WriteJSON failed: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), again.Bytes()) {
		t.Errorf("WriteJSON output differed between two calls:\n%s\nvs\n%s", buf.String(), again.String())
	}
}
