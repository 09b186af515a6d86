package diag

import (
	"errors"
	"strings"
	"testing"

	"github.com/dar-lang/darc/internal/ast"
)

func TestFatalCarriesLocation(t *testing.T) {
	pos := ast.Pos{File: "f.src", Line: 3, Column: 5}
	err := Fatal(TY001, PhaseAnnotate, pos, "cannot unify %s with %s", "Int64", "Bool")

	rep, ok := As(err)
	if !ok {
		t.Fatal("As failed to extract a *Report from a Fatal error")
	}
	if rep.Code != TY001 || rep.Phase != PhaseAnnotate {
		t.Errorf("got code=%s phase=%s, want TY001/%s", rep.Code, rep.Phase, PhaseAnnotate)
	}
	if !strings.Contains(err.Error(), "f.src:3:5") {
		t.Errorf("Error() missing location: %s", err.Error())
	}
}

func TestAsFailsForPlainError(t *testing.T) {
	if _, ok := As(errors.New("plain")); ok {
		t.Fatal("As succeeded on a non-diag error")
	}
}

func TestReportToJSONRoundTrips(t *testing.T) {
	pos := ast.Pos{File: "f.src", Line: 1, Column: 1}
	err := Fatal(ID001, PhaseSpecialize, pos, "undeclared %q", "foo")
	rep, _ := As(err)

	js, jsErr := rep.ToJSON(true)
	if jsErr != nil {
		t.Fatalf("ToJSON failed: %v", jsErr)
	}
	if !strings.Contains(js, `"code":"ID001"`) {
		t.Errorf("JSON missing code field: %s", js)
	}
}

func TestReportPrintIncludesMessage(t *testing.T) {
	pos := ast.Pos{File: "f.src", Line: 2, Column: 2}
	err := Fatal(TY002, PhaseDriver, pos, "indeterminate type")
	rep, _ := As(err)
	if !strings.Contains(rep.Print(), "indeterminate type") {
		t.Errorf("Print() missing message: %s", rep.Print())
	}
}
