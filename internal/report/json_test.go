package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/luashield/luashield/internal/types"
)

func sampleFindings() []types.Finding {
	line := 3
	return []types.Finding{
		{
			Name:        "Reentrancy",
			Description: "A function calls an external contract before updating its state.",
			Pattern:     types.PatternReentrancy,
			Severity:    types.SevHigh,
			Line:        &line,
		},
		{
			Name:        "Missing Return Statement",
			Description: "A function is missing a return statement.",
			Pattern:     types.PatternMissingReturn,
			Severity:    types.SevLow,
		},
	}
}

func TestWriteJSONShape(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleFindings()); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`"name": "Reentrancy"`,
		`"pattern": "external_call"`,
		`"severity": "high"`,
		`"line": 3`,
		`"line": null`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %s:\n%s", want, out)
		}
	}
}

func TestWriteJSONNilFindings(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	in := sampleFindings()
	var buf bytes.Buffer
	if err := WriteJSON(&buf, in); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d findings, got %d", len(in), len(out))
	}
	if out[0].Line == nil || *out[0].Line != 3 {
		t.Fatalf("line lost in round trip: %v", out[0].Line)
	}
	if out[1].Line != nil {
		t.Fatal("null line must decode as nil")
	}
}
