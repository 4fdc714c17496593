package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"

	"github.com/luashield/luashield/internal/types"
)

// PrintOptions controls console rendering.
type PrintOptions struct {
	NoColor      bool
	Source       []byte // enables source-line excerpts when set
	Duration     time.Duration
	FilesScanned int
}

var (
	styleHigh    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleMed     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleLow     = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	styleNeutral = lipgloss.NewStyle()
)

// SeverityStyle maps a severity to its display style. Unknown severities get
// the neutral style.
func SeverityStyle(s types.Severity) lipgloss.Style {
	switch s {
	case types.SevHigh:
		return styleHigh
	case types.SevMed:
		return styleMed
	case types.SevLow:
		return styleLow
	}
	return styleNeutral
}

// Print renders findings as labelled blocks, one per finding, in detection
// order. With a source present, each finding with a resolved line also shows
// the offending line, syntax-highlighted unless color is off.
func Print(w io.Writer, findings []types.Finding, opts PrintOptions) {
	if len(findings) == 0 {
		fmt.Fprintln(w, "No vulnerabilities found ✅")
		return
	}
	for _, f := range findings {
		sev := string(f.Severity)
		name := f.Name
		if !opts.NoColor {
			st := SeverityStyle(f.Severity)
			sev = st.Render(sev)
			name = st.Render(name)
		}
		fmt.Fprintf(w, "Name: %s\n", name)
		fmt.Fprintf(w, "Description: %s\n", f.Description)
		fmt.Fprintf(w, "Pattern: %s\n", f.Pattern)
		fmt.Fprintf(w, "Severity: %s\n", sev)
		fmt.Fprintf(w, "Line: %s\n", lineLabel(f.Line))
		if txt := excerpt(opts.Source, f.Line); txt != "" {
			if opts.NoColor {
				fmt.Fprintf(w, "  > %s\n", txt)
			} else {
				fmt.Fprintf(w, "  > %s\n", highlightLua(txt))
			}
		}
		fmt.Fprintln(w)
	}
}

func lineLabel(line *int) string {
	if line == nil {
		return "unknown"
	}
	return fmt.Sprintf("%d", *line)
}

func excerpt(src []byte, line *int) string {
	if src == nil || line == nil {
		return ""
	}
	lines := strings.Split(string(src), "\n")
	if *line < 1 || *line > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[*line-1], "\r")
}

// highlightLua renders one line of Lua through chroma for the terminal,
// falling back to the raw text on any failure.
func highlightLua(text string) string {
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, text, "lua", "terminal256", "monokai"); err != nil {
		return text
	}
	return strings.TrimRight(buf.String(), "\n")
}

// ShouldFail reports whether any finding meets the fail-on threshold.
func ShouldFail(findings []types.Finding, failOn string) bool {
	threshold := severityRank(types.Severity(failOn))
	if threshold == 0 {
		return false
	}
	for _, f := range findings {
		if severityRank(f.Severity) >= threshold {
			return true
		}
	}
	return false
}

func severityRank(s types.Severity) int {
	switch s {
	case types.SevLow:
		return 1
	case types.SevMed:
		return 2
	case types.SevHigh:
		return 3
	}
	return 0
}
