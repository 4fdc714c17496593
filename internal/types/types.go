package types

// Severity is a coarse-grained risk level for a finding.
type Severity string

const (
	SevLow  Severity = "low"
	SevMed  Severity = "medium"
	SevHigh Severity = "high"
)

// Valid reports whether s is one of the three known tiers.
func (s Severity) Valid() bool {
	switch s {
	case SevLow, SevMed, SevHigh:
		return true
	}
	return false
}

// Pattern is the stable machine-readable tag of one rule in the catalog.
// The values appear verbatim in persisted reports and must not change.
type Pattern string

const (
	PatternMissingReturn   Pattern = "missing_return"
	PatternOverflow        Pattern = "overflow_underflow"
	PatternReentrancy      Pattern = "external_call"
	PatternPrivateKey      Pattern = "private_key_exposure"
	PatternFloatingPragma  Pattern = "floating_pragma"
	PatternDenialOfService Pattern = "denial_of_service"
	PatternUncheckedCall   Pattern = "unchecked_external_call"
	PatternGreedySuicidal  Pattern = "greedy_suicidal_function"
)

// Patterns returns the catalog tags in rule-execution order.
func Patterns() []Pattern {
	return []Pattern{
		PatternMissingReturn,
		PatternOverflow,
		PatternReentrancy,
		PatternPrivateKey,
		PatternFloatingPragma,
		PatternDenialOfService,
		PatternUncheckedCall,
		PatternGreedySuicidal,
	}
}

// Finding describes one matched anti-pattern with its severity and resolved
// source line. Line is nil when no line number could be resolved for the
// matched node; it serializes as JSON null in that case. Findings are
// immutable once recorded.
type Finding struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Pattern     Pattern  `json:"pattern"`
	Severity    Severity `json:"severity"`
	Line        *int     `json:"line"`
}
