package diag

// Severity defines the importance of a record.
type Severity uint8

const (
	// SevFix marks a correction that was applied to the text.
	SevFix Severity = iota
	// SevWarning marks a finding left in the text (warn mode, structural problems).
	SevWarning
	// SevError marks a rule that failed on a span.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevFix:
		return "fix"
	case SevWarning:
		return "warn"
	case SevError:
		return "error"
	}
	return "unknown"
}
