package store

// DiagnosticKind classifies a recoverable misuse or dropped event.
type DiagnosticKind int

const (
	// DiagControlModeSwitch reports an uncontrolled instance that was
	// switched to controlled mode by a late external value. The switch
	// is honored but usually indicates caller misuse.
	DiagControlModeSwitch DiagnosticKind = iota
	// DiagStaleAsyncResult reports an async filter result that arrived
	// after a newer query superseded it. The result was not applied.
	DiagStaleAsyncResult
	// DiagOverrideContract reports an override reducer that returned a
	// structurally invalid state. The state was clamped before use.
	DiagOverrideContract
)

// String returns a stable name for the diagnostic kind.
func (k DiagnosticKind) String() string {
	switch k {
	case DiagControlModeSwitch:
		return "control-mode-switch"
	case DiagStaleAsyncResult:
		return "stale-async-result"
	case DiagOverrideContract:
		return "override-contract"
	default:
		return "unknown"
	}
}

// Diagnostic describes a condition the engine recovered from. It never
// accompanies a state change that was lost; recovery is always safe.
type Diagnostic struct {
	Kind   DiagnosticKind
	Store  string
	Detail string
}

// DiagnosticFunc receives diagnostics. A nil func discards them.
type DiagnosticFunc func(Diagnostic)

func (f DiagnosticFunc) emit(d Diagnostic) {
	if f == nil {
		return
	}
	f(d)
}
