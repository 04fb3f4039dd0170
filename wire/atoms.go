package wire

// Well-known atoms shared by both sides of the bridge.
const (
	// AtomLog tags every log record tuple.
	AtomLog Atom = "log"

	// AtomLoggerProxy is the consumer's default registered name.
	AtomLoggerProxy Atom = "logger_proxy"

	// AtomPanicked tags the error returned when a dispatched call panics.
	AtomPanicked Atom = "call_panicked"
)

// Severity atoms, one per canonical level name.
const (
	AtomDebug     Atom = "debug"
	AtomInfo      Atom = "info"
	AtomNotice    Atom = "notice"
	AtomWarning   Atom = "warning"
	AtomError     Atom = "error"
	AtomCritical  Atom = "critical"
	AtomAlert     Atom = "alert"
	AtomEmergency Atom = "emergency"
)
