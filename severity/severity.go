// Package severity defines the ordered set of log levels understood by the
// bridge and the conversions between level, display string, and wire atom.
package severity

import "github.com/wippyai/logbridge/wire"

// Level is a log severity. Levels are totally ordered; comparison with <
// follows the declaration order below (Debug lowest).
type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
	Critical
	Alert
	Emergency
)

// parseTable maps input strings to levels. Case-sensitive. The synonym
// rows (trace, warn, fatal) are parse-only aliases and do not round-trip.
var parseTable = map[string]Level{
	"trace":     Debug, // convenience synonym
	"debug":     Debug,
	"info":      Info,
	"notice":    Notice,
	"warn":      Warning, // convenience synonym
	"warning":   Warning,
	"error":     Error,
	"critical":  Critical,
	"alert":     Alert,
	"emergency": Emergency,
	"fatal":     Emergency, // convenience synonym
}

// Parse finds the level for s. Unrecognized input yields Debug rather than
// an error; this hides caller typos, but it is the established contract of
// the bridge and callers depend on Parse never failing.
func Parse(s string) Level {
	if l, ok := parseTable[s]; ok {
		return l
	}
	return Debug
}

// String returns the canonical display name. Parse(l.String()) == l for
// every declared level.
func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Notice:
		return "notice"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Critical:
		return "critical"
	case Alert:
		return "alert"
	case Emergency:
		return "emergency"
	}
	return "debug"
}

// Symbol returns the wire atom for the level.
func (l Level) Symbol() wire.Atom {
	switch l {
	case Debug:
		return wire.AtomDebug
	case Info:
		return wire.AtomInfo
	case Notice:
		return wire.AtomNotice
	case Warning:
		return wire.AtomWarning
	case Error:
		return wire.AtomError
	case Critical:
		return wire.AtomCritical
	case Alert:
		return wire.AtomAlert
	case Emergency:
		return wire.AtomEmergency
	}
	return wire.AtomDebug
}
