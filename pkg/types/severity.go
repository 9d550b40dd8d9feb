package types

import (
	"fmt"
	"strings"
)

// Severity is the SonarQube issue severity.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityInfo
	SeverityMinor
	SeverityMajor
	SeverityCritical
	SeverityBlocker
)

var severityNames = map[Severity]string{
	SeverityUnknown:  "UNKNOWN",
	SeverityInfo:     "INFO",
	SeverityMinor:    "MINOR",
	SeverityMajor:    "MAJOR",
	SeverityCritical: "CRITICAL",
	SeverityBlocker:  "BLOCKER",
}

// String returns the server spelling of the severity.
func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// ParseSeverity parses a server severity name. Matching is case-insensitive;
// an empty string is SeverityUnknown.
func ParseSeverity(s string) (Severity, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return SeverityUnknown, nil
	}
	for sev, name := range severityNames {
		if name == s {
			return sev, nil
		}
	}
	return SeverityUnknown, fmt.Errorf("unknown severity: %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	name, ok := severityNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown severity: %d", int(s))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	sev, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = sev
	return nil
}
