package ruleset

import (
	"fmt"
)

// Action is the severity a rule is reported with by the Roslyn analyzer host.
type Action int

const (
	ActionInfo Action = iota
	ActionWarning
	ActionNone
	ActionError
	ActionHidden
)

var actionTexts = [...]string{
	ActionInfo:    "Info",
	ActionWarning: "Warning",
	ActionNone:    "None",
	ActionError:   "Error",
	ActionHidden:  "Hidden",
}

// ActionText returns the rule set spelling of an action. Values outside the
// declared set return an error wrapping ErrNotSupported.
func ActionText(a Action) (string, error) {
	if a < 0 || int(a) >= len(actionTexts) {
		return "", fmt.Errorf("action %d: %w", int(a), ErrNotSupported)
	}
	return actionTexts[a], nil
}

// ParseAction is the inverse of ActionText. Matching is exact.
func ParseAction(s string) (Action, error) {
	for i, text := range actionTexts {
		if text == s {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("action %q: %w", s, ErrNotSupported)
}

// actionFor derives the action from the quality profile activation state.
func actionFor(isActive bool) Action {
	if isActive {
		return ActionWarning
	}
	return ActionNone
}

func (a Action) String() string {
	text, err := ActionText(a)
	if err != nil {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return text
}

// MarshalText implements encoding.TextMarshaler.
func (a Action) MarshalText() ([]byte, error) {
	text, err := ActionText(a)
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
