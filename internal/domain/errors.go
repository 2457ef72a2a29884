package domain

// Kind classifies a failure so callers can branch on it without parsing
// message text. Messages mirror the real backend's responses and are safe
// to show to a user; the internal reason never is.
type Kind int

const (
	KindAuth Kind = iota + 1
	KindNotFound
	KindConflict
	KindValidation
	KindRuleViolation
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	case KindRuleViolation:
		return "rule_violation"
	}
	return "unknown"
}

// Error is the single failure type crossing the simulator boundary.
type Error struct {
	Kind    Kind
	Message string
	// Reason carries internal detail (e.g. distinguishing "missing" from
	// "not owned") that must not leak into the message.
	Reason string
}

func (e *Error) Error() string { return e.Message }

// Is matches on kind, and on message too when the target carries one. This
// lets errors.Is work both with the bare kind sentinels below and with
// fully-specified service errors.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

// Kind sentinels for errors.Is checks.
var (
	ErrAuth          = &Error{Kind: KindAuth}
	ErrNotFound      = &Error{Kind: KindNotFound}
	ErrConflict      = &Error{Kind: KindConflict}
	ErrValidation    = &Error{Kind: KindValidation}
	ErrRuleViolation = &Error{Kind: KindRuleViolation}
)
