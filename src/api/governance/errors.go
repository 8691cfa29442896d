package governance

import "errors"

// Failure taxonomy. Every engine entry point reports these as explicit
// return values; nothing is retried or swallowed inside the engine.
var (
	// ErrNotFound indicates an unknown proposal ID
	ErrNotFound = errors.New("proposal not found")

	// ErrNotRegistered indicates the address is not an active voter
	ErrNotRegistered = errors.New("address is not a registered voter")

	// ErrAlreadyRegistered indicates a duplicate voter registration
	ErrAlreadyRegistered = errors.New("voter already registered")

	// ErrUnauthorized indicates the caller may not perform an admin operation
	ErrUnauthorized = errors.New("caller is not authorized")

	// ErrInvalidPayload indicates the payload is malformed for the kind
	ErrInvalidPayload = errors.New("invalid payload for proposal kind")

	// ErrProposalNotActive indicates voting is closed or never opened
	ErrProposalNotActive = errors.New("proposal is not active")

	// ErrAlreadyVoted indicates a second vote by the same voter
	ErrAlreadyVoted = errors.New("voter already voted on this proposal")

	// ErrNotPassed indicates execution of a proposal that did not pass
	ErrNotPassed = errors.New("proposal has not passed")

	// ErrTooEarly indicates the execution delay (or voting deadline, for
	// finalization) has not elapsed yet
	ErrTooEarly = errors.New("too early")

	// ErrAlreadyExecuted indicates a second execution attempt
	ErrAlreadyExecuted = errors.New("proposal execution already attempted")
)

// ExecutionError wraps a failure reported by the action executor. The
// failure is recorded on the proposal and is terminal; governance state is
// never rolled back because of it.
type ExecutionError struct {
	Reason string
}

func (e *ExecutionError) Error() string { return "execution failed: " + e.Reason }
