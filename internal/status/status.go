package status

import "errors"

// Error classes surfaced by the payment and ticketing services. Handlers map
// these onto HTTP responses; anything else is an internal error.
var (
	// ErrValidation marks malformed or missing input. Terminal, never retried.
	ErrValidation = errors.New("status: invalid input")

	// ErrConflict marks a duplicate order or an already-issued ticket.
	ErrConflict = errors.New("status: conflict")

	// ErrNotFound marks an unknown order, ticket or event identifier.
	ErrNotFound = errors.New("status: not found")

	// ErrUpstream marks a gateway, object-store or SMTP failure. The whole
	// call is safe to retry.
	ErrUpstream = errors.New("status: upstream failure")

	// ErrStillProcessing means the gateway has not reached a terminal state
	// yet. The caller should re-poll or wait for the webhook.
	ErrStillProcessing = errors.New("status: payment still processing")

	// ErrInvalidTransition guards the transaction state machine: a terminal
	// transaction never moves again.
	ErrInvalidTransition = errors.New("status: invalid transaction state transition")
)
