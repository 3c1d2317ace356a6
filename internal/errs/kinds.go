package errs

import "errors"

// Failure kinds for errors that must reach the client as a generic 500.
//
// Services wrap the underlying cause with one of these so the global error
// handler can log what kind of dependency failed:
//
//	fmt.Errorf("%w: insert carousel image: %w", errs.ErrStore, err)
var (
	// ErrStore marks a local persistence failure (SQLite or upload directory).
	ErrStore = errors.New("store error")

	// ErrUpstream marks a failed or unreachable catalog API call.
	ErrUpstream = errors.New("upstream error")

	// ErrDelivery marks a failure reported by the email provider.
	ErrDelivery = errors.New("delivery error")
)

// Kind returns a short label for the failure kind of err, for logs and metrics.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrStore):
		return "store"
	case errors.Is(err, ErrUpstream):
		return "upstream"
	case errors.Is(err, ErrDelivery):
		return "delivery"
	default:
		return "unknown"
	}
}
