package trackapi

import "fmt"

// Remediation hints appended to known recurring application statuses.
// The 502 mapping is intentionally exact: TimeTrack reuses that status for
// other conflicts too, but its documented meaning is a conflicting active
// timer, so the hint is neither broadened nor narrowed here.
const (
	hintTimerRunning = "A timer is already running. Stop it with stop_timer before starting another one."
	hintUnauthorized = "Check that the account name and the application password are valid."
)

var statusHints = map[int]string{
	502: hintTimerRunning,
	401: hintUnauthorized,
}

// APIError is the single error type produced by the transport client.
// Status 0 marks transport-level failures (DNS, connect, timeout); any other
// value carries either the envelope's application status or the raw HTTP
// status. Callers match on Status rather than on error identity.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("status %d: %s", e.Status, e.Message)
}

// newAPIError builds an application-level error from an envelope status,
// appending the static remediation hint when one is known.
func newAPIError(status int, message string) *APIError {
	if hint, ok := statusHints[status]; ok {
		message = message + " " + hint
	}
	return &APIError{Status: status, Message: message}
}
