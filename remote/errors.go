package remote

import "fmt"

// TransportError is a non-2xx response or a failed round trip.
type TransportError struct {
	Status int // 0 when the request never got a response
	Body   string
}

func (e *TransportError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("transport: %s", e.Body)
	}
	return fmt.Sprintf("http %d: %s", e.Status, e.Body)
}

// MalformedResponseError is a 2xx response missing fields the adapter needs.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response: %s", e.Reason)
}

// RemoteServiceError wraps any failure of a client operation with the name
// of the operation that failed. Callers decide whether to surface or retry;
// the client itself never retries.
type RemoteServiceError struct {
	Op  string // "fetchGames", "fetchAnalysis", "fetchExplanation", "sendDetails"
	Err error
}

func (e *RemoteServiceError) Error() string {
	return fmt.Sprintf("remote %s: %v", e.Op, e.Err)
}

func (e *RemoteServiceError) Unwrap() error { return e.Err }
