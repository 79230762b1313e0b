package liberrors

import "fmt"

// ErrTransportNotSupported is returned by transport negotiation when none
// of the client's candidate Transports can be honored (spec §4.4 step 1).
type ErrTransportNotSupported struct{}

func (ErrTransportNotSupported) Error() string { return "transport not supported" }

// ErrDestinationInvalid is returned by transport negotiation when the
// chosen candidate is missing the parameters its lower-protocol requires
// (spec §4.4 step 2).
type ErrDestinationInvalid struct{ Reason string }

func (e ErrDestinationInvalid) Error() string { return "destination invalid: " + e.Reason }

// ErrMedia wraps a failure from the RTP-muxer collaborator surfaced during
// SETUP (spec §4.4 step 3).
type ErrMedia struct{ Cause error }

func (e ErrMedia) Error() string { return fmt.Sprintf("media error: %v", e.Cause) }
func (e ErrMedia) Unwrap() error { return e.Cause }

// ErrRangeNotSupported is returned by SessionManager.Play when the
// requested Range is not the supported "live from now" form (spec §4.4
// Range acceptance policy).
type ErrRangeNotSupported struct{}

func (ErrRangeNotSupported) Error() string { return "range not supported" }

// ErrControlBroken is returned by SessionManager.Play when the session's
// control channel cannot accept the Play message (its delivery loop has
// already exited).
type ErrControlBroken struct{}

func (ErrControlBroken) Error() string { return "session control channel broken" }

// ErrAlreadyRegistered is returned by SessionManager.Setup on a session-id
// collision (spec §4.4: "the handler retries or returns 500 - it does not
// retry here").
type ErrAlreadyRegistered struct{ ID string }

func (e ErrAlreadyRegistered) Error() string { return fmt.Sprintf("session %q already registered", e.ID) }

// ErrSourcePathAlreadyRegistered is returned by SourceManager.Register on a
// duplicate normalized path (spec §4.3: "second registration ... is
// rejected").
type ErrSourcePathAlreadyRegistered struct{ Path string }

func (e ErrSourcePathAlreadyRegistered) Error() string {
	return fmt.Sprintf("source path %q already registered", e.Path)
}
