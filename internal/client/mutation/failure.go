package mutation

import (
	"errors"
	"fmt"

	clientapi "github.com/iudanet/qaforum/internal/client/api"
)

// Failure is the single user-visible notice for a mutation that was rolled back
type Failure struct {
	Err      error
	Op       string
	EntityID string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s %s failed: %s", f.Op, f.EntityID, f.Reason())
}

// Unwrap returns the cause
func (f *Failure) Unwrap() error {
	return f.Err
}

// Reason returns a short message suitable for showing to the user
func (f *Failure) Reason() string {
	switch {
	case errors.Is(f.Err, clientapi.ErrUnauthorized):
		return "you are not allowed to do this, please sign in again"
	case errors.Is(f.Err, clientapi.ErrNetworkFailure):
		return "could not reach the server, please try again"
	case errors.Is(f.Err, clientapi.ErrServerRejected):
		return "the server rejected the change"
	default:
		return "unexpected error, the change was reverted"
	}
}
