package schedule

import "github.com/BruksfildServices01/groomer-manager/internal/httperr"

var (
	ErrClientNotFound      = httperr.ErrBusiness("client_not_found")
	ErrDogNotFound         = httperr.ErrBusiness("dog_not_found")
	ErrAppointmentNotFound = httperr.ErrBusiness("appointment_not_found")

	// ErrMissingReference is returned when a write names a client that
	// does not exist.
	ErrMissingReference = httperr.ErrBusiness("missing_reference")

	ErrInvalidState = httperr.ErrBusiness("invalid_state")
	ErrInvalidInput = httperr.ErrBusiness("invalid_input")
)

// danglingReference marks stored data whose client has vanished. It is
// reported as a server fault, not a client mistake.
func danglingReference(appointmentID, clientID uint) error {
	return httperr.ErrBusinessf("corrupt_reference",
		"appointment %d references missing client %d", appointmentID, clientID)
}
