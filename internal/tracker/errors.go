package tracker

const (
	MessageLoadFailed   = "Failed to load cycle data. Please try again."
	MessageSaveFailed   = "Failed to save entry. Please try again."
	MessageUpdateFailed = "Failed to update entry. Please try again."
	MessageDeleteFailed = "Failed to delete entry. Please try again."
	MessageDateConflict = "An entry already exists for this date"
)

// UserError carries a message fit for display alongside the underlying
// collaborator error.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

func userError(message string, err error) error {
	return &UserError{Message: message, Err: err}
}
