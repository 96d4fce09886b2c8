package types

import (
	"errors"
	"fmt"
)

// Form validation errors.
var (
	ErrNameRequired           = errors.New("name is required")
	ErrInvalidPrice           = errors.New("price must be a number")
	ErrInvalidLanguage        = errors.New("unknown language code")
	ErrInvalidEnum            = errors.New("value is not one of the allowed options")
	ErrSupplementTypeRequired = errors.New("a supplement needs at least one supplement type")
	ErrTooManySupplementTypes = errors.New("too many supplement types")
)

// Session rules, checked in this order by the session validator.
var (
	ErrInvalidDate         = errors.New("date must be a valid YYYY-MM-DD calendar date")
	ErrSystemRequired      = errors.New("a game system is required")
	ErrPlayerCountMismatch = errors.New("selected players do not match the declared player count")
	ErrGMRequired          = errors.New("a game master is required")
	ErrGMIsPlayer          = errors.New("the game master cannot also be a player")
	ErrKindRequired        = errors.New("a session must be a campaign or a one-shot")
	ErrKindConflict        = errors.New("a session cannot be both a campaign and a one-shot")
	ErrNoSystems           = errors.New("add game systems first")
	ErrNoPlayers           = errors.New("add players first")
)

// View errors.
var (
	ErrUnknownSortKey = errors.New("unknown sort key")
	ErrUnknownFilter  = errors.New("unknown filter")
)

// Statistics errors.
var (
	ErrNoPrimaryUser = errors.New("no player is marked as the primary user")
	ErrNoYear        = errors.New("no year selected")
)

// ValidationError ties a validation failure to the form field it came from.
// It unwraps to one of the sentinel errors above.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Invalid returns a *ValidationError for field.
func Invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// IsValidation reports whether err is a user-facing validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
