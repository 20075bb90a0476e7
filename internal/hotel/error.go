package hotel

import (
	"errors"
	"fmt"
)

var (
	ErrNextID = errors.New("get next id from generator")

	// ErrNotFound reports a missing client, invoice or room record.
	ErrNotFound = errors.New("record not found")

	// ErrRoomNotFound reports a missing room during amount calculation.
	ErrRoomNotFound = errors.New("room not found")

	// ErrBookingConflict reports that a room is already booked for an
	// overlapping date range.
	ErrBookingConflict = errors.New("room is not available for the specified date range")
)

type InputError struct {
	fields map[string][]string
}

func newInputError() *InputError {
	return &InputError{
		fields: make(map[string][]string),
	}
}

func IsInputError(err error) *InputError {
	if err == nil {
		return nil
	}

	var inputError *InputError

	if errors.As(err, &inputError) {
		return inputError
	}

	return nil
}

func (ie *InputError) fieldsCount() int {
	return len(ie.fields)
}

func (ie *InputError) addError(field, msg string) {
	ie.fields[field] = append(ie.fields[field], msg)
}

func (ie *InputError) Error() string {
	return fmt.Sprintf("%+v", ie.fields)
}

func (ie *InputError) Fields() map[string][]string {
	return ie.fields
}
