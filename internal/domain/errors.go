package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyBasket          = errors.New("basket is empty")
	ErrCustomerNameRequired = errors.New("customer name cannot be empty")
)

// TransportError is an HTTP-layer failure: the request never completed or the
// shop API answered with a non-2xx status.
type TransportError struct {
	Op         string
	StatusCode int
	Detail     string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Detail != "":
		return fmt.Sprintf("%s: request failed with status code %d: %s", e.Op, e.StatusCode, e.Detail)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: request failed with status code %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: network error", e.Op)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// Message is the text shown to the visitor: the server detail when there is one.
func (e *TransportError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Error()
}

// MissingDataError reports a successful response that lacks the expected payload.
type MissingDataError struct {
	Resource string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("response for %s is missing data", e.Resource)
}

func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

func IsMissingDataError(err error) bool {
	var me *MissingDataError
	return errors.As(err, &me)
}
