package submit

import "errors"

// FallbackText is displayed when a submission cannot be transmitted.
const FallbackText = "An error occurred."

// ErrTransmission wraps every failure between building the request and
// reading the response body. HTTP error statuses are not failures.
var ErrTransmission = errors.New("submit: transmission failure")

// ErrForeignEvent is reported by Handle for an event aimed at another form.
var ErrForeignEvent = errors.New("submit: event targets another form")
