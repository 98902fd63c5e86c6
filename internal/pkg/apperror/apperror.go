// Package apperror defines the domain error type services hand to HTTP
// handlers.
package apperror

// AppError is a domain error carrying the HTTP status it should render as.
// Services declare their failure modes as package-level AppError values and
// return them; handlers pass anything else through as a 500.
type AppError struct {
	Code    int    // HTTP status for the response
	Message string // safe to show to the client
	Err     error  // wrapped cause, never serialized
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New builds an AppError from a status code and client-facing message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap attaches a cause to a new AppError so errors.Is still finds it.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
