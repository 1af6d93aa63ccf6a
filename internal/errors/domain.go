package errors

// DomainError is a coded error that callers compare with errors.Is.
// Details are attached by wrapping, e.g. fmt.Errorf("%w: ...", ErrInvalidTransaction).
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}
