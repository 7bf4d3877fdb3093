package contract

import "errors"

var (
	ErrUnknownIntent = errors.New("unknown intent")
	ErrValidation    = errors.New("validation failed")
	ErrExecution     = errors.New("handler execution failed")
)
