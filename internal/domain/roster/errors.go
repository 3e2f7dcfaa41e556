package roster

import "errors"

var (
	ErrManagerNotFound = errors.New("manager not found")
	ErrUnknownAgent    = errors.New("agent is not assigned to any manager")
)
