package session

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
	ErrAgentNotTracked = errors.New("agent has no hours entry in this session")
)
