package services

import "errors"

var (
	// ErrNotFound indicates a requested resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUpstream indicates a failure talking to the upstream hosting API.
	ErrUpstream = errors.New("upstream request failed")
)
