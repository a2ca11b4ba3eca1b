package object

import "errors"

var (
	// ErrNotFound indicates no object with the requested hash is stored.
	ErrNotFound = errors.New("object not found")

	// ErrCorrupt indicates stored bytes no longer match their hash, or an
	// object envelope could not be decoded.
	ErrCorrupt = errors.New("object corrupt")

	// ErrTypeMismatch indicates a typed read found an object of another kind.
	ErrTypeMismatch = errors.New("object type mismatch")
)
