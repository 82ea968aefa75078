package domain

import "errors"

var (
	// ErrInvalidInput signals a malformed or unparseable request.
	ErrInvalidInput = errors.New("invalid input")
	// ErrRetrievalFailed signals a retrieval backend failure.
	ErrRetrievalFailed = errors.New("retrieval backend error")
	// ErrGenerationFailed signals a completion backend failure.
	ErrGenerationFailed = errors.New("generation backend error")
)
