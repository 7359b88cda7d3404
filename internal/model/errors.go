package model

import "errors"

var (
	ErrFetchFailure      = errors.New("failed to fetch model catalog")
	ErrRequestFailure    = errors.New("chat completion request failed")
	ErrMalformedResponse = errors.New("malformed chat completion response")
	ErrLoadFailure       = errors.New("failed to load conversation context")
	ErrSaveFailure       = errors.New("failed to save conversation context")

	ErrEmptyModel    = errors.New("model is not selected")
	ErrEmptyMessages = errors.New("conversation has no messages")
	ErrEmptyQuestion = errors.New("question is empty")
)
