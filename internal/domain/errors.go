package domain

import "errors"

var (
	// ErrSessionNotFound signals a missing chat session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrEmptyMessage signals a chat request without user text.
	ErrEmptyMessage = errors.New("empty message")
	// ErrLLMProvider signals a failure of the language-model backend.
	ErrLLMProvider = errors.New("llm provider error")
	// ErrCatalogNotLoaded signals that the catalog file produced no records.
	ErrCatalogNotLoaded = errors.New("catalog not loaded")
)
