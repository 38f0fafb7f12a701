package services

import "errors"

// Domain errors returned by the services. Callers match them with errors.Is.
var (
	ErrTooFewLanguages      = errors.New("at least two language codes are required")
	ErrChannelNotConfigured = errors.New("channel is not configured for translation")
	ErrInvalidSettings      = errors.New("invalid settings input")
	ErrNoMessages           = errors.New("no messages to summarize")
	ErrInvalidLanguage      = errors.New("invalid language code")
	ErrEmptyText            = errors.New("text is empty")
	ErrTranslationFailed    = errors.New("translation backend failed")
)
