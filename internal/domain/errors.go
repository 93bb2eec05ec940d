package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrAlreadySeen         = errors.New("submission already processed")
	ErrRunInProgress       = errors.New("a check is already in progress")
	ErrUnsupportedFormat   = errors.New("unsupported file format")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrForbiddenContent    = errors.New("file contains inappropriate content")
	ErrNotMathematical     = errors.New("insufficient mathematical content")
	ErrEmptyContent        = errors.New("could not extract text content from file")
	ErrNoExpressions       = errors.New("could not extract mathematical expressions")
	ErrUnsolvable          = errors.New("could not solve the problem")
	ErrNotifierUnavailable = errors.New("email service not configured")
)
