package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email is already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrSubjectNotFound      = errors.New("subject not found")
	ErrStrandNotFound       = errors.New("strand not found")
	ErrTopicNotFound        = errors.New("topic not found")
	ErrQuizNotFound         = errors.New("quiz not found")
	ErrFlashcardNotFound    = errors.New("flashcard not found")
	ErrHomeworkNotFound     = errors.New("homework assignment not found")
	ErrSubmissionNotFound   = errors.New("homework submission not found")
	ErrChatSessionNotFound  = errors.New("chat session not found")
	ErrMaxAttemptsReached   = errors.New("maximum quiz attempts reached")
	ErrHomeworkInactive     = errors.New("homework assignment is no longer active")
)
