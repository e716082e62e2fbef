package services

import (
	"errors"
	"fmt"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/validator"
)

type (
	ValidationError  = validator.ValidationError
	ValidationErrors = validator.ValidationErrors
)

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: message, Value: value}
}

var (
	ErrInvalidQuestionCount  = errors.New("invalid question count")
	ErrInsufficientQuestions = errors.New("insufficient questions")
	ErrDuplicateSubmission   = errors.New("assessment already submitted by this student")
	ErrResourceNotFound      = errors.New("resource not found")
)

// Not-found kinds, all matching ErrResourceNotFound
var (
	ErrSubjectNotFound    = fmt.Errorf("subject: %w", ErrResourceNotFound)
	ErrTopicNotFound      = fmt.Errorf("topic: %w", ErrResourceNotFound)
	ErrQuestionNotFound   = fmt.Errorf("question: %w", ErrResourceNotFound)
	ErrOptionNotFound     = fmt.Errorf("option: %w", ErrResourceNotFound)
	ErrStudentNotFound    = fmt.Errorf("student: %w", ErrResourceNotFound)
	ErrSubmissionNotFound = fmt.Errorf("submission: %w", ErrResourceNotFound)
)

// NotFoundError names the missing resource
type NotFoundError struct {
	Resource string
	ID       string
	kind     error
}

func newNotFoundError(kind error, resource string, id interface{}) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: fmt.Sprint(id), kind: kind}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return e.kind
}

// QuestionCountError rejects a request before any catalog access
type QuestionCountError struct {
	Requested int
	Topics    int
	Message   string
}

func (e *QuestionCountError) Error() string {
	return e.Message
}

func (e *QuestionCountError) Unwrap() error {
	return ErrInvalidQuestionCount
}

// InsufficientQuestionsError reports a topic whose three pools together
// cannot cover its quota
type InsufficientQuestionsError struct {
	TopicID    uint
	TopicName  string
	Requested  int
	Available  int
	Difficulty models.DifficultyLevel
}

func (e *InsufficientQuestionsError) Error() string {
	return fmt.Sprintf("topic %q (%d) needs %d questions but only %d are available across all difficulties (short on %s)",
		e.TopicName, e.TopicID, e.Requested, e.Available, e.Difficulty)
}

func (e *InsufficientQuestionsError) Unwrap() error {
	return ErrInsufficientQuestions
}
