package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	SubmissionGraded            EventType = "submission.graded"
	SubmissionImprovementMarked EventType = "submission.improvement_evaluated"
)

const (
	eventSource  = "assessment-engine"
	eventVersion = "1.0"
)

// Event is the envelope of every message the engine publishes
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

func NewEvent(eventType EventType, data interface{}) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    eventSource,
		Version:   eventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// SubmissionGradedData feeds the external improvement-evaluation workflow
type SubmissionGradedData struct {
	SubmissionID     uint      `json:"submission_id"`
	AssessmentID     string    `json:"assessment_id"`
	StudentID        string    `json:"student_id"`
	SubjectID        uint      `json:"subject_id"`
	TotalQuestions   int       `json:"total_questions"`
	CorrectAnswers   int       `json:"correct_answers"`
	Score            float64   `json:"score"`
	PerformanceLevel string    `json:"performance_level"`
	WeakTopicIDs     []uint    `json:"weak_topic_ids"`
	SubmittedAt      time.Time `json:"submitted_at"`
}

type SubmissionImprovementData struct {
	SubmissionID uint `json:"submission_id"`
	Evaluated    bool `json:"evaluated"`
}
