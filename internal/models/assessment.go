package models

import "time"

// Distribution counts what was actually selected for an assessment.
type Distribution struct {
	ByTopic      map[uint]int            `json:"by_topic"`
	ByDifficulty map[DifficultyLevel]int `json:"by_difficulty"`
}

// AssessmentQuestion is a selected question in the grading view: options are
// shuffled and still carry their correctness flags.
type AssessmentQuestion struct {
	Question  *Question `json:"-"`
	TopicName string    `json:"topic_name"`
	Options   []Option  `json:"options"`
}

// GeneratedAssessment is never persisted. Only its ID survives, as the
// correlation key of later submissions.
type GeneratedAssessment struct {
	ID           string               `json:"id"`
	SubjectID    uint                 `json:"subject_id"`
	Difficulty   DifficultyMode       `json:"difficulty"`
	Questions    []AssessmentQuestion `json:"questions"`
	Distribution Distribution         `json:"distribution"`
	CreatedAt    time.Time            `json:"created_at"`
}

// IssuedAssessment is the server-side answer key of a generated assessment.
type IssuedAssessment struct {
	AssessmentID string          `json:"assessment_id"`
	SubjectID    uint            `json:"subject_id"`
	AnswerKey    map[uint]string `json:"answer_key"` // question id -> correct option id
	IssuedAt     time.Time       `json:"issued_at"`
}

// Contains reports whether the question was part of the issued set.
func (a *IssuedAssessment) Contains(questionID uint) bool {
	_, ok := a.AnswerKey[questionID]
	return ok
}
