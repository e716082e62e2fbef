package models

import "time"

type PerformanceLevel string

const (
	PerformanceExcellent        PerformanceLevel = "EXCELLENT"
	PerformanceGood             PerformanceLevel = "GOOD"
	PerformanceAverage          PerformanceLevel = "AVERAGE"
	PerformanceNeedsImprovement PerformanceLevel = "NEEDS_IMPROVEMENT"
)

// Submission is a graded assessment. Rows are written once and only
// ImprovementEvaluated may change afterwards.
type Submission struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	AssessmentID string `json:"assessment_id" gorm:"not null;size:64;uniqueIndex:idx_submission_assessment_student,priority:1"`
	StudentID    string `json:"student_id" gorm:"not null;size:255;uniqueIndex:idx_submission_assessment_student,priority:2;index"`
	SubjectID    uint   `json:"subject_id" gorm:"not null;index"`
	GradeLevel   string `json:"grade_level" gorm:"size:50"`
	Difficulty   string `json:"difficulty" gorm:"size:20"`

	TotalQuestions int     `json:"total_questions" gorm:"not null"`
	CorrectAnswers int     `json:"correct_answers" gorm:"not null"`
	Score          float64 `json:"score" gorm:"not null"`

	SubmittedAt time.Time `json:"submitted_at" gorm:"not null;index"`
	TimeTaken   int       `json:"time_taken"` // seconds

	ImprovementEvaluated bool `json:"improvement_evaluated" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Answers []AnswerRecord `json:"answers,omitempty" gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE"`
}

func (Submission) TableName() string {
	return "submissions"
}

// AnswerRecord keeps topic, difficulty and the correct option as they were at
// grading time so statistics can be rebuilt without the catalog.
type AnswerRecord struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	SubmissionID    uint            `json:"submission_id" gorm:"not null;index"`
	Position        int             `json:"position" gorm:"not null"`
	QuestionID      uint            `json:"question_id" gorm:"not null;index"`
	TopicID         uint            `json:"topic_id" gorm:"not null"`
	Difficulty      DifficultyLevel `json:"difficulty" gorm:"not null;size:10"`
	ChosenOptionID  string          `json:"chosen_option_id" gorm:"not null;size:64"`
	CorrectOptionID string          `json:"correct_option_id" gorm:"size:64"`
	IsCorrect       bool            `json:"is_correct"`
}

func (AnswerRecord) TableName() string {
	return "answer_records"
}
