package models

import "time"

// ===== REQUESTS =====

type GenerateAssessmentRequest struct {
	SubjectID    uint           `json:"subject_id" validate:"required"`
	TopicIDs     []uint         `json:"topic_ids" validate:"required,min=1,unique,dive,required"`
	NumQuestions int            `json:"num_questions" validate:"max=200"`
	Difficulty   DifficultyMode `json:"difficulty" validate:"required,difficulty_mode"`
}

type AnswerRequest struct {
	QuestionID     uint   `json:"question_id" validate:"required"`
	ChosenOptionID string `json:"chosen_option_id" validate:"required,max=64"`
}

type SubmitAssessmentRequest struct {
	AssessmentID string          `json:"assessment_id" validate:"required,max=64"`
	StudentID    string          `json:"student_id" validate:"required,max=255"`
	SubjectID    uint            `json:"subject_id" validate:"required"`
	GradeLevel   string          `json:"grade_level" validate:"omitempty,max=50"`
	Difficulty   string          `json:"difficulty" validate:"omitempty,difficulty_mode"`
	TimeTaken    int             `json:"time_taken" validate:"min=0"`
	Answers      []AnswerRequest `json:"answers" validate:"required,min=1,unique=QuestionID,dive"`
}

type ImprovementEvaluatedRequest struct {
	Evaluated *bool `json:"evaluated" validate:"required"`
}

// ===== RESPONSES =====

type OptionResponse struct {
	OptionID string `json:"option_id"`
	Text     string `json:"text"`
}

type GeneratedQuestionResponse struct {
	QuestionID      uint             `json:"question_id"`
	Text            string           `json:"text"`
	DifficultyLevel DifficultyLevel  `json:"difficulty_level"`
	TopicID         uint             `json:"topic_id"`
	TopicName       string           `json:"topic_name"`
	Options         []OptionResponse `json:"options"`
}

// GeneratedAssessmentResponse is the public view. It never carries correctness flags.
type GeneratedAssessmentResponse struct {
	AssessmentID   string                      `json:"assessment_id"`
	SubjectID      uint                        `json:"subject_id"`
	TotalQuestions int                         `json:"total_questions"`
	Difficulty     DifficultyMode              `json:"difficulty"`
	Questions      []GeneratedQuestionResponse `json:"questions"`
	Distribution   Distribution                `json:"distribution"`
	CreatedAt      time.Time                   `json:"created_at"`
}

type BucketStats struct {
	Total    int     `json:"total"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

type Statistics struct {
	ByTopic      map[uint]BucketStats            `json:"by_topic"`
	ByDifficulty map[DifficultyLevel]BucketStats `json:"by_difficulty"`
}

type GradedAnswerResponse struct {
	QuestionID      uint   `json:"question_id"`
	ChosenOptionID  string `json:"chosen_option_id"`
	IsCorrect       bool   `json:"is_correct"`
	CorrectOptionID string `json:"correct_option_id"`
}

type SubmissionResponse struct {
	SubmissionID         uint                   `json:"submission_id"`
	AssessmentID         string                 `json:"assessment_id"`
	StudentID            string                 `json:"student_id"`
	SubjectID            uint                   `json:"subject_id"`
	TotalQuestions       int                    `json:"total_questions"`
	CorrectAnswers       int                    `json:"correct_answers"`
	Score                float64                `json:"score"`
	PerformanceLevel     PerformanceLevel       `json:"performance_level"`
	SubmittedAt          time.Time              `json:"submitted_at"`
	TimeTaken            int                    `json:"time_taken"`
	ImprovementEvaluated bool                   `json:"improvement_evaluated"`
	Answers              []GradedAnswerResponse `json:"answers"`
	Statistics           Statistics             `json:"statistics"`
}

type SubmissionSummary struct {
	SubmissionID     uint             `json:"submission_id"`
	AssessmentID     string           `json:"assessment_id"`
	SubjectID        uint             `json:"subject_id"`
	TotalQuestions   int              `json:"total_questions"`
	CorrectAnswers   int              `json:"correct_answers"`
	Score            float64          `json:"score"`
	PerformanceLevel PerformanceLevel `json:"performance_level"`
	SubmittedAt      time.Time        `json:"submitted_at"`
}

type SubmissionListResponse struct {
	Submissions []SubmissionSummary `json:"submissions"`
	Total       int64               `json:"total"`
	Limit       int                 `json:"limit"`
	Offset      int                 `json:"offset"`
}
