package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
)

type assembler struct {
	rng RandomSource
	now func() time.Time
}

// topicQuestions is the selection made for one topic
type topicQuestions struct {
	topic     *models.Topic
	questions []*models.Question
}

// Assemble concatenates the per-topic selections, shuffles globally and shuffles
// each question's options. The distribution reflects what was actually picked.
func (a assembler) Assemble(subjectID uint, mode models.DifficultyMode, topicIDs []uint, selections []topicQuestions) (*models.GeneratedAssessment, error) {
	var questions []models.AssessmentQuestion
	for _, sel := range selections {
		for _, q := range sel.questions {
			options, err := q.DecodeOptions()
			if err != nil {
				return nil, err
			}
			shuffled := make([]models.Option, len(options))
			copy(shuffled, options)
			a.rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

			questions = append(questions, models.AssessmentQuestion{
				Question:  q,
				TopicName: sel.topic.Name,
				Options:   shuffled,
			})
		}
	}

	a.rng.Shuffle(len(questions), func(i, j int) { questions[i], questions[j] = questions[j], questions[i] })

	return &models.GeneratedAssessment{
		ID:           uuid.New().String(),
		SubjectID:    subjectID,
		Difficulty:   mode,
		Questions:    questions,
		Distribution: CountDistribution(questions, topicIDs),
		CreatedAt:    a.now().UTC(),
	}, nil
}

// publicView strips correctness flags
func publicView(assessment *models.GeneratedAssessment) *models.GeneratedAssessmentResponse {
	questions := make([]models.GeneratedQuestionResponse, len(assessment.Questions))
	for i, aq := range assessment.Questions {
		options := make([]models.OptionResponse, len(aq.Options))
		for j, o := range aq.Options {
			options[j] = models.OptionResponse{OptionID: o.ID, Text: o.Text}
		}
		questions[i] = models.GeneratedQuestionResponse{
			QuestionID:      aq.Question.ID,
			Text:            aq.Question.Text,
			DifficultyLevel: aq.Question.Difficulty,
			TopicID:         aq.Question.TopicID,
			TopicName:       aq.TopicName,
			Options:         options,
		}
	}

	return &models.GeneratedAssessmentResponse{
		AssessmentID:   assessment.ID,
		SubjectID:      assessment.SubjectID,
		TotalQuestions: len(questions),
		Difficulty:     assessment.Difficulty,
		Questions:      questions,
		Distribution:   assessment.Distribution,
		CreatedAt:      assessment.CreatedAt,
	}
}

// answerKey is the grading view kept server-side
func answerKey(assessment *models.GeneratedAssessment) *models.IssuedAssessment {
	key := make(map[uint]string, len(assessment.Questions))
	for _, aq := range assessment.Questions {
		key[aq.Question.ID] = models.CorrectOptionID(aq.Options)
	}
	return &models.IssuedAssessment{
		AssessmentID: assessment.ID,
		SubjectID:    assessment.SubjectID,
		AnswerKey:    key,
		IssuedAt:     assessment.CreatedAt,
	}
}
