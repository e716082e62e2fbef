package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/repositories"
	"github.com/SAP-F-2025/assessment-engine/internal/validator"
)

type generationService struct {
	repo      repositories.Repository
	issued    IssuedAssessmentStore
	logger    *slog.Logger
	validator *validator.Validator

	allocator quotaAllocator
	selector  *difficultySelector
	assembler assembler
}

func NewGenerationService(repo repositories.Repository, issued IssuedAssessmentStore, rng RandomSource, logger *slog.Logger, validator *validator.Validator) GenerationService {
	return &generationService{
		repo:      repo,
		issued:    issued,
		logger:    logger,
		validator: validator,
		allocator: quotaAllocator{rng: rng},
		selector:  &difficultySelector{catalog: repo.Question(), rng: rng},
		assembler: assembler{rng: rng, now: time.Now},
	}
}

// Generate is all-or-nothing: a short topic aborts the whole request
func (s *generationService) Generate(ctx context.Context, req *models.GenerateAssessmentRequest) (*models.GeneratedAssessmentResponse, error) {
	s.logger.Info("Generating assessment",
		"subject_id", req.SubjectID,
		"topics", len(req.TopicIDs),
		"num_questions", req.NumQuestions,
		"difficulty", req.Difficulty)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	// Count rules are checked before the catalog is touched
	quotas, err := s.allocator.Allocate(req.TopicIDs, req.NumQuestions, req.Difficulty)
	if err != nil {
		return nil, err
	}

	topics, err := s.resolveTopics(ctx, req.SubjectID, req.TopicIDs)
	if err != nil {
		return nil, err
	}

	selections := make([]topicQuestions, 0, len(topics))
	for _, topic := range topics {
		questions, err := s.selector.Select(ctx, topic, quotas[topic.ID], req.Difficulty)
		if err != nil {
			var insufficient *InsufficientQuestionsError
			if errors.As(err, &insufficient) {
				s.logger.Warn("Topic cannot satisfy its quota",
					"topic_id", topic.ID,
					"quota", quotas[topic.ID],
					"available", insufficient.Available)
			} else {
				s.logger.Error("Failed to select questions",
					"topic_id", topic.ID,
					"error", err)
			}
			return nil, err
		}
		selections = append(selections, topicQuestions{topic: topic, questions: questions})
	}

	assessment, err := s.assembler.Assemble(req.SubjectID, req.Difficulty, req.TopicIDs, selections)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble assessment: %w", err)
	}

	if err := s.issued.Save(ctx, answerKey(assessment)); err != nil {
		s.logger.Warn("Failed to store answer key, submissions will be graded against the catalog only",
			"assessment_id", assessment.ID,
			"error", err)
	}

	s.logger.Info("Assessment generated",
		"assessment_id", assessment.ID,
		"total_questions", len(assessment.Questions),
		"by_difficulty", assessment.Distribution.ByDifficulty)

	return publicView(assessment), nil
}

// resolveTopics returns the topics in request order, all belonging to the subject
func (s *generationService) resolveTopics(ctx context.Context, subjectID uint, topicIDs []uint) ([]*models.Topic, error) {
	exists, err := s.repo.Subject().ExistsByID(ctx, nil, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to check subject: %w", err)
	}
	if !exists {
		return nil, newNotFoundError(ErrSubjectNotFound, "subject", subjectID)
	}

	found, err := s.repo.Topic().GetByIDs(ctx, nil, topicIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load topics: %w", err)
	}
	byID := make(map[uint]*models.Topic, len(found))
	for _, t := range found {
		byID[t.ID] = t
	}

	topics := make([]*models.Topic, 0, len(topicIDs))
	for _, id := range topicIDs {
		topic, ok := byID[id]
		if !ok || topic.SubjectID != subjectID {
			return nil, newNotFoundError(ErrTopicNotFound, "topic", id)
		}
		topics = append(topics, topic)
	}
	return topics, nil
}
