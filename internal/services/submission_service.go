package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/assessment-engine/internal/cache"
	"github.com/SAP-F-2025/assessment-engine/internal/events"
	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/repositories"
	"github.com/SAP-F-2025/assessment-engine/internal/validator"
)

type submissionService struct {
	repo           repositories.Repository
	issued         IssuedAssessmentStore
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
	now            func() time.Time
}

func NewSubmissionService(repo repositories.Repository, issued IssuedAssessmentStore, eventPublisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) SubmissionService {
	return &submissionService{
		repo:           repo,
		issued:         issued,
		eventPublisher: eventPublisher,
		logger:         logger,
		validator:      validator,
		now:            time.Now,
	}
}

// Submit grades every answer or none. The unique index on (assessment, student)
// is what rejects concurrent duplicates; the pre-check only fails fast.
func (s *submissionService) Submit(ctx context.Context, req *models.SubmitAssessmentRequest) (*models.SubmissionResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	logger := s.logger.With("assessment_id", req.AssessmentID, "student_id", req.StudentID)

	exists, err := s.repo.Submission().ExistsByAssessmentAndStudent(ctx, nil, req.AssessmentID, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing submission: %w", err)
	}
	if exists {
		return nil, ErrDuplicateSubmission
	}

	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}
	if err := s.checkIssuedAssessment(ctx, logger, req); err != nil {
		return nil, err
	}

	questions, err := s.loadQuestions(ctx, req.Answers)
	if err != nil {
		return nil, err
	}

	records, err := gradeAnswers(req.Answers, questions)
	if err != nil {
		return nil, err
	}

	correct := 0
	for _, r := range records {
		if r.IsCorrect {
			correct++
		}
	}

	submission := &models.Submission{
		AssessmentID:   req.AssessmentID,
		StudentID:      req.StudentID,
		SubjectID:      req.SubjectID,
		GradeLevel:     req.GradeLevel,
		Difficulty:     req.Difficulty,
		TotalQuestions: len(records),
		CorrectAnswers: correct,
		Score:          percentage(correct, len(records)),
		// Postgres keeps microseconds
		SubmittedAt: s.now().UTC().Truncate(time.Microsecond),
		TimeTaken:   req.TimeTaken,
		Answers:     records,
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		return txRepo.Submission().Create(ctx, nil, submission)
	})
	if err != nil {
		if repositories.IsDuplicateKeyError(err) {
			logger.Info("Concurrent duplicate submission rejected by storage")
			return nil, ErrDuplicateSubmission
		}
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}

	response := buildSubmissionResponse(submission)

	logger.Info("Submission graded",
		"submission_id", submission.ID,
		"score", submission.Score,
		"performance_level", response.PerformanceLevel)

	s.publishGraded(ctx, logger, submission, response)

	return response, nil
}

func (s *submissionService) checkReferences(ctx context.Context, req *models.SubmitAssessmentRequest) error {
	// Staff accounts exist in the directory too; only students can own a submission
	student, err := s.repo.User().GetByID(ctx, req.StudentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return newNotFoundError(ErrStudentNotFound, "student", req.StudentID)
		}
		return fmt.Errorf("failed to check student: %w", err)
	}
	if student.Role != models.RoleStudent {
		return newNotFoundError(ErrStudentNotFound, "student", req.StudentID)
	}

	subjectExists, err := s.repo.Subject().ExistsByID(ctx, nil, req.SubjectID)
	if err != nil {
		return fmt.Errorf("failed to check subject: %w", err)
	}
	if !subjectExists {
		return newNotFoundError(ErrSubjectNotFound, "subject", req.SubjectID)
	}
	return nil
}

// checkIssuedAssessment rejects answers to questions that were never issued
// under this assessment id. Without a stored answer key nothing is checked.
func (s *submissionService) checkIssuedAssessment(ctx context.Context, logger *slog.Logger, req *models.SubmitAssessmentRequest) error {
	issued, err := s.issued.Get(ctx, req.AssessmentID)
	if err != nil {
		if !cache.IsMiss(err) {
			logger.Warn("Failed to read answer key, grading against catalog only", "error", err)
		}
		return nil
	}

	var verrs ValidationErrors
	if issued.SubjectID != req.SubjectID {
		verrs = append(verrs, *NewValidationError("subject_id", "does not match the generated assessment", req.SubjectID))
	}
	for i, a := range req.Answers {
		if !issued.Contains(a.QuestionID) {
			verrs = append(verrs, *NewValidationError(fmt.Sprintf("answers[%d].question_id", i), "is not part of this assessment", a.QuestionID))
		}
	}
	if len(verrs) > 0 {
		return verrs
	}
	return nil
}

func (s *submissionService) loadQuestions(ctx context.Context, answers []models.AnswerRequest) (map[uint]*models.Question, error) {
	ids := make([]uint, len(answers))
	for i, a := range answers {
		ids[i] = a.QuestionID
	}

	found, err := s.repo.Question().GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}

	questions := make(map[uint]*models.Question, len(found))
	for _, q := range found {
		questions[q.ID] = q
	}
	return questions, nil
}

// gradeAnswers resolves every answer against the catalog's correctness flags.
// A missing question or option aborts the whole submission.
func gradeAnswers(answers []models.AnswerRequest, questions map[uint]*models.Question) ([]models.AnswerRecord, error) {
	records := make([]models.AnswerRecord, 0, len(answers))
	for i, a := range answers {
		q, ok := questions[a.QuestionID]
		if !ok {
			return nil, newNotFoundError(ErrQuestionNotFound, "question", a.QuestionID)
		}
		options, err := q.DecodeOptions()
		if err != nil {
			return nil, err
		}
		chosen, ok := models.FindOption(options, a.ChosenOptionID)
		if !ok {
			return nil, newNotFoundError(ErrOptionNotFound, "option", fmt.Sprintf("%s of question %d", a.ChosenOptionID, q.ID))
		}

		records = append(records, models.AnswerRecord{
			Position:        i,
			QuestionID:      q.ID,
			TopicID:         q.TopicID,
			Difficulty:      q.Difficulty,
			ChosenOptionID:  chosen.ID,
			CorrectOptionID: models.CorrectOptionID(options),
			IsCorrect:       chosen.IsCorrect,
		})
	}
	return records, nil
}

// buildSubmissionResponse serves both the submit call and later reads
func buildSubmissionResponse(submission *models.Submission) *models.SubmissionResponse {
	answers := make([]models.GradedAnswerResponse, len(submission.Answers))
	for i, r := range submission.Answers {
		answers[i] = models.GradedAnswerResponse{
			QuestionID:      r.QuestionID,
			ChosenOptionID:  r.ChosenOptionID,
			IsCorrect:       r.IsCorrect,
			CorrectOptionID: r.CorrectOptionID,
		}
	}

	return &models.SubmissionResponse{
		SubmissionID:         submission.ID,
		AssessmentID:         submission.AssessmentID,
		StudentID:            submission.StudentID,
		SubjectID:            submission.SubjectID,
		TotalQuestions:       submission.TotalQuestions,
		CorrectAnswers:       submission.CorrectAnswers,
		Score:                submission.Score,
		PerformanceLevel:     ClassifyPerformance(submission.Score),
		SubmittedAt:          submission.SubmittedAt,
		TimeTaken:            submission.TimeTaken,
		ImprovementEvaluated: submission.ImprovementEvaluated,
		Answers:              answers,
		Statistics:           Aggregate(submission.Answers),
	}
}

func (s *submissionService) publishGraded(ctx context.Context, logger *slog.Logger, submission *models.Submission, response *models.SubmissionResponse) {
	event := events.NewEvent(events.SubmissionGraded, events.SubmissionGradedData{
		SubmissionID:     submission.ID,
		AssessmentID:     submission.AssessmentID,
		StudentID:        submission.StudentID,
		SubjectID:        submission.SubjectID,
		TotalQuestions:   submission.TotalQuestions,
		CorrectAnswers:   submission.CorrectAnswers,
		Score:            submission.Score,
		PerformanceLevel: string(response.PerformanceLevel),
		WeakTopicIDs:     weakTopics(response.Statistics),
		SubmittedAt:      submission.SubmittedAt,
	})
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		logger.Error("Failed to publish submission event", "submission_id", submission.ID, "error", err)
	}
}

func (s *submissionService) GetDetail(ctx context.Context, submissionID uint) (*models.SubmissionResponse, error) {
	submission, err := s.repo.Submission().GetByID(ctx, nil, submissionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, newNotFoundError(ErrSubmissionNotFound, "submission", submissionID)
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return buildSubmissionResponse(submission), nil
}

func (s *submissionService) ListByStudent(ctx context.Context, studentID string, limit, offset int) (*models.SubmissionListResponse, error) {
	if studentID == "" {
		return nil, ValidationErrors{*NewValidationError("student_id", "is required", studentID)}
	}

	submissions, total, err := s.repo.Submission().ListByStudent(ctx, nil, studentID, repositories.SubmissionFilters{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	summaries := make([]models.SubmissionSummary, len(submissions))
	for i, sub := range submissions {
		summaries[i] = models.SubmissionSummary{
			SubmissionID:     sub.ID,
			AssessmentID:     sub.AssessmentID,
			SubjectID:        sub.SubjectID,
			TotalQuestions:   sub.TotalQuestions,
			CorrectAnswers:   sub.CorrectAnswers,
			Score:            sub.Score,
			PerformanceLevel: ClassifyPerformance(sub.Score),
			SubmittedAt:      sub.SubmittedAt,
		}
	}

	return &models.SubmissionListResponse{
		Submissions: summaries,
		Total:       total,
		Limit:       limit,
		Offset:      offset,
	}, nil
}

func (s *submissionService) SetImprovementEvaluated(ctx context.Context, submissionID uint, evaluated bool) error {
	err := s.repo.Submission().SetImprovementEvaluated(ctx, nil, submissionID, evaluated)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return newNotFoundError(ErrSubmissionNotFound, "submission", submissionID)
		}
		return fmt.Errorf("failed to update submission: %w", err)
	}

	event := events.NewEvent(events.SubmissionImprovementMarked, events.SubmissionImprovementData{
		SubmissionID: submissionID,
		Evaluated:    evaluated,
	})
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish improvement event", "submission_id", submissionID, "error", err)
	}
	return nil
}
