package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/assessment-engine/internal/cache"
	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/repositories"
)

type SubmissionPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewSubmissionPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.SubmissionRepository {
	return &SubmissionPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

// Create inserts the submission with its answer records. The unique index on
// (assessment_id, student_id) decides concurrent races.
func (s *SubmissionPostgreSQL) Create(ctx context.Context, tx *gorm.DB, submission *models.Submission) error {
	db := s.getDB(tx)
	if err := db.WithContext(ctx).Create(submission).Error; err != nil {
		return fmt.Errorf("failed to create submission: %w", translateError(err))
	}
	return nil
}

func (s *SubmissionPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Submission, error) {
	db := s.getDB(tx)
	var submission models.Submission
	if err := db.WithContext(ctx).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&submission, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get submission %d: %w", id, translateError(err))
	}
	return &submission, nil
}

// ExistsByAssessmentAndStudent caches positive answers only. Submissions are
// never deleted, so a hit stays true.
func (s *SubmissionPostgreSQL) ExistsByAssessmentAndStudent(ctx context.Context, tx *gorm.DB, assessmentID, studentID string) (bool, error) {
	cacheKey := fmt.Sprintf("submission:%s:%s", assessmentID, studentID)
	var cached bool
	if err := s.cacheManager.Exists.Get(ctx, cacheKey, &cached); err == nil && cached {
		return true, nil
	}

	var count int64
	if err := s.getDB(tx).WithContext(ctx).
		Model(&models.Submission{}).
		Where("assessment_id = ? AND student_id = ?", assessmentID, studentID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check submission: %w", err)
	}

	if count > 0 {
		cache.SafeSet(ctx, s.cacheManager.Exists, cacheKey, true, cache.ExistsCacheConfig)
	}
	return count > 0, nil
}

func (s *SubmissionPostgreSQL) ListByStudent(ctx context.Context, tx *gorm.DB, studentID string, filters repositories.SubmissionFilters) ([]*models.Submission, int64, error) {
	db := s.getDB(tx)
	var submissions []*models.Submission
	var total int64

	query := db.WithContext(ctx).Model(&models.Submission{}).Where("student_id = ?", studentID)
	if filters.SubjectID != nil {
		query = query.Where("subject_id = ?", *filters.SubjectID)
	}
	if filters.DateFrom != nil {
		query = query.Where("submitted_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("submitted_at <= ?", *filters.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count submissions: %w", err)
	}

	query = applyPagination(query.Order("submitted_at DESC"), filters.Limit, filters.Offset)
	if err := query.Find(&submissions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list submissions: %w", err)
	}

	return submissions, total, nil
}

// SetImprovementEvaluated is the only update a stored submission accepts
func (s *SubmissionPostgreSQL) SetImprovementEvaluated(ctx context.Context, tx *gorm.DB, id uint, evaluated bool) error {
	result := s.getDB(tx).WithContext(ctx).
		Model(&models.Submission{}).
		Where("id = ?", id).
		Update("improvement_evaluated", evaluated)
	if result.Error != nil {
		return fmt.Errorf("failed to update submission %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("submission %d: %w", id, repositories.ErrNotFound)
	}
	return nil
}

func (s *SubmissionPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return s.db
}
