package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
)

// SubmissionFilters defines filters for submission listings
type SubmissionFilters struct {
	SubjectID *uint
	DateFrom  *time.Time
	DateTo    *time.Time
	Limit     int
	Offset    int
}

type SubmissionRepository interface {
	// Create inserts the submission and its answer records. A second row for
	// the same (assessment, student) pair fails with ErrDuplicateKey.
	Create(ctx context.Context, tx *gorm.DB, submission *models.Submission) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Submission, error)
	ExistsByAssessmentAndStudent(ctx context.Context, tx *gorm.DB, assessmentID, studentID string) (bool, error)
	ListByStudent(ctx context.Context, tx *gorm.DB, studentID string, filters SubmissionFilters) ([]*models.Submission, int64, error)
	SetImprovementEvaluated(ctx context.Context, tx *gorm.DB, id uint, evaluated bool) error
}
