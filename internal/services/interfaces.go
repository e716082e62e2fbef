package services

import (
	"context"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
)

// GenerationService builds randomized assessments from the question bank
type GenerationService interface {
	Generate(ctx context.Context, req *models.GenerateAssessmentRequest) (*models.GeneratedAssessmentResponse, error)
}

// SubmissionService grades submissions and serves stored results
type SubmissionService interface {
	Submit(ctx context.Context, req *models.SubmitAssessmentRequest) (*models.SubmissionResponse, error)
	GetDetail(ctx context.Context, submissionID uint) (*models.SubmissionResponse, error)
	ListByStudent(ctx context.Context, studentID string, limit, offset int) (*models.SubmissionListResponse, error)
	SetImprovementEvaluated(ctx context.Context, submissionID uint, evaluated bool) error
}

// ReportService renders graded submissions as spreadsheets
type ReportService interface {
	ExportSubmission(ctx context.Context, detail *models.SubmissionResponse) (*ExportedReport, error)
}

type ExportedReport struct {
	Filename    string
	ContentType string
	Data        []byte
}

// IssuedAssessmentStore keeps answer keys of generated assessments
type IssuedAssessmentStore interface {
	Save(ctx context.Context, issued *models.IssuedAssessment) error
	Get(ctx context.Context, assessmentID string) (*models.IssuedAssessment, error)
}

type ServiceManager interface {
	Initialize(ctx context.Context) error

	Generation() GenerationService
	Submission() SubmissionService
	Report() ReportService

	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
