package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/services"
	"github.com/SAP-F-2025/assessment-engine/internal/utils"
)

type AssessmentHandler struct {
	BaseHandler
	generationService services.GenerationService
	submissionService services.SubmissionService
}

func NewAssessmentHandler(
	generationService services.GenerationService,
	submissionService services.SubmissionService,
	logger utils.Logger,
) *AssessmentHandler {
	return &AssessmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		generationService: generationService,
		submissionService: submissionService,
	}
}

// GenerateAssessment builds a randomized assessment from the question bank
// @Summary Generate assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Param request body models.GenerateAssessmentRequest true "Generation request"
// @Success 201 {object} models.GeneratedAssessmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /assessments/generate [post]
func (h *AssessmentHandler) GenerateAssessment(c *gin.Context) {
	var req models.GenerateAssessmentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Generating assessment", "subject_id", req.SubjectID, "topics", len(req.TopicIDs))

	assessment, err := h.generationService.Generate(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, assessment)
}

// SubmitAssessment grades a whole submission
// @Summary Submit assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Param request body models.SubmitAssessmentRequest true "Answers"
// @Success 201 {object} models.SubmissionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /assessments/submit [post]
func (h *AssessmentHandler) SubmitAssessment(c *gin.Context) {
	var req models.SubmitAssessmentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	// Students can only submit as themselves
	if role, err := GetUserRoleFromContext(c); err == nil && role == models.RoleStudent {
		req.StudentID = h.getUserID(c)
	}

	h.LogRequest(c, "Submitting assessment", "assessment_id", req.AssessmentID, "student_id", req.StudentID)

	submission, err := h.submissionService.Submit(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, submission)
}
