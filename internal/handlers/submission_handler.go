package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/services"
	"github.com/SAP-F-2025/assessment-engine/internal/utils"
)

type SubmissionHandler struct {
	BaseHandler
	submissionService services.SubmissionService
	reportService     services.ReportService
}

func NewSubmissionHandler(
	submissionService services.SubmissionService,
	reportService services.ReportService,
	logger utils.Logger,
) *SubmissionHandler {
	return &SubmissionHandler{
		BaseHandler:       NewBaseHandler(logger),
		submissionService: submissionService,
		reportService:     reportService,
	}
}

// GetSubmission returns a stored submission with rebuilt statistics
// @Summary Get submission detail
// @Tags submissions
// @Produce json
// @Param id path uint true "Submission ID"
// @Success 200 {object} models.SubmissionResponse
// @Failure 404 {object} ErrorResponse
// @Router /submissions/{id} [get]
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Getting submission", "submission_id", id)

	detail, err := h.submissionService.GetDetail(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if !h.canView(c, detail.StudentID) {
		return
	}

	c.JSON(http.StatusOK, detail)
}

// ExportSubmission downloads a submission as an xlsx workbook
// @Summary Export submission
// @Tags submissions
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path uint true "Submission ID"
// @Router /submissions/{id}/export [get]
func (h *SubmissionHandler) ExportSubmission(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Exporting submission", "submission_id", id)

	detail, err := h.submissionService.GetDetail(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if !h.canView(c, detail.StudentID) {
		return
	}

	report, err := h.reportService.ExportSubmission(c.Request.Context(), detail)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	c.Data(http.StatusOK, report.ContentType, report.Data)
}

// SetImprovementEvaluated flags a submission as reviewed by the improvement workflow
// @Summary Mark improvement evaluated
// @Tags submissions
// @Accept json
// @Param id path uint true "Submission ID"
// @Param request body models.ImprovementEvaluatedRequest true "Flag"
// @Success 200 {object} SuccessResponse
// @Router /submissions/{id}/improvement-evaluated [put]
func (h *SubmissionHandler) SetImprovementEvaluated(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req models.ImprovementEvaluatedRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if req.Evaluated == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeValidation,
			Message: "Validation failed",
			Details: services.ValidationErrors{*services.NewValidationError("evaluated", "is required", nil)},
		})
		return
	}

	h.LogRequest(c, "Updating improvement flag", "submission_id", id, "evaluated", *req.Evaluated)

	if err := h.submissionService.SetImprovementEvaluated(c.Request.Context(), id, *req.Evaluated); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Submission updated successfully"})
}

// ListStudentSubmissions lists a student's submissions, newest first
// @Summary List student submissions
// @Tags submissions
// @Produce json
// @Param student_id path string true "Student ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} models.SubmissionListResponse
// @Router /students/{student_id}/submissions [get]
func (h *SubmissionHandler) ListStudentSubmissions(c *gin.Context) {
	studentID := c.Param("student_id")
	if studentID == "me" {
		studentID = h.getUserID(c)
	}
	if !h.canView(c, studentID) {
		return
	}

	limit := h.parseIntQuery(c, "limit", 20)
	offset := h.parseIntQuery(c, "offset", 0)

	h.LogRequest(c, "Listing submissions", "student_id", studentID, "limit", limit, "offset", offset)

	list, err := h.submissionService.ListByStudent(c.Request.Context(), studentID, limit, offset)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// canView lets students see only their own results. Writes the 403 itself.
func (h *SubmissionHandler) canView(c *gin.Context, studentID string) bool {
	role, err := GetUserRoleFromContext(c)
	if err != nil || role != models.RoleStudent || h.getUserID(c) == studentID {
		return true
	}
	c.JSON(http.StatusForbidden, ErrorResponse{
		Code:    CodeForbidden,
		Message: "Access denied to another student's submissions",
	})
	return false
}
