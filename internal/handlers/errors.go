package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/assessment-engine/internal/services"
)

func (h BaseHandler) handleServiceError(c *gin.Context, err error) {
	// Typed errors first, they carry the details
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeValidation,
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	var countErr *services.QuestionCountError
	if errors.As(err, &countErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeInvalidQuestionCount,
			Message: countErr.Message,
			Details: map[string]interface{}{
				"requested": countErr.Requested,
				"topics":    countErr.Topics,
			},
		})
		return
	}

	var insufficientErr *services.InsufficientQuestionsError
	if errors.As(err, &insufficientErr) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    CodeInsufficientQuestions,
			Message: insufficientErr.Error(),
			Details: map[string]interface{}{
				"topic_id":   insufficientErr.TopicID,
				"topic_name": insufficientErr.TopicName,
				"requested":  insufficientErr.Requested,
				"available":  insufficientErr.Available,
				"difficulty": insufficientErr.Difficulty,
			},
		})
		return
	}

	var notFoundErr *services.NotFoundError
	if errors.As(err, &notFoundErr) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    CodeResourceNotFound,
			Message: notFoundErr.Error(),
			Details: map[string]interface{}{
				"resource": notFoundErr.Resource,
				"id":       notFoundErr.ID,
			},
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrDuplicateSubmission):
		c.JSON(http.StatusConflict, ErrorResponse{
			Code:    CodeDuplicateSubmission,
			Message: "Assessment already submitted by this student",
		})
	case errors.Is(err, services.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    CodeResourceNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidQuestionCount):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeInvalidQuestionCount,
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrInsufficientQuestions):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    CodeInsufficientQuestions,
			Message: err.Error(),
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    CodeInternal,
			Message: "Internal server error",
		})
	}
}
