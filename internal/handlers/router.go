package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/services"
	"github.com/SAP-F-2025/assessment-engine/internal/utils"
)

type HandlerManager struct {
	assessmentHandler *AssessmentHandler
	submissionHandler *SubmissionHandler
	auth              Authenticator
	health            func(ctx context.Context) error
}

func NewHandlerManager(serviceManager services.ServiceManager, auth Authenticator, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		assessmentHandler: NewAssessmentHandler(serviceManager.Generation(), serviceManager.Submission(), logger),
		submissionHandler: NewSubmissionHandler(serviceManager.Submission(), serviceManager.Report(), logger),
		auth:              auth,
		health:            serviceManager.HealthCheck,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	staff := hm.auth.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin)

	v1 := router.Group("/api/v1")
	v1.Use(hm.auth.AuthMiddleware())
	{
		assessments := v1.Group("/assessments")
		{
			assessments.POST("/generate", hm.assessmentHandler.GenerateAssessment)
			assessments.POST("/submit", hm.assessmentHandler.SubmitAssessment)
		}

		submissions := v1.Group("/submissions")
		{
			submissions.GET("/:id", hm.submissionHandler.GetSubmission)
			submissions.GET("/:id/export", hm.submissionHandler.ExportSubmission)
			submissions.PUT("/:id/improvement-evaluated", staff, hm.submissionHandler.SetImprovementEvaluated)
		}

		students := v1.Group("/students")
		{
			students.GET("/:student_id/submissions", hm.submissionHandler.ListStudentSubmissions)
		}
	}

	router.GET("/health", hm.healthCheck)
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := hm.health(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": "assessment-engine",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "assessment-engine",
	})
}
