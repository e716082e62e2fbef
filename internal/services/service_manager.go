package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SAP-F-2025/assessment-engine/internal/events"
	"github.com/SAP-F-2025/assessment-engine/internal/repositories"
	"github.com/SAP-F-2025/assessment-engine/internal/validator"
)

// ServiceManagerDeps holds everything the services are built from
type ServiceManagerDeps struct {
	Repo           repositories.Repository
	Issued         IssuedAssessmentStore
	Random         RandomSource
	EventPublisher events.EventPublisher
	Logger         *slog.Logger
	Validator      *validator.Validator
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	deps ServiceManagerDeps

	// Service instances
	generationService GenerationService
	submissionService SubmissionService
	reportService     ReportService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

func NewServiceManager(deps ServiceManagerDeps) ServiceManager {
	if deps.Random == nil {
		deps.Random = NewRandomSource()
	}
	if deps.Validator == nil {
		deps.Validator = validator.New()
	}
	return &serviceManager{deps: deps}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	d := sm.deps
	if d.Repo == nil || d.Issued == nil || d.EventPublisher == nil || d.Logger == nil {
		return fmt.Errorf("failed to initialize services: missing dependency")
	}

	d.Logger.Info("Initializing service manager")

	sm.generationService = NewGenerationService(d.Repo, d.Issued, d.Random, d.Logger, d.Validator)
	sm.submissionService = NewSubmissionService(d.Repo, d.Issued, d.EventPublisher, d.Logger, d.Validator)
	sm.reportService = NewReportService(d.Logger)

	sm.initialized = true
	d.Logger.Info("Service manager initialized successfully")

	return nil
}

// Service getters
func (sm *serviceManager) Generation() GenerationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.generationService
}

func (sm *serviceManager) Submission() SubmissionService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.submissionService
}

func (sm *serviceManager) Report() ReportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.reportService
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.deps.Repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.deps.Logger.Info("Shutting down service manager")

	var shutdownErr error
	if err := sm.deps.EventPublisher.Close(); err != nil {
		shutdownErr = fmt.Errorf("failed to close event publisher: %w", err)
	}

	sm.shutdown = true
	sm.deps.Logger.Info("Service manager shut down")

	return shutdownErr
}
