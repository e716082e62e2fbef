package repositories

import "context"

// Repository aggregates every repository the engine reads from or writes to
type Repository interface {
	// Catalog (read-only for the engine)
	Subject() SubjectRepository
	Topic() TopicRepository
	Question() QuestionRepository

	// Grading results
	Submission() SubmissionRepository

	// Identity provider (read-only)
	User() UserRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
