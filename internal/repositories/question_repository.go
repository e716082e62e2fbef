package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
)

type SubjectRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Subject, error)
	ExistsByID(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
}

type TopicRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Topic, error)
	// GetByIDs returns the topics that exist, in no particular order.
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*models.Topic, error)
}

// QuestionRepository is the engine's view of the question catalog
type QuestionRepository interface {
	// GetPool returns every question-bank question of the topic at the given
	// difficulty, ordered by id.
	GetPool(ctx context.Context, tx *gorm.DB, topicID uint, difficulty models.DifficultyLevel) ([]*models.Question, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Question, error)
	// GetByIDs returns the questions that exist, in no particular order.
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*models.Question, error)
}
