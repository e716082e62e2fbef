package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/repositories"
)

type SubjectPostgreSQL struct {
	db *gorm.DB
}

func NewSubjectPostgreSQL(db *gorm.DB) repositories.SubjectRepository {
	return &SubjectPostgreSQL{db: db}
}

func (s *SubjectPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Subject, error) {
	var subject models.Subject
	if err := s.getDB(tx).WithContext(ctx).First(&subject, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get subject %d: %w", id, translateError(err))
	}
	return &subject, nil
}

func (s *SubjectPostgreSQL) ExistsByID(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	var count int64
	if err := s.getDB(tx).WithContext(ctx).Model(&models.Subject{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check subject %d: %w", id, err)
	}
	return count > 0, nil
}

func (s *SubjectPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return s.db
}

type TopicPostgreSQL struct {
	db *gorm.DB
}

func NewTopicPostgreSQL(db *gorm.DB) repositories.TopicRepository {
	return &TopicPostgreSQL{db: db}
}

func (t *TopicPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Topic, error) {
	var topic models.Topic
	if err := t.getDB(tx).WithContext(ctx).First(&topic, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get topic %d: %w", id, translateError(err))
	}
	return &topic, nil
}

func (t *TopicPostgreSQL) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*models.Topic, error) {
	topics := make([]*models.Topic, 0, len(ids))
	if len(ids) == 0 {
		return topics, nil
	}
	if err := t.getDB(tx).WithContext(ctx).Where("id IN ?", ids).Find(&topics).Error; err != nil {
		return nil, fmt.Errorf("failed to get topics: %w", err)
	}
	return topics, nil
}

func (t *TopicPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return t.db
}
