package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/assessment-engine/internal/cache"
	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/repositories"
)

type QuestionPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewQuestionPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.QuestionRepository {
	return &QuestionPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

// GetPool retrieves the bank questions of one (topic, difficulty) pair with caching
func (q *QuestionPostgreSQL) GetPool(ctx context.Context, tx *gorm.DB, topicID uint, difficulty models.DifficultyLevel) ([]*models.Question, error) {
	db := q.getDB(tx)
	cacheKey := fmt.Sprintf("pool:%d:%s", topicID, difficulty)
	var pool []*models.Question

	err := q.cacheManager.Catalog.CacheOrExecute(ctx, cacheKey, &pool, cache.CatalogCacheConfig.TTL, func() (interface{}, error) {
		dbPool := make([]*models.Question, 0)
		if err := db.WithContext(ctx).
			Where("topic_id = ? AND difficulty = ? AND in_question_bank = ?", topicID, difficulty, true).
			Order("id ASC").
			Find(&dbPool).Error; err != nil {
			return nil, fmt.Errorf("failed to get question pool for topic %d: %w", topicID, err)
		}
		return dbPool, nil
	})
	if err != nil {
		return nil, err
	}

	return pool, nil
}

// GetByID reads straight from the database; grading never trusts cached answer keys
func (q *QuestionPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Question, error) {
	var question models.Question
	if err := q.getDB(tx).WithContext(ctx).First(&question, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get question %d: %w", id, translateError(err))
	}
	return &question, nil
}

func (q *QuestionPostgreSQL) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*models.Question, error) {
	questions := make([]*models.Question, 0, len(ids))
	if len(ids) == 0 {
		return questions, nil
	}
	if err := q.getDB(tx).WithContext(ctx).Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	return questions, nil
}

func (q *QuestionPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return q.db
}
