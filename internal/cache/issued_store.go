package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
)

// IssuedAssessmentStore keeps the answer key of generated assessments
// server-side for a limited time.
type IssuedAssessmentStore struct {
	helper *CacheHelper
	ttl    time.Duration
}

func NewIssuedAssessmentStore(cm *CacheManager, ttl time.Duration) *IssuedAssessmentStore {
	if ttl <= 0 {
		ttl = IssuedAssessmentCacheConfig.TTL
	}
	return &IssuedAssessmentStore{helper: cm.Issued, ttl: ttl}
}

func (s *IssuedAssessmentStore) Save(ctx context.Context, issued *models.IssuedAssessment) error {
	if issued == nil || issued.AssessmentID == "" {
		return fmt.Errorf("issued assessment requires an id")
	}
	return s.helper.Set(ctx, issued.AssessmentID, issued, s.ttl)
}

// Get returns ErrCacheNotFound once the entry expired and
// ErrCacheNotAvailable when Redis is not configured.
func (s *IssuedAssessmentStore) Get(ctx context.Context, assessmentID string) (*models.IssuedAssessment, error) {
	var issued models.IssuedAssessment
	if err := s.helper.Get(ctx, assessmentID, &issued); err != nil {
		return nil, err
	}
	return &issued, nil
}

// IsMiss reports whether err only means the entry is not there.
func IsMiss(err error) bool {
	return errors.Is(err, ErrCacheNotFound) || errors.Is(err, ErrCacheNotAvailable)
}
