package cache

import (
	"context"
	"testing"
	"time"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
)

func TestIssuedAssessmentStore(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewIssuedAssessmentStore(NewCacheManager(client), 10*time.Minute)
	ctx := context.Background()

	issued := &models.IssuedAssessment{
		AssessmentID: "a-1",
		SubjectID:    3,
		AnswerKey:    map[uint]string{11: "b", 12: "a"},
		IssuedAt:     time.Now().UTC(),
	}
	if err := store.Save(ctx, issued); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Get(ctx, "a-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.SubjectID != 3 || got.AnswerKey[11] != "b" || !got.Contains(12) || got.Contains(13) {
		t.Errorf("unexpected issued assessment %+v", got)
	}

	mr.FastForward(11 * time.Minute)
	if _, err := store.Get(ctx, "a-1"); !IsMiss(err) {
		t.Errorf("expected miss after ttl, got %v", err)
	}

	if err := store.Save(ctx, &models.IssuedAssessment{}); err == nil {
		t.Errorf("expected error for empty id")
	}
}

func TestIssuedAssessmentStore_WithoutRedis(t *testing.T) {
	store := NewIssuedAssessmentStore(NewCacheManager(nil), 0)
	ctx := context.Background()

	if err := store.Save(ctx, &models.IssuedAssessment{AssessmentID: "x"}); err != nil {
		t.Errorf("Save without redis should be a no-op, got %v", err)
	}
	if _, err := store.Get(ctx, "x"); !IsMiss(err) {
		t.Errorf("expected miss without redis, got %v", err)
	}
}
