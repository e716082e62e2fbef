package services

import (
	"context"
	"fmt"
	"math"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/repositories"
)

const (
	easyShare   = 0.4
	mediumShare = 0.4
)

// DifficultySplit is the per-level share of one topic's quota
type DifficultySplit struct {
	Easy   int
	Medium int
	Hard   int
}

// SplitMixed applies the 40/40/20 ratio. Rounding overshoot is taken from
// MEDIUM; EASY is never reduced.
func SplitMixed(count int) DifficultySplit {
	easy := int(math.Round(float64(count) * easyShare))
	medium := int(math.Round(float64(count) * mediumShare))
	hard := count - easy - medium
	if hard < 0 {
		medium += hard
		hard = 0
	}
	return DifficultySplit{Easy: easy, Medium: medium, Hard: hard}
}

func (s DifficultySplit) counts() map[models.DifficultyLevel]int {
	return map[models.DifficultyLevel]int{
		models.DifficultyEasy:   s.Easy,
		models.DifficultyMedium: s.Medium,
		models.DifficultyHard:   s.Hard,
	}
}

type difficultySelector struct {
	catalog repositories.QuestionRepository
	rng     RandomSource
}

// topicSelection tracks what has been drawn for one topic. Pools are fetched
// at most once per level.
type topicSelection struct {
	topic    *models.Topic
	quota    int
	selected map[uint]struct{}
	picked   []*models.Question
	pools    map[models.DifficultyLevel][]*models.Question
}

// Select draws exactly count distinct questions for the topic or fails with
// *InsufficientQuestionsError.
func (s *difficultySelector) Select(ctx context.Context, topic *models.Topic, count int, mode models.DifficultyMode) ([]*models.Question, error) {
	needs, err := bucketNeeds(count, mode)
	if err != nil {
		return nil, err
	}

	sel := &topicSelection{
		topic:    topic,
		quota:    count,
		selected: make(map[uint]struct{}, count),
		picked:   make([]*models.Question, 0, count),
		pools:    make(map[models.DifficultyLevel][]*models.Question, len(models.DifficultyLevels)),
	}

	for _, level := range models.DifficultyLevels {
		need := needs[level]
		if need == 0 {
			continue
		}
		if err := s.fill(ctx, sel, level, need); err != nil {
			return nil, err
		}
	}

	return sel.picked, nil
}

func bucketNeeds(count int, mode models.DifficultyMode) (map[models.DifficultyLevel]int, error) {
	if mode.IsMixed() {
		return SplitMixed(count).counts(), nil
	}
	level, err := mode.Level()
	if err != nil {
		return nil, ValidationErrors{*NewValidationError("difficulty", err.Error(), string(mode))}
	}
	return map[models.DifficultyLevel]int{level: count}, nil
}

// fill satisfies one bucket from its own level first, then from the other
// two levels in random order.
func (s *difficultySelector) fill(ctx context.Context, sel *topicSelection, level models.DifficultyLevel, need int) error {
	available, err := s.available(ctx, sel, level)
	if err != nil {
		return err
	}
	if len(available) >= need {
		sel.take(s.sample(available, need))
		return nil
	}

	sel.take(available)
	need -= len(available)

	others := otherLevels(level)
	s.rng.Shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })

	for _, other := range others {
		available, err := s.available(ctx, sel, other)
		if err != nil {
			return err
		}
		n := min(need, len(available))
		sel.take(s.sample(available, n))
		need -= n
		if need == 0 {
			return nil
		}
	}

	// Every pool of the topic is exhausted, so the selection is the whole union.
	return &InsufficientQuestionsError{
		TopicID:    sel.topic.ID,
		TopicName:  sel.topic.Name,
		Requested:  sel.quota,
		Available:  len(sel.selected),
		Difficulty: level,
	}
}

// available returns the level's pool minus questions already selected for the topic
func (s *difficultySelector) available(ctx context.Context, sel *topicSelection, level models.DifficultyLevel) ([]*models.Question, error) {
	pool, ok := sel.pools[level]
	if !ok {
		var err error
		pool, err = s.catalog.GetPool(ctx, nil, sel.topic.ID, level)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s questions for topic %d: %w", level, sel.topic.ID, err)
		}
		sel.pools[level] = pool
	}

	out := make([]*models.Question, 0, len(pool))
	for _, q := range pool {
		if _, used := sel.selected[q.ID]; !used {
			out = append(out, q)
		}
	}
	return out, nil
}

// sample draws k questions uniformly without replacement
func (s *difficultySelector) sample(pool []*models.Question, k int) []*models.Question {
	if k <= 0 {
		return nil
	}
	out := make([]*models.Question, 0, k)
	for _, idx := range s.rng.Perm(len(pool))[:k] {
		out = append(out, pool[idx])
	}
	return out
}

func (sel *topicSelection) take(questions []*models.Question) {
	for _, q := range questions {
		if _, dup := sel.selected[q.ID]; dup {
			continue
		}
		sel.selected[q.ID] = struct{}{}
		sel.picked = append(sel.picked, q)
	}
}

func otherLevels(level models.DifficultyLevel) []models.DifficultyLevel {
	others := make([]models.DifficultyLevel, 0, len(models.DifficultyLevels)-1)
	for _, l := range models.DifficultyLevels {
		if l != level {
			others = append(others, l)
		}
	}
	return others
}
