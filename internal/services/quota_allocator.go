package services

import (
	"fmt"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
)

// minPerTopicMixed keeps the 40/40/20 split meaningful
const minPerTopicMixed = 2

// checkQuestionCount validates the requested total against the topic count
func checkQuestionCount(topics, total int, mode models.DifficultyMode) error {
	if topics == 0 {
		return &QuestionCountError{Requested: total, Topics: topics, Message: "at least one topic is required"}
	}
	if total < topics {
		return &QuestionCountError{
			Requested: total,
			Topics:    topics,
			Message:   fmt.Sprintf("num_questions (%d) must be at least the number of topics (%d)", total, topics),
		}
	}
	if mode.IsMixed() && total < minPerTopicMixed*topics {
		return &QuestionCountError{
			Requested: total,
			Topics:    topics,
			Message: fmt.Sprintf("mixed difficulty needs at least %d questions per topic: num_questions (%d) must be at least %d",
				minPerTopicMixed, total, minPerTopicMixed*topics),
		}
	}
	return nil
}

type quotaAllocator struct {
	rng RandomSource
}

// Allocate gives every topic total/n questions and hands the remainder to
// topics picked through a random permutation.
func (a quotaAllocator) Allocate(topicIDs []uint, total int, mode models.DifficultyMode) (map[uint]int, error) {
	if err := checkQuestionCount(len(topicIDs), total, mode); err != nil {
		return nil, err
	}

	n := len(topicIDs)
	base, remainder := total/n, total%n

	quotas := make(map[uint]int, n)
	for _, id := range topicIDs {
		quotas[id] = base
	}

	if remainder > 0 {
		for _, idx := range a.rng.Perm(n)[:remainder] {
			quotas[topicIDs[idx]]++
		}
	}

	return quotas, nil
}
