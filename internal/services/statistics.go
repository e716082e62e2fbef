package services

import (
	"slices"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
)

// Performance thresholds, inclusive on the lower bound
const (
	excellentThreshold = 90.0
	goodThreshold      = 75.0
	averageThreshold   = 50.0
)

// percentage is 100*part/whole without rounding
func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return 100 * float64(part) / float64(whole)
}

func ClassifyPerformance(score float64) models.PerformanceLevel {
	switch {
	case score >= excellentThreshold:
		return models.PerformanceExcellent
	case score >= goodThreshold:
		return models.PerformanceGood
	case score >= averageThreshold:
		return models.PerformanceAverage
	default:
		return models.PerformanceNeedsImprovement
	}
}

// foldBuckets reduces items into per-key counters. The result depends only on items.
func foldBuckets[T any, K comparable](items []T, key func(T) K, correct func(T) bool) map[K]models.BucketStats {
	buckets := make(map[K]models.BucketStats)
	for _, item := range items {
		k := key(item)
		b := buckets[k]
		b.Total++
		if correct(item) {
			b.Correct++
		}
		buckets[k] = b
	}
	for k, b := range buckets {
		b.Accuracy = percentage(b.Correct, b.Total)
		buckets[k] = b
	}
	return buckets
}

// Aggregate builds per-topic and per-difficulty statistics from answer
// records. Grading and later reads both go through it.
func Aggregate(records []models.AnswerRecord) models.Statistics {
	isCorrect := func(r models.AnswerRecord) bool { return r.IsCorrect }
	return models.Statistics{
		ByTopic:      foldBuckets(records, func(r models.AnswerRecord) uint { return r.TopicID }, isCorrect),
		ByDifficulty: foldBuckets(records, func(r models.AnswerRecord) models.DifficultyLevel { return r.Difficulty }, isCorrect),
	}
}

// CountDistribution counts selected questions per topic and per difficulty.
// Requested topics and all levels are always present, possibly with zero.
func CountDistribution(questions []models.AssessmentQuestion, topicIDs []uint) models.Distribution {
	never := func(models.AssessmentQuestion) bool { return false }
	byTopic := foldBuckets(questions, func(q models.AssessmentQuestion) uint { return q.Question.TopicID }, never)
	byLevel := foldBuckets(questions, func(q models.AssessmentQuestion) models.DifficultyLevel { return q.Question.Difficulty }, never)

	dist := models.Distribution{
		ByTopic:      make(map[uint]int, len(topicIDs)),
		ByDifficulty: make(map[models.DifficultyLevel]int, len(models.DifficultyLevels)),
	}
	for _, id := range topicIDs {
		dist.ByTopic[id] = 0
	}
	for _, level := range models.DifficultyLevels {
		dist.ByDifficulty[level] = 0
	}
	for id, b := range byTopic {
		dist.ByTopic[id] = b.Total
	}
	for level, b := range byLevel {
		dist.ByDifficulty[level] = b.Total
	}
	return dist
}

// weakTopics lists topics below the average threshold, in ascending id order
func weakTopics(stats models.Statistics) []uint {
	out := make([]uint, 0)
	for id, b := range stats.ByTopic {
		if b.Accuracy < averageThreshold {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}
