package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
)

func TestSplitMixed(t *testing.T) {
	tests := []struct {
		count int
		want  DifficultySplit
	}{
		{count: 1, want: DifficultySplit{Easy: 0, Medium: 0, Hard: 1}},
		{count: 2, want: DifficultySplit{Easy: 1, Medium: 1, Hard: 0}},
		{count: 3, want: DifficultySplit{Easy: 1, Medium: 1, Hard: 1}},
		{count: 4, want: DifficultySplit{Easy: 2, Medium: 2, Hard: 0}},
		{count: 5, want: DifficultySplit{Easy: 2, Medium: 2, Hard: 1}},
		{count: 9, want: DifficultySplit{Easy: 4, Medium: 4, Hard: 1}},
		{count: 10, want: DifficultySplit{Easy: 4, Medium: 4, Hard: 2}},
	}
	for _, tt := range tests {
		got := SplitMixed(tt.count)
		if got != tt.want {
			t.Errorf("SplitMixed(%d) = %+v, want %+v", tt.count, got, tt.want)
		}
		if got.Easy+got.Medium+got.Hard != tt.count {
			t.Errorf("SplitMixed(%d) sums to %d", tt.count, got.Easy+got.Medium+got.Hard)
		}
	}
}

func countLevels(questions []*models.Question) map[models.DifficultyLevel]int {
	out := make(map[models.DifficultyLevel]int)
	for _, q := range questions {
		out[q.Difficulty]++
	}
	return out
}

func assertDistinct(t *testing.T, questions []*models.Question) {
	t.Helper()
	seen := make(map[uint]bool, len(questions))
	for _, q := range questions {
		if seen[q.ID] {
			t.Fatalf("question %d selected twice", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestDifficultySelector_Select(t *testing.T) {
	topic := &models.Topic{ID: 1, SubjectID: 1, Name: "Fractions"}

	tests := []struct {
		name               string
		easy, medium, hard int
		count              int
		mode               models.DifficultyMode
		want               map[models.DifficultyLevel]int
	}{
		{
			name: "mixed without fallback",
			easy: 5, medium: 5, hard: 5,
			count: 5,
			mode:  models.DifficultyMixed,
			want:  map[models.DifficultyLevel]int{models.DifficultyEasy: 2, models.DifficultyMedium: 2, models.DifficultyHard: 1},
		},
		{
			name: "single level without fallback",
			easy: 1, medium: 6, hard: 1,
			count: 4,
			mode:  "medium",
			want:  map[models.DifficultyLevel]int{models.DifficultyMedium: 4},
		},
		{
			name: "single level falls back to the other pools",
			easy: 2, medium: 2, hard: 2,
			count: 5,
			mode:  "HARD",
		},
		{
			name: "mixed hard bucket empty",
			easy: 3, medium: 2, hard: 0,
			count: 5,
			mode:  models.DifficultyMixed,
			want:  map[models.DifficultyLevel]int{models.DifficultyEasy: 3, models.DifficultyMedium: 2},
		},
		{
			name: "union exactly covers quota",
			easy: 1, medium: 1, hard: 1,
			count: 3,
			mode:  "EASY",
			want:  map[models.DifficultyLevel]int{models.DifficultyEasy: 1, models.DifficultyMedium: 1, models.DifficultyHard: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			repo.seedPools(t, topic.ID, 1, tt.easy, tt.medium, tt.hard)

			s := &difficultySelector{catalog: repo.Question(), rng: NewSeededRandomSource(7)}
			got, err := s.Select(context.Background(), topic, tt.count, tt.mode)
			if err != nil {
				t.Fatalf("Select() error = %v", err)
			}
			if len(got) != tt.count {
				t.Fatalf("Select() returned %d questions, want %d", len(got), tt.count)
			}
			assertDistinct(t, got)

			if tt.want != nil {
				levels := countLevels(got)
				for level, n := range tt.want {
					if levels[level] != n {
						t.Errorf("%s = %d, want %d (got %v)", level, levels[level], n, levels)
					}
				}
			}
		})
	}
}

func TestDifficultySelector_FallbackKeepsOwnLevelFirst(t *testing.T) {
	repo := newFakeRepository()
	repo.seedPools(t, 1, 1, 4, 4, 2)
	topic := &models.Topic{ID: 1, Name: "Geometry"}

	s := &difficultySelector{catalog: repo.Question(), rng: NewSeededRandomSource(1)}
	got, err := s.Select(context.Background(), topic, 5, "HARD")
	if err != nil {
		t.Fatal(err)
	}
	if levels := countLevels(got); levels[models.DifficultyHard] != 2 {
		t.Errorf("expected both HARD questions to be used, got %v", levels)
	}
	assertDistinct(t, got)
}

func TestDifficultySelector_Insufficient(t *testing.T) {
	repo := newFakeRepository()
	repo.seedPools(t, 3, 1, 1, 1, 1)
	topic := &models.Topic{ID: 3, Name: "Algebra"}

	s := &difficultySelector{catalog: repo.Question(), rng: NewSeededRandomSource(3)}
	_, err := s.Select(context.Background(), topic, 4, models.DifficultyMixed)
	if !errors.Is(err, ErrInsufficientQuestions) {
		t.Fatalf("Select() error = %v, want ErrInsufficientQuestions", err)
	}
	var ie *InsufficientQuestionsError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *InsufficientQuestionsError, got %T", err)
	}
	if ie.TopicID != 3 || ie.TopicName != "Algebra" || ie.Requested != 4 || ie.Available != 3 {
		t.Errorf("unexpected error detail: %+v", ie)
	}
}

func TestDifficultySelector_IgnoresNonBankQuestions(t *testing.T) {
	repo := newFakeRepository()
	repo.seedPools(t, 1, 1, 2, 0, 0)
	repo.questions[1].InQuestionBank = false
	topic := &models.Topic{ID: 1, Name: "Sets"}

	s := &difficultySelector{catalog: repo.Question(), rng: NewSeededRandomSource(9)}
	if _, err := s.Select(context.Background(), topic, 2, "EASY"); !errors.Is(err, ErrInsufficientQuestions) {
		t.Fatalf("Select() error = %v, want ErrInsufficientQuestions", err)
	}
}

func TestDifficultySelector_LoadsEachPoolOnce(t *testing.T) {
	repo := newFakeRepository()
	repo.seedPools(t, 1, 1, 1, 1, 6)
	topic := &models.Topic{ID: 1, Name: "Ratios"}

	s := &difficultySelector{catalog: repo.Question(), rng: NewSeededRandomSource(5)}
	if _, err := s.Select(context.Background(), topic, 8, models.DifficultyMixed); err != nil {
		t.Fatal(err)
	}
	if repo.poolCalls != 3 {
		t.Errorf("GetPool called %d times, want 3", repo.poolCalls)
	}
}

func TestDifficultySelector_InvalidMode(t *testing.T) {
	repo := newFakeRepository()
	s := &difficultySelector{catalog: repo.Question(), rng: NewSeededRandomSource(5)}
	_, err := s.Select(context.Background(), &models.Topic{ID: 1}, 2, "EXPERT")
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Select() error = %v, want ValidationErrors", err)
	}
}
