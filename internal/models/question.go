package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
)

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "EASY"
	DifficultyMedium DifficultyLevel = "MEDIUM"
	DifficultyHard   DifficultyLevel = "HARD"
)

// DifficultyLevels lists every level in ascending order.
var DifficultyLevels = []DifficultyLevel{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficultyLevel accepts a level name in any case.
func ParseDifficultyLevel(s string) (DifficultyLevel, error) {
	level := DifficultyLevel(strings.ToUpper(strings.TrimSpace(s)))
	switch level {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return level, nil
	}
	return "", fmt.Errorf("unknown difficulty level %q", s)
}

// DifficultyMode is either "mixed" or a single level name.
type DifficultyMode string

const DifficultyMixed DifficultyMode = "mixed"

func (m DifficultyMode) IsMixed() bool {
	return strings.EqualFold(string(m), string(DifficultyMixed))
}

// Level resolves a single-difficulty mode to its level.
func (m DifficultyMode) Level() (DifficultyLevel, error) {
	if m.IsMixed() {
		return "", fmt.Errorf("mixed mode has no single level")
	}
	return ParseDifficultyLevel(string(m))
}

// Option is one answer choice. Options are stored inline on the question as JSONB.
type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
	Order     int    `json:"order"`
}

type Question struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	TopicID    uint            `json:"topic_id" gorm:"not null;index:idx_question_pool,priority:1"`
	Type       QuestionType    `json:"type" gorm:"not null;default:multiple_choice"`
	Text       string          `json:"text" gorm:"type:text;not null"`
	Difficulty DifficultyLevel `json:"difficulty" gorm:"not null;size:10;index:idx_question_pool,priority:2"`

	// Only bank questions are eligible for generated assessments
	InQuestionBank bool `json:"in_question_bank" gorm:"default:false;index:idx_question_pool,priority:3"`

	Options datatypes.JSON `json:"options" gorm:"type:jsonb"` // []Option

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Topic *Topic `json:"topic,omitempty" gorm:"foreignKey:TopicID"`
}

func (Question) TableName() string {
	return "questions"
}

// DecodeOptions returns the options sorted as stored.
func (q *Question) DecodeOptions() ([]Option, error) {
	if len(q.Options) == 0 {
		return []Option{}, nil
	}
	var options []Option
	if err := json.Unmarshal(q.Options, &options); err != nil {
		return nil, fmt.Errorf("question %d has malformed options: %w", q.ID, err)
	}
	return options, nil
}

func (q *Question) SetOptions(options []Option) error {
	data, err := json.Marshal(options)
	if err != nil {
		return err
	}
	q.Options = datatypes.JSON(data)
	return nil
}

// FindOption looks up an option by id.
func FindOption(options []Option, id string) (Option, bool) {
	for _, o := range options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// CorrectOptionID returns the id of the first correct option, or "" if none is flagged.
func CorrectOptionID(options []Option) string {
	for _, o := range options {
		if o.IsCorrect {
			return o.ID
		}
	}
	return ""
}
