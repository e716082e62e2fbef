package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/assessment-engine/internal/cache"
	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/repositories"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeRepository is an in-memory Repository. Submission uniqueness is
// enforced under its lock the way the database index does.
type fakeRepository struct {
	mu sync.Mutex

	subjects    map[uint]*models.Subject
	topics      map[uint]*models.Topic
	questions   map[uint]*models.Question
	users       map[string]models.UserRole
	submissions map[uint]*models.Submission
	nextID      uint

	poolCalls int
	poolErr   error
	pingErr   error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		subjects:    make(map[uint]*models.Subject),
		topics:      make(map[uint]*models.Topic),
		questions:   make(map[uint]*models.Question),
		users:       make(map[string]models.UserRole),
		submissions: make(map[uint]*models.Submission),
	}
}

func (r *fakeRepository) addSubject(id uint) {
	r.subjects[id] = &models.Subject{ID: id, Name: "Subject"}
}

func (r *fakeRepository) addTopic(id, subjectID uint, name string) {
	r.topics[id] = &models.Topic{ID: id, SubjectID: subjectID, Name: name}
}

// addQuestion stores a bank question whose option "<id>-a" is correct
func (r *fakeRepository) addQuestion(t *testing.T, id, topicID uint, level models.DifficultyLevel) {
	t.Helper()
	q := &models.Question{ID: id, TopicID: topicID, Difficulty: level, Text: "question", InQuestionBank: true}
	err := q.SetOptions([]models.Option{
		{ID: optionID(id, "a"), Text: "right", IsCorrect: true, Order: 1},
		{ID: optionID(id, "b"), Text: "wrong", Order: 2},
		{ID: optionID(id, "c"), Text: "also wrong", Order: 3},
	})
	if err != nil {
		t.Fatalf("SetOptions: %v", err)
	}
	r.questions[id] = q
}

func optionID(questionID uint, suffix string) string {
	return fmt.Sprintf("q%d-%s", questionID, suffix)
}

// seedPools adds count questions per level for the topic, ids starting at firstID
func (r *fakeRepository) seedPools(t *testing.T, topicID, firstID uint, easy, medium, hard int) uint {
	t.Helper()
	id := firstID
	counts := []int{easy, medium, hard}
	for i, level := range models.DifficultyLevels {
		for n := 0; n < counts[i]; n++ {
			r.addQuestion(t, id, topicID, level)
			id++
		}
	}
	return id
}

func (r *fakeRepository) Subject() repositories.SubjectRepository       { return fakeSubjects{r} }
func (r *fakeRepository) Topic() repositories.TopicRepository           { return fakeTopics{r} }
func (r *fakeRepository) Question() repositories.QuestionRepository     { return fakeQuestions{r} }
func (r *fakeRepository) Submission() repositories.SubmissionRepository { return fakeSubmissions{r} }
func (r *fakeRepository) User() repositories.UserRepository             { return fakeUsers{r} }

func (r *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(r)
}

func (r *fakeRepository) Ping(ctx context.Context) error { return r.pingErr }
func (r *fakeRepository) Close() error                   { return nil }

type fakeSubjects struct{ r *fakeRepository }

func (f fakeSubjects) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Subject, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	if s, ok := f.r.subjects[id]; ok {
		return s, nil
	}
	return nil, repositories.ErrNotFound
}

func (f fakeSubjects) ExistsByID(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	_, ok := f.r.subjects[id]
	return ok, nil
}

type fakeTopics struct{ r *fakeRepository }

func (f fakeTopics) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Topic, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	if t, ok := f.r.topics[id]; ok {
		return t, nil
	}
	return nil, repositories.ErrNotFound
}

func (f fakeTopics) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*models.Topic, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	var out []*models.Topic
	for _, id := range ids {
		if t, ok := f.r.topics[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeQuestions struct{ r *fakeRepository }

func (f fakeQuestions) GetPool(ctx context.Context, tx *gorm.DB, topicID uint, difficulty models.DifficultyLevel) ([]*models.Question, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	f.r.poolCalls++
	if f.r.poolErr != nil {
		return nil, f.r.poolErr
	}
	var out []*models.Question
	for _, q := range f.r.questions {
		if q.TopicID == topicID && q.Difficulty == difficulty && q.InQuestionBank {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeQuestions) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Question, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	if q, ok := f.r.questions[id]; ok {
		return q, nil
	}
	return nil, repositories.ErrNotFound
}

func (f fakeQuestions) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*models.Question, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	var out []*models.Question
	for _, id := range ids {
		if q, ok := f.r.questions[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

type fakeSubmissions struct{ r *fakeRepository }

func (f fakeSubmissions) Create(ctx context.Context, tx *gorm.DB, submission *models.Submission) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	for _, s := range f.r.submissions {
		if s.AssessmentID == submission.AssessmentID && s.StudentID == submission.StudentID {
			return repositories.ErrDuplicateKey
		}
	}
	f.r.nextID++
	submission.ID = f.r.nextID
	stored := *submission
	stored.Answers = append([]models.AnswerRecord(nil), submission.Answers...)
	for i := range stored.Answers {
		stored.Answers[i].SubmissionID = stored.ID
	}
	f.r.submissions[stored.ID] = &stored
	return nil
}

func (f fakeSubmissions) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Submission, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	s, ok := f.r.submissions[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := *s
	out.Answers = append([]models.AnswerRecord(nil), s.Answers...)
	return &out, nil
}

func (f fakeSubmissions) ExistsByAssessmentAndStudent(ctx context.Context, tx *gorm.DB, assessmentID, studentID string) (bool, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	for _, s := range f.r.submissions {
		if s.AssessmentID == assessmentID && s.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeSubmissions) ListByStudent(ctx context.Context, tx *gorm.DB, studentID string, filters repositories.SubmissionFilters) ([]*models.Submission, int64, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	var all []*models.Submission
	for _, s := range f.r.submissions {
		if s.StudentID == studentID {
			all = append(all, s)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	if filters.Offset >= len(all) {
		return nil, total, nil
	}
	all = all[filters.Offset:]
	if filters.Limit > 0 && filters.Limit < len(all) {
		all = all[:filters.Limit]
	}
	return all, total, nil
}

func (f fakeSubmissions) SetImprovementEvaluated(ctx context.Context, tx *gorm.DB, id uint, evaluated bool) error {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	s, ok := f.r.submissions[id]
	if !ok {
		return repositories.ErrNotFound
	}
	s.ImprovementEvaluated = evaluated
	return nil
}

// fakeUsers is the whole directory: staff exist alongside students
type fakeUsers struct{ r *fakeRepository }

func (f fakeUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	role, ok := f.r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &models.User{ID: id, Role: role}, nil
}

func (f fakeUsers) ExistsByID(ctx context.Context, id string) (bool, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	_, ok := f.r.users[id]
	return ok, nil
}

func (f fakeUsers) HasRole(ctx context.Context, id string, role models.UserRole) (bool, error) {
	f.r.mu.Lock()
	defer f.r.mu.Unlock()
	got, ok := f.r.users[id]
	return ok && (got == role || got == models.RoleAdmin), nil
}

// memoryIssuedStore mimics the Redis store, including its miss error
type memoryIssuedStore struct {
	mu      sync.Mutex
	entries map[string]*models.IssuedAssessment
	saveErr error
}

func newMemoryIssuedStore() *memoryIssuedStore {
	return &memoryIssuedStore{entries: make(map[string]*models.IssuedAssessment)}
}

func (m *memoryIssuedStore) Save(ctx context.Context, issued *models.IssuedAssessment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.entries[issued.AssessmentID] = issued
	return nil
}

func (m *memoryIssuedStore) Get(ctx context.Context, assessmentID string) (*models.IssuedAssessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	issued, ok := m.entries[assessmentID]
	if !ok {
		return nil, cache.ErrCacheNotFound
	}
	return issued, nil
}

// scriptedRandom returns fixed permutations and never reorders on Shuffle
type scriptedRandom struct {
	perm []int
}

func (s scriptedRandom) IntN(n int) int { return 0 }

func (s scriptedRandom) Perm(n int) []int {
	if len(s.perm) == n {
		return append([]int(nil), s.perm...)
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func (s scriptedRandom) Shuffle(n int, swap func(i, j int)) {}
