package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/samora254/KitabuNew/internal/model"
	"github.com/samora254/KitabuNew/internal/repository"
	"github.com/samora254/KitabuNew/pkg/database"
	"github.com/samora254/KitabuNew/pkg/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "kitabu.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// fakeTutor is a deterministic TutorClient for tests. It records the
// context of the last chat call and numbers its replies.
type fakeTutor struct {
	calls       int
	lastMessage string
	lastContext TutorContext
}

func (f *fakeTutor) GenerateTutorResponse(ctx context.Context, message string, tctx TutorContext) TutorResponse {
	f.calls++
	f.lastMessage = message
	f.lastContext = tctx
	return TutorResponse{
		Message:     fmt.Sprintf("reply %d", f.calls),
		Suggestions: []string{"Try a practice quiz"},
	}
}

func (f *fakeTutor) GenerateQuizQuestions(ctx context.Context, topic, subject, difficulty string, count int) ([]GeneratedQuestion, error) {
	questions := make([]GeneratedQuestion, count)
	for i := range questions {
		questions[i] = GeneratedQuestion{
			Question:      fmt.Sprintf("%s question %d", topic, i+1),
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: "a",
		}
	}
	return questions, nil
}

func (f *fakeTutor) GenerateFlashcards(ctx context.Context, topic, subject string, count int) ([]GeneratedFlashcard, error) {
	cards := make([]GeneratedFlashcard, count)
	for i := range cards {
		cards[i] = GeneratedFlashcard{
			Question: fmt.Sprintf("%s card %d", topic, i+1),
			Answer:   "answer",
		}
	}
	return cards, nil
}

func (f *fakeTutor) EvaluateAnswer(ctx context.Context, question, studentAnswer, correctAnswer, subject string) (*AnswerEvaluation, error) {
	return &AnswerEvaluation{IsCorrect: studentAnswer == correctAnswer, Score: 100}, nil
}

func createUser(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()
	user := &model.User{
		Email:        fmt.Sprintf("learner%d@kitabu.test", time.Now().UnixNano()),
		Password:     "hashed",
		FirstName:    "Amani",
		LastName:     "Otieno",
		Role:         model.Student,
		Grade:        "8",
		CurrentLevel: 1,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// curriculum is one subject with two strands of two topics each,
// deliberately small so unlock thresholds are easy to reason about.
type curriculum struct {
	subject model.Subject
	strands []model.Strand
	topics  []model.Topic
}

func createCurriculum(t *testing.T, db *gorm.DB) *curriculum {
	t.Helper()

	subject := model.Subject{Name: "Mathematics", Code: "MATH", TotalStrands: 2}
	require.NoError(t, db.Create(&subject).Error)

	c := &curriculum{subject: subject}
	for i := 0; i < 2; i++ {
		strand := model.Strand{SubjectID: subject.ID, Name: fmt.Sprintf("Strand %d", i+1), OrderIndex: i + 1, TotalTopics: 2}
		require.NoError(t, db.Create(&strand).Error)
		c.strands = append(c.strands, strand)

		for j := 0; j < 2; j++ {
			topic := model.Topic{StrandID: strand.ID, Name: fmt.Sprintf("Topic %d.%d", i+1, j+1), OrderIndex: j + 1, XPReward: 25}
			require.NoError(t, db.Create(&topic).Error)
			c.topics = append(c.topics, topic)
		}
	}
	return c
}

func newProgressService(db *gorm.DB) *ProgressService {
	return NewProgressService(
		repository.NewContentRepository(db),
		repository.NewProgressRepository(db),
		repository.NewUserRepository(db),
		db,
		nil,
	)
}
