package database

import (
	"path/filepath"
	"testing"

	"github.com/samora254/KitabuNew/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "seed.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func TestSeedCurriculum(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, SeedCurriculum(db))

	var subjects int64
	require.NoError(t, db.Model(&model.Subject{}).Count(&subjects).Error)
	assert.EqualValues(t, 5, subjects)

	var math model.Subject
	require.NoError(t, db.Where("code = ?", "MATH").First(&math).Error)

	var strands int64
	require.NoError(t, db.Model(&model.Strand{}).Where("subject_id = ?", math.ID).Count(&strands).Error)
	assert.EqualValues(t, 5, strands)

	var quiz model.Quiz
	require.NoError(t, db.First(&quiz).Error)
	assert.Equal(t, 70, quiz.PassingScore)
	assert.Equal(t, 3, quiz.MaxAttempts)

	var question model.QuizQuestion
	require.NoError(t, db.Where("quiz_id = ?", quiz.ID).Order("order_index").First(&question).Error)
	assert.Len(t, question.Options, 4, "options survive the JSON round trip")

	var homework model.HomeworkAssignment
	require.NoError(t, db.First(&homework).Error)
	assert.True(t, homework.IsActive)
	assert.NotNil(t, homework.DueDate)
}

func TestSeedCurriculumIdempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, SeedCurriculum(db))
	require.NoError(t, SeedCurriculum(db))

	var subjects int64
	require.NoError(t, db.Model(&model.Subject{}).Count(&subjects).Error)
	assert.EqualValues(t, 5, subjects, "reseeding an initialized database is a no-op")
}
