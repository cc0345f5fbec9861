package service

import (
	"testing"

	"github.com/samora254/KitabuNew/internal/repository"
	"github.com/samora254/KitabuNew/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newContentService(db *gorm.DB) *ContentService {
	return NewContentService(repository.NewContentRepository(db), newProgressService(db), nil)
}

func TestSubjectStrandsUnlockState(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db)
	c := createCurriculum(t, db)
	svc := newContentService(db)
	progress := newProgressService(db)

	statuses, err := svc.SubjectStrands(user.ID, c.subject.ID)
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	assert.True(t, statuses[0].Unlocked)
	assert.False(t, statuses[1].Unlocked)
	assert.Zero(t, statuses[0].CompletedTopics)

	// Finishing the first strand opens the second.
	require.NoError(t, progress.RecordTopicCompletion(user.ID, c.topics[0].ID, true, nil))
	require.NoError(t, progress.RecordTopicCompletion(user.ID, c.topics[1].ID, true, nil))

	statuses, err = svc.SubjectStrands(user.ID, c.subject.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, statuses[0].CompletedTopics)
	assert.True(t, statuses[1].Unlocked)
}

func TestSubjectStrandsUnknownSubject(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db)
	svc := newContentService(db)

	_, err := svc.SubjectStrands(user.ID, 9999)
	assert.ErrorIs(t, err, util.ErrSubjectNotFound)
}

func TestStrandTopicsOrdered(t *testing.T) {
	db := newTestDB(t)
	c := createCurriculum(t, db)
	svc := newContentService(db)

	topics, err := svc.StrandTopics(c.strands[0].ID)
	require.NoError(t, err)
	require.Len(t, topics, 2)
	assert.Equal(t, 1, topics[0].OrderIndex)
	assert.Equal(t, 2, topics[1].OrderIndex)

	_, err = svc.StrandTopics(9999)
	assert.ErrorIs(t, err, util.ErrStrandNotFound)
}

func TestListSubjects(t *testing.T) {
	db := newTestDB(t)
	createCurriculum(t, db)
	svc := newContentService(db)

	subjects, err := svc.ListSubjects()
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, "MATH", subjects[0].Code)
}
