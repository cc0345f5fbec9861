package repository

import (
	"github.com/samora254/KitabuNew/internal/model"

	"gorm.io/gorm"
)

// ContentRepository reads the Subject → Strand → Topic hierarchy. The
// hierarchy is seeded reference data, so there are no write methods.
type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

// WithTx returns a copy bound to the given transaction.
func (r *ContentRepository) WithTx(tx *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: tx}
}

func (r *ContentRepository) ListSubjects() ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.DB.Order("name ASC").Find(&subjects).Error
	return subjects, err
}

func (r *ContentRepository) FindSubjectByID(id uint) (*model.Subject, error) {
	var subject model.Subject
	err := r.DB.First(&subject, id).Error
	return &subject, err
}

func (r *ContentRepository) FindSubjectByCode(code string) (*model.Subject, error) {
	var subject model.Subject
	err := r.DB.Where("code = ?", code).First(&subject).Error
	return &subject, err
}

func (r *ContentRepository) FindStrandsBySubject(subjectID uint) ([]model.Strand, error) {
	var strands []model.Strand
	err := r.DB.Where("subject_id = ?", subjectID).Order("order_index ASC").Find(&strands).Error
	return strands, err
}

func (r *ContentRepository) FindStrandByID(id uint) (*model.Strand, error) {
	var strand model.Strand
	err := r.DB.First(&strand, id).Error
	return &strand, err
}

func (r *ContentRepository) FindTopicsByStrand(strandID uint) ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.Where("strand_id = ?", strandID).Order("order_index ASC").Find(&topics).Error
	return topics, err
}

func (r *ContentRepository) FindTopicByID(id uint) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.First(&topic, id).Error
	return &topic, err
}
