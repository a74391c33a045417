package repository

import (
	"context"

	"gorm.io/gorm"

	"petoverflow/internal/models"
)

type AnswerRepository interface {
	Create(ctx context.Context, answer *models.Answer) error
	FindByID(ctx context.Context, id uint) (*models.Answer, error)
	FindByQuestion(ctx context.Context, questionID uint) ([]models.Answer, error)
	FindByAuthor(ctx context.Context, authorID uint) ([]models.Answer, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Create(ctx context.Context, answer *models.Answer) error {
	return r.db.WithContext(ctx).Create(answer).Error
}

func (r *answerRepository) FindByID(ctx context.Context, id uint) (*models.Answer, error) {
	var answer models.Answer
	err := r.db.WithContext(ctx).First(&answer, id).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) FindByQuestion(ctx context.Context, questionID uint) ([]models.Answer, error) {
	var answers []models.Answer
	err := r.db.WithContext(ctx).Where("question_id = ?", questionID).Order("id").Find(&answers).Error
	return answers, err
}

func (r *answerRepository) FindByAuthor(ctx context.Context, authorID uint) ([]models.Answer, error) {
	var answers []models.Answer
	err := r.db.WithContext(ctx).Where("author_id = ?", authorID).Order("id").Find(&answers).Error
	return answers, err
}
