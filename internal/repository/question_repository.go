package repository

import (
	"context"

	"gorm.io/gorm"

	"petoverflow/internal/models"
)

type QuestionRepository interface {
	// Create stores the question and its topic tags as one transaction.
	Create(ctx context.Context, question *models.Question, topics []string) error
	FindByID(ctx context.Context, id uint) (*models.Question, error)
	FindAll(ctx context.Context) ([]models.Question, error)
	FindByAuthor(ctx context.Context, authorID uint) ([]models.Question, error)
	FindByTopic(ctx context.Context, topic string) ([]models.Question, error)
	AuthorOf(ctx context.Context, questionID uint) (uint, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, question *models.Question, topics []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(question).Error; err != nil {
			return err
		}
		for _, topic := range topics {
			tag := models.QuestionTopic{QuestionID: question.ID, Topic: topic}
			if err := tx.Create(&tag).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *questionRepository) FindByID(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	err := r.db.WithContext(ctx).First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindAll(ctx context.Context) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.WithContext(ctx).Find(&questions).Error
	return questions, err
}

func (r *questionRepository) FindByAuthor(ctx context.Context, authorID uint) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.WithContext(ctx).Where("author_id = ?", authorID).Find(&questions).Error
	return questions, err
}

func (r *questionRepository) FindByTopic(ctx context.Context, topic string) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.WithContext(ctx).
		Joins("JOIN question_topics ON question_topics.question_id = questions.id").
		Where("question_topics.topic = ?", topic).
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) AuthorOf(ctx context.Context, questionID uint) (uint, error) {
	var question models.Question
	err := r.db.WithContext(ctx).Select("author_id").First(&question, questionID).Error
	if err != nil {
		return 0, err
	}
	return question.AuthorID, nil
}
