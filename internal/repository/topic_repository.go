package repository

import (
	"context"

	"gorm.io/gorm"

	"petoverflow/internal/models"
)

type TopicRepository interface {
	TopicsOf(ctx context.Context, questionID uint) ([]string, error)
	FindAll(ctx context.Context) ([]string, error)
}

type topicRepository struct {
	db *gorm.DB
}

func NewTopicRepository(db *gorm.DB) TopicRepository {
	return &topicRepository{db: db}
}

func (r *topicRepository) TopicsOf(ctx context.Context, questionID uint) ([]string, error) {
	var topics []string
	err := r.db.WithContext(ctx).
		Model(&models.QuestionTopic{}).
		Where("question_id = ?", questionID).
		Order("topic").
		Pluck("topic", &topics).Error
	return topics, err
}

func (r *topicRepository) FindAll(ctx context.Context) ([]string, error) {
	var topics []string
	err := r.db.WithContext(ctx).
		Model(&models.QuestionTopic{}).
		Distinct("topic").
		Order("topic").
		Pluck("topic", &topics).Error
	return topics, err
}
