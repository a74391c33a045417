package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"petoverflow/internal/models"
	"petoverflow/internal/rank"
	"petoverflow/internal/repository"
)

// TopicService lists the topics in use and ranks them by the summed ratings
// of their questions.
type TopicService interface {
	AllTopics(ctx context.Context) ([]string, error)
	PopularTopics(ctx context.Context, size, offset int) ([]models.TopicScore, error)
}

type topicService struct {
	topics  repository.TopicRepository
	ratings RatingService
	logger  *slog.Logger
}

func NewTopicService(topics repository.TopicRepository, ratings RatingService, logger *slog.Logger) TopicService {
	if logger == nil {
		logger = slog.Default()
	}
	return &topicService{topics: topics, ratings: ratings, logger: logger}
}

func (s *topicService) AllTopics(ctx context.Context) ([]string, error) {
	topics, err := s.topics.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading topics: %w", err)
	}
	return topics, nil
}

// PopularTopics pages through all topics ordered by rating, ties broken
// alphabetically.
func (s *topicService) PopularTopics(ctx context.Context, size, offset int) ([]models.TopicScore, error) {
	topics, err := s.topics.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading topics: %w", err)
	}

	scored := make([]models.TopicScore, 0, len(topics))
	for _, t := range topics {
		rating, err := s.ratings.TopicRating(ctx, t)
		if err != nil {
			s.logger.Warn("topic rating unavailable", "topic", t, "error", err)
			rating = 0
		}
		scored = append(scored, models.TopicScore{Topic: t, Rating: rating})
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Rating != scored[j].Rating {
			return scored[i].Rating > scored[j].Rating
		}
		return scored[i].Topic < scored[j].Topic
	})
	return rank.Page(scored, size, offset)
}
