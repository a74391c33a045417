package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"petoverflow/internal/models"
	"petoverflow/internal/rank"
	"petoverflow/internal/repository"
)

// QuestionService covers asking and browsing questions. Every listing runs
// through the rank package: snapshot the ordering key once, sort, page.
// viewerID personalizes VoteStatus in the responses; pass 0 for no viewer.
type QuestionService interface {
	Ask(ctx context.Context, authorID uint, req *models.AskRequest) (*models.QuestionResponse, error)
	GetQuestion(ctx context.Context, questionID, viewerID uint) (*models.QuestionResponse, error)
	Newest(ctx context.Context, viewerID uint, size, offset int) ([]models.QuestionResponse, error)
	Best(ctx context.Context, viewerID uint, size, offset int) ([]models.QuestionResponse, error)
	ByTopic(ctx context.Context, viewerID uint, topic string, size, offset int) ([]models.QuestionResponse, error)
	ByAuthor(ctx context.Context, viewerID, authorID uint, size, offset int) ([]models.QuestionResponse, error)
}

type questionService struct {
	questions     repository.QuestionRepository
	topics        repository.TopicRepository
	questionVotes repository.QuestionVoteRepository
	ratings       RatingService
	notifications NotificationService
	logger        *slog.Logger
}

func NewQuestionService(
	questions repository.QuestionRepository,
	topics repository.TopicRepository,
	questionVotes repository.QuestionVoteRepository,
	ratings RatingService,
	notifications NotificationService,
	logger *slog.Logger,
) QuestionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &questionService{
		questions:     questions,
		topics:        topics,
		questionVotes: questionVotes,
		ratings:       ratings,
		notifications: notifications,
		logger:        logger,
	}
}

func (s *questionService) Ask(ctx context.Context, authorID uint, req *models.AskRequest) (*models.QuestionResponse, error) {
	question := &models.Question{
		AuthorID:  authorID,
		Text:      req.Text,
		CreatedAt: time.Now(),
	}
	if err := s.questions.Create(ctx, question, req.Topics); err != nil {
		return nil, fmt.Errorf("creating question: %w", err)
	}

	s.notifications.NotifyNewQuestion(ctx, question, req.Topics)

	return s.toResponse(ctx, question, authorID)
}

func (s *questionService) GetQuestion(ctx context.Context, questionID, viewerID uint) (*models.QuestionResponse, error) {
	question, err := s.questions.FindByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("loading question %d: %w", questionID, err)
	}
	return s.toResponse(ctx, question, viewerID)
}

func (s *questionService) Newest(ctx context.Context, viewerID uint, size, offset int) ([]models.QuestionResponse, error) {
	questions, err := s.questions.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading questions: %w", err)
	}
	ordered := rank.ByRecency(questions, func(q models.Question) (time.Time, error) {
		return q.CreatedAt, nil
	})
	page, err := rank.Page(ordered, size, offset)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, page, viewerID)
}

// Best lists all questions highest rated first. A question whose rating
// cannot be computed sorts as 0 instead of failing the listing.
func (s *questionService) Best(ctx context.Context, viewerID uint, size, offset int) ([]models.QuestionResponse, error) {
	questions, err := s.questions.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading questions: %w", err)
	}
	ordered := rank.ByScore(questions, func(q models.Question) (float64, error) {
		return s.ratings.QuestionRating(ctx, q.ID)
	}, s.logger)
	page, err := rank.Page(ordered, size, offset)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, page, viewerID)
}

// ByTopic lists a topic's questions best first, same fold-to-zero policy as
// Best.
func (s *questionService) ByTopic(ctx context.Context, viewerID uint, topic string, size, offset int) ([]models.QuestionResponse, error) {
	questions, err := s.questions.FindByTopic(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("loading questions for topic %q: %w", topic, err)
	}
	ordered := rank.ByScore(questions, func(q models.Question) (float64, error) {
		return s.ratings.QuestionRating(ctx, q.ID)
	}, s.logger)
	page, err := rank.Page(ordered, size, offset)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, page, viewerID)
}

func (s *questionService) ByAuthor(ctx context.Context, viewerID, authorID uint, size, offset int) ([]models.QuestionResponse, error) {
	questions, err := s.questions.FindByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("loading questions for user %d: %w", authorID, err)
	}
	ordered := rank.ByRecency(questions, func(q models.Question) (time.Time, error) {
		return q.CreatedAt, nil
	})
	page, err := rank.Page(ordered, size, offset)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, page, viewerID)
}

func (s *questionService) toResponse(ctx context.Context, q *models.Question, viewerID uint) (*models.QuestionResponse, error) {
	rating, err := s.ratings.QuestionRating(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	voteCount, err := s.ratings.QuestionVoteCount(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	topics, err := s.topics.TopicsOf(ctx, q.ID)
	if err != nil {
		return nil, fmt.Errorf("loading topics for question %d: %w", q.ID, err)
	}
	votes, err := s.questionVotes.Votes(ctx, q.ID)
	if err != nil {
		return nil, ledgerErr(err)
	}

	var bestAnswerID *uint
	if id, ok, err := s.ratings.BestAnswer(ctx, q.ID); err != nil {
		return nil, err
	} else if ok {
		bestAnswerID = &id
	}

	return &models.QuestionResponse{
		ID:           q.ID,
		Text:         q.Text,
		AuthorID:     q.AuthorID,
		Rating:       rating,
		VoteCount:    voteCount,
		Timestamp:    q.CreatedAt.UnixMilli(),
		BestAnswerID: bestAnswerID,
		Topics:       topics,
		VoteStatus:   models.VoteStatus(votes, viewerID),
	}, nil
}

func (s *questionService) toResponses(ctx context.Context, questions []models.Question, viewerID uint) ([]models.QuestionResponse, error) {
	out := make([]models.QuestionResponse, 0, len(questions))
	for i := range questions {
		resp, err := s.toResponse(ctx, &questions[i], viewerID)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}
