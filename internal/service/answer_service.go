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

// AnswerService covers posting and browsing answers.
type AnswerService interface {
	PostAnswer(ctx context.Context, authorID, questionID uint, req *models.AnswerRequest) (*models.AnswerResponse, error)
	GetAnswer(ctx context.Context, answerID, viewerID uint) (*models.AnswerResponse, error)
	AnswersFor(ctx context.Context, viewerID, questionID uint, size, offset int) ([]models.AnswerResponse, error)
	ByAuthor(ctx context.Context, viewerID, authorID uint, size, offset int) ([]models.AnswerResponse, error)
}

type answerService struct {
	questions   repository.QuestionRepository
	answers     repository.AnswerRepository
	answerVotes repository.AnswerVoteRepository
	ratings     RatingService
	logger      *slog.Logger
}

func NewAnswerService(
	questions repository.QuestionRepository,
	answers repository.AnswerRepository,
	answerVotes repository.AnswerVoteRepository,
	ratings RatingService,
	logger *slog.Logger,
) AnswerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &answerService{
		questions:   questions,
		answers:     answers,
		answerVotes: answerVotes,
		ratings:     ratings,
		logger:      logger,
	}
}

func (s *answerService) PostAnswer(ctx context.Context, authorID, questionID uint, req *models.AnswerRequest) (*models.AnswerResponse, error) {
	if _, err := s.questions.FindByID(ctx, questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("loading question %d: %w", questionID, err)
	}

	answer := &models.Answer{
		QuestionID: questionID,
		AuthorID:   authorID,
		Text:       req.Text,
		CreatedAt:  time.Now(),
	}
	if err := s.answers.Create(ctx, answer); err != nil {
		return nil, fmt.Errorf("creating answer: %w", err)
	}
	return s.toResponse(ctx, answer, authorID)
}

func (s *answerService) GetAnswer(ctx context.Context, answerID, viewerID uint) (*models.AnswerResponse, error) {
	answer, err := s.answers.FindByID(ctx, answerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, fmt.Errorf("loading answer %d: %w", answerID, err)
	}
	return s.toResponse(ctx, answer, viewerID)
}

// AnswersFor lists a question's answers best first, same fold-to-zero policy
// as topic listings.
func (s *answerService) AnswersFor(ctx context.Context, viewerID, questionID uint, size, offset int) ([]models.AnswerResponse, error) {
	if _, err := s.questions.FindByID(ctx, questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("loading question %d: %w", questionID, err)
	}

	answers, err := s.answers.FindByQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("loading answers for question %d: %w", questionID, err)
	}
	ordered := rank.ByScore(answers, func(a models.Answer) (float64, error) {
		return s.ratings.AnswerRating(ctx, a.ID)
	}, s.logger)
	page, err := rank.Page(ordered, size, offset)
	if err != nil {
		return nil, err
	}

	out := make([]models.AnswerResponse, 0, len(page))
	for i := range page {
		resp, err := s.toResponse(ctx, &page[i], viewerID)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// ByAuthor lists a user's answers newest first.
func (s *answerService) ByAuthor(ctx context.Context, viewerID, authorID uint, size, offset int) ([]models.AnswerResponse, error) {
	answers, err := s.answers.FindByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("loading answers for user %d: %w", authorID, err)
	}
	ordered := rank.ByRecency(answers, func(a models.Answer) (time.Time, error) {
		return a.CreatedAt, nil
	})
	page, err := rank.Page(ordered, size, offset)
	if err != nil {
		return nil, err
	}

	out := make([]models.AnswerResponse, 0, len(page))
	for i := range page {
		resp, err := s.toResponse(ctx, &page[i], viewerID)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (s *answerService) toResponse(ctx context.Context, a *models.Answer, viewerID uint) (*models.AnswerResponse, error) {
	rating, err := s.ratings.AnswerRating(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	votes, err := s.answerVotes.Votes(ctx, a.ID)
	if err != nil {
		return nil, ledgerErr(err)
	}
	return &models.AnswerResponse{
		ID:         a.ID,
		QuestionID: a.QuestionID,
		AuthorID:   a.AuthorID,
		Text:       a.Text,
		Rating:     rating,
		Timestamp:  a.CreatedAt.UnixMilli(),
		VoteStatus: models.VoteStatus(votes, viewerID),
	}, nil
}
