package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"petoverflow/internal/models"
	"petoverflow/internal/repository"
)

// VoteService maintains the two vote ledgers. Casting a vote on a target the
// voter already voted on replaces the previous vote in a single transaction,
// so a (voter, target) pair never holds more than one row.
type VoteService interface {
	CastQuestionVote(ctx context.Context, questionID, voterID uint, voteType models.VoteType) error
	RemoveQuestionVote(ctx context.Context, questionID, voterID uint) error
	QuestionVotes(ctx context.Context, questionID uint) ([]models.Vote, error)

	CastAnswerVote(ctx context.Context, answerID, voterID uint, voteType models.VoteType) error
	RemoveAnswerVote(ctx context.Context, answerID, voterID uint) error
	AnswerVotes(ctx context.Context, answerID uint) ([]models.Vote, error)
}

type voteService struct {
	questions     repository.QuestionRepository
	answers       repository.AnswerRepository
	questionVotes repository.QuestionVoteRepository
	answerVotes   repository.AnswerVoteRepository
}

func NewVoteService(
	questions repository.QuestionRepository,
	answers repository.AnswerRepository,
	questionVotes repository.QuestionVoteRepository,
	answerVotes repository.AnswerVoteRepository,
) VoteService {
	return &voteService{
		questions:     questions,
		answers:       answers,
		questionVotes: questionVotes,
		answerVotes:   answerVotes,
	}
}

// CastQuestionVote records voterID's vote on a question. Voting on your own
// question is silently ignored: the call succeeds and the ledger is untouched.
func (s *voteService) CastQuestionVote(ctx context.Context, questionID, voterID uint, voteType models.VoteType) error {
	authorID, err := s.questions.AuthorOf(ctx, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return ledgerErr(err)
	}
	if authorID == voterID {
		return nil
	}
	if err := s.questionVotes.Replace(ctx, questionID, voterID, voteType); err != nil {
		return ledgerErr(err)
	}
	return nil
}

func (s *voteService) RemoveQuestionVote(ctx context.Context, questionID, voterID uint) error {
	if _, err := s.questions.AuthorOf(ctx, questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return ledgerErr(err)
	}
	if err := s.questionVotes.Remove(ctx, questionID, voterID); err != nil {
		return ledgerErr(err)
	}
	return nil
}

func (s *voteService) QuestionVotes(ctx context.Context, questionID uint) ([]models.Vote, error) {
	votes, err := s.questionVotes.Votes(ctx, questionID)
	if err != nil {
		return nil, ledgerErr(err)
	}
	return votes, nil
}

// CastAnswerVote records voterID's vote on an answer. Unlike questions, voting
// on your own answer is allowed; the answer ledger carries no authorship guard.
func (s *voteService) CastAnswerVote(ctx context.Context, answerID, voterID uint, voteType models.VoteType) error {
	if _, err := s.answers.FindByID(ctx, answerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnswerNotFound
		}
		return ledgerErr(err)
	}
	if err := s.answerVotes.Replace(ctx, answerID, voterID, voteType); err != nil {
		return ledgerErr(err)
	}
	return nil
}

func (s *voteService) RemoveAnswerVote(ctx context.Context, answerID, voterID uint) error {
	if _, err := s.answers.FindByID(ctx, answerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnswerNotFound
		}
		return ledgerErr(err)
	}
	if err := s.answerVotes.Remove(ctx, answerID, voterID); err != nil {
		return ledgerErr(err)
	}
	return nil
}

func (s *voteService) AnswerVotes(ctx context.Context, answerID uint) ([]models.Vote, error) {
	votes, err := s.answerVotes.Votes(ctx, answerID)
	if err != nil {
		return nil, ledgerErr(err)
	}
	return votes, nil
}
