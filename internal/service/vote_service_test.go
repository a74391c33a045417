package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petoverflow/internal/models"
)

func TestCastQuestionVoteReplacesPreviousVote(t *testing.T) {
	s := newMemStore()
	s.addQuestion(1, 10)

	svc := newVoteService(s)
	ctx := context.Background()

	require.NoError(t, svc.CastQuestionVote(ctx, 1, 30, models.VoteUp))
	require.NoError(t, svc.CastQuestionVote(ctx, 1, 30, models.VoteDown))

	votes, err := svc.QuestionVotes(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []models.Vote{{VoterID: 30, Type: models.VoteDown}}, votes)
}

func TestCastQuestionVoteSameDirectionTwice(t *testing.T) {
	s := newMemStore()
	s.addQuestion(1, 10)

	svc := newVoteService(s)
	ctx := context.Background()

	require.NoError(t, svc.CastQuestionVote(ctx, 1, 30, models.VoteUp))
	require.NoError(t, svc.CastQuestionVote(ctx, 1, 30, models.VoteUp))

	votes, err := svc.QuestionVotes(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, votes, 1)
}

func TestCastQuestionVoteOnOwnQuestionIsIgnored(t *testing.T) {
	s := newMemStore()
	s.addQuestion(1, 10)

	svc := newVoteService(s)
	ctx := context.Background()

	require.NoError(t, svc.CastQuestionVote(ctx, 1, 10, models.VoteUp))

	votes, err := svc.QuestionVotes(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, votes)
}

func TestCastAnswerVoteOnOwnAnswerIsAllowed(t *testing.T) {
	s := newMemStore()
	s.addQuestion(1, 10)
	s.addAnswer(1, 1, 20)

	svc := newVoteService(s)
	ctx := context.Background()

	require.NoError(t, svc.CastAnswerVote(ctx, 1, 20, models.VoteUp))

	votes, err := svc.AnswerVotes(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []models.Vote{{VoterID: 20, Type: models.VoteUp}}, votes)
}

func TestCastVoteUnknownTarget(t *testing.T) {
	s := newMemStore()
	svc := newVoteService(s)
	ctx := context.Background()

	err := svc.CastQuestionVote(ctx, 99, 30, models.VoteUp)
	assert.ErrorIs(t, err, ErrQuestionNotFound)

	err = svc.CastAnswerVote(ctx, 99, 30, models.VoteUp)
	assert.ErrorIs(t, err, ErrAnswerNotFound)
}

func TestRemoveVote(t *testing.T) {
	s := newMemStore()
	s.addQuestion(1, 10)
	s.addAnswer(1, 1, 20)

	svc := newVoteService(s)
	ctx := context.Background()

	require.NoError(t, svc.CastQuestionVote(ctx, 1, 30, models.VoteUp))
	require.NoError(t, svc.RemoveQuestionVote(ctx, 1, 30))
	votes, err := svc.QuestionVotes(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, votes)

	require.NoError(t, svc.CastAnswerVote(ctx, 1, 30, models.VoteDown))
	require.NoError(t, svc.RemoveAnswerVote(ctx, 1, 30))
	votes, err = svc.AnswerVotes(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, votes)
}

func TestRemoveVoteWithoutExistingVoteSucceeds(t *testing.T) {
	s := newMemStore()
	s.addQuestion(1, 10)

	svc := newVoteService(s)

	require.NoError(t, svc.RemoveQuestionVote(context.Background(), 1, 30))
}

func TestVoteLedgersAreDisjoint(t *testing.T) {
	// Question 1 and answer 1 share the numeric id; a vote on one must
	// never show up on the other.
	s := newMemStore()
	s.addQuestion(1, 10)
	s.addAnswer(1, 1, 20)

	svc := newVoteService(s)
	ctx := context.Background()

	require.NoError(t, svc.CastQuestionVote(ctx, 1, 30, models.VoteUp))

	answerVotes, err := svc.AnswerVotes(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, answerVotes)

	questionVotes, err := svc.QuestionVotes(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, questionVotes, 1)
}

func TestCastVoteLedgerFailure(t *testing.T) {
	s := newMemStore()
	s.addQuestion(1, 10)
	s.qVoteErr = errors.New("connection refused")

	svc := newVoteService(s)

	err := svc.CastQuestionVote(context.Background(), 1, 30, models.VoteUp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vote ledger unavailable")
}
