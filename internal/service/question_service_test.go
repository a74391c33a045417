package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petoverflow/internal/models"
	"petoverflow/internal/rank"
)

func TestAskCreatesQuestionAndNotifiesSubscribers(t *testing.T) {
	s := newMemStore()
	s.addUser(10, "alice")
	s.users[11] = models.User{ID: 11, Username: "bob", PhoneNumber: "+15550001", WantsSms: true}
	s.users[12] = models.User{ID: 12, Username: "carol", PhoneNumber: "+15550002", WantsSms: false}

	pub := &recordingPublisher{}
	svc := newQuestionService(s, pub)

	resp, err := svc.Ask(context.Background(), 10, &models.AskRequest{
		Text:   "Why does my cat stare at the wall?",
		Topics: []string{"cats", "behavior"},
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, uint(10), resp.AuthorID)
	assert.Equal(t, []string{"cats", "behavior"}, resp.Topics)
	assert.Equal(t, 0.0, resp.Rating)
	assert.Nil(t, resp.BestAnswerID)

	require.Len(t, pub.sent, 1)
	assert.Contains(t, pub.sent["+15550001"], "cats, behavior")
}

func TestAskSucceedsWhenPublishFails(t *testing.T) {
	s := newMemStore()
	s.users[11] = models.User{ID: 11, Username: "bob", PhoneNumber: "+15550001", WantsSms: true}

	pub := &recordingPublisher{err: assert.AnError}
	svc := newQuestionService(s, pub)

	_, err := svc.Ask(context.Background(), 10, &models.AskRequest{
		Text:   "text",
		Topics: []string{"cats"},
	})
	require.NoError(t, err)
}

func TestGetQuestionIncludesBestAnswerAndVoteStatus(t *testing.T) {
	s := newMemStore()
	s.addQuestion(1, 10, "cats")
	s.addAnswer(1, 1, 20)
	s.addAnswer(2, 1, 21)
	s.voteAnswer(2, 30, models.VoteUp)
	s.voteQuestion(1, 30, models.VoteDown)

	svc := newQuestionService(s, nil)

	resp, err := svc.GetQuestion(context.Background(), 1, 30)
	require.NoError(t, err)
	require.NotNil(t, resp.BestAnswerID)
	assert.Equal(t, uint(2), *resp.BestAnswerID)
	assert.Equal(t, -1, resp.VoteStatus)
	assert.Equal(t, -1.0, resp.VoteCount)
}

func TestGetQuestionNotFound(t *testing.T) {
	s := newMemStore()
	svc := newQuestionService(s, nil)

	_, err := svc.GetQuestion(context.Background(), 99, 0)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestNewestOrdersByCreationTime(t *testing.T) {
	s := newMemStore()
	base := time.Now()
	s.questions[1] = models.Question{ID: 1, AuthorID: 10, CreatedAt: base.Add(-2 * time.Hour)}
	s.questions[2] = models.Question{ID: 2, AuthorID: 10, CreatedAt: base}
	s.questions[3] = models.Question{ID: 3, AuthorID: 10, CreatedAt: base.Add(-time.Hour)}

	svc := newQuestionService(s, nil)

	got, err := svc.Newest(context.Background(), 0, 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, uint(2), got[0].ID)
	assert.Equal(t, uint(3), got[1].ID)
	assert.Equal(t, uint(1), got[2].ID)
}

func TestNewestPagination(t *testing.T) {
	s := newMemStore()
	base := time.Now()
	for i := uint(1); i <= 5; i++ {
		s.questions[i] = models.Question{ID: i, AuthorID: 10, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
	}
	svc := newQuestionService(s, nil)
	ctx := context.Background()

	got, err := svc.Newest(ctx, 0, 2, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint(3), got[0].ID)
	assert.Equal(t, uint(2), got[1].ID)

	got, err = svc.Newest(ctx, 0, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = svc.Newest(ctx, 0, -1, 0)
	assert.ErrorIs(t, err, rank.ErrInvalidPage)
}

func TestBestOrdersByRatingAcrossAllQuestions(t *testing.T) {
	s := newMemStore()
	s.addQuestion(1, 10)
	s.addQuestion(2, 11)
	s.addQuestion(3, 12)
	s.voteQuestion(3, 30, models.VoteUp)
	s.voteQuestion(1, 30, models.VoteDown)

	svc := newQuestionService(s, nil)

	got, err := svc.Best(context.Background(), 0, 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, uint(3), got[0].ID)
	assert.Equal(t, uint(2), got[1].ID)
	assert.Equal(t, uint(1), got[2].ID)
}

func TestAnswersByAuthorNewestFirst(t *testing.T) {
	s := newMemStore()
	base := time.Now()
	s.addQuestion(1, 10)
	s.answers[1] = models.Answer{ID: 1, QuestionID: 1, AuthorID: 20, CreatedAt: base.Add(-time.Hour)}
	s.answers[2] = models.Answer{ID: 2, QuestionID: 1, AuthorID: 20, CreatedAt: base}
	s.answers[3] = models.Answer{ID: 3, QuestionID: 1, AuthorID: 21, CreatedAt: base}

	svc := newAnswerService(s)

	got, err := svc.ByAuthor(context.Background(), 0, 20, 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint(2), got[0].ID)
	assert.Equal(t, uint(1), got[1].ID)
}

func TestByTopicOrdersByRating(t *testing.T) {
	s := newMemStore()
	s.addQuestion(1, 10, "cats")
	s.addQuestion(2, 11, "cats")
	s.addQuestion(3, 12, "dogs")
	s.voteQuestion(2, 30, models.VoteUp)

	svc := newQuestionService(s, nil)

	got, err := svc.ByTopic(context.Background(), 0, "cats", 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint(2), got[0].ID)
	assert.Equal(t, uint(1), got[1].ID)
}

func TestAnswersForOrdersByRating(t *testing.T) {
	s := newMemStore()
	s.addQuestion(1, 10)
	s.addAnswer(1, 1, 20)
	s.addAnswer(2, 1, 21)
	s.addAnswer(3, 1, 22)
	s.voteAnswer(2, 30, models.VoteUp)
	s.voteAnswer(3, 30, models.VoteDown)

	svc := newAnswerService(s)

	got, err := svc.AnswersFor(context.Background(), 30, 1, 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, uint(2), got[0].ID)
	assert.Equal(t, uint(1), got[1].ID)
	assert.Equal(t, uint(3), got[2].ID)
	assert.Equal(t, 1, got[0].VoteStatus)
	assert.Equal(t, 0, got[1].VoteStatus)
	assert.Equal(t, -1, got[2].VoteStatus)
}

func TestPostAnswerUnknownQuestion(t *testing.T) {
	s := newMemStore()
	svc := newAnswerService(s)

	_, err := svc.PostAnswer(context.Background(), 20, 99, &models.AnswerRequest{Text: "hi"})
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}
