package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"petoverflow/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	s := newMemStore()
	svc := newUserService(s)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &models.RegisterRequest{
		Username: "alice",
		Password: "s3cret-pw",
		Nickname: "Alice",
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, 0.0, resp.Rating)
	assert.Empty(t, resp.Expertise)

	// The stored password is hashed, never the plaintext.
	stored := s.users[resp.ID]
	assert.NotEqual(t, "s3cret-pw", stored.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("s3cret-pw")))

	token, err := svc.Login(ctx, &models.LoginRequest{Username: "alice", Password: "s3cret-pw"})
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(resp.ID), claims["user_id"])
	assert.Equal(t, "alice", claims["username"])
}

func TestRegisterDuplicateUsername(t *testing.T) {
	s := newMemStore()
	s.addUser(1, "alice")
	svc := newUserService(s)

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Username: "alice",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLoginBadCredentials(t *testing.T) {
	s := newMemStore()
	svc := newUserService(s)
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.RegisterRequest{Username: "alice", Password: "s3cret-pw"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &models.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &models.LoginRequest{Username: "nobody", Password: "s3cret-pw"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetProfileIncludesRatingAndExpertise(t *testing.T) {
	s := newMemStore()
	s.addUser(10, "alice")
	s.addQuestion(1, 11, "cats")
	s.addAnswer(1, 1, 10)
	s.voteAnswer(1, 30, models.VoteUp)

	svc := newUserService(s)

	resp, err := svc.GetProfile(context.Background(), 10)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, resp.Rating, 1e-9)
	require.Equal(t, []models.TopicScore{{Topic: "cats", Rating: 1}}, resp.Expertise)
}

func TestUpdateProfilePartial(t *testing.T) {
	s := newMemStore()
	s.users[10] = models.User{ID: 10, Username: "alice", Nickname: "Alice", PhoneNumber: "+15550001"}

	svc := newUserService(s)

	nickname := "Al"
	wantsSms := true
	resp, err := svc.UpdateProfile(context.Background(), 10, &models.UpdateProfileRequest{
		Nickname: &nickname,
		WantsSms: &wantsSms,
	})
	require.NoError(t, err)
	assert.Equal(t, "Al", resp.Nickname)
	assert.True(t, resp.WantsSms)
	assert.Equal(t, "+15550001", resp.PhoneNumber)
}

func TestLeadersOrderedByRating(t *testing.T) {
	s := newMemStore()
	s.addUser(10, "alice")
	s.addUser(11, "bob")
	s.addUser(12, "carol")
	s.addQuestion(1, 99)
	// bob's answer at +2, carol's at +1, alice has nothing.
	s.addAnswer(1, 1, 11)
	s.addAnswer(2, 1, 12)
	s.voteAnswer(1, 30, models.VoteUp)
	s.voteAnswer(1, 31, models.VoteUp)
	s.voteAnswer(2, 30, models.VoteUp)

	svc := newUserService(s)

	got, err := svc.Leaders(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "bob", got[0].Username)
	assert.Equal(t, "carol", got[1].Username)
	assert.Equal(t, "alice", got[2].Username)
}

func TestUpdatePhoto(t *testing.T) {
	s := newMemStore()
	s.addUser(10, "alice")
	svc := newUserService(s)

	require.NoError(t, svc.UpdatePhoto(context.Background(), 10, "http://cdn/photo.png"))
	assert.Equal(t, "http://cdn/photo.png", s.users[10].PhotoURL)

	err := svc.UpdatePhoto(context.Background(), 99, "x")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
