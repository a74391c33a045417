package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"petoverflow/internal/models"
	"petoverflow/internal/rank"
	"petoverflow/internal/repository"
)

// expertiseLimit caps the expertise list on a profile at the top five topics.
const expertiseLimit = 5

type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.UserResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (string, error)
	GetProfile(ctx context.Context, userID uint) (*models.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uint, req *models.UpdateProfileRequest) (*models.UserResponse, error)
	UpdatePhoto(ctx context.Context, userID uint, photoURL string) error
	Leaders(ctx context.Context, size, offset int) ([]models.UserResponse, error)
}

type userService struct {
	repo      repository.UserRepository
	ratings   RatingService
	jwtSecret string
	logger    *slog.Logger
}

func NewUserService(repo repository.UserRepository, ratings RatingService, jwtSecret string, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{
		repo:      repo,
		ratings:   ratings,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// generateJWT creates a new JWT token for the user
func (s *userService) generateJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(time.Hour * 24 * 7).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserResponse, error) {
	existing, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("checking username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:    req.Username,
		Password:    string(hashed),
		Nickname:    req.Nickname,
		Description: req.Description,
		PhoneNumber: req.PhoneNumber,
		WantsSms:    req.WantsSms,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return s.toResponse(ctx, user)
}

func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.generateJWT(user)
}

func (s *userService) GetProfile(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("loading user %d: %w", userID, err)
	}
	return s.toResponse(ctx, user)
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint, req *models.UpdateProfileRequest) (*models.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("loading user %d: %w", userID, err)
	}

	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}
	if req.Nickname != nil {
		user.Nickname = *req.Nickname
	}
	if req.Description != nil {
		user.Description = *req.Description
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.WantsSms != nil {
		user.WantsSms = *req.WantsSms
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating user %d: %w", userID, err)
	}
	return s.toResponse(ctx, user)
}

func (s *userService) UpdatePhoto(ctx context.Context, userID uint, photoURL string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("loading user %d: %w", userID, err)
	}
	user.PhotoURL = photoURL
	if err := s.repo.Update(ctx, user); err != nil {
		return fmt.Errorf("updating user %d: %w", userID, err)
	}
	return nil
}

// Leaders pages through all users best rated first.
func (s *userService) Leaders(ctx context.Context, size, offset int) ([]models.UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	ordered := rank.ByScore(users, func(u models.User) (float64, error) {
		return s.ratings.UserRating(ctx, u.ID)
	}, s.logger)
	page, err := rank.Page(ordered, size, offset)
	if err != nil {
		return nil, err
	}

	out := make([]models.UserResponse, 0, len(page))
	for i := range page {
		resp, err := s.toResponse(ctx, &page[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (s *userService) toResponse(ctx context.Context, user *models.User) (*models.UserResponse, error) {
	rating, err := s.ratings.UserRating(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	expertise, err := s.ratings.BestTopics(ctx, user.ID, expertiseLimit)
	if err != nil {
		return nil, err
	}
	return &models.UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Nickname:    user.Nickname,
		Description: user.Description,
		PhotoURL:    user.PhotoURL,
		PhoneNumber: user.PhoneNumber,
		WantsSms:    user.WantsSms,
		Rating:      rating,
		Expertise:   expertise,
	}, nil
}
