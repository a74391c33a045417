package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"petoverflow/internal/config"
	"petoverflow/internal/database"
	"petoverflow/internal/models"
	"petoverflow/internal/repository"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	slog.Info("Starting database seeding...")

	db, err := database.NewPostgresConnection(cfg.Database.URI())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	userRepo := repository.NewUserRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	answerVoteRepo := repository.NewAnswerVoteRepository(db)

	ctx := context.Background()

	slog.Info("Creating initial users...")

	seedUsers := []struct {
		username string
		nickname string
		phone    string
		sms      bool
	}{
		{"admin", "Admin", "", false},
		{"alice", "Alice", "+15550001", true},
		{"bob", "Bob", "+15550002", false},
	}

	users := make(map[string]*models.User)
	for _, su := range seedUsers {
		password, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
		u := &models.User{
			Username:    su.username,
			Password:    string(password),
			Nickname:    su.nickname,
			PhoneNumber: su.phone,
			WantsSms:    su.sms,
			CreatedAt:   time.Now(),
		}
		if err := userRepo.Create(ctx, u); err != nil {
			slog.Warn("User might already exist", "username", su.username, "error", err)
			continue
		}
		users[su.username] = u
		slog.Info("Created user", "username", su.username, "id", u.ID)
	}

	alice, bob := users["alice"], users["bob"]
	if alice == nil || bob == nil {
		slog.Info("Seed users already present, skipping sample content")
		return
	}

	slog.Info("Creating sample questions and answers...")

	question := &models.Question{
		AuthorID:  alice.ID,
		Text:      "Why does my cat knock things off the table?",
		CreatedAt: time.Now(),
	}
	if err := questionRepo.Create(ctx, question, []string{"cats", "behavior"}); err != nil {
		log.Fatal("Failed to seed question:", err)
	}

	answer := &models.Answer{
		QuestionID: question.ID,
		AuthorID:   bob.ID,
		Text:       "Cats test gravity. It keeps working, so they keep testing.",
		CreatedAt:  time.Now(),
	}
	if err := answerRepo.Create(ctx, answer); err != nil {
		log.Fatal("Failed to seed answer:", err)
	}
	if err := answerVoteRepo.Replace(ctx, answer.ID, alice.ID, models.VoteUp); err != nil {
		log.Fatal("Failed to seed vote:", err)
	}

	slog.Info("Database seeding completed successfully!")
}
