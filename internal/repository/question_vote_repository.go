package repository

import (
	"context"

	"gorm.io/gorm"

	"petoverflow/internal/models"
)

// QuestionVoteRepository is the question-vote ledger. It is a namespace of its
// own: answer votes live in a separate ledger with the same shape.
type QuestionVoteRepository interface {
	// Replace removes any existing vote by voterID on the question and inserts
	// the new one as a single transaction, so a concurrent re-vote can never
	// observe a half-applied state.
	Replace(ctx context.Context, questionID, voterID uint, voteType models.VoteType) error
	Remove(ctx context.Context, questionID, voterID uint) error
	Votes(ctx context.Context, questionID uint) ([]models.Vote, error)
}

type questionVoteRepository struct {
	db *gorm.DB
}

func NewQuestionVoteRepository(db *gorm.DB) QuestionVoteRepository {
	return &questionVoteRepository{db: db}
}

func (r *questionVoteRepository) Replace(ctx context.Context, questionID, voterID uint, voteType models.VoteType) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("question_id = ? AND voter_id = ?", questionID, voterID).
			Delete(&models.QuestionVote{}).Error
		if err != nil {
			return err
		}
		vote := models.QuestionVote{QuestionID: questionID, VoterID: voterID, Type: voteType}
		return tx.Create(&vote).Error
	})
}

func (r *questionVoteRepository) Remove(ctx context.Context, questionID, voterID uint) error {
	return r.db.WithContext(ctx).
		Where("question_id = ? AND voter_id = ?", questionID, voterID).
		Delete(&models.QuestionVote{}).Error
}

func (r *questionVoteRepository) Votes(ctx context.Context, questionID uint) ([]models.Vote, error) {
	var rows []models.QuestionVote
	err := r.db.WithContext(ctx).Where("question_id = ?", questionID).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	votes := make([]models.Vote, len(rows))
	for i, row := range rows {
		votes[i] = models.Vote{VoterID: row.VoterID, Type: row.Type}
	}
	return votes, nil
}
