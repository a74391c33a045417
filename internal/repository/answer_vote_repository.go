package repository

import (
	"context"

	"gorm.io/gorm"

	"petoverflow/internal/models"
)

// AnswerVoteRepository is the answer-vote ledger, disjoint from the question
// ledger.
type AnswerVoteRepository interface {
	Replace(ctx context.Context, answerID, voterID uint, voteType models.VoteType) error
	Remove(ctx context.Context, answerID, voterID uint) error
	Votes(ctx context.Context, answerID uint) ([]models.Vote, error)
}

type answerVoteRepository struct {
	db *gorm.DB
}

func NewAnswerVoteRepository(db *gorm.DB) AnswerVoteRepository {
	return &answerVoteRepository{db: db}
}

func (r *answerVoteRepository) Replace(ctx context.Context, answerID, voterID uint, voteType models.VoteType) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("answer_id = ? AND voter_id = ?", answerID, voterID).
			Delete(&models.AnswerVote{}).Error
		if err != nil {
			return err
		}
		vote := models.AnswerVote{AnswerID: answerID, VoterID: voterID, Type: voteType}
		return tx.Create(&vote).Error
	})
}

func (r *answerVoteRepository) Remove(ctx context.Context, answerID, voterID uint) error {
	return r.db.WithContext(ctx).
		Where("answer_id = ? AND voter_id = ?", answerID, voterID).
		Delete(&models.AnswerVote{}).Error
}

func (r *answerVoteRepository) Votes(ctx context.Context, answerID uint) ([]models.Vote, error) {
	var rows []models.AnswerVote
	err := r.db.WithContext(ctx).Where("answer_id = ?", answerID).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	votes := make([]models.Vote, len(rows))
	for i, row := range rows {
		votes[i] = models.Vote{VoterID: row.VoterID, Type: row.Type}
	}
	return votes, nil
}
