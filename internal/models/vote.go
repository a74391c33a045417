package models

import (
	"time"
)

// VoteType is the direction of a vote.
type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

// Score maps a vote to its tally contribution.
func (t VoteType) Score() float64 {
	if t == VoteUp {
		return 1
	}
	return -1
}

// QuestionVote is one row of the question-vote ledger. A voter holds at most
// one vote per question; re-votes replace the previous row.
type QuestionVote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"not null;uniqueIndex:idx_question_voter" json:"questionId"`
	VoterID    uint      `gorm:"not null;uniqueIndex:idx_question_voter" json:"voterId"`
	Type       VoteType  `gorm:"size:8;not null" json:"type"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName specifies the table name for QuestionVote
func (QuestionVote) TableName() string {
	return "question_votes"
}

// AnswerVote is one row of the answer-vote ledger, a namespace fully disjoint
// from question votes.
type AnswerVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AnswerID  uint      `gorm:"not null;uniqueIndex:idx_answer_voter" json:"answerId"`
	VoterID   uint      `gorm:"not null;uniqueIndex:idx_answer_voter" json:"voterId"`
	Type      VoteType  `gorm:"size:8;not null" json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for AnswerVote
func (AnswerVote) TableName() string {
	return "answer_votes"
}

// Vote is the storage-agnostic ledger view handed to the rating engine.
type Vote struct {
	VoterID uint     `json:"voterId"`
	Type    VoteType `json:"type"`
}

// VoteStatus reports the caller's own vote within a vote set: 1 for up, -1
// for down, 0 when the caller has not voted.
func VoteStatus(votes []Vote, voterID uint) int {
	for _, v := range votes {
		if v.VoterID == voterID {
			if v.Type == VoteUp {
				return 1
			}
			return -1
		}
	}
	return 0
}

// VoteRequest defines the input for casting or clearing a vote. "none" clears
// any existing vote by the caller.
type VoteRequest struct {
	Vote string `json:"vote" binding:"required,oneof=up down none"`
}
