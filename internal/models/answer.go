package models

import (
	"time"
)

// Answer is a user's answer to a question.
type Answer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"not null;index" json:"questionId"`
	AuthorID   uint      `gorm:"not null;index" json:"authorId"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName specifies the table name for Answer
func (Answer) TableName() string {
	return "answers"
}

// AnswerRequest defines the input for answering a question
type AnswerRequest struct {
	Text string `json:"text" binding:"required,max=300"`
}

// AnswerResponse is the answer payload served to clients.
type AnswerResponse struct {
	ID         uint    `json:"id"`
	QuestionID uint    `json:"questionId"`
	AuthorID   uint    `json:"authorId"`
	Text       string  `json:"text"`
	Rating     float64 `json:"rating"`
	Timestamp  int64   `json:"timestamp"`
	VoteStatus int     `json:"voteStatus"`
}
