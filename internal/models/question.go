package models

import (
	"time"
)

// Question is a user-submitted question. Votes, answers and topic tags live
// in their own tables and are reached by id, never by embedded references.
type Question struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"not null;index" json:"authorId"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for Question
func (Question) TableName() string {
	return "questions"
}

// QuestionTopic tags a question with one topic name. Topic names are
// case-sensitive string keys with no table of their own.
type QuestionTopic struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"not null;index" json:"questionId"`
	Topic      string `gorm:"size:128;not null;index" json:"topic"`
}

// TableName specifies the table name for QuestionTopic
func (QuestionTopic) TableName() string {
	return "question_topics"
}

// AskRequest defines the input for submitting a question
type AskRequest struct {
	Text   string   `json:"text" binding:"required,max=300"`
	Topics []string `json:"topics" binding:"required,min=1"`
}

// QuestionResponse is the question payload served to clients. Rating is the
// blended ranking score; VoteCount is the raw up-minus-down tally. The two
// are deliberately separate fields: a "+12" badge wants VoteCount, a "best
// questions" ordering wants Rating.
type QuestionResponse struct {
	ID           uint     `json:"id"`
	Text         string   `json:"text"`
	AuthorID     uint     `json:"authorId"`
	Rating       float64  `json:"rating"`
	VoteCount    float64  `json:"voteCount"`
	Timestamp    int64    `json:"timestamp"`
	BestAnswerID *uint    `json:"bestAnswerId"`
	Topics       []string `json:"topics"`
	VoteStatus   int      `json:"voteStatus"`
}
