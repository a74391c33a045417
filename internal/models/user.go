package models

import (
	"time"
)

// User is a registered member of the forum. The rating and expertise fields
// users see are never stored; they are recomputed from votes on demand.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Password    string    `gorm:"not null" json:"-"`
	Nickname    string    `gorm:"size:64" json:"nickname"`
	Description string    `gorm:"size:255" json:"description"`
	PhotoURL    string    `gorm:"size:512" json:"photoUrl"`
	PhoneNumber string    `gorm:"size:32" json:"phoneNumber"`
	WantsSms    bool      `gorm:"default:false" json:"wantsSms"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// RegisterRequest defines the input for creating an account
type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=64"`
	Password    string `json:"password" binding:"required,min=6"`
	Nickname    string `json:"nickname"`
	Description string `json:"description"`
	PhoneNumber string `json:"phoneNumber"`
	WantsSms    bool   `json:"wantsSms"`
}

// LoginRequest defines the input for logging in
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest defines the partial profile update payload. Nil fields
// are left untouched.
type UpdateProfileRequest struct {
	Password    *string `json:"password"`
	Nickname    *string `json:"nickname"`
	Description *string `json:"description"`
	PhoneNumber *string `json:"phoneNumber"`
	WantsSms    *bool   `json:"wantsSms"`
}

// UserResponse is the public view of a user, including the derived rating and
// top expertise topics.
type UserResponse struct {
	ID          uint         `json:"id"`
	Username    string       `json:"username"`
	Nickname    string       `json:"nickname"`
	Description string       `json:"description"`
	PhotoURL    string       `json:"photoUrl"`
	PhoneNumber string       `json:"phoneNumber"`
	WantsSms    bool         `json:"wantsSms"`
	Rating      float64      `json:"rating"`
	Expertise   []TopicScore `json:"expertise"`
}
