package models

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// LoginResponse carries the JWT issued on a successful login.
type LoginResponse struct {
	Token string `json:"token"`
}

// PhotoResponse carries the URL of an uploaded profile photo.
type PhotoResponse struct {
	PhotoURL string `json:"photoUrl"`
}
