package models

// Session is the authenticated-user context gating all data operations:
// the opaque bearer token and the display name returned at login.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// LoginRequest is the credential payload for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Sno      int    `json:"sno" validate:"required,gt=0"`
}
