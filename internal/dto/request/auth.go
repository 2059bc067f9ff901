// Package request defines HTTP request bodies bound and validated by
// gin.
package request

// RegisterRequest creates an account.
type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=64"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FirstName   string `json:"first_name" binding:"max=64"`
	LastName    string `json:"last_name" binding:"max=64"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,max=20"`
}

// LoginRequest authenticates with username and password.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Device   string `json:"device" binding:"max=255"`
}

// RefreshRequest trades a refresh token for a new access token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest revokes a refresh token.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
