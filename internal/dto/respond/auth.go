// Package respond defines HTTP response bodies.
package respond

// LoginRespond returns the token pair and basic profile.
type LoginRespond struct {
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	DisplayName  string `json:"display_name"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RegisterRespond returns the created account id.
type RegisterRespond struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

// RefreshRespond returns a fresh access token.
type RefreshRespond struct {
	AccessToken string `json:"access_token"`
}
