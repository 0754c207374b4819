package models

// Session is the signed-in user as reported by the authentication provider.
type Session struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	AccessToken string `json:"access_token"`
}
