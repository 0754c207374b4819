package backend

import (
	"context"
	"net/http"

	"homefix/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	AccessToken string `json:"access_token"`
	User        struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (r *sessionResponse) toSession() *models.Session {
	userID := r.User.ID
	if userID == "" {
		userID = subjectFromToken(r.AccessToken)
	}
	return &models.Session{
		UserID:      userID,
		Email:       r.User.Email,
		AccessToken: r.AccessToken,
	}
}

// SignUp registers a new account and returns the resulting session.
func (c *Client) SignUp(ctx context.Context, email, password string) (*models.Session, error) {
	var resp sessionResponse
	body := credentialsRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/v1/auth/signup", "", body, &resp); err != nil {
		return nil, err
	}
	return resp.toSession(), nil
}

// SignIn exchanges credentials for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	var resp sessionResponse
	body := credentialsRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/v1/auth/token", "", body, &resp); err != nil {
		return nil, err
	}
	return resp.toSession(), nil
}

// SignOut revokes the access token on the backend.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/signout", accessToken, nil, nil)
}

// CurrentUser resolves a stored access token back into a session, used for
// the startup stored-session check.
func (c *Client) CurrentUser(ctx context.Context, accessToken string) (*models.Session, error) {
	var resp sessionResponse
	if err := c.do(ctx, http.MethodGet, "/v1/auth/user", accessToken, nil, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		resp.AccessToken = accessToken
	}
	return resp.toSession(), nil
}

// subjectFromToken extracts the user id from the token's sub claim. The
// token is issued and verified by the backend; the client only reads it.
func subjectFromToken(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}
