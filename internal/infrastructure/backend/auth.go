package backend

import (
	"context"
	"net/http"

	"github.com/andesmarket/storefront-gateway/internal/core/ports"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse mirrors the backend's Spanish field names.
type loginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"rol"`
	Username    string `json:"usuario"`
}

// Login issues POST /login. A 401 response signals unrecognized credentials
// and surfaces as *domain.BackendError with that status.
func (c *Client) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	var out loginResponse
	if err := c.do(ctx, http.MethodPost, "/login", loginRequest{Email: email, Password: password}, false, &out); err != nil {
		return nil, err
	}
	return &ports.LoginResult{
		AccessToken: out.AccessToken,
		Role:        out.Role,
		Username:    out.Username,
	}, nil
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	Role     string `json:"rol"`
}

// Register issues POST /usuarios/ to create an account.
func (c *Client) Register(ctx context.Context, email, password, username, role string) error {
	return c.do(ctx, http.MethodPost, "/usuarios/", registerRequest{
		Email:    email,
		Password: password,
		Username: username,
		Role:     role,
	}, false, nil)
}
