package client

import (
	"context"
	"net/http"

	"cinecraft/internal/domain/models"
)

type AuthAPI struct{ c *Client }

func (c *Client) Auth() AuthAPI { return AuthAPI{c: c} }

// Login stores the returned token and user in the client's TokenStore.
func (a AuthAPI) Login(ctx context.Context, email, password string) (Session, error) {
	var res Session
	if _, err := a.c.do(ctx, http.MethodPost, "/api/auth/login", models.LoginInput{Email: email, Password: password}, &res); err != nil {
		return Session{}, err
	}
	if err := a.c.Tokens.Save(res); err != nil {
		return Session{}, err
	}
	return res, nil
}

func (a AuthAPI) Register(ctx context.Context, in models.RegisterInput) (Session, error) {
	var res Session
	if _, err := a.c.do(ctx, http.MethodPost, "/api/auth/register", in, &res); err != nil {
		return Session{}, err
	}
	if err := a.c.Tokens.Save(res); err != nil {
		return Session{}, err
	}
	return res, nil
}

func (a AuthAPI) Me(ctx context.Context) (models.PublicUser, error) {
	var u models.PublicUser
	_, err := a.c.do(ctx, http.MethodGet, "/api/auth/me", nil, &u)
	return u, err
}

// Logout only forgets the local session; tokens are stateless.
func (a AuthAPI) Logout() error {
	return a.c.Tokens.Clear()
}

// LoggedIn reports whether a token is stored.
func (a AuthAPI) LoggedIn() bool {
	s, err := a.c.Tokens.Load()
	return err == nil && s.Token != ""
}
