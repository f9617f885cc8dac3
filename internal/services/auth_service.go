package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cinecraft/internal/domain"
	"cinecraft/internal/domain/models"
	"cinecraft/internal/repositories"
	"cinecraft/internal/utils"
	"cinecraft/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var errBadCredentials = domain.UnauthorizedError{Msg: "Invalid email or password"}

type AuthService struct {
	Repo      repositories.UserRepository
	DB        *sql.DB
	Secret    []byte
	TTL       time.Duration
	Now       func() time.Time
	RequestID string
}

// AuthResult is what login/register hand back to the admin panel.
type AuthResult struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
	User      models.PublicUser `json:"user"`
}

func (s AuthService) repo() repositories.UserRepository {
	if s.Repo.DB != nil {
		return s.Repo
	}
	return repositories.UserRepository{DB: pickDB(s.DB)}
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s AuthService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return 24 * time.Hour
}

// Register creates an account. The first account on an install becomes the
// admin, later ones are plain users.
func (s AuthService) Register(ctx context.Context, in models.RegisterInput) (AuthResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Validate(in); err != nil {
		return AuthResult{}, err
	}
	if _, err := s.repo().GetByEmail(ctx, in.Email); err == nil {
		return AuthResult{}, domain.ConflictError{Resource: "user", Msg: "email already registered"}
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return AuthResult{}, domain.InternalError{Err: err}
	}

	role := domain.RoleUser
	admins, err := s.repo().CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return AuthResult{}, domain.InternalError{Err: err}
	}
	if admins == 0 {
		role = domain.RoleAdmin
	}

	u, err := s.createUser(ctx, in.Name, in.Email, in.Password, role)
	if err != nil {
		return AuthResult{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "register", fmt.Sprintf("user_id=%d role=%s", u.ID, u.Role))
	return s.issue(u)
}

func (s AuthService) createUser(ctx context.Context, name, email, password, role string) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}
	id, err := s.repo().Create(ctx, name, email, string(hash), role)
	if err != nil {
		return models.User{}, wrapRepoErr("user", err)
	}
	u, err := s.repo().GetByID(ctx, id)
	if err != nil {
		return models.User{}, wrapRepoErr("user", err)
	}
	return u, nil
}

func (s AuthService) Login(ctx context.Context, in models.LoginInput) (AuthResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Validate(in); err != nil {
		return AuthResult{}, err
	}
	u, err := s.repo().GetByEmail(ctx, in.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		return AuthResult{}, errBadCredentials
	}
	if err != nil {
		return AuthResult{}, domain.InternalError{Err: err}
	}
	if u.Status != "" && u.Status != "active" {
		return AuthResult{}, domain.UnauthorizedError{Msg: "Account is disabled"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return AuthResult{}, errBadCredentials
	}
	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d", u.ID))
	return s.issue(u)
}

func (s AuthService) issue(u models.User) (AuthResult, error) {
	if len(s.Secret) == 0 {
		return AuthResult{}, domain.InternalError{Msg: "jwt secret not configured"}
	}
	exp := s.now().Add(s.ttl())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID,
		"role":    u.Role,
		"exp":     exp.Unix(),
	})
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return AuthResult{}, domain.InternalError{Err: err}
	}
	return AuthResult{Token: signed, ExpiresAt: exp, User: u.ToPublic()}, nil
}

// ParseToken validates an HS256 token and returns who it belongs to.
func (s AuthService) ParseToken(raw string) (domain.RequestContext, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "missing token"}
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "invalid or expired token", Err: err}
	}
	uid, ok := claims["user_id"].(float64)
	if !ok || uid <= 0 {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "invalid token claims"}
	}
	role, _ := claims["role"].(string)
	return domain.RequestContext{UserID: domain.ID(uid), Role: role}, nil
}

func (s AuthService) Me(ctx context.Context, userID int64) (models.PublicUser, error) {
	u, err := s.repo().GetByID(ctx, userID)
	if err != nil {
		return models.PublicUser{}, wrapRepoErr("user", err)
	}
	return u.ToPublic(), nil
}

// EnsureAdmin creates the bootstrap admin when no admin exists yet.
func (s AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, nil
	}
	n, err := s.repo().CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	if n > 0 {
		return false, nil
	}
	if name == "" {
		name = "Administrator"
	}
	u, err := s.createUser(ctx, name, email, password, domain.RoleAdmin)
	if err != nil {
		return false, err
	}
	utils.LogEvent(s.RequestID, "auth", "ensure_admin", fmt.Sprintf("user_id=%d email=%s", u.ID, u.Email))
	return true, nil
}
