package service

import (
	"context"
	"fmt"
	"math/rand"
	"net/mail"
	"strings"
	"time"

	"github.com/abhishek-kr07/quickdesk/internal/apperr"
	"github.com/abhishek-kr07/quickdesk/internal/models"
	"github.com/abhishek-kr07/quickdesk/internal/policy"
	"github.com/abhishek-kr07/quickdesk/internal/repository"
	"github.com/abhishek-kr07/quickdesk/internal/utils"
)

const sessionTTL = 24 * time.Hour

type AuthService struct {
	users         repository.UserStore
	sessionSecret string
}

func NewAuthService(users repository.UserStore, sessionSecret string) *AuthService {
	return &AuthService{users: users, sessionSecret: sessionSecret}
}

// Register creates an end-user account. Self-registration never grants
// an elevated role.
func (a *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	fields := map[string]string{}
	if len(name) < userNameMin {
		fields["name"] = "Name must be at least 2 characters long"
	}
	if _, err := mail.ParseAddress(email); err != nil {
		fields["email"] = "Please provide a valid email"
	}
	if len(password) < 6 {
		fields["password"] = "Password must be at least 6 characters long"
	}
	if len(fields) > 0 {
		return nil, apperr.Invalid("Validation failed", fields)
	}

	existing, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.New(apperr.Conflict, "Email is already taken")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     policy.RoleUser,
		Avatar:   defaultAvatar(name),
	}
	if err := a.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (a *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	u, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil || !utils.CheckPassword(u.Password, password) {
		return "", nil, apperr.New(apperr.Unauthenticated, "Invalid credentials")
	}
	tok, err := utils.SignJWT(a.sessionSecret, u.ID, u.Role, sessionTTL)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

func (a *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	u, err := a.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.New(apperr.NotFound, "User not found")
	}
	return u, nil
}

var avatarColors = []string{"1976d2", "2e7d32", "ed6c02", "9c27b0", "d32f2f", "0288d1", "388e3c", "f57c00"}

func defaultAvatar(name string) string {
	color := avatarColors[rand.Intn(len(avatarColors))]
	initial := "?"
	if name != "" {
		initial = strings.ToUpper(name[:1])
	}
	return fmt.Sprintf("https://via.placeholder.com/40/%s/ffffff?text=%s", color, initial)
}
