package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/abhishek-kr07/quickdesk/internal/apperr"
	"github.com/abhishek-kr07/quickdesk/internal/models"
	"github.com/abhishek-kr07/quickdesk/internal/policy"
	"github.com/abhishek-kr07/quickdesk/internal/repository"
)

const userNameMin = 2

// UserService covers the admin-side user operations. The password hash
// never leaves the model's json:"-" field.
type UserService struct {
	users repository.UserStore
}

func NewUserService(u repository.UserStore) *UserService {
	return &UserService{users: u}
}

func (s *UserService) requireAdmin(caller Caller) error {
	if !policy.Can(caller.Role, policy.CapManageUsers) {
		return apperr.New(apperr.AccessDenied, "Admin access required")
	}
	return nil
}

func (s *UserService) List(ctx context.Context, caller Caller) ([]models.User, error) {
	if err := s.requireAdmin(caller); err != nil {
		return nil, err
	}
	out, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.User{}
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, caller Caller, id string) (*models.User, error) {
	if err := s.requireAdmin(caller); err != nil {
		return nil, err
	}
	u, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.New(apperr.NotFound, "User not found")
	}
	return u, nil
}

type UpdateUserInput struct {
	Name  string
	Email string
	Role  string
}

func (s *UserService) Update(ctx context.Context, caller Caller, id string, in UpdateUserInput) (*models.User, error) {
	if err := s.requireAdmin(caller); err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	fields := map[string]string{}
	if in.Name != "" && len(in.Name) < userNameMin {
		fields["name"] = "Name must be at least 2 characters long"
	}
	if in.Email != "" {
		if _, err := mail.ParseAddress(in.Email); err != nil {
			fields["email"] = "Please provide a valid email"
		}
	}
	if in.Role != "" && !policy.ValidRole(in.Role) {
		fields["role"] = "Invalid role"
	}
	if len(fields) > 0 {
		return nil, apperr.Invalid("Validation failed", fields)
	}

	u, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.New(apperr.NotFound, "User not found")
	}

	// email stays unique case-insensitively across users
	if in.Email != "" && !strings.EqualFold(in.Email, u.Email) {
		other, err := s.users.GetByEmail(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, apperr.New(apperr.Conflict, "Email is already taken")
		}
	}

	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if in.Role != "" {
		u.Role = in.Role
	}
	if err := s.users.Update(ctx, u); err != nil {
		if err == repository.ErrNotFound {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, err
	}
	return u, nil
}

// Delete is a hard delete; tickets and comments authored by the user
// keep their userId and enrich as null from then on. See DESIGN.md.
func (s *UserService) Delete(ctx context.Context, caller Caller, id string) (*models.User, error) {
	if err := s.requireAdmin(caller); err != nil {
		return nil, err
	}
	u, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.New(apperr.NotFound, "User not found")
	}
	if _, err := s.users.Delete(ctx, id); err != nil {
		return nil, err
	}
	return u, nil
}

// Stats holds the admin overview numbers.
type Stats struct {
	TotalUsers  int `json:"totalUsers"`
	UserCount   int `json:"userCount"`
	AgentCount  int `json:"agentCount"`
	AdminCount  int `json:"adminCount"`
	RecentUsers int `json:"recentUsers"` // created within the last 30 days
}

func (s *UserService) Stats(ctx context.Context, caller Caller) (*Stats, error) {
	if err := s.requireAdmin(caller); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -30)
	st := &Stats{TotalUsers: len(users)}
	for _, u := range users {
		switch u.Role {
		case policy.RoleUser:
			st.UserCount++
		case policy.RoleAgent:
			st.AgentCount++
		case policy.RoleAdmin:
			st.AdminCount++
		}
		if u.CreatedAt.After(cutoff) {
			st.RecentUsers++
		}
	}
	return st, nil
}
