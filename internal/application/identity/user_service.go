package identity

import (
	"context"

	"github.com/dairyops/backend/internal/domain/audit"
	"github.com/dairyops/backend/internal/domain/identity"
	"github.com/dairyops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserService manages user accounts. Authorization (super_admin only) is
// enforced at the HTTP layer through the policy middleware.
type UserService struct {
	users identity.UserRepository
	audit audit.Sink
}

// NewUserService creates a new UserService
func NewUserService(users identity.UserRepository, sink audit.Sink) *UserService {
	return &UserService{
		users: users,
		audit: sink,
	}
}

// Create creates a new user with a unique username
func (s *UserService) Create(ctx context.Context, actor identity.Principal, req CreateUserRequest) (*UserResponse, error) {
	existing, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "User with this username already exists")
	}

	user, err := identity.NewUser(req.Username, req.Password, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(audit.NewLog(&actor.UserID, actor.Username, actor.Role.String(),
		string(identity.ActionUserManage), "users", user.ID.String(),
		map[string]any{"username": user.Username, "role": user.Role.String()}))

	resp := toUserResponse(user)
	return &resp, nil
}

// List returns all users
func (s *UserService) List(ctx context.Context) ([]UserResponse, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out, nil
}

// ChangePassword sets a new password for a user
func (s *UserService) ChangePassword(ctx context.Context, actor identity.Principal, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if err := user.SetPassword(req.Password); err != nil {
		return err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}

	s.audit.Record(audit.NewLog(&actor.UserID, actor.Username, actor.Role.String(),
		string(identity.ActionUserManage), "users", user.ID.String(),
		map[string]any{"password_changed": true}))
	return nil
}

// SetActive activates or deactivates a user
func (s *UserService) SetActive(ctx context.Context, actor identity.Principal, userID uuid.UUID, active bool) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if active {
		user.Activate()
	} else {
		user.Deactivate()
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(audit.NewLog(&actor.UserID, actor.Username, actor.Role.String(),
		string(identity.ActionUserManage), "users", user.ID.String(),
		map[string]any{"is_active": active}))

	resp := toUserResponse(user)
	return &resp, nil
}
