package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fastfast-logistics/apperror"
	"fastfast-logistics/logger"
	userModel "fastfast-logistics/models/user"
	"fastfast-logistics/services/session"
	"fastfast-logistics/types"
	authTypes "fastfast-logistics/types/auth"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service owns user accounts: registration, login and role changes.
type Service struct {
	DB       *gorm.DB
	Sessions *session.Manager
}

func NewService(db *gorm.DB, sessions *session.Manager) *Service {
	return &Service{DB: db, Sessions: sessions}
}

type LoginResult struct {
	Token  string
	Claims *session.Claims
	User   userModel.User
}

func (s *Service) Register(ctx context.Context, req authTypes.RegisterRequest) (*userModel.User, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	hash, err := session.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.Internal("failed to hash password", err)
	}

	u := userModel.User{
		Uuid:         uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         userModel.RoleUser,
	}
	if req.Name != "" {
		u.Name = &req.Name
	}
	if req.Phone != "" {
		u.Phone = &req.Phone
	}

	if err := s.DB.WithContext(ctx).Create(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("email already registered")
		}
		return nil, apperror.Internal("failed to create user", err)
	}

	logger.Success("User registered: " + u.Uuid)
	return &u, nil
}

// Login checks the password and issues a session token. Unknown emails and
// wrong passwords give the same error.
func (s *Service) Login(ctx context.Context, req authTypes.LoginRequest) (*LoginResult, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	var u userModel.User
	err := s.DB.WithContext(ctx).Where("email = ?", req.Email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Authentication("invalid email or password")
	}
	if err != nil {
		return nil, apperror.Internal("failed to load user", err)
	}
	if !session.CheckPassword(u.PasswordHash, req.Password) {
		logger.Warning("Failed login for " + req.Email)
		return nil, apperror.Authentication("invalid email or password")
	}

	token, claims, err := s.Sessions.Issue(u)
	if err != nil {
		return nil, apperror.Internal("failed to issue session", err)
	}
	return &LoginResult{Token: token, Claims: claims, User: u}, nil
}

func (s *Service) Logout(ctx context.Context, claims *session.Claims) error {
	return s.Sessions.Revoke(ctx, claims)
}

func (s *Service) Profile(ctx context.Context, actor types.Actor) (*userModel.User, error) {
	if actor.UserID == 0 {
		return nil, apperror.Authentication("authentication required")
	}
	var u userModel.User
	err := s.DB.WithContext(ctx).First(&u, actor.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("user not found")
	}
	if err != nil {
		return nil, apperror.Internal("failed to load user", err)
	}
	return &u, nil
}

// ListUsers is the admin user listing, optionally narrowed to one role.
func (s *Service) ListUsers(ctx context.Context, actor types.Actor, role string, limit, offset int) ([]userModel.User, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, apperror.Authorization("only admins can list users")
	}

	query := s.DB.WithContext(ctx).Model(&userModel.User{})
	if role != "" {
		r := userModel.Role(strings.ToUpper(role))
		if !r.IsValid() {
			return nil, 0, apperror.Validation("role must be ADMIN, USER or RIDER")
		}
		query = query.Where("role = ?", r)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.Internal("failed to count users", err)
	}
	var users []userModel.User
	if err := query.Order("id ASC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, apperror.Internal("failed to list users", err)
	}
	return users, total, nil
}

// SetRole changes a user's role. Promoting to RIDER does not create a rider
// profile.
func (s *Service) SetRole(ctx context.Context, actor types.Actor, userID uint, role string) (*userModel.User, error) {
	if !actor.IsAdmin() {
		return nil, apperror.Authorization("only admins can change roles")
	}
	r := userModel.Role(strings.ToUpper(strings.TrimSpace(role)))
	if !r.IsValid() {
		return nil, apperror.Validation("role must be ADMIN, USER or RIDER")
	}
	if userID == actor.UserID && r != userModel.RoleAdmin {
		return nil, apperror.InvalidState("admins cannot demote themselves")
	}

	var u userModel.User
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&u, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("user not found")
			}
			return err
		}
		if err := tx.Model(&u).Update("role", r).Error; err != nil {
			return fmt.Errorf("update role: %w", err)
		}
		u.Role = r
		return nil
	})
	if err != nil {
		return nil, apperror.Wrap("failed to change role", err)
	}

	logger.Info(fmt.Sprintf("User %s is now %s (changed by admin %d)", u.Uuid, r, actor.UserID))
	return &u, nil
}

// EnsureAdmin creates the admin account if no user has that email yet.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) (*userModel.User, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing userModel.User
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("look up admin: %w", err)
	}

	hash, err := session.HashPassword(password)
	if err != nil {
		return nil, false, fmt.Errorf("hash admin password: %w", err)
	}
	admin := userModel.User{
		Uuid:         uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         userModel.RoleAdmin,
	}
	if err := s.DB.WithContext(ctx).Create(&admin).Error; err != nil {
		return nil, false, fmt.Errorf("create admin: %w", err)
	}
	return &admin, true, nil
}
