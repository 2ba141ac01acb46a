package services

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"abonizera-api/internal/adapters/persistence/models"
	"abonizera-api/internal/adapters/persistence/repositories"
	"abonizera-api/internal/pkg/password"
)

var (
	ErrAdminExists          = errors.New("admin with this email already exists")
	ErrAdminNotFound        = errors.New("admin not found")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrEmailTaken           = errors.New("email already in use by another admin")
	ErrCurrentPasswordWrong = errors.New("current password is incorrect")
)

// AdminService handles admin authentication and profile operations
type AdminService struct {
	adminRepo repositories.AdminRepository
	sessions  SessionStore
}

// NewAdminService creates a new admin service
func NewAdminService(adminRepo repositories.AdminRepository, sessions SessionStore) *AdminService {
	return &AdminService{
		adminRepo: adminRepo,
		sessions:  sessions,
	}
}

// AdminSignupInput holds the fields for registering an admin account
type AdminSignupInput struct {
	Email     string
	Telephone string
	Password  string
}

// Signup registers a new admin account
func (s *AdminService) Signup(ctx context.Context, input AdminSignupInput) (*models.AdminResponse, error) {
	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	admin := &models.Admin{
		Email:     input.Email,
		Telephone: input.Telephone,
		Password:  hashed,
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAdminExists
		}
		return nil, err
	}

	log.Printf("✅ Admin registered: %s", admin.Email)
	return admin.ToResponse(), nil
}

// Login authenticates an admin and mints a session
func (s *AdminService) Login(ctx context.Context, email, pass string) (*models.AdminResponse, string, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !password.Verify(pass, admin.Password) {
		return nil, "", ErrInvalidCredentials
	}

	sessionID := s.sessions.Create(SessionIdentity{
		Kind:      SessionKindAdmin,
		ID:        admin.ID,
		Email:     admin.Email,
		Telephone: admin.Telephone,
	})

	log.Printf("✅ Admin logged in: %s", admin.Email)
	return admin.ToResponse(), sessionID, nil
}

// GetProfile returns the profile of an admin by id
func (s *AdminService) GetProfile(ctx context.Context, id uint) (*models.AdminResponse, error) {
	admin, err := s.adminRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return admin.ToResponse(), nil
}

// UpdateProfileInput holds the profile fields an admin can change.
// NewPassword is optional; changing it requires the current password.
type UpdateProfileInput struct {
	Email           string
	Telephone       string
	CurrentPassword string
	NewPassword     string
}

// UpdateProfile updates an admin's profile and refreshes the session
// identity so subsequent requests see the new email and telephone.
func (s *AdminService) UpdateProfile(ctx context.Context, adminID uint, sessionID string, input UpdateProfileInput) (*models.AdminResponse, error) {
	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}

	if input.Email != admin.Email {
		taken, err := s.adminRepo.ExistsByEmailExcept(ctx, input.Email, adminID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}

	if input.NewPassword != "" {
		if !password.Verify(input.CurrentPassword, admin.Password) {
			return nil, ErrCurrentPasswordWrong
		}
		hashed, err := password.Hash(input.NewPassword)
		if err != nil {
			return nil, err
		}
		admin.Password = hashed
	}

	admin.Email = input.Email
	admin.Telephone = input.Telephone

	if err := s.adminRepo.Update(ctx, admin); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.sessions.Refresh(sessionID, SessionIdentity{
		Kind:      SessionKindAdmin,
		ID:        admin.ID,
		Email:     admin.Email,
		Telephone: admin.Telephone,
	})

	log.Printf("✅ Admin profile updated: %s", admin.Email)
	return admin.ToResponse(), nil
}

// Logout revokes a session. Revoking an unknown session succeeds.
func (s *AdminService) Logout(sessionID string) {
	s.sessions.Revoke(sessionID)
}
