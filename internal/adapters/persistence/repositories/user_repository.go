package repositories

import (
	"context"
	"time"

	"abonizera-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user. The unique index on telephone is the
// duplicate check; violations come back as gorm.ErrDuplicatedKey.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByTelephone gets a user by telephone
func (r *userRepository) GetByTelephone(ctx context.Context, telephone string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("telephone = ?", telephone).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List lists all users
func (r *userRepository) List(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	return users, err
}

// UpdateStatus sets a user's status
func (r *userRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// SetResetToken stores a PIN reset token with its expiry
func (r *userRepository) SetResetToken(ctx context.Context, telephone, token string, expiry time.Time) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("telephone = ?", telephone).
		Updates(map[string]interface{}{
			"reset_token":        token,
			"reset_token_expiry": expiry,
		}).Error
}

// GetByResetToken finds the user whose telephone+token pair is still valid
func (r *userRepository) GetByResetToken(ctx context.Context, telephone, token string, now time.Time) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("telephone = ? AND reset_token = ? AND reset_token_expiry > ?", telephone, token, now).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePin stores a new PIN hash and clears the reset token, making the
// token single-use.
func (r *userRepository) UpdatePin(ctx context.Context, id uint, hashedPin string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"pin":                hashedPin,
			"reset_token":        nil,
			"reset_token_expiry": nil,
		}).Error
}

// PurgeExpiredResetTokens clears reset tokens that passed their expiry
func (r *userRepository) PurgeExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("reset_token IS NOT NULL AND reset_token_expiry < ?", now).
		Updates(map[string]interface{}{
			"reset_token":        nil,
			"reset_token_expiry": nil,
		})
	return result.RowsAffected, result.Error
}
