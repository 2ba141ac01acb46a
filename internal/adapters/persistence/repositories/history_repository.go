package repositories

import (
	"context"

	"abonizera-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// historyRepository implements HistoryRepository interface
type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

// Create appends a history entry
func (r *historyRepository) Create(ctx context.Context, entry *models.History) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListAll lists history entries with their product rows, newest first
func (r *historyRepository) ListAll(ctx context.Context) ([]*models.History, error) {
	var entries []*models.History
	err := r.db.WithContext(ctx).
		Preload("Abonizera").
		Order("history_date DESC").
		Find(&entries).Error
	return entries, err
}

// ListByCreator lists history for products owned by one user, joined
// through abonizera.created_by
func (r *historyRepository) ListByCreator(ctx context.Context, userID uint) ([]*models.History, error) {
	var entries []*models.History
	err := r.db.WithContext(ctx).
		Preload("Abonizera").
		Joins("LEFT JOIN abonizera a ON history.abonizera_id = a.id").
		Where("a.created_by = ?", userID).
		Order("history.history_date DESC").
		Find(&entries).Error
	return entries, err
}
