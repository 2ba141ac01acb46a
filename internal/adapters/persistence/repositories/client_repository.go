package repositories

import (
	"context"
	"strconv"

	"abonizera-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// clientRepository implements ClientRepository interface
type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

// Create inserts a new client/product row
func (r *clientRepository) Create(ctx context.Context, row *models.Abonizera) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// GetByID gets one row with its creator
func (r *clientRepository) GetByID(ctx context.Context, id uint) (*models.Abonizera, error) {
	var row models.Abonizera
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FirstByTelephone gets the oldest row for a telephone
func (r *clientRepository) FirstByTelephone(ctx context.Context, telephone string) (*models.Abonizera, error) {
	var row models.Abonizera
	err := r.db.WithContext(ctx).
		Where("telephone = ?", telephone).
		Order("id").
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListAll lists every row with creator attribution
func (r *clientRepository) ListAll(ctx context.Context) ([]*models.Abonizera, error) {
	var rows []*models.Abonizera
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Order("amazina DESC").
		Find(&rows).Error
	return rows, err
}

// ListByCreator lists rows created by one user
func (r *clientRepository) ListByCreator(ctx context.Context, userID uint) ([]*models.Abonizera, error) {
	var rows []*models.Abonizera
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Where("created_by = ?", userID).
		Order("id DESC").
		Find(&rows).Error
	return rows, err
}

// ListByTelephone lists every row of one logical client
func (r *clientRepository) ListByTelephone(ctx context.Context, telephone string) ([]*models.Abonizera, error) {
	var rows []*models.Abonizera
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Where("telephone = ?", telephone).
		Order("id DESC").
		Find(&rows).Error
	return rows, err
}

// Update saves a full row overwrite
func (r *clientRepository) Update(ctx context.Context, row *models.Abonizera) error {
	return r.db.WithContext(ctx).Save(row).Error
}

// AddBalance increments the balance of the first row for a telephone as a
// single transactional read-compute-write. The row is locked for the
// duration so concurrent increments serialize instead of losing updates.
func (r *clientRepository) AddBalance(ctx context.Context, telephone string, delta int64, updatedBy uint) (*BalanceUpdate, error) {
	var out BalanceUpdate

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.Abonizera
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("telephone = ?", telephone).
			Order("id").
			First(&row).Error; err != nil {
			return err
		}

		newBalance := row.Amount() + delta
		if err := tx.Model(&models.Abonizera{}).
			Where("id = ?", row.ID).
			Updates(map[string]interface{}{
				"amafaranga": strconv.FormatInt(newBalance, 10),
				"updated_by": updatedBy,
			}).Error; err != nil {
			return err
		}

		row.Amafaranga = strconv.FormatInt(newBalance, 10)
		row.UpdatedBy = &updatedBy
		out.Row = &row
		out.NewBalance = newBalance
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// DeleteByID deletes exactly one product row
func (r *clientRepository) DeleteByID(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Abonizera{}, id).Error
}

// DeleteByTelephone deletes every row of one logical client
func (r *clientRepository) DeleteByTelephone(ctx context.Context, telephone string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("telephone = ?", telephone).
		Delete(&models.Abonizera{})
	return result.RowsAffected, result.Error
}

// Stats aggregates over the whole table. The amount column is string
// typed, so the sum casts in SQL.
func (r *clientRepository) Stats(ctx context.Context) (*models.ClientStats, error) {
	var stats models.ClientStats
	err := r.db.WithContext(ctx).
		Model(&models.Abonizera{}).
		Select("COUNT(DISTINCT telephone) AS total_clients, COUNT(*) AS total_products, COALESCE(SUM(CAST(amafaranga AS SIGNED)), 0) AS total_debt").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
