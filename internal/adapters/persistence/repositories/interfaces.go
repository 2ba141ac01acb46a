package repositories

import (
	"context"
	"time"

	"abonizera-api/internal/adapters/persistence/models"
)

// AdminRepository defines admin account data access
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id uint) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	ExistsByEmailExcept(ctx context.Context, email string, exceptID uint) (bool, error)
	Update(ctx context.Context, admin *models.Admin) error
}

// UserRepository defines end-user account data access
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByTelephone(ctx context.Context, telephone string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	SetResetToken(ctx context.Context, telephone, token string, expiry time.Time) error
	GetByResetToken(ctx context.Context, telephone, token string, now time.Time) (*models.User, error)
	UpdatePin(ctx context.Context, id uint, hashedPin string) error
	PurgeExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}

// BalanceUpdate is the outcome of an atomic balance increment
type BalanceUpdate struct {
	Row        *models.Abonizera
	NewBalance int64
}

// ClientRepository defines abonizera (client/product row) data access
type ClientRepository interface {
	Create(ctx context.Context, row *models.Abonizera) error
	GetByID(ctx context.Context, id uint) (*models.Abonizera, error)
	FirstByTelephone(ctx context.Context, telephone string) (*models.Abonizera, error)
	ListAll(ctx context.Context) ([]*models.Abonizera, error)
	ListByCreator(ctx context.Context, userID uint) ([]*models.Abonizera, error)
	ListByTelephone(ctx context.Context, telephone string) ([]*models.Abonizera, error)
	Update(ctx context.Context, row *models.Abonizera) error
	AddBalance(ctx context.Context, telephone string, delta int64, updatedBy uint) (*BalanceUpdate, error)
	DeleteByID(ctx context.Context, id uint) error
	DeleteByTelephone(ctx context.Context, telephone string) (int64, error)
	Stats(ctx context.Context) (*models.ClientStats, error)
}

// HistoryRepository defines payment history data access
type HistoryRepository interface {
	Create(ctx context.Context, entry *models.History) error
	ListAll(ctx context.Context) ([]*models.History, error)
	ListByCreator(ctx context.Context, userID uint) ([]*models.History, error)
}

// TicketRepository defines support ticket data access
type TicketRepository interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	GetByID(ctx context.Context, id uint) (*models.Ticket, error)
	List(ctx context.Context) ([]*models.Ticket, error)
	ListPage(ctx context.Context, offset, limit int) ([]*models.Ticket, int64, error)
	Update(ctx context.Context, ticket *models.Ticket) error
	Delete(ctx context.Context, id uint) error
}

// DiagnosticsRepository backs the table-connectivity probe endpoints
type DiagnosticsRepository interface {
	TableInfo(ctx context.Context, table string) ([]string, error)
}
