package services

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"gorm.io/gorm"

	"abonizera-api/internal/adapters/persistence/models"
	"abonizera-api/internal/adapters/persistence/repositories"
)

// In-memory repository fakes backing the service tests. They reproduce
// the gorm error contract the services depend on: ErrRecordNotFound for
// misses and ErrDuplicatedKey for unique index violations.

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Telephone == user.Telephone {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.nextID
	r.nextID++
	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByTelephone(_ context.Context, telephone string) (*models.User, error) {
	for _, u := range r.users {
		if u.Telephone == telephone {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) UpdateStatus(_ context.Context, id uint, status string) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Status = status
	return nil
}

func (r *fakeUserRepo) SetResetToken(_ context.Context, telephone, token string, expiry time.Time) error {
	for _, u := range r.users {
		if u.Telephone == telephone {
			u.ResetToken = &token
			u.ResetTokenExpiry = &expiry
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByResetToken(_ context.Context, telephone, token string, now time.Time) (*models.User, error) {
	for _, u := range r.users {
		if u.Telephone == telephone && u.ResetToken != nil && *u.ResetToken == token &&
			u.ResetTokenExpiry != nil && u.ResetTokenExpiry.After(now) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) UpdatePin(_ context.Context, id uint, hashedPin string) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Pin = hashedPin
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
	return nil
}

func (r *fakeUserRepo) PurgeExpiredResetTokens(_ context.Context, now time.Time) (int64, error) {
	var purged int64
	for _, u := range r.users {
		if u.ResetToken != nil && u.ResetTokenExpiry != nil && !u.ResetTokenExpiry.After(now) {
			u.ResetToken = nil
			u.ResetTokenExpiry = nil
			purged++
		}
	}
	return purged, nil
}

type fakeAdminRepo struct {
	admins map[uint]*models.Admin
	nextID uint
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[uint]*models.Admin), nextID: 1}
}

func (r *fakeAdminRepo) Create(_ context.Context, admin *models.Admin) error {
	for _, a := range r.admins {
		if a.Email == admin.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	admin.ID = r.nextID
	r.nextID++
	r.admins[admin.ID] = admin
	return nil
}

func (r *fakeAdminRepo) GetByID(_ context.Context, id uint) (*models.Admin, error) {
	a, ok := r.admins[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	for _, a := range r.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAdminRepo) ExistsByEmailExcept(_ context.Context, email string, exceptID uint) (bool, error) {
	for _, a := range r.admins {
		if a.Email == email && a.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAdminRepo) Update(_ context.Context, admin *models.Admin) error {
	for _, a := range r.admins {
		if a.Email == admin.Email && a.ID != admin.ID {
			return gorm.ErrDuplicatedKey
		}
	}
	if _, ok := r.admins[admin.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.admins[admin.ID] = admin
	return nil
}

type fakeClientRepo struct {
	rows   map[uint]*models.Abonizera
	nextID uint
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{rows: make(map[uint]*models.Abonizera), nextID: 1}
}

func (r *fakeClientRepo) Create(_ context.Context, row *models.Abonizera) error {
	row.ID = r.nextID
	r.nextID++
	row.CreatedAt = time.Now()
	r.rows[row.ID] = row
	return nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, id uint) (*models.Abonizera, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (r *fakeClientRepo) byTelephone(telephone string) []*models.Abonizera {
	var out []*models.Abonizera
	for _, row := range r.rows {
		if row.Telephone == telephone {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeClientRepo) FirstByTelephone(_ context.Context, telephone string) (*models.Abonizera, error) {
	rows := r.byTelephone(telephone)
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return rows[0], nil
}

func (r *fakeClientRepo) ListAll(_ context.Context) ([]*models.Abonizera, error) {
	out := make([]*models.Abonizera, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeClientRepo) ListByCreator(_ context.Context, userID uint) ([]*models.Abonizera, error) {
	var out []*models.Abonizera
	for _, row := range r.rows {
		if row.CreatedBy == userID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeClientRepo) ListByTelephone(_ context.Context, telephone string) ([]*models.Abonizera, error) {
	return r.byTelephone(telephone), nil
}

func (r *fakeClientRepo) Update(_ context.Context, row *models.Abonizera) error {
	if _, ok := r.rows[row.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.rows[row.ID] = row
	return nil
}

func (r *fakeClientRepo) AddBalance(_ context.Context, telephone string, delta int64, updatedBy uint) (*repositories.BalanceUpdate, error) {
	rows := r.byTelephone(telephone)
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	row := rows[0]
	newBalance := row.Amount() + delta
	row.Amafaranga = strconv.FormatInt(newBalance, 10)
	row.UpdatedBy = &updatedBy
	return &repositories.BalanceUpdate{Row: row, NewBalance: newBalance}, nil
}

func (r *fakeClientRepo) DeleteByID(_ context.Context, id uint) error {
	if _, ok := r.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeClientRepo) DeleteByTelephone(_ context.Context, telephone string) (int64, error) {
	var deleted int64
	for id, row := range r.rows {
		if row.Telephone == telephone {
			delete(r.rows, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeClientRepo) Stats(_ context.Context) (*models.ClientStats, error) {
	phones := make(map[string]struct{})
	stats := &models.ClientStats{}
	for _, row := range r.rows {
		phones[row.Telephone] = struct{}{}
		stats.TotalProducts++
		stats.TotalDebt += row.Amount()
	}
	stats.TotalClients = int64(len(phones))
	return stats, nil
}

type fakeHistoryRepo struct {
	entries []*models.History
	failing bool
}

var errHistoryDown = errors.New("history store unavailable")

func (r *fakeHistoryRepo) Create(_ context.Context, entry *models.History) error {
	if r.failing {
		return errHistoryDown
	}
	entry.ID = uint(len(r.entries) + 1)
	entry.HistoryDate = time.Now()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeHistoryRepo) ListAll(_ context.Context) ([]*models.History, error) {
	out := make([]*models.History, len(r.entries))
	copy(out, r.entries)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (r *fakeHistoryRepo) ListByCreator(_ context.Context, userID uint) ([]*models.History, error) {
	var out []*models.History
	for _, entry := range r.entries {
		if entry.Abonizera != nil && entry.Abonizera.CreatedBy == userID {
			out = append(out, entry)
		}
	}
	return out, nil
}

type fakeSMS struct {
	sent []string
	err  error
}

func (s *fakeSMS) Send(telephone, message string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, telephone+": "+message)
	return nil
}
