package models

import (
	"strconv"
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Admin & User Accounts
// ============================================================

// Admin represents the admin table
type Admin struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Email     string `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Telephone string `gorm:"size:20;not null" json:"telephone"`
	Password  string `gorm:"size:255;not null" json:"-"`
}

func (Admin) TableName() string {
	return "admin"
}

// AdminResponse DTO
type AdminResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
}

func (a *Admin) ToResponse() *AdminResponse {
	return &AdminResponse{
		ID:        a.ID,
		Email:     a.Email,
		Telephone: a.Telephone,
	}
}

// User statuses
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// User represents the users table (end customer/operator account)
type User struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Amazina          string     `gorm:"size:100;not null" json:"amazina"`
	RefTelephone     string     `gorm:"column:ref_telephone;size:20" json:"ref_telephone"`
	AhoUherereye     string     `gorm:"column:aho_uherereye;size:100" json:"aho_uherereye"`
	Telephone        string     `gorm:"uniqueIndex;size:10;not null" json:"telephone"`
	Pin              string     `gorm:"size:255;not null" json:"-"`
	Status           string     `gorm:"size:20;default:'active'" json:"status"`
	ResetToken       *string    `gorm:"size:10" json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO — never exposes the pin hash or reset token
type UserResponse struct {
	ID           uint      `json:"id"`
	Amazina      string    `json:"amazina"`
	RefTelephone string    `json:"ref_telephone"`
	AhoUherereye string    `json:"aho_uherereye"`
	Telephone    string    `json:"telephone"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		Amazina:      u.Amazina,
		RefTelephone: u.RefTelephone,
		AhoUherereye: u.AhoUherereye,
		Telephone:    u.Telephone,
		Status:       u.Status,
		CreatedAt:    u.CreatedAt,
	}
}

// ============================================================
// Abonizera (client/product rows)
// ============================================================

// Defaults applied when a client row is created without product details
const (
	DefaultProduct     = "Nta bicuruzwa"
	DefaultAmount      = "0"
	DefaultCreatorName = "System"
)

// Abonizera represents one product/amount row of a tracked client.
// A logical client is the set of rows sharing one telephone.
type Abonizera struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Amazina          string    `gorm:"size:100;not null" json:"amazina"`
	Telephone        string    `gorm:"size:10;not null;index" json:"telephone"`
	Igicuruzwa       string    `gorm:"size:100" json:"igicuruzwa"`
	Amafaranga       string    `gorm:"size:20" json:"amafaranga"`
	CreatedBy        uint      `gorm:"not null;index" json:"created_by"`
	CreatorTelephone string    `gorm:"size:10" json:"creator_telephone"`
	CreatorName      string    `gorm:"size:100" json:"creator_name"`
	UpdatedBy        *uint     `json:"updated_by"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Creator *User `gorm:"foreignKey:CreatedBy" json:"-"`
}

func (Abonizera) TableName() string {
	return "abonizera"
}

// Amount parses the string-typed amafaranga column. Unparseable values
// count as zero, matching the source data's loose typing.
func (a *Abonizera) Amount() int64 {
	n, err := strconv.ParseInt(a.Amafaranga, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// ClientResponse DTO — one abonizera row with creator attribution
type ClientResponse struct {
	ID               uint      `json:"id"`
	Amazina          string    `json:"amazina"`
	Telephone        string    `json:"telephone"`
	Igicuruzwa       string    `json:"igicuruzwa"`
	Amafaranga       string    `json:"amafaranga"`
	CreatedBy        uint      `json:"created_by"`
	CreatorTelephone string    `json:"creator_telephone"`
	CreatorName      string    `json:"creator_name"`
	UpdatedBy        *uint     `json:"updated_by"`
	CreatedAt        time.Time `json:"created_at"`
}

func (a *Abonizera) ToResponse() *ClientResponse {
	resp := &ClientResponse{
		ID:               a.ID,
		Amazina:          a.Amazina,
		Telephone:        a.Telephone,
		Igicuruzwa:       a.Igicuruzwa,
		Amafaranga:       a.Amafaranga,
		CreatedBy:        a.CreatedBy,
		CreatorTelephone: a.CreatorTelephone,
		CreatorName:      a.CreatorName,
		UpdatedBy:        a.UpdatedBy,
		CreatedAt:        a.CreatedAt,
	}

	// The users table wins over the denormalized creator columns
	if a.Creator != nil {
		resp.CreatorName = a.Creator.Amazina
		resp.CreatorTelephone = a.Creator.Telephone
	}

	return resp
}

// ClientProduct is one product entry inside an aggregated client view
type ClientProduct struct {
	ID               uint      `json:"id"`
	Igicuruzwa       string    `json:"igicuruzwa"`
	Amafaranga       int64     `json:"amafaranga"`
	CreatedAt        time.Time `json:"created_at"`
	CreatedBy        uint      `json:"created_by"`
	CreatorName      string    `json:"creator_name"`
	CreatorTelephone string    `json:"creator_telephone"`
}

// ClientAggregate groups every row of one telephone into a single client view
type ClientAggregate struct {
	Amazina     string          `json:"amazina"`
	Telephone   string          `json:"telephone"`
	TotalAmount int64           `json:"totalAmount"`
	Products    []ClientProduct `json:"products"`
}

// AggregateClients folds abonizera rows (all sharing one telephone) into
// one client view: summed balance plus the per-row product list.
func AggregateClients(rows []*Abonizera) *ClientAggregate {
	if len(rows) == 0 {
		return nil
	}

	agg := &ClientAggregate{
		Amazina:   rows[0].Amazina,
		Telephone: rows[0].Telephone,
		Products:  make([]ClientProduct, 0, len(rows)),
	}

	for _, row := range rows {
		r := row.ToResponse()
		agg.TotalAmount += row.Amount()
		agg.Products = append(agg.Products, ClientProduct{
			ID:               row.ID,
			Igicuruzwa:       row.Igicuruzwa,
			Amafaranga:       row.Amount(),
			CreatedAt:        row.CreatedAt,
			CreatedBy:        row.CreatedBy,
			CreatorName:      r.CreatorName,
			CreatorTelephone: r.CreatorTelephone,
		})
	}

	return agg
}

// ClientStats aggregates over the whole abonizera table
type ClientStats struct {
	TotalClients  int64 `json:"totalClients"`
	TotalProducts int64 `json:"totalProducts"`
	TotalDebt     int64 `json:"totalDebt"`
}

// ============================================================
// Payment History
// ============================================================

// History represents the append-only history table
type History struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AbonizeraID uint      `gorm:"column:abonizera_id;not null;index" json:"abonizera_id"`
	Amazina     string    `gorm:"size:100" json:"amazina"`
	Amafaranga  string    `gorm:"size:20" json:"amafaranga"`
	Telephone   string    `gorm:"size:10" json:"telephone"`
	Igicuruzwa  *string   `gorm:"size:100" json:"-"`
	HistoryDate time.Time `gorm:"column:history_date;autoCreateTime" json:"history_date"`

	// Relations
	Abonizera *Abonizera `gorm:"foreignKey:AbonizeraID" json:"-"`
}

func (History) TableName() string {
	return "history"
}

// HistoryResponse DTO — history row joined with the product it belongs to
type HistoryResponse struct {
	ID          uint      `json:"id"`
	AbonizeraID uint      `json:"abonizera_id"`
	Amazina     string    `json:"amazina"`
	Amafaranga  string    `json:"amafaranga"`
	Telephone   string    `json:"telephone"`
	Igicuruzwa  string    `json:"igicuruzwa"`
	HistoryDate time.Time `json:"history_date"`
}

func (h *History) ToResponse() *HistoryResponse {
	resp := &HistoryResponse{
		ID:          h.ID,
		AbonizeraID: h.AbonizeraID,
		Amazina:     h.Amazina,
		Amafaranga:  h.Amafaranga,
		Telephone:   h.Telephone,
		HistoryDate: h.HistoryDate,
	}

	if h.Igicuruzwa != nil {
		resp.Igicuruzwa = *h.Igicuruzwa
	}
	if resp.Igicuruzwa == "" && h.Abonizera != nil {
		resp.Igicuruzwa = h.Abonizera.Igicuruzwa
	}

	return resp
}

// ============================================================
// Support Tickets
// ============================================================

// Ticket represents the ticket table. There is deliberately no status
// or assignment column.
type Ticket struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Amazina     string  `gorm:"size:100;not null" json:"amazina"`
	Telephone   string  `gorm:"size:10;not null" json:"telephone"`
	Description *string `gorm:"type:text" json:"description"`
}

func (Ticket) TableName() string {
	return "ticket"
}

// TicketResponse DTO
type TicketResponse struct {
	ID          uint   `json:"id"`
	Amazina     string `json:"amazina"`
	Telephone   string `json:"telephone"`
	Description string `json:"description"`
}

func (t *Ticket) ToResponse() *TicketResponse {
	resp := &TicketResponse{
		ID:        t.ID,
		Amazina:   t.Amazina,
		Telephone: t.Telephone,
	}
	if t.Description != nil {
		resp.Description = *t.Description
	}
	return resp
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Admin{},
		&User{},
		&Abonizera{},
		&History{},
		&Ticket{},
	)
}
