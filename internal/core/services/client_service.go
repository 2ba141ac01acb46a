package services

import (
	"context"
	"errors"
	"log"
	"strconv"

	"gorm.io/gorm"

	"abonizera-api/internal/adapters/persistence/models"
	"abonizera-api/internal/adapters/persistence/repositories"
)

var (
	ErrClientNotFound  = errors.New("client not found")
	ErrProductNotFound = errors.New("product not found")
)

// ClientService handles client rows, balances and payment history
type ClientService struct {
	clientRepo  repositories.ClientRepository
	historyRepo repositories.HistoryRepository
}

// NewClientService creates a new client service
func NewClientService(clientRepo repositories.ClientRepository, historyRepo repositories.HistoryRepository) *ClientService {
	return &ClientService{
		clientRepo:  clientRepo,
		historyRepo: historyRepo,
	}
}

// CreateClientInput holds the fields for registering a client row
type CreateClientInput struct {
	Amazina          string
	Telephone        string
	Igicuruzwa       string
	Amafaranga       string
	CreatedBy        uint
	CreatorTelephone string
	CreatorName      string
}

// Create registers a new client row, filling product, amount and
// creator name with their defaults when absent
func (s *ClientService) Create(ctx context.Context, input CreateClientInput) (*models.ClientResponse, error) {
	row := &models.Abonizera{
		Amazina:          input.Amazina,
		Telephone:        input.Telephone,
		Igicuruzwa:       orDefault(input.Igicuruzwa, models.DefaultProduct),
		Amafaranga:       orDefault(input.Amafaranga, models.DefaultAmount),
		CreatedBy:        input.CreatedBy,
		CreatorTelephone: input.CreatorTelephone,
		CreatorName:      orDefault(input.CreatorName, models.DefaultCreatorName),
	}

	if err := s.clientRepo.Create(ctx, row); err != nil {
		return nil, err
	}

	log.Printf("✅ Client created: %s (%s)", row.Amazina, row.Telephone)
	return row.ToResponse(), nil
}

// AddProductInput holds the fields for adding a product to an
// existing client telephone
type AddProductInput struct {
	Telephone        string
	Igicuruzwa       string
	Amafaranga       string
	CreatedBy        uint
	CreatorTelephone string
	CreatorName      string
}

// AddProduct appends a product row to an existing client. The client
// name is copied from the client's first row; the telephone must
// already be registered.
func (s *ClientService) AddProduct(ctx context.Context, input AddProductInput) (*models.ClientResponse, error) {
	existing, err := s.clientRepo.FirstByTelephone(ctx, input.Telephone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	row := &models.Abonizera{
		Amazina:          existing.Amazina,
		Telephone:        input.Telephone,
		Igicuruzwa:       orDefault(input.Igicuruzwa, models.DefaultProduct),
		Amafaranga:       orDefault(input.Amafaranga, models.DefaultAmount),
		CreatedBy:        input.CreatedBy,
		CreatorTelephone: input.CreatorTelephone,
		CreatorName:      orDefault(input.CreatorName, models.DefaultCreatorName),
	}

	if err := s.clientRepo.Create(ctx, row); err != nil {
		return nil, err
	}

	log.Printf("✅ Product added for %s: %s", row.Telephone, row.Igicuruzwa)
	return row.ToResponse(), nil
}

// ListAll returns every client row, newest names first
func (s *ClientService) ListAll(ctx context.Context) ([]*models.ClientResponse, error) {
	rows, err := s.clientRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toClientResponses(rows), nil
}

// GetByID returns a single client row with creator attribution
func (s *ClientService) GetByID(ctx context.Context, id uint) (*models.ClientResponse, error) {
	row, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return row.ToResponse(), nil
}

// ListByCreator returns the client rows registered by a user
func (s *ClientService) ListByCreator(ctx context.Context, userID uint) ([]*models.ClientResponse, error) {
	rows, err := s.clientRepo.ListByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toClientResponses(rows), nil
}

// GetAggregate returns the combined view of a client telephone: total
// debt across all rows plus the per-product breakdown
func (s *ClientService) GetAggregate(ctx context.Context, telephone string) (*models.ClientAggregate, error) {
	rows, err := s.clientRepo.ListByTelephone(ctx, telephone)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrClientNotFound
	}
	return models.AggregateClients(rows), nil
}

// ListCrossUser returns a client telephone's rows registered by OTHER
// users. When includeMine is set the acting user's own rows are kept.
func (s *ClientService) ListCrossUser(ctx context.Context, telephone string, actingUserID uint, includeMine bool) ([]*models.ClientResponse, error) {
	rows, err := s.clientRepo.ListByTelephone(ctx, telephone)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrClientNotFound
	}

	filtered := make([]*models.ClientResponse, 0, len(rows))
	for _, row := range rows {
		if !includeMine && row.CreatedBy == actingUserID {
			continue
		}
		filtered = append(filtered, row.ToResponse())
	}
	return filtered, nil
}

// CheckTelephone reports whether a telephone is already registered and
// the client name it belongs to
func (s *ClientService) CheckTelephone(ctx context.Context, telephone string) (bool, string, error) {
	row, err := s.clientRepo.FirstByTelephone(ctx, telephone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, "", nil
		}
		return false, "", err
	}
	return true, row.Amazina, nil
}

// CheckClient returns the client's first row when the telephone is
// registered, nil otherwise
func (s *ClientService) CheckClient(ctx context.Context, telephone string) (*models.ClientResponse, error) {
	row, err := s.clientRepo.FirstByTelephone(ctx, telephone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return row.ToResponse(), nil
}

// UpdateClientInput holds the full replacement fields of a client row
type UpdateClientInput struct {
	Amazina    string
	Telephone  string
	Igicuruzwa string
	Amafaranga string
}

// Update overwrites a client row's name, telephone, product and amount
func (s *ClientService) Update(ctx context.Context, id uint, input UpdateClientInput) (*models.ClientResponse, error) {
	row, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	row.Amazina = input.Amazina
	row.Telephone = input.Telephone
	row.Igicuruzwa = orDefault(input.Igicuruzwa, models.DefaultProduct)
	row.Amafaranga = orDefault(input.Amafaranga, models.DefaultAmount)

	if err := s.clientRepo.Update(ctx, row); err != nil {
		return nil, err
	}

	log.Printf("✅ Client %d updated", row.ID)
	return row.ToResponse(), nil
}

// UpdateBalanceInput holds the fields for adding debt to a client
type UpdateBalanceInput struct {
	Telephone        string
	AdditionalAmount int64
	NewProduct       string
	UpdatedBy        uint
}

// BalanceResult reports the outcome of a balance update
type BalanceResult struct {
	Client           *models.ClientResponse `json:"client"`
	PreviousBalance  int64                  `json:"previousBalance"`
	AdditionalAmount int64                  `json:"additionalAmount"`
	NewBalance       int64                  `json:"newBalance"`
}

// UpdateBalance adds an amount to the balance of a client's first row
// and records the change in the payment history. A history write
// failure does not undo the committed balance update.
func (s *ClientService) UpdateBalance(ctx context.Context, input UpdateBalanceInput) (*BalanceResult, error) {
	update, err := s.clientRepo.AddBalance(ctx, input.Telephone, input.AdditionalAmount, input.UpdatedBy)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	entry := &models.History{
		AbonizeraID: update.Row.ID,
		Amazina:     update.Row.Amazina,
		Telephone:   update.Row.Telephone,
		Amafaranga:  strconv.FormatInt(input.AdditionalAmount, 10),
	}
	if input.NewProduct != "" {
		entry.Igicuruzwa = &input.NewProduct
	}
	if err := s.historyRepo.Create(ctx, entry); err != nil {
		log.Printf("❌ Failed to record history for %s: %v", input.Telephone, err)
	}

	log.Printf("✅ Balance updated for %s: +%d → %d", input.Telephone, input.AdditionalAmount, update.NewBalance)
	return &BalanceResult{
		Client:           update.Row.ToResponse(),
		PreviousBalance:  update.NewBalance - input.AdditionalAmount,
		AdditionalAmount: input.AdditionalAmount,
		NewBalance:       update.NewBalance,
	}, nil
}

// DeleteProduct removes a single client row by id
func (s *ClientService) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := s.clientRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if err := s.clientRepo.DeleteByID(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Product %d deleted", id)
	return nil
}

// DeleteClient removes every row of a client telephone and returns the
// number of rows removed
func (s *ClientService) DeleteClient(ctx context.Context, telephone string) (int64, error) {
	deleted, err := s.clientRepo.DeleteByTelephone(ctx, telephone)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, ErrClientNotFound
	}

	log.Printf("✅ Client %s deleted (%d rows)", telephone, deleted)
	return deleted, nil
}

// Stats returns the dashboard totals over all client rows
func (s *ClientService) Stats(ctx context.Context) (*models.ClientStats, error) {
	return s.clientRepo.Stats(ctx)
}

func toClientResponses(rows []*models.Abonizera) []*models.ClientResponse {
	responses := make([]*models.ClientResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, row.ToResponse())
	}
	return responses
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
