package services

import (
	"context"
	"log"

	"abonizera-api/internal/adapters/persistence/models"
	"abonizera-api/internal/adapters/persistence/repositories"
)

// HistoryService handles the payment history ledger
type HistoryService struct {
	historyRepo repositories.HistoryRepository
}

// NewHistoryService creates a new history service
func NewHistoryService(historyRepo repositories.HistoryRepository) *HistoryService {
	return &HistoryService{historyRepo: historyRepo}
}

// RecordInput holds the fields of a manually recorded history entry
type RecordInput struct {
	AbonizeraID uint
	Amazina     string
	Telephone   string
	Amafaranga  string
	Igicuruzwa  string
}

// Record appends an entry to the payment history
func (s *HistoryService) Record(ctx context.Context, input RecordInput) (*models.HistoryResponse, error) {
	entry := &models.History{
		AbonizeraID: input.AbonizeraID,
		Amazina:     input.Amazina,
		Telephone:   input.Telephone,
		Amafaranga:  input.Amafaranga,
	}
	if input.Igicuruzwa != "" {
		entry.Igicuruzwa = &input.Igicuruzwa
	}

	if err := s.historyRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	log.Printf("✅ History entry recorded for %s", entry.Telephone)
	return entry.ToResponse(), nil
}

// ListAll returns the full payment history, newest first
func (s *HistoryService) ListAll(ctx context.Context) ([]*models.HistoryResponse, error) {
	entries, err := s.historyRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toHistoryResponses(entries), nil
}

// ListByCreator returns the history of client rows a user registered
func (s *HistoryService) ListByCreator(ctx context.Context, userID uint) ([]*models.HistoryResponse, error) {
	entries, err := s.historyRepo.ListByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toHistoryResponses(entries), nil
}

func toHistoryResponses(entries []*models.History) []*models.HistoryResponse {
	responses := make([]*models.HistoryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, entry.ToResponse())
	}
	return responses
}
