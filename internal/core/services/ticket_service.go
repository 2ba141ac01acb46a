package services

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"abonizera-api/internal/adapters/persistence/models"
	"abonizera-api/internal/adapters/persistence/repositories"
	"abonizera-api/internal/pkg/pagination"
)

var ErrTicketNotFound = errors.New("ticket not found")

// TicketService handles support tickets
type TicketService struct {
	ticketRepo repositories.TicketRepository
}

// NewTicketService creates a new ticket service
func NewTicketService(ticketRepo repositories.TicketRepository) *TicketService {
	return &TicketService{ticketRepo: ticketRepo}
}

// TicketInput holds the fields of a support ticket
type TicketInput struct {
	Amazina     string
	Telephone   string
	Description string
}

// Create opens a new support ticket
func (s *TicketService) Create(ctx context.Context, input TicketInput) (*models.TicketResponse, error) {
	ticket := &models.Ticket{
		Amazina:   input.Amazina,
		Telephone: input.Telephone,
	}
	if input.Description != "" {
		ticket.Description = &input.Description
	}

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	log.Printf("✅ Ticket created by %s", ticket.Telephone)
	return ticket.ToResponse(), nil
}

// Get returns a ticket by id
func (s *TicketService) Get(ctx context.Context, id uint) (*models.TicketResponse, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return ticket.ToResponse(), nil
}

// ListAll returns every ticket, newest first
func (s *TicketService) ListAll(ctx context.Context) ([]*models.TicketResponse, error) {
	tickets, err := s.ticketRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toTicketResponses(tickets), nil
}

// ListPage returns one page of tickets with pagination metadata
func (s *TicketService) ListPage(ctx context.Context, params *pagination.Params) ([]*models.TicketResponse, *pagination.Meta, error) {
	tickets, total, err := s.ticketRepo.ListPage(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, nil, err
	}
	return toTicketResponses(tickets), pagination.GetMeta(params, total), nil
}

// Update replaces a ticket's fields
func (s *TicketService) Update(ctx context.Context, id uint, input TicketInput) (*models.TicketResponse, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}

	ticket.Amazina = input.Amazina
	ticket.Telephone = input.Telephone
	if input.Description != "" {
		ticket.Description = &input.Description
	} else {
		ticket.Description = nil
	}

	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, err
	}

	log.Printf("✅ Ticket %d updated", ticket.ID)
	return ticket.ToResponse(), nil
}

// Delete removes a ticket by id
func (s *TicketService) Delete(ctx context.Context, id uint) error {
	if _, err := s.ticketRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTicketNotFound
		}
		return err
	}
	if err := s.ticketRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Ticket %d deleted", id)
	return nil
}

func toTicketResponses(tickets []*models.Ticket) []*models.TicketResponse {
	responses := make([]*models.TicketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		responses = append(responses, ticket.ToResponse())
	}
	return responses
}
