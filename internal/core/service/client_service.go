package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/engnet/backoffice-api/internal/core/domain"
	"github.com/engnet/backoffice-api/internal/core/ports"
)

const (
	minCNPJLength = 14
	maxCNPJLength = 18
)

type ClientService struct {
	repo   ports.ClientRepository
	audit  auditTrail
	logger zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, audit ports.AuditLog, logger zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, audit: newAuditTrail(audit, logger), logger: logger}
}

func (s *ClientService) Create(ctx context.Context, input ports.CreateClientInput) (*domain.Client, error) {
	companyName := strings.TrimSpace(input.CompanyName)
	contactPerson := strings.TrimSpace(input.ContactPerson)
	if companyName == "" {
		return nil, fmt.Errorf("%w: companyName is required", domain.ErrValidation)
	}
	if contactPerson == "" {
		return nil, fmt.Errorf("%w: contactPerson is required", domain.ErrValidation)
	}
	if err := validateCNPJ(input.CNPJ); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	client := &domain.Client{
		ID:            uuid.NewString(),
		CompanyName:   companyName,
		ContactPerson: contactPerson,
		CNPJ:          input.CNPJ,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Create(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	s.audit.record(ctx, domain.EntityClient, created.ID, domain.ActionCreated, map[string]any{
		"companyName":   created.CompanyName,
		"contactPerson": created.ContactPerson,
		"cnpj":          created.CNPJ,
	})
	return created, nil
}

func (s *ClientService) FindAll(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

func (s *ClientService) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	if !validID(id) {
		return nil, domain.ErrClientNotFound
	}
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find client: %w", err)
	}
	return client, nil
}

func (s *ClientService) Update(ctx context.Context, id string, input ports.UpdateClientInput) (*domain.Client, error) {
	client, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}

	if input.CompanyName != nil {
		v := strings.TrimSpace(*input.CompanyName)
		if v == "" {
			return nil, fmt.Errorf("%w: companyName must not be empty", domain.ErrValidation)
		}
		client.CompanyName = v
		changes["companyName"] = v
	}
	if input.ContactPerson != nil {
		v := strings.TrimSpace(*input.ContactPerson)
		if v == "" {
			return nil, fmt.Errorf("%w: contactPerson must not be empty", domain.ErrValidation)
		}
		client.ContactPerson = v
		changes["contactPerson"] = v
	}
	if input.CNPJ != nil {
		if err := validateCNPJ(input.CNPJ); err != nil {
			return nil, err
		}
		client.CNPJ = input.CNPJ
		changes["cnpj"] = *input.CNPJ
	}

	client.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}

	s.audit.record(ctx, domain.EntityClient, updated.ID, domain.ActionUpdated, changes)
	return updated, nil
}

func (s *ClientService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrClientNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}

	s.audit.record(ctx, domain.EntityClient, id, domain.ActionDeleted, nil)
	return nil
}

func validateCNPJ(cnpj *string) error {
	if cnpj == nil {
		return nil
	}
	if strings.TrimSpace(*cnpj) == "" {
		return fmt.Errorf("%w: cnpj must not be blank", domain.ErrValidation)
	}
	if n := utf8.RuneCountInString(*cnpj); n < minCNPJLength || n > maxCNPJLength {
		return fmt.Errorf("%w: cnpj must be between %d and %d characters", domain.ErrValidation, minCNPJLength, maxCNPJLength)
	}
	return nil
}
