package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/SundayYogurt/investment_service/internal/domain"
	"github.com/SundayYogurt/investment_service/internal/dto"
	"github.com/SundayYogurt/investment_service/internal/repository"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

type AuditService interface {
	// HandleMessage persists one event read from the audit topic.
	HandleMessage(ctx context.Context, key, value []byte) error
	List(limit, offset int) ([]domain.AuditLog, error)
}

type auditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (a *auditService) HandleMessage(ctx context.Context, key, value []byte) error {
	var event dto.AuditEvent
	if err := json.Unmarshal(value, &event); err != nil {
		log.Printf("invalid audit payload: %s", value)
		return err
	}
	if event.Action == "" {
		event.Action = string(key)
	}
	if event.Action == "" || event.Entity == "" {
		return errors.New("audit event without action or entity")
	}

	entry := &domain.AuditLog{
		ActorID:  event.ActorID,
		Action:   event.Action,
		Entity:   event.Entity,
		EntityID: event.EntityID,
	}
	if !event.At.IsZero() {
		entry.CreatedAt = event.At
	}
	if err := a.repo.Create(entry); err != nil {
		return fmt.Errorf("save audit log: %w", err)
	}
	return nil
}

func (a *auditService) List(limit, offset int) ([]domain.AuditLog, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}
	if offset < 0 {
		return nil, validationError("offset must not be negative")
	}
	return a.repo.List(limit, offset)
}
