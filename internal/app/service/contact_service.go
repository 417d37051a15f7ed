package service

import (
	"context"
	"strings"
	"time"

	"inmobiliaria_api/internal/common"
	"inmobiliaria_api/internal/domain/model"
	"inmobiliaria_api/internal/domain/repository"

	"github.com/google/uuid"
)

type ContactService struct {
	contactRepo repository.ContactRepository
}

func NewContactService(contactRepo repository.ContactRepository) *ContactService {
	return &ContactService{contactRepo: contactRepo}
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (s *ContactService) Submit(ctx context.Context, req ContactRequest) error {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	message := strings.TrimSpace(req.Message)
	if name == "" || email == "" || message == "" {
		return common.Errorf("nombre, email y mensaje son requeridos: %w", common.ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return common.Errorf("email inválido: %w", common.ErrValidation)
	}

	return s.contactRepo.Create(ctx, &model.ContactMessage{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     strings.ToLower(email),
		Phone:     strings.TrimSpace(req.Phone),
		Message:   message,
		CreatedAt: time.Now(),
	})
}
