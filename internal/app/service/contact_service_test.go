package service

import (
	"context"
	"testing"

	"inmobiliaria_api/internal/common"
	"inmobiliaria_api/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingContactRepository struct {
	saved []*model.ContactMessage
}

func (r *recordingContactRepository) Create(_ context.Context, msg *model.ContactMessage) error {
	r.saved = append(r.saved, msg)
	return nil
}

func TestSubmit_PersistsNormalizedMessage(t *testing.T) {
	repo := &recordingContactRepository{}
	svc := NewContactService(repo)

	err := svc.Submit(context.Background(), ContactRequest{
		Name:    "  Ana García  ",
		Email:   "  Ana@Mail.com ",
		Phone:   " 11-5555-0000 ",
		Message: "Quisiera coordinar una visita",
	})
	require.NoError(t, err)
	require.Len(t, repo.saved, 1)

	got := repo.saved[0]
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "Ana García", got.Name)
	assert.Equal(t, "ana@mail.com", got.Email)
	assert.Equal(t, "11-5555-0000", got.Phone)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestSubmit_RequiresNameEmailAndMessage(t *testing.T) {
	repo := &recordingContactRepository{}
	svc := NewContactService(repo)

	cases := []ContactRequest{
		{Email: "ana@mail.com", Message: "hola"},
		{Name: "Ana", Message: "hola"},
		{Name: "Ana", Email: "ana@mail.com"},
		{Name: "   ", Email: "ana@mail.com", Message: "hola"},
	}
	for _, req := range cases {
		err := svc.Submit(context.Background(), req)
		assert.ErrorIs(t, err, common.ErrValidation)
	}
	assert.Empty(t, repo.saved)
}

func TestSubmit_RejectsMalformedEmail(t *testing.T) {
	svc := NewContactService(&recordingContactRepository{})

	err := svc.Submit(context.Background(), ContactRequest{
		Name: "Ana", Email: "sin-arroba", Message: "hola",
	})
	assert.ErrorIs(t, err, common.ErrValidation)
}
