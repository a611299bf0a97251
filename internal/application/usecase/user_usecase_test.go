package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

func TestUser_CreateDevuelvePasswordTemporal(t *testing.T) {
	users := &fakeUsers{items: map[int64]*entity.User{}}
	uc := usecase.NewUserUseCase(users)

	res, temp, err := uc.Create(context.Background(), dto.CreateUserRequest{Email: " Ana@Example.com", Name: "Ana"})
	require.NoError(t, err)
	assert.Len(t, temp, 12)
	assert.Equal(t, "ana@example.com", res.Email)
	assert.Equal(t, entity.RoleUser, res.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users.items[res.ID].PasswordHash), []byte(temp)))

	_, _, err = uc.Create(context.Background(), dto.CreateUserRequest{Email: "ana@example.com", Name: "Ana 2"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUser_AdminNoPuedeEliminarse(t *testing.T) {
	users := &fakeUsers{items: map[int64]*entity.User{
		1: {ID: 1, Email: "admin@example.com", Role: entity.RoleAdmin},
		2: {ID: 2, Email: "bob@example.com", Role: entity.RoleUser},
	}}
	uc := usecase.NewUserUseCase(users)

	assert.ErrorIs(t, uc.Delete(context.Background(), 1, 1), domain.ErrForbidden)
	require.NoError(t, uc.Delete(context.Background(), 1, 2))
	assert.ErrorIs(t, uc.Delete(context.Background(), 1, 2), domain.ErrUserNotFound)
}
