package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/auth"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/stock-ledger-api/pkg/jwt"
)

const secret = "auth-test-secret"

type memUsers struct {
	byID map[int64]*entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	u.ID = int64(len(m.byID) + 1)
	m.byID[u.ID] = u
	return nil
}
func (m *memUsers) GetByID(_ context.Context, id int64) (*entity.User, error) { return m.byID[id], nil }
func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (m *memUsers) Update(context.Context, *entity.User) error   { return nil }
func (m *memUsers) List(context.Context) ([]*entity.User, error) { return nil, nil }
func (m *memUsers) Delete(context.Context, int64) error          { return nil }

func newAuth() (*auth.AuthUseCase, *memUsers) {
	users := &memUsers{byID: map[int64]*entity.User{}}
	return auth.NewAuthUseCase(users, auth.JWTConfig{Secret: secret, ExpMinutes: 10, Issuer: "test"}), users
}

func TestRegisterYLogin(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()

	reg, err := uc.Register(ctx, dto.RegisterRequest{Email: "Ana@Example.com", Password: "supersecreta", Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, reg.User.Role)
	assert.Equal(t, "ana@example.com", reg.User.Email)

	userID, role, err := pkgjwt.Parse(secret, reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, userID)
	assert.Equal(t, entity.RoleUser, role)

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "otraclave1", Name: "Ana"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	login, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "supersecreta"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestEnsureAdmin_Idempotente(t *testing.T) {
	uc, users := newAuth()
	ctx := context.Background()

	created, err := uc.EnsureAdmin(ctx, "admin@example.com", "cambiar-ya", "Admin")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.EnsureAdmin(ctx, "admin@example.com", "cambiar-ya", "Admin")
	require.NoError(t, err)
	assert.False(t, created)
	require.Len(t, users.byID, 1)
	assert.Equal(t, entity.RoleAdmin, users.byID[1].Role)

	created, err = uc.EnsureAdmin(ctx, "", "", "")
	require.NoError(t, err)
	assert.False(t, created)
}
