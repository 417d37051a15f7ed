package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"inmobiliaria_api/internal/common"
	"inmobiliaria_api/internal/common/security"
	"inmobiliaria_api/internal/domain/model"
	"inmobiliaria_api/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserRepository struct {
	users map[string]*model.User // keyed by lowercase username
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*model.User)}
}

func (m *mockUserRepository) Create(_ context.Context, user *model.User) error {
	key := strings.ToLower(user.Username)
	if _, exists := m.users[key]; exists {
		return common.ErrConflict
	}
	m.users[key] = user
	return nil
}

func (m *mockUserRepository) FindByUsername(_ context.Context, username string) (*model.User, error) {
	if u, ok := m.users[strings.ToLower(username)]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

func (m *mockUserRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *mockUserRepository) FindByID(_ context.Context, id string) (*model.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *mockUserRepository) AdminExists(context.Context) (bool, error) {
	for _, u := range m.users {
		if u.Role == model.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}

func initTestJWT(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey: []byte("test-signing-secret"),
		JWTExp: 24 * time.Hour,
	}
	security.InitJWT()
}

func newTestAuthService(t *testing.T) (*AuthService, *mockUserRepository) {
	t.Helper()
	initTestJWT(t)
	repo := newMockUserRepository()
	svc := NewAuthService(repo)

	hashed, err := security.HashPassword("secreto123")
	require.NoError(t, err)
	repo.users["admin"] = &model.User{
		ID:             "admin-id",
		Username:       "admin",
		Email:          "admin@inmobiliaria.com",
		HashedPassword: hashed,
		Role:           model.RoleAdmin,
	}
	return svc, repo
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "admin", Password: "secreto123"})
	require.NoError(t, err)
	require.NotNil(t, resp.User)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin-id", resp.User.ID)
	assert.Equal(t, model.RoleAdmin, resp.User.Role)

	// The issued token must verify and carry identity and role.
	token, err := security.TokenAuth.Decode(resp.Token)
	require.NoError(t, err)
	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin-id", claims["user_id"])
	assert.Equal(t, model.RoleAdmin, claims["role"])
}

func TestLogin_AcceptsEmailAndIgnoresCase(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), LoginRequest{Username: "  ADMIN@Inmobiliaria.com ", Password: "secreto123"})
	assert.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{Username: "Admin", Password: "secreto123"})
	assert.NoError(t, err)
}

func TestLogin_UniformFailure(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, errUnknownUser := svc.Login(ctx, LoginRequest{Username: "nadie", Password: "secreto123"})
	_, errWrongPassword := svc.Login(ctx, LoginRequest{Username: "admin", Password: "incorrecta"})

	// Same error either way: no user-enumeration signal.
	assert.ErrorIs(t, errUnknownUser, common.ErrUnauthorized)
	assert.ErrorIs(t, errWrongPassword, common.ErrUnauthorized)
	assert.Equal(t, errUnknownUser.Error(), errWrongPassword.Error())
}

func TestLogin_MissingFields(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), LoginRequest{Username: "admin"})
	assert.ErrorIs(t, err, common.ErrBadRequest)

	_, err = svc.Login(context.Background(), LoginRequest{Password: "secreto123"})
	assert.ErrorIs(t, err, common.ErrBadRequest)
}

func TestLogin_ExpiredTokenIsRejected(t *testing.T) {
	initTestJWT(t)
	config.AppConfig.JWTExp = -time.Minute
	security.InitJWT()

	expired, err := security.GenerateToken("admin-id", model.RoleAdmin)
	require.NoError(t, err)

	_, err = security.TokenAuth.Decode(expired)
	assert.Error(t, err)
}

func TestCheckUser(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.CheckUser(ctx, "admin-id")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)

	delete(repo.users, "admin")
	_, err = svc.CheckUser(ctx, "admin-id")
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestCreateUser_HashesPassword(t *testing.T) {
	svc, repo := newTestAuthService(t)

	created, err := svc.CreateUser(context.Background(), "Carla", "Carla@Mail.com", "clave123", model.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, "carla", created.Username)
	assert.Equal(t, "carla@mail.com", created.Email)

	stored := repo.users["carla"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "clave123", stored.HashedPassword)
	assert.True(t, security.CheckPasswordHash("clave123", stored.HashedPassword))
}
