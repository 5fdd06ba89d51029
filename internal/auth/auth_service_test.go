package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/auth"
	autherrors "github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/auth/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeRepo struct {
	getByEmailFn func(ctx context.Context, email string) (*auth.User, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*auth.User, error)
	createFn     func(ctx context.Context, user *auth.User) error
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	return f.getByEmailFn(ctx, email)
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeRepo) Create(ctx context.Context, user *auth.User) error {
	return f.createFn(ctx, user)
}

func sampleUser(t *testing.T, password string) *auth.User {
	t.Helper()
	pw, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return &auth.User{
		ID:       uuid.New(),
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: string(pw),
		Role:     auth.RoleHRAdmin,
		IsActive: true,
	}
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	ctx := context.Background()
	password := "password123"
	user := sampleUser(t, password)

	repo := &fakeRepo{
		getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
			if email == user.Email {
				return user, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	service := auth.NewService(repo)

	t.Run("Success Login", func(t *testing.T) {
		token, refreshToken, resp, err := service.Login(ctx, user.Email, password)

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.NotEmpty(t, refreshToken)
		assert.Equal(t, user.Email, resp.Email)
		assert.Equal(t, auth.RoleHRAdmin, resp.Role)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		_, _, _, err := service.Login(ctx, user.Email, "wrongpass")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		_, _, _, err := service.Login(ctx, "nobody@example.com", password)
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestService_RefreshToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	ctx := context.Background()
	user := sampleUser(t, "password123")

	repo := &fakeRepo{
		getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
			return user, nil
		},
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
			if id == user.ID {
				return user, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	service := auth.NewService(repo)

	_, refreshToken, _, err := service.Login(ctx, user.Email, "password123")
	require.NoError(t, err)

	t.Run("Valid Refresh", func(t *testing.T) {
		newAccess, newRefresh, resp, err := service.RefreshToken(ctx, refreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, user.Email, resp.Email)
	})

	t.Run("Garbage Token", func(t *testing.T) {
		_, _, _, err := service.RefreshToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestService_GetMe(t *testing.T) {
	ctx := context.Background()
	user := sampleUser(t, "password123")

	repo := &fakeRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
			if id == user.ID {
				return user, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	service := auth.NewService(repo)

	t.Run("Found", func(t *testing.T) {
		resp, err := service.GetMe(ctx, user.ID.String())
		require.NoError(t, err)
		assert.Equal(t, user.Email, resp.Email)
	})

	t.Run("Invalid UUID", func(t *testing.T) {
		_, err := service.GetMe(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("Unknown User", func(t *testing.T) {
		_, err := service.GetMe(ctx, uuid.NewString())
		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults Role And Normalizes Email", func(t *testing.T) {
		var created *auth.User
		repo := &fakeRepo{
			createFn: func(ctx context.Context, user *auth.User) error {
				created = user
				return nil
			},
		}
		service := auth.NewService(repo)

		resp, err := service.Register(ctx, auth.RegisterRequest{
			Email:    "  New.User@Example.COM ",
			Name:     "New User",
			Password: "secret123",
		})
		require.NoError(t, err)

		require.NotNil(t, created)
		assert.Equal(t, "new.user@example.com", created.Email)
		assert.Equal(t, auth.RoleHRStaff, created.Role)
		assert.True(t, created.IsActive)

		// Password tersimpan sebagai hash bcrypt, bukan plaintext
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret123")))
		assert.Equal(t, created.Email, resp.Email)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		repo := &fakeRepo{
			createFn: func(ctx context.Context, user *auth.User) error {
				return errors.New(`duplicate key value violates unique constraint "uq_user_email"`)
			},
		}
		service := auth.NewService(repo)

		_, err := service.Register(ctx, auth.RegisterRequest{
			Email:    "admin@example.com",
			Name:     "Admin",
			Password: "secret123",
		})
		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyExists)
	})
}
