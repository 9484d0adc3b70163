package processor

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobmatch/internal/observability"
	"jobmatch/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

var testAuthConfig = AuthConfig{JWTSecret: "test-secret", JWTExpiry: 24 * time.Hour}

func newTestProcessor(t *testing.T) (AuthProcessor, *MockAuthStore) {
	ctrl := gomock.NewController(t)
	mockStore := NewMockAuthStore(ctrl)
	return New(mockStore, testAuthConfig, observability.NewNopLogger()), mockStore
}

func TestRegister_Success(t *testing.T) {
	p, mockStore := newTestProcessor(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	mockStore.EXPECT().GetUserByEmail(gomock.Any(), "jane@example.com").Return(store.User{}, store.ErrNotFound)
	mockStore.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u store.User) (store.User, error) {
			assert.Equal(t, "jane@example.com", u.Email)
			assert.Equal(t, store.RoleSeeker, u.Role)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")))
			u.ID = userID
			return u, nil
		})

	result, err := p.Register(ctx, RegisterParams{
		Name:     "Jane",
		Email:    " Jane@Example.com ",
		Password: "password123",
		Role:     store.RoleSeeker,
	})
	require.NoError(t, err)
	assert.Equal(t, userID, result.User.ID)
	assert.NotEmpty(t, result.Token)

	claims, err := p.ValidateToken(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, userID.Hex(), claims.Subject)
	assert.Equal(t, store.RoleSeeker, claims.Role)
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		name    string
		params  RegisterParams
		setup   func(m *MockAuthStore)
		wantErr error
	}{
		{
			name:    "invalid role",
			params:  RegisterParams{Email: "a@b.co", Password: "password123", Role: "admin"},
			setup:   func(m *MockAuthStore) {},
			wantErr: ErrInvalidRole,
		},
		{
			name:   "email already exists",
			params: RegisterParams{Email: "a@b.co", Password: "password123", Role: store.RoleEmployer},
			setup: func(m *MockAuthStore) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "a@b.co").Return(store.User{}, nil)
			},
			wantErr: ErrEmailAlreadyExists,
		},
		{
			name:   "duplicate on insert",
			params: RegisterParams{Email: "a@b.co", Password: "password123", Role: store.RoleEmployer},
			setup: func(m *MockAuthStore) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "a@b.co").Return(store.User{}, store.ErrNotFound)
				m.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(store.User{}, store.ErrDuplicate)
			},
			wantErr: ErrEmailAlreadyExists,
		},
		{
			name:   "database unavailable",
			params: RegisterParams{Email: "a@b.co", Password: "password123", Role: store.RoleSeeker},
			setup: func(m *MockAuthStore) {
				m.EXPECT().GetUserByEmail(gomock.Any(), "a@b.co").Return(store.User{}, store.ErrDatabaseUnavailable)
			},
			wantErr: store.ErrDatabaseUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, mockStore := newTestProcessor(t)
			tt.setup(mockStore)

			_, err := p.Register(context.Background(), tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegister_WithoutSecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := New(NewMockAuthStore(ctrl), AuthConfig{JWTExpiry: time.Hour}, observability.NewNopLogger())

	_, err := p.Register(context.Background(), RegisterParams{Email: "a@b.co", Password: "password123", Role: store.RoleSeeker})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := store.User{ID: primitive.NewObjectID(), Email: "jane@example.com", PasswordHash: string(hash), Role: store.RoleEmployer}

	t.Run("success", func(t *testing.T) {
		p, mockStore := newTestProcessor(t)
		mockStore.EXPECT().GetUserByEmail(gomock.Any(), "jane@example.com").Return(user, nil)

		result, err := p.Login(context.Background(), "JANE@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, user.ID, result.User.ID)
		assert.NotEmpty(t, result.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		p, mockStore := newTestProcessor(t)
		mockStore.EXPECT().GetUserByEmail(gomock.Any(), "jane@example.com").Return(user, nil)

		_, err := p.Login(context.Background(), "jane@example.com", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		p, mockStore := newTestProcessor(t)
		mockStore.EXPECT().GetUserByEmail(gomock.Any(), "nobody@example.com").Return(store.User{}, store.ErrNotFound)

		_, err := p.Login(context.Background(), "nobody@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("store failure", func(t *testing.T) {
		p, mockStore := newTestProcessor(t)
		boom := errors.New("boom")
		mockStore.EXPECT().GetUserByEmail(gomock.Any(), "jane@example.com").Return(store.User{}, boom)

		_, err := p.Login(context.Background(), "jane@example.com", "password123")
		assert.ErrorIs(t, err, boom)
	})
}

func TestValidateToken(t *testing.T) {
	p, _ := newTestProcessor(t)
	ctx := context.Background()
	user := store.User{ID: primitive.NewObjectID(), Role: store.RoleSeeker}

	token, err := p.GenerateToken(ctx, user)
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		claims, err := p.ValidateToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, user.ID.Hex(), claims.Subject)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := p.ValidateToken(ctx, "not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := New(nil, AuthConfig{JWTSecret: "other", JWTExpiry: time.Hour}, observability.NewNopLogger())
		_, err := other.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		later := p
		later.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
		_, err := later.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("unsigned", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": user.ID.Hex()}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = p.ValidateToken(ctx, unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestGetUser(t *testing.T) {
	p, mockStore := newTestProcessor(t)
	ctx := context.Background()
	id := primitive.NewObjectID()

	mockStore.EXPECT().GetUserByID(gomock.Any(), id).Return(store.User{ID: id, Name: "Jane"}, nil)
	user, err := p.GetUser(ctx, id.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Jane", user.Name)

	mockStore.EXPECT().GetUserByID(gomock.Any(), id).Return(store.User{}, store.ErrNotFound)
	_, err = p.GetUser(ctx, id.Hex())
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = p.GetUser(ctx, "bogus")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
