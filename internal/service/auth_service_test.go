package service

import (
	"context"
	"errors"
	"testing"

	"nutricalc/internal/auth"
	"nutricalc/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		creds       model.Credentials
		setupMock   func(*MockUserRepository)
		expectError error
		errMessage  string
	}{
		{
			name:  "Success",
			creds: model.Credentials{Email: " Ada@Example.com ", Password: "Secret123"},
			setupMock: func(m *MockUserRepository) {
				m.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
					return u.Email == "ada@example.com" && u.PasswordHash != "Secret123" && u.ID != uuid.Nil
				})).Return(nil)
			},
		},
		{
			name:        "Missing fields",
			creds:       model.Credentials{Email: "", Password: ""},
			setupMock:   func(m *MockUserRepository) {},
			expectError: model.ErrValidation,
			errMessage:  "Email and password are required",
		},
		{
			name:        "Invalid email",
			creds:       model.Credentials{Email: "not-an-email", Password: "Secret123"},
			setupMock:   func(m *MockUserRepository) {},
			expectError: model.ErrValidation,
			errMessage:  "Invalid email format",
		},
		{
			name:        "Short password",
			creds:       model.Credentials{Email: "ada@example.com", Password: "Sec1"},
			setupMock:   func(m *MockUserRepository) {},
			expectError: model.ErrValidation,
			errMessage:  "Password must be at least 8 characters long",
		},
		{
			name:        "Password without digit",
			creds:       model.Credentials{Email: "ada@example.com", Password: "SecretPass"},
			setupMock:   func(m *MockUserRepository) {},
			expectError: model.ErrValidation,
			errMessage:  "Password must contain an uppercase letter and a number",
		},
		{
			name:        "Password without uppercase",
			creds:       model.Credentials{Email: "ada@example.com", Password: "secret123"},
			setupMock:   func(m *MockUserRepository) {},
			expectError: model.ErrValidation,
			errMessage:  "Password must contain an uppercase letter and a number",
		},
		{
			name:  "Duplicate email",
			creds: model.Credentials{Email: "ada@example.com", Password: "Secret123"},
			setupMock: func(m *MockUserRepository) {
				m.On("Create", ctx, mock.Anything).Return(model.ErrEmailTaken)
			},
			expectError: model.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(repo)

			svc := NewAuthService(repo, new(MockTokenIssuer), zerolog.Nop())
			user, err := svc.Register(ctx, tt.creds)

			if tt.expectError != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectError))
				if tt.errMessage != "" {
					assert.Equal(t, tt.errMessage, model.PublicMessage(err))
				}
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				ok, err := auth.CheckPassword(user.PasswordHash, tt.creds.Password)
				require.NoError(t, err)
				assert.True(t, ok)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := auth.HashPassword("Secret123")
	require.NoError(t, err)
	user := &model.User{ID: uuid.New(), Email: "ada@example.com", PasswordHash: hash}

	tests := []struct {
		name        string
		creds       model.Credentials
		setupMocks  func(*MockUserRepository, *MockTokenIssuer)
		expected    string
		expectError error
	}{
		{
			name:  "Success",
			creds: model.Credentials{Email: "ADA@example.com", Password: "Secret123"},
			setupMocks: func(repo *MockUserRepository, tokens *MockTokenIssuer) {
				repo.On("GetByEmail", ctx, "ada@example.com").Return(user, nil)
				tokens.On("Issue", user.ID, user.Email).Return("signed-token", nil)
			},
			expected: "signed-token",
		},
		{
			name:  "Unknown email",
			creds: model.Credentials{Email: "nobody@example.com", Password: "Secret123"},
			setupMocks: func(repo *MockUserRepository, tokens *MockTokenIssuer) {
				repo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, nil)
			},
			expectError: model.ErrInvalidCredentials,
		},
		{
			name:  "Wrong password",
			creds: model.Credentials{Email: "ada@example.com", Password: "Wrong1234"},
			setupMocks: func(repo *MockUserRepository, tokens *MockTokenIssuer) {
				repo.On("GetByEmail", ctx, "ada@example.com").Return(user, nil)
			},
			expectError: model.ErrInvalidCredentials,
		},
		{
			name:        "Missing password",
			creds:       model.Credentials{Email: "ada@example.com"},
			setupMocks:  func(repo *MockUserRepository, tokens *MockTokenIssuer) {},
			expectError: model.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tokens := new(MockTokenIssuer)
			tt.setupMocks(repo, tokens)

			svc := NewAuthService(repo, tokens, zerolog.Nop())
			token, err := svc.Login(ctx, tt.creds)

			if tt.expectError != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectError))
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, token)
			}

			repo.AssertExpectations(t)
			tokens.AssertExpectations(t)
		})
	}
}

func TestAuthService_LoginRepositoryFailure(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "ada@example.com").Return(nil, errors.New("database error"))

	svc := NewAuthService(repo, new(MockTokenIssuer), zerolog.Nop())
	_, err := svc.Login(context.Background(), model.Credentials{Email: "ada@example.com", Password: "Secret123"})

	require.Error(t, err)
	assert.Equal(t, model.ErrCodeInternalError, model.ErrorCode(err))
}
