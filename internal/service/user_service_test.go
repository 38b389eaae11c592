package service

import (
	"context"
	"testing"
	"time"

	"shopfront/internal/auth"
	"shopfront/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testTokenManager() *auth.TokenManager {
	return auth.NewTokenManager("test-secret-key", time.Hour)
}

func TestUserService_SignUp_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockUserRepo := new(MockUserRepository)
	service := NewUserService(mockUserRepo, testTokenManager(), logger)

	mockUserRepo.On("GetByEmail", ctx, "jane@example.com").Return(nil, nil)
	mockUserRepo.On("Create", ctx, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.User).ID = 1
		}).Return(nil)

	user, err := service.SignUp(ctx, &model.SignUpRequest{
		Name:     "Jane",
		Email:    "Jane@Example.com",
		Password: "supersecret",
	})

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, []string{model.RoleClient}, user.Roles)
	assert.NotEqual(t, "supersecret", user.PasswordHash)
	assert.True(t, auth.CheckPassword(user.PasswordHash, "supersecret"))

	mockUserRepo.AssertExpectations(t)
}

func TestUserService_SignUp_EmailTaken(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockUserRepo := new(MockUserRepository)
	service := NewUserService(mockUserRepo, testTokenManager(), logger)

	mockUserRepo.On("GetByEmail", ctx, "jane@example.com").
		Return(&model.User{ID: 1, Email: "jane@example.com"}, nil)

	user, err := service.SignUp(ctx, &model.SignUpRequest{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "supersecret",
	})

	require.Error(t, err)
	assert.Equal(t, model.ErrEmailTaken, err)
	assert.Nil(t, user)

	mockUserRepo.AssertNotCalled(t, "Create")
}

func TestUserService_SignUp_ValidationErrors(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockUserRepo := new(MockUserRepository)
	service := NewUserService(mockUserRepo, testTokenManager(), logger)

	tests := []struct {
		name string
		req  *model.SignUpRequest
	}{
		{name: "Nil request", req: nil},
		{name: "Missing name", req: &model.SignUpRequest{Email: "a@b.com", Password: "supersecret"}},
		{name: "Invalid email", req: &model.SignUpRequest{Name: "Jane", Email: "not-an-email", Password: "supersecret"}},
		{name: "Short password", req: &model.SignUpRequest{Name: "Jane", Email: "a@b.com", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := service.SignUp(ctx, tt.req)
			require.Error(t, err)
			assert.Nil(t, user)
		})
	}

	mockUserRepo.AssertNotCalled(t, "Create")
}

func TestUserService_SignIn(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	hash, err := auth.HashPassword("supersecret")
	require.NoError(t, err)

	stored := &model.User{ID: 1, Email: "jane@example.com", PasswordHash: hash, Roles: []string{model.RoleClient}}

	tests := []struct {
		name      string
		req       *model.SignInRequest
		mockUser  *model.User
		expectErr bool
	}{
		{
			name:     "Success",
			req:      &model.SignInRequest{Email: "jane@example.com", Password: "supersecret"},
			mockUser: stored,
		},
		{
			name:      "Wrong password",
			req:       &model.SignInRequest{Email: "jane@example.com", Password: "wrongwrong"},
			mockUser:  stored,
			expectErr: true,
		},
		{
			name:      "Unknown email",
			req:       &model.SignInRequest{Email: "nobody@example.com", Password: "supersecret"},
			mockUser:  nil,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			tokens := testTokenManager()
			service := NewUserService(mockUserRepo, tokens, logger)

			mockUserRepo.On("GetByEmail", ctx, tt.req.Email).Return(tt.mockUser, nil)

			resp, err := service.SignIn(ctx, tt.req)

			if tt.expectErr {
				require.Error(t, err)
				assert.Equal(t, model.ErrInvalidCredentials, err)
				assert.Nil(t, resp)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.NotEmpty(t, resp.AccessToken)

			// The token resolves back to the signed-in user.
			userID, err := tokens.Verify(resp.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, stored.ID, userID)
		})
	}
}

func TestUserService_Update_EmailTaken(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockUserRepo := new(MockUserRepository)
	service := NewUserService(mockUserRepo, testTokenManager(), logger)

	newEmail := "taken@example.com"
	mockUserRepo.On("GetByID", ctx, int64(1)).
		Return(&model.User{ID: 1, Email: "jane@example.com"}, nil)
	mockUserRepo.On("GetByEmail", ctx, newEmail).
		Return(&model.User{ID: 2, Email: newEmail}, nil)

	user, err := service.Update(ctx, 1, &model.UpdateUserRequest{Email: &newEmail})

	require.Error(t, err)
	assert.Equal(t, model.ErrEmailTaken, err)
	assert.Nil(t, user)

	mockUserRepo.AssertNotCalled(t, "Update")
}

func TestUserService_Delete_NotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockUserRepo := new(MockUserRepository)
	service := NewUserService(mockUserRepo, testTokenManager(), logger)

	mockUserRepo.On("Delete", ctx, int64(404)).Return(int64(0), nil)

	err := service.Delete(ctx, 404)

	require.Error(t, err)

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeNotFound, domainErr.Code)
}
