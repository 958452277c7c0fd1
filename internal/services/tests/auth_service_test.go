package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	mock_storage "job-match-api/internal/mocks"
	"job-match-api/internal/models"
	"job-match-api/internal/services"
	"job-match-api/internal/storage"
	"job-match-api/internal/transport/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testJWTSecret      = "test-secret-key"
	testJWTExpiration  = 15 * time.Minute
	testRefreshExpires = 24 * time.Hour
)

type authServiceMocks struct {
	candidateRepo *mock_storage.MockCandidateRepository
	employerRepo  *mock_storage.MockEmployerRepository
	tokens        *mock_storage.MockRefreshTokenStore
}

func setupAuthServiceTest(t *testing.T) (context.Context, services.AuthService, authServiceMocks, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	m := authServiceMocks{
		candidateRepo: mock_storage.NewMockCandidateRepository(ctrl),
		employerRepo:  mock_storage.NewMockEmployerRepository(ctrl),
		tokens:        mock_storage.NewMockRefreshTokenStore(ctrl),
	}
	svc := services.NewAuthService(m.candidateRepo, m.employerRepo, m.tokens, testJWTSecret, testJWTExpiration, testRefreshExpires)
	return context.Background(), svc, m, ctrl
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_RegisterCandidate(t *testing.T) {
	tests := []struct {
		name          string
		req           *dto.RegisterCandidateRequest
		mockSetup     func(m authServiceMocks)
		expectedError error
	}{
		{
			name: "Success",
			req: &dto.RegisterCandidateRequest{
				Email:    "  New.User@Example.COM ",
				Password: "password123",
				Name:     "New User",
				Location: "Lisbon",
			},
			mockSetup: func(m authServiceMocks) {
				m.candidateRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, c *models.Candidate) (*models.Candidate, error) {
						assert.Equal(t, "new.user@example.com", c.Email)
						assert.NotEqual(t, "password123", c.PasswordHash)
						return c, nil
					}).Times(1)
			},
		},
		{
			name: "Email Already Registered",
			req: &dto.RegisterCandidateRequest{
				Email:    "taken@example.com",
				Password: "password123",
				Name:     "Dup",
			},
			mockSetup: func(m authServiceMocks) {
				m.candidateRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, storage.ErrConflict).Times(1)
			},
			expectedError: services.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, svc, m, ctrl := setupAuthServiceTest(t)
			defer ctrl.Finish()
			tt.mockSetup(m)

			candidate, err := svc.RegisterCandidate(ctx, tt.req)

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedError), "Expected error %v, got %v", tt.expectedError, err)
				assert.Nil(t, candidate)
			} else {
				require.NoError(t, err)
				require.NotNil(t, candidate)
				assert.Equal(t, "New User", candidate.Name)
			}
		})
	}
}

func TestAuthService_RegisterEmployer_SanitizesCompany(t *testing.T) {
	ctx, svc, m, ctrl := setupAuthServiceTest(t)
	defer ctrl.Finish()

	m.employerRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e *models.Employer) (*models.Employer, error) {
			assert.Equal(t, "Acme", e.Company)
			return e, nil
		}).Times(1)

	employer, err := svc.RegisterEmployer(ctx, &dto.RegisterEmployerRequest{
		Email:    "hiring@acme.test",
		Password: "password123",
		Name:     "Recruiter",
		Company:  "<script>alert(1)</script>Acme",
	})

	require.NoError(t, err)
	assert.Equal(t, "Acme", employer.Company)
}

func TestAuthService_Login(t *testing.T) {
	candidateID := uuid.New()
	password := "correct-horse"

	tests := []struct {
		name          string
		role          string
		req           *dto.LoginRequest
		mockSetup     func(m authServiceMocks, hash string)
		expectedError error
	}{
		{
			name: "Candidate Success",
			role: services.RoleCandidate,
			req:  &dto.LoginRequest{Email: "jane@example.com", Password: password},
			mockSetup: func(m authServiceMocks, hash string) {
				m.candidateRepo.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").
					Return(&models.Candidate{ID: candidateID, Email: "jane@example.com", PasswordHash: hash}, nil).Times(1)
				m.tokens.EXPECT().Save(gomock.Any(), gomock.Any(), services.RoleCandidate+":"+candidateID.String(), testRefreshExpires).Return(nil).Times(1)
			},
		},
		{
			name: "Wrong Password",
			role: services.RoleCandidate,
			req:  &dto.LoginRequest{Email: "jane@example.com", Password: "wrong"},
			mockSetup: func(m authServiceMocks, hash string) {
				m.candidateRepo.EXPECT().GetByEmail(gomock.Any(), "jane@example.com").
					Return(&models.Candidate{ID: candidateID, PasswordHash: hash}, nil).Times(1)
			},
			expectedError: services.ErrInvalidCredentials,
		},
		{
			name: "Unknown Account",
			role: services.RoleEmployer,
			req:  &dto.LoginRequest{Email: "ghost@example.com", Password: password},
			mockSetup: func(m authServiceMocks, hash string) {
				m.employerRepo.EXPECT().GetByEmail(gomock.Any(), "ghost@example.com").
					Return(nil, storage.ErrNotFound).Times(1)
			},
			expectedError: services.ErrInvalidCredentials,
		},
		{
			name:          "Unknown Role",
			role:          "admin",
			req:           &dto.LoginRequest{Email: "jane@example.com", Password: password},
			mockSetup:     func(m authServiceMocks, hash string) {},
			expectedError: services.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, svc, m, ctrl := setupAuthServiceTest(t)
			defer ctrl.Finish()
			tt.mockSetup(m, hashPassword(t, password))

			pair, err := svc.Login(ctx, tt.role, tt.req)

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedError), "Expected error %v, got %v", tt.expectedError, err)
				assert.Nil(t, pair)
			} else {
				require.NoError(t, err)
				require.NotNil(t, pair)
				assert.NotEmpty(t, pair.RefreshToken)
				assert.Equal(t, int64(testJWTExpiration.Seconds()), pair.ExpiresIn)

				claims := &services.AccessClaims{}
				_, parseErr := jwt.ParseWithClaims(pair.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
					return []byte(testJWTSecret), nil
				})
				require.NoError(t, parseErr)
				assert.Equal(t, tt.role, claims.Role)
				assert.Equal(t, candidateID.String(), claims.Subject)
			}
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	employerID := uuid.New()

	t.Run("Rotates The Token", func(t *testing.T) {
		ctx, svc, m, ctrl := setupAuthServiceTest(t)
		defer ctrl.Finish()

		oldToken := uuid.NewString()
		subject := services.RoleEmployer + ":" + employerID.String()

		gomock.InOrder(
			m.tokens.EXPECT().Get(gomock.Any(), oldToken).Return(subject, nil),
			m.tokens.EXPECT().Delete(gomock.Any(), oldToken).Return(nil),
			m.tokens.EXPECT().Save(gomock.Any(), gomock.Any(), subject, testRefreshExpires).Return(nil),
		)

		pair, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: oldToken})

		require.NoError(t, err)
		assert.NotEqual(t, oldToken, pair.RefreshToken)
	})

	t.Run("Unknown Token", func(t *testing.T) {
		ctx, svc, m, ctrl := setupAuthServiceTest(t)
		defer ctrl.Finish()

		m.tokens.EXPECT().Get(gomock.Any(), "expired").Return("", services.ErrNotFound).Times(1)

		_, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: "expired"})

		require.Error(t, err)
		assert.True(t, errors.Is(err, services.ErrInvalidCredentials), "Expected ErrInvalidCredentials, got %v", err)
	})

	t.Run("Malformed Subject", func(t *testing.T) {
		ctx, svc, m, ctrl := setupAuthServiceTest(t)
		defer ctrl.Finish()

		m.tokens.EXPECT().Get(gomock.Any(), "odd").Return("no-separator", nil).Times(1)

		_, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: "odd"})

		require.Error(t, err)
		assert.True(t, errors.Is(err, services.ErrInvalidCredentials), "Expected ErrInvalidCredentials, got %v", err)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx, svc, m, ctrl := setupAuthServiceTest(t)
	defer ctrl.Finish()

	m.tokens.EXPECT().Delete(gomock.Any(), "some-token").Return(nil).Times(1)

	err := svc.Logout(ctx, &dto.LogoutRequest{RefreshToken: "some-token"})

	require.NoError(t, err)
}
