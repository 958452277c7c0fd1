package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"job-match-api/internal/models"
	"job-match-api/internal/storage"
	"job-match-api/internal/transport/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Account roles carried in the access token.
const (
	RoleCandidate = "candidate"
	RoleEmployer  = "employer"
)

// AccessClaims is the payload of an access token: the standard claims plus
// which side of the marketplace the subject is on.
type AccessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	candidateRepo     storage.CandidateRepository
	employerRepo      storage.EmployerRepository
	tokens            RefreshTokenStore
	jwtSecret         string
	jwtExpiration     time.Duration
	refreshExpiration time.Duration
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(candidateRepo storage.CandidateRepository, employerRepo storage.EmployerRepository, tokens RefreshTokenStore, jwtSecret string, jwtExpiration, refreshExpiration time.Duration) AuthService {
	return &authService{
		candidateRepo:     candidateRepo,
		employerRepo:      employerRepo,
		tokens:            tokens,
		jwtSecret:         jwtSecret,
		jwtExpiration:     jwtExpiration,
		refreshExpiration: refreshExpiration,
	}
}

func (s *authService) RegisterCandidate(ctx context.Context, req *dto.RegisterCandidateRequest) (*models.Candidate, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("AuthService: Error hashing password: %v", err)
		return nil, fmt.Errorf("internal error registering candidate: %w", err)
	}

	candidate := &models.Candidate{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Name:         sanitizeText(req.Name),
		Location:     sanitizeText(req.Location),
	}

	created, err := s.candidateRepo.Create(ctx, candidate)
	if err != nil {
		return nil, mapRepoError(err, "registering candidate")
	}
	return created, nil
}

func (s *authService) RegisterEmployer(ctx context.Context, req *dto.RegisterEmployerRequest) (*models.Employer, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("AuthService: Error hashing password: %v", err)
		return nil, fmt.Errorf("internal error registering employer: %w", err)
	}

	employer := &models.Employer{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Name:         sanitizeText(req.Name),
		Company:      sanitizeText(req.Company),
	}

	created, err := s.employerRepo.Create(ctx, employer)
	if err != nil {
		return nil, mapRepoError(err, "registering employer")
	}
	return created, nil
}

func (s *authService) Login(ctx context.Context, role string, req *dto.LoginRequest) (*dto.TokenPairResponse, error) {
	var id uuid.UUID
	var passwordHash string

	email := strings.ToLower(strings.TrimSpace(req.Email))
	switch role {
	case RoleCandidate:
		candidate, err := s.candidateRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, loginLookupError(err, email)
		}
		id, passwordHash = candidate.ID, candidate.PasswordHash
	case RoleEmployer:
		employer, err := s.employerRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, loginLookupError(err, email)
		}
		id, passwordHash = employer.ID, employer.PasswordHash
	default:
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		log.Printf("AuthService: Login attempt failed for %s: invalid password", email)
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, id, role)
}

func loginLookupError(err error, email string) error {
	if errors.Is(err, storage.ErrNotFound) {
		log.Printf("AuthService: Login attempt failed for %s: account not found", email)
		return ErrInvalidCredentials
	}
	log.Printf("AuthService: Error fetching account %s during login: %v", email, err)
	return fmt.Errorf("internal error during login: %w", err)
}

func (s *authService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenPairResponse, error) {
	subject, err := s.tokens.Get(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("internal error during token refresh: %w", err)
	}

	role, idPart, found := strings.Cut(subject, ":")
	if !found {
		log.Printf("AuthService: Malformed refresh token subject %q", subject)
		return nil, ErrInvalidCredentials
	}
	id, err := uuid.Parse(idPart)
	if err != nil {
		log.Printf("AuthService: Malformed user ID in refresh token subject %q", subject)
		return nil, ErrInvalidCredentials
	}

	// Rotate: the old refresh token is single-use.
	if err := s.tokens.Delete(ctx, req.RefreshToken); err != nil {
		return nil, fmt.Errorf("internal error during token refresh: %w", err)
	}

	return s.issueTokens(ctx, id, role)
}

func (s *authService) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	if err := s.tokens.Delete(ctx, req.RefreshToken); err != nil {
		return fmt.Errorf("internal error during logout: %w", err)
	}
	return nil
}

func (s *authService) issueTokens(ctx context.Context, id uuid.UUID, role string) (*dto.TokenPairResponse, error) {
	now := time.Now()
	claims := &AccessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		log.Printf("AuthService: Error signing access token for %s %s: %v", role, id, err)
		return nil, fmt.Errorf("failed to generate login token: %w", err)
	}

	refreshToken := uuid.NewString()
	if err := s.tokens.Save(ctx, refreshToken, role+":"+id.String(), s.refreshExpiration); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtExpiration.Seconds()),
	}, nil
}
