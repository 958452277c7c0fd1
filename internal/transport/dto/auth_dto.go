package dto

// --- Auth Request DTOs ---

// RegisterCandidateRequest defines the structure for registering a candidate account.
type RegisterCandidateRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"` // bcrypt input limit
	Name     string `json:"name" validate:"required,max=100"`
	Location string `json:"location" validate:"omitempty,max=100"`
}

// RegisterEmployerRequest defines the structure for registering an employer account.
type RegisterEmployerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,max=100"`
	Company  string `json:"company" validate:"required,max=100"`
}

// LoginRequest defines the structure for logging in. The same shape serves
// both account types; the route decides which store is consulted.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest defines the structure for exchanging a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest defines the structure for revoking a refresh token.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// --- Auth Response DTOs ---

// TokenPairResponse carries a fresh access/refresh token pair.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // Access token lifetime in seconds
}
