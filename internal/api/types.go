package api

import (
	"net/http"

	"github.com/TriByteGenius/CareerCompass/internal/logger"
	"github.com/TriByteGenius/CareerCompass/internal/models"
)

// Config defines API client settings.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	RateRPS    float64
	RateBurst  int
	Logger     *logger.Logger
}

// LoginRequest is the credentials payload for the signin endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the user service's answer to a successful signin.
type LoginResponse struct {
	ID       int64    `json:"id"`
	JWTToken string   `json:"jwtToken"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// SignupRequest is the payload for account creation.
type SignupRequest struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     []string `json:"role,omitempty"`
}

// MessageResponse is the generic {message} body several endpoints return.
type MessageResponse struct {
	Message string `json:"message"`
}

// ToggleResult disambiguates the two shapes of the favorite-toggle response:
// a {message} body means the entry was removed, a favorite record means it
// was added.
type ToggleResult struct {
	Removed bool
	Message string
	Entry   models.FavoriteEntry
}
