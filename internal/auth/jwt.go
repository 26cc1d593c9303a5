package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/resolvedesk/quote-api/internal/config"
	"github.com/resolvedesk/quote-api/internal/domain"
)

var (
	// ErrInvalidToken is returned when a token fails signature or claim validation
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when the token's expiry has passed
	ErrExpiredToken = errors.New("token expired")
)

// Claims are the JWT claims this service issues and validates.
type Claims struct {
	DisplayName    string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	OrganizationID string `json:"org"`
	jwt.RegisteredClaims
}

// JWTValidator validates HMAC-signed bearer tokens
type JWTValidator struct {
	secret   []byte
	issuer   string
	audience string
}

// NewJWTValidator creates a validator from auth configuration
func NewJWTValidator(cfg *config.AuthConfig) *JWTValidator {
	return &JWTValidator{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
	}
}

// ValidateToken parses and validates a token and returns the actor context
func (v *JWTValidator) ValidateToken(tokenString string) (*ActorContext, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	},
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	role := domain.UserRoleType(claims.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}

	orgID, err := domain.ParseOrganizationID(claims.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid organization claim", ErrInvalidToken)
	}

	return &ActorContext{
		UserID:         claims.Subject,
		DisplayName:    claims.DisplayName,
		Email:          claims.Email,
		Role:           role,
		OrganizationID: orgID,
	}, nil
}

// IssueToken signs a token for the given actor. Used by integration tooling
// and tests; the production identity provider issues equivalent claims.
func (v *JWTValidator) IssueToken(actor *ActorContext, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		DisplayName:    actor.DisplayName,
		Email:          actor.Email,
		Role:           string(actor.Role),
		OrganizationID: actor.OrganizationID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.UserID,
			Issuer:    v.issuer,
			Audience:  jwt.ClaimStrings{v.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
