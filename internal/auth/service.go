package auth

import (
	"fmt"
	"time"

	"github.com/adilbek/photogallery/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// Service validates access tokens issued by the external auth system.
type Service struct {
	cfg    config.AuthConfig
	parser *jwt.Parser
}

// NewService creates a Service for the shared-secret token scheme.
func NewService(cfg config.AuthConfig) *Service {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	return &Service{
		cfg:    cfg,
		parser: jwt.NewParser(opts...),
	}
}

// ValidateAccessToken parses and verifies a bearer token, returning the
// identity it carries.
func (s *Service) ValidateAccessToken(token string) (Claims, error) {
	parsed, err := s.parser.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.AccessTokenSecret), nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}

	subject, _ := mapClaims["sub"].(string)
	if subject == "" {
		return Claims{}, ErrMissingSubject
	}

	claims := Claims{Subject: subject}
	claims.Email, _ = mapClaims["email"].(string)
	claims.IsAdmin, _ = mapClaims["admin"].(bool)

	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}

	return claims, nil
}

// SignAccessToken mints a token with the service secret. It exists for
// local tooling and tests; production tokens come from the external issuer.
func (s *Service) SignAccessToken(actor Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   actor.ID,
		"email": actor.Email,
		"admin": actor.IsAdmin,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	if s.cfg.Issuer != "" {
		claims["iss"] = s.cfg.Issuer
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.AccessTokenSecret))
}
