package auth

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
)

// Config holds credential verification configuration
type Config struct {
	JWTPublicKey string // RSA public key in PEM format
	Issuer       string
	Audience     string
}

// Claims are the token claims: the subject is the account id
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier turns a credential into the principal it was issued for
//
//go:generate mockgen -source=verifier.go -destination=../mocks/verifier.go -package=mocks -mock_names=Verifier=MockVerifier
type Verifier interface {
	Verify(ctx context.Context, credential string) (*domain.Principal, error)
}

type jwtVerifier struct {
	publicKey *rsa.PublicKey
	options   []jwt.ParserOption
}

// NewJWTVerifier creates a verifier for RS256-signed tokens
func NewJWTVerifier(cfg Config) (Verifier, error) {
	if cfg.JWTPublicKey == "" {
		return nil, errors.New("JWT public key not configured")
	}
	publicKey, err := parseRSAPublicKey(cfg.JWTPublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		options = append(options, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		options = append(options, jwt.WithAudience(cfg.Audience))
	}

	return &jwtVerifier{publicKey: publicKey, options: options}, nil
}

// Verify validates the token signature and claims
func (v *jwtVerifier) Verify(ctx context.Context, credential string) (*domain.Principal, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return nil, domain.NewUnauthenticatedError(domain.CodeInvalidCredential, errors.New("missing credential"))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(credential, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.publicKey, nil
	}, v.options...)
	if err != nil {
		return nil, domain.NewUnauthenticatedError(domain.CodeInvalidCredential, fmt.Errorf("failed to parse token: %w", err))
	}
	if !token.Valid {
		return nil, domain.NewUnauthenticatedError(domain.CodeInvalidCredential, errors.New("invalid token"))
	}

	if claims.Subject == "" {
		return nil, domain.NewUnauthenticatedError(domain.CodeInvalidCredential, errors.New("token has no subject"))
	}
	role := domain.Role(claims.Role)
	if !domain.IsValidRole(role) {
		return nil, domain.NewUnauthenticatedError(domain.CodeInvalidCredential, fmt.Errorf("unknown role %q", claims.Role))
	}

	return &domain.Principal{AccountID: claims.Subject, Role: role}, nil
}

// parseRSAPublicKey parses an RSA public key from PEM format
func parseRSAPublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing public key")
	}

	// Try parsing as PKIX (most common format)
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		// Try parsing as PKCS1 format
		return x509.ParsePKCS1PublicKey(block.Bytes)
	}

	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not an RSA key")
	}

	return rsaKey, nil
}
