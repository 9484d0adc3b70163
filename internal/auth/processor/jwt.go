package processor

import (
	"context"
	"errors"
	"fmt"

	"jobmatch/internal/store"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "jobmatch"

// Claims carried by access tokens
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (p *AuthProcessor) GenerateToken(ctx context.Context, user store.User) (string, error) {
	if p.authConfig.JWTSecret == "" {
		return "", ErrNotConfigured
	}
	now := p.now()
	claims := Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenIssuer},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.authConfig.JWTExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(p.authConfig.JWTSecret))
	if err != nil {
		p.logger.Error(ctx, "failed to sign token", err)
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (p *AuthProcessor) ValidateToken(ctx context.Context, token string) (Claims, error) {
	if p.authConfig.JWTSecret == "" {
		return Claims{}, ErrNotConfigured
	}
	var claims Claims
	t, err := jwt.ParseWithClaims(token, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(p.authConfig.JWTSecret), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenIssuer),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			p.logger.Info(ctx, "token expired")
			return Claims{}, ErrExpiredToken
		}
		p.logger.Info(ctx, "failed to parse token")
		return Claims{}, ErrInvalidToken
	}
	if !t.Valid || claims.Subject == "" {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
