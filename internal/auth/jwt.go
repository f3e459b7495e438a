package auth

import (
	"errors"
	"fmt"
	"time"

	"todoList/internal/models/user"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type Config struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Issuer     string
}

// Claims - данные о пользователе внутри подписанного токена
type Claims struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type TokenManager struct {
	config Config
}

func NewTokenManager(config Config) *TokenManager {
	return &TokenManager{
		config: config,
	}
}

// IssuePair выпускает пару access+refresh с одинаковыми claims о пользователе
func (m *TokenManager) IssuePair(u *user.User) (*TokenPair, error) {
	access, err := m.generate(u.ID.String(), u.Username, u.Email, tokenTypeAccess, m.config.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("выпуск access токена: %w", err)
	}

	refresh, err := m.generate(u.ID.String(), u.Username, u.Email, tokenTypeRefresh, m.config.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("выпуск refresh токена: %w", err)
	}

	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh выпускает новый access токен по действующему refresh токену.
// Сам refresh токен не ротируется и возвращается как есть.
func (m *TokenManager) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := m.ValidateRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	access, err := m.generate(claims.UserID, claims.Username, claims.Email, tokenTypeAccess, m.config.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("выпуск access токена: %w", err)
	}

	return &TokenPair{Access: access, Refresh: refreshToken}, nil
}

func (m *TokenManager) ValidateAccess(tokenString string) (*Claims, error) {
	return m.validate(tokenString, tokenTypeAccess)
}

func (m *TokenManager) ValidateRefresh(tokenString string) (*Claims, error) {
	return m.validate(tokenString, tokenTypeRefresh)
}

func (m *TokenManager) generate(userID, username, email, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Username:  username,
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.config.Issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.Secret))
}

func (m *TokenManager) validate(tokenString, tokenType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(m.config.Secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.TokenType != tokenType {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
