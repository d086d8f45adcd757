package helper

import (
	"errors"
	"strings"
	"time"

	"github.com/SundayYogurt/investment_service/internal/dto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type Auth struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func SetupAuth(s string, accessTTL, refreshTTL time.Duration) Auth {
	return Auth{
		Secret:     s,
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	}
}

func (a Auth) CreateHashedPassword(password string) (string, error) {
	if len(password) < 6 {
		return "", errors.New("password must be at least 6 characters")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.New("failed to hash password")
	}
	return string(hashed), nil
}

func (a Auth) VerifyPassword(plain, hashed string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		return errors.New("invalid username or password")
	}
	return nil
}

// GenerateTokenPair issues a short lived access token and a refresh token
// for the given user.
func (a Auth) GenerateTokenPair(userID uint, username string) (dto.TokenPairResponse, error) {
	access, err := a.GenerateToken(userID, username, TokenTypeAccess)
	if err != nil {
		return dto.TokenPairResponse{}, err
	}
	refresh, err := a.GenerateToken(userID, username, TokenTypeRefresh)
	if err != nil {
		return dto.TokenPairResponse{}, err
	}
	return dto.TokenPairResponse{Access: access, Refresh: refresh}, nil
}

func (a Auth) GenerateToken(userID uint, username, tokenType string) (string, error) {
	if userID == 0 || username == "" {
		return "", errors.New("required inputs are missing to generate token")
	}

	ttl := a.AccessTTL
	if tokenType == TokenTypeRefresh {
		ttl = a.RefreshTTL
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    userID,
		"username":   username,
		"token_type": tokenType,
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	}
	if tokenType == TokenTypeRefresh {
		claims["jti"] = uuid.NewString()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString([]byte(a.Secret))
	if err != nil {
		return "", errors.New("unable to sign the token")
	}
	return tokenStr, nil
}

// VerifyToken accepts "Bearer <token>" or a bare token and only lets access
// tokens through.
func (a Auth) VerifyToken(tokenString string) (dto.AuthResponse, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return dto.AuthResponse{}, errors.New("missing token")
	}

	if strings.HasPrefix(strings.ToLower(tokenString), "bearer ") {
		parts := strings.SplitN(tokenString, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
			return dto.AuthResponse{}, errors.New("invalid token format")
		}
		tokenString = strings.TrimSpace(parts[1])
	}

	return a.parse(tokenString, TokenTypeAccess)
}

func (a Auth) VerifyRefreshToken(tokenString string) (dto.AuthResponse, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return dto.AuthResponse{}, errors.New("missing token")
	}
	return a.parse(tokenString, TokenTypeRefresh)
}

func (a Auth) parse(tokenString, wantType string) (dto.AuthResponse, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(a.Secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return dto.AuthResponse{}, errors.New("token expired")
		}
		return dto.AuthResponse{}, errors.New("token parse error")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return dto.AuthResponse{}, errors.New("invalid token claims")
	}

	if tt, _ := claims["token_type"].(string); tt != wantType {
		return dto.AuthResponse{}, errors.New("wrong token type")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return dto.AuthResponse{}, errors.New("invalid user_id claim")
	}
	username, _ := claims["username"].(string)
	exp, _ := claims["exp"].(float64)
	iat, _ := claims["iat"].(float64)

	return dto.AuthResponse{
		UserID:    uint(userID),
		Username:  username,
		TokenType: wantType,
		Expiry:    exp,
		Iat:       iat,
	}, nil
}
