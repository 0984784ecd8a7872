package auth

import (
	"time"

	"github.com/and161185/autotrade/internal/errs"
	"github.com/and161185/autotrade/internal/model"
	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

// Identity is what a token vouches for. Role and client are re-checked against
// storage on every request, the token only names the user.
type Identity struct {
	UserID   string
	Role     model.Role
	ClientID string
}

type TokenManager struct {
	secretKey []byte
	now       func() time.Time
}

func NewTokenManager(secretKey string) *TokenManager {
	return &TokenManager{secretKey: []byte(secretKey), now: time.Now}
}

func (tm *TokenManager) GenerateToken(user model.User) (string, error) {
	now := tm.now()
	claims := jwt.MapClaims{
		"user_id":   user.ID,
		"role":      string(user.Role),
		"client_id": user.ClientID,
		"exp":       now.Add(tokenTTL).Unix(),
		"iat":       now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secretKey)
}

func (tm *TokenManager) ParseToken(tokenStr string) (Identity, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errs.ErrInvalidToken
		}
		return tm.secretKey, nil
	})

	if err != nil || !token.Valid {
		return Identity{}, errs.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errs.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, errs.ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	clientID, _ := claims["client_id"].(string)

	return Identity{UserID: userID, Role: model.Role(role), ClientID: clientID}, nil
}
