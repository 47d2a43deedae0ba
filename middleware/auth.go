package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"lunch-voting-api/models"
	"lunch-voting-api/voting"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

type Claims struct {
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	IsStaff  bool      `json:"is_staff"`
	Type     TokenType `json:"typ"`
	jwt.RegisteredClaims
}

// TokenPair is what login hands back.
type TokenPair struct {
	Access  string `json:"access_token"`
	Refresh string `json:"refresh_token"`
}

// TokenIssuer signs and verifies HS256 access and refresh tokens.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// IssueTokens creates a signed access/refresh pair for a given user
func (ti *TokenIssuer) IssueTokens(user *models.User) (TokenPair, error) {
	access, err := ti.sign(user, AccessToken, ti.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := ti.sign(user, RefreshToken, ti.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

func (ti *TokenIssuer) sign(user *models.User, typ TokenType, ttl time.Duration) (string, error) {
	now := ti.now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsStaff:  user.IsStaff,
		Type:     typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", typ, err)
	}
	return signed, nil
}

var ErrWrongTokenType = errors.New("wrong token type")

// Parse verifies tokenStr and checks that it is of the wanted type.
func (ti *TokenIssuer) Parse(tokenStr string, want TokenType) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return ti.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(ti.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Type != want {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

func deny(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": msg, "data": nil, "success": false})
}

// AuthRequired validates the access token and injects the caller into context.
// Missing or bad credentials answer 403.
func AuthRequired(ti *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		scheme, tokenStr, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenStr) == "" {
			deny(c, "Authentication credentials were not provided.")
			return
		}
		claims, err := ti.Parse(strings.TrimSpace(tokenStr), AccessToken)
		if err != nil {
			deny(c, "Given token not valid for any token type")
			return
		}
		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("email", claims.Email)
		c.Set("isStaff", claims.IsStaff)
		c.Next()
	}
}

// StaffRequired enforces that the caller is a staff user
func StaffRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("isStaff") {
			deny(c, "You do not have permission to perform this action.")
			return
		}
		c.Next()
	}
}

// GetUserID extracts caller user ID from context
func GetUserID(c *gin.Context) string {
	return c.GetString("userID")
}

// GetIdentity returns the authenticated principal for the voting service.
func GetIdentity(c *gin.Context) voting.Identity {
	return voting.Identity{
		UserID:   c.GetString("userID"),
		Username: c.GetString("username"),
	}
}
