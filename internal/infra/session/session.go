package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/xavierca1/sankhya-leads/internal/entity"
)

// CookieName é o cookie que o front-end grava no login.
const CookieName = "user"

// DefaultTTL é a validade de um token emitido sem prazo explícito.
const DefaultTTL = 12 * time.Hour

var (
	ErrNoSession      = errors.New("não autenticado")
	ErrInvalidSession = errors.New("sessão inválida")
)

type Claims struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Signer emite e valida tokens HS256 com o SESSION_SECRET.
type Signer struct {
	secret []byte
	now    func() time.Time
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret), now: time.Now}
}

func (s *Signer) Issue(user entity.SessionUser, ttl time.Duration) (string, error) {
	if strings.TrimSpace(user.ID) == "" {
		return "", fmt.Errorf("id do usuário é obrigatório")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	now := s.now()
	claims := Claims{
		ID:   user.ID,
		Name: user.Name,
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse valida assinatura e validade. Qualquer falha vira ErrInvalidSession.
func (s *Signer) Parse(token string) (*entity.SessionUser, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrNoSession
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if strings.TrimSpace(claims.ID) == "" {
		return nil, fmt.Errorf("%w: token sem id", ErrInvalidSession)
	}

	return &entity.SessionUser{ID: claims.ID, Name: claims.Name, Role: claims.Role}, nil
}

// FromRequest lê e valida o cookie de sessão.
func (s *Signer) FromRequest(r *http.Request) (*entity.SessionUser, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return nil, ErrNoSession
	}
	return s.Parse(c.Value)
}

func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}

type ctxKey struct{}

func WithUser(ctx context.Context, user *entity.SessionUser) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

func UserFromContext(ctx context.Context) (*entity.SessionUser, bool) {
	user, ok := ctx.Value(ctxKey{}).(*entity.SessionUser)
	return user, ok && user != nil
}
