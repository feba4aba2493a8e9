package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/sankhya-leads/internal/entity"
)

func TestIssueAndParse(t *testing.T) {
	signer := NewSigner("segredo")
	user := entity.SessionUser{ID: "7", Name: "Maria", Role: "Vendedor"}

	token, err := signer.Issue(user, time.Hour)
	require.NoError(t, err)

	parsed, err := signer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user, *parsed)
}

func TestParseRejectsTamperedAndForeignTokens(t *testing.T) {
	signer := NewSigner("segredo")
	token, err := signer.Issue(entity.SessionUser{ID: "7", Role: "Vendedor"}, time.Hour)
	require.NoError(t, err)

	forged, err := NewSigner("outro").Issue(entity.SessionUser{ID: "7", Role: "Administrador"}, time.Hour)
	require.NoError(t, err)

	for name, value := range map[string]string{
		"assinatura alterada": token[:len(token)-2] + "xx",
		"outro segredo":       forged,
		"json puro":           `{"id":"7","role":"Administrador"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := signer.Parse(value)
			assert.ErrorIs(t, err, ErrInvalidSession)
		})
	}
}

func TestParseRejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{ID: "7", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewSigner("segredo").Parse(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	signer := NewSigner("segredo")
	issuedAt := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	signer.now = func() time.Time { return issuedAt }

	token, err := signer.Issue(entity.SessionUser{ID: "7"}, time.Hour)
	require.NoError(t, err)

	signer.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	_, err = signer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestIssueRequiresID(t *testing.T) {
	_, err := NewSigner("segredo").Issue(entity.SessionUser{Name: "Sem id"}, time.Hour)
	assert.Error(t, err)
}

func TestFromRequest(t *testing.T) {
	signer := NewSigner("segredo")

	r := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	_, err := signer.FromRequest(r)
	assert.ErrorIs(t, err, ErrNoSession)

	token, err := signer.Issue(entity.SessionUser{ID: "3", Role: "Administrador"}, time.Hour)
	require.NoError(t, err)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: token})

	user, err := signer.FromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, "3", user.ID)
}

func TestClearCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	ClearCookie(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestContextRoundTrip(t *testing.T) {
	_, ok := UserFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithUser(context.Background(), &entity.SessionUser{ID: "1"})
	user, ok := UserFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "1", user.ID)
}
