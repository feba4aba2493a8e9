package sankhya

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"
)

const loginPath = "/login"

var ErrTokenNotFound = errors.New("token não encontrado na resposta de login")

// Credentials são enviadas como headers no login do gateway.
type Credentials struct {
	Token    string
	AppKey   string
	Username string
	Password string
}

// TokenSource guarda o bearer token da sessão com o ERP.
// O login é feito no primeiro uso e repetido só depois de Invalidate.
type TokenSource struct {
	HTTPClient  *http.Client
	LoginURL    string
	Credentials Credentials

	mu    sync.Mutex
	token string
}

func NewTokenSource(baseURL string, creds Credentials) *TokenSource {
	return &TokenSource{
		HTTPClient:  &http.Client{Timeout: 10 * time.Second},
		LoginURL:    baseURL + loginPath,
		Credentials: creds,
	}
}

func (s *TokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" {
		return s.token, nil
	}

	token, err := s.login(ctx)
	if err != nil {
		return "", err
	}
	s.token = token
	return token, nil
}

// Invalidate descarta o token atual; o próximo Token faz login de novo.
func (s *TokenSource) Invalidate() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

func (s *TokenSource) login(ctx context.Context) (string, error) {
	log.Println("🔄 [Sankhya] Autenticando no gateway...")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.LoginURL, bytes.NewBufferString("{}"))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("token", s.Credentials.Token)
	req.Header.Set("appkey", s.Credentials.AppKey)
	req.Header.Set("username", s.Credentials.Username)
	req.Header.Set("password", s.Credentials.Password)

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("erro request login sankhya: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("❌ [Sankhya] Erro no login (status %d): %s", resp.StatusCode, string(body))
		return "", &APIError{Service: "login", Status: resp.StatusCode, Body: string(body)}
	}

	var data loginResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return "", fmt.Errorf("erro decode login sankhya: %w", err)
	}

	token := data.BearerToken
	if token == "" {
		token = data.Token
	}
	if token == "" {
		return "", ErrTokenNotFound
	}

	log.Println("✅ [Sankhya] Token obtido com sucesso!")
	return token, nil
}
