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
	"net/url"
	"strconv"
	"strings"
	"time"
)

const servicePath = "/gateway/v1/mge/service.sbr"

// APIError é uma resposta HTTP fora da faixa 2xx.
type APIError struct {
	Service string
	Status  int
	Body    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api sankhya rejeitou %s (status %d)", e.Service, e.Status)
}

func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// ServiceError é uma resposta 2xx com status "0" no envelope do serviço.
type ServiceError struct {
	Service string
	Message string
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("serviço %s retornou erro", e.Service)
	}
	return fmt.Sprintf("serviço %s retornou erro: %s", e.Service, e.Message)
}

type Client struct {
	baseURL string
	tokens  *TokenSource
	http    *http.Client
	onError func(service string, err error)
}

func NewClient(baseURL string, tokens *TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// OnError registra um callback chamado a cada falha de integração (métricas).
func (c *Client) OnError(fn func(service string, err error)) {
	c.onError = fn
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do envia payload ao serviceName e decodifica o responseBody em out (quando não nil).
// Um 401/403 invalida o token e a chamada é repetida uma única vez.
func (c *Client) Do(ctx context.Context, serviceName string, requestBody, out any) error {
	err := c.do(ctx, serviceName, requestBody, out)
	if err != nil && c.onError != nil {
		c.onError(serviceName, err)
	}
	return err
}

func (c *Client) do(ctx context.Context, serviceName string, requestBody, out any) error {
	payload, err := json.Marshal(serviceRequest{ServiceName: serviceName, RequestBody: requestBody})
	if err != nil {
		return fmt.Errorf("erro ao gerar json %s: %w", serviceName, err)
	}

	data, err := c.send(ctx, serviceName, payload)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Unauthorized() {
		log.Printf("🔄 [Sankhya] Token rejeitado em %s (status %d), refazendo login", serviceName, apiErr.Status)
		c.tokens.Invalidate()
		data, err = c.send(ctx, serviceName, payload)
	}
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("erro ao ler resposta %s: %w", serviceName, err)
	}
	if env.Status == statusError {
		return &ServiceError{Service: serviceName, Message: env.StatusMessage}
	}

	if out == nil || len(env.ResponseBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.ResponseBody, out); err != nil {
		return fmt.Errorf("erro ao ler responseBody %s: %w", serviceName, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, serviceName string, payload []byte) ([]byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serviceURL(serviceName), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro na conexão com sankhya (%s): %w", serviceName, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta %s: %w", serviceName, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("❌ ERRO API SANKHYA %s (Status %d): %s", serviceName, resp.StatusCode, string(body))
		return nil, &APIError{Service: serviceName, Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func (c *Client) serviceURL(serviceName string) string {
	q := url.Values{}
	q.Set("serviceName", serviceName)
	q.Set("outputType", "json")
	return c.baseURL + servicePath + "?" + q.Encode()
}

// Query descreve uma consulta loadRecords.
type Query struct {
	RootEntity string
	Fields     []string
	Expression string
	Parameters []Parameter
	OffsetPage int
}

// LoadRecords executa a consulta e devolve cada linha indexada pelo nome do campo.
func (c *Client) LoadRecords(ctx context.Context, q Query) ([]Record, error) {
	set := dataSet{
		RootEntity:                q.RootEntity,
		IncludePresentationFields: "S",
		OffsetPage:                strconv.Itoa(q.OffsetPage),
	}
	set.Entity.Fieldset.List = strings.Join(q.Fields, ",")
	if q.Expression != "" {
		set.Criteria = &criteria{Parameter: q.Parameters}
		set.Criteria.Expression.Value = q.Expression
	}

	var resp loadRecordsResponse
	if err := c.Do(ctx, ServiceLoadRecords, loadRecordsBody{DataSet: set}, &resp); err != nil {
		return nil, err
	}
	if resp.Entities == nil {
		return nil, nil
	}

	names := make([]string, 0, len(resp.Entities.Metadata.Fields.Field))
	for _, f := range resp.Entities.Metadata.Fields.Field {
		names = append(names, f.Name)
	}
	if len(names) == 0 {
		names = q.Fields
	}

	records := make([]Record, 0, len(resp.Entities.Entity))
	for _, row := range resp.Entities.Entity {
		records = append(records, newRecord(names, row))
	}
	return records, nil
}

// Save executa DatasetSP.save.
func (c *Client) Save(ctx context.Context, r SaveRequest) error {
	body, err := r.body()
	if err != nil {
		return err
	}
	return c.Do(ctx, ServiceSave, body, nil)
}
