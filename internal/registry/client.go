package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"accountsvc/internal/auth"
	"accountsvc/internal/models"
)

var (
	ErrClientNotFound = errors.New("client not found")
	ErrUnavailable    = errors.New("client registry unavailable")
)

const serviceName = "account-service"

type Options struct {
	BaseURL     string
	Timeout     time.Duration
	TokenSecret string
	TokenTTL    time.Duration
}

// Client looks clients up in the external client registry.
type Client struct {
	baseURL     string
	http        *http.Client
	timeout     time.Duration
	tokenSecret string
	tokenTTL    time.Duration
}

func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Client{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		http:        &http.Client{Timeout: timeout},
		timeout:     timeout,
		tokenSecret: opts.TokenSecret,
		tokenTTL:    ttl,
	}
}

func (c *Client) FindByID(ctx context.Context, clientID string) (models.ClientProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + "/clientes/identificacion/" + url.PathEscape(clientID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.ClientProfile{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.tokenSecret != "" {
		token, err := auth.GenerateToken(c.tokenSecret, serviceName, c.tokenTTL)
		if err != nil {
			return models.ClientProfile{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return models.ClientProfile{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return models.ClientProfile{}, ErrClientNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return models.ClientProfile{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var payload clientPayload
	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		return models.ClientProfile{}, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	return payload.profile(), nil
}

type clientPayload struct {
	ID             any          `json:"id"`
	Name           string       `json:"nombre"`
	Gender         string       `json:"genero"`
	Age            int          `json:"edad"`
	Identification string       `json:"identificacion"`
	Address        string       `json:"direccion"`
	Phone          string       `json:"telefono"`
	Status         clientStatus `json:"estado"`
}

func (p clientPayload) profile() models.ClientProfile {
	id := ""
	if p.ID != nil {
		id = fmt.Sprint(p.ID)
	}
	return models.ClientProfile{
		ID:             id,
		Identification: p.Identification,
		Name:           p.Name,
		Status:         models.ClientStatus(p.Status),
		Gender:         p.Gender,
		Age:            p.Age,
		Address:        p.Address,
		Phone:          p.Phone,
	}
}

// clientStatus accepts the registry's boolean flag as well as the
// ACTIVO/ACTIVE string form. Anything else counts as inactive.
type clientStatus models.ClientStatus

func (s *clientStatus) UnmarshalJSON(data []byte) error {
	var flag bool
	if err := json.Unmarshal(data, &flag); err == nil {
		*s = statusFromBool(flag)
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		switch strings.ToUpper(strings.TrimSpace(text)) {
		case "ACTIVO", "ACTIVE", "TRUE":
			*s = clientStatus(models.ClientStatusActive)
		default:
			*s = clientStatus(models.ClientStatusInactive)
		}
		return nil
	}
	*s = clientStatus(models.ClientStatusInactive)
	return nil
}

func statusFromBool(active bool) clientStatus {
	if active {
		return clientStatus(models.ClientStatusActive)
	}
	return clientStatus(models.ClientStatusInactive)
}
