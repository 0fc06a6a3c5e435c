package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"medhasmind/internal/config"
)

// HTTPProvider talks to the hosted store's auth API. One outbound request
// per call, no retries; transport failures are reported as ErrUnavailable
// exactly once per call.
type HTTPProvider struct {
	baseURL          string
	apiKey           string
	resetRedirectURL string

	client *http.Client
	logger *log.Logger
}

func NewHTTPProvider(cfg config.IdentityConfig, logger *log.Logger) *HTTPProvider {
	return &HTTPProvider{
		baseURL:          strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:           cfg.APIKey,
		resetRedirectURL: cfg.ResetRedirectURL,
		client:           &http.Client{Timeout: 10 * time.Second},
		logger:           logger,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type subjectResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	User  *struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (p *HTTPProvider) SignUp(ctx context.Context, email, password string) (Identity, error) {
	var out subjectResponse
	status, err := p.postJSON(ctx, "/auth/v1/signup", "", credentialsRequest{Email: email, Password: password}, &out)
	if err != nil {
		return Identity{}, err
	}
	if status < 200 || status >= 300 {
		return Identity{}, ErrSignUpRejected
	}
	return identityFromSubject(out, email)
}

func (p *HTTPProvider) VerifyPassword(ctx context.Context, email, password string) (Identity, error) {
	var out subjectResponse
	status, err := p.postJSON(ctx, "/auth/v1/token?grant_type=password", "", credentialsRequest{Email: email, Password: password}, &out)
	if err != nil {
		return Identity{}, err
	}
	if status < 200 || status >= 300 {
		return Identity{}, ErrInvalidCredentials
	}
	return identityFromSubject(out, email)
}

func (p *HTTPProvider) SendRecovery(ctx context.Context, email string) error {
	path := "/auth/v1/recover"
	if p.resetRedirectURL != "" {
		path += "?redirect_to=" + url.QueryEscape(p.resetRedirectURL)
	}

	status, err := p.postJSON(ctx, path, "", map[string]string{"email": email}, nil)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("recovery request rejected: status=%d", status)
	}
	return nil
}

func (p *HTTPProvider) ConfirmReset(ctx context.Context, recoveryToken, newPassword string) error {
	status, err := p.putJSON(ctx, "/auth/v1/user", recoveryToken, map[string]string{"password": newPassword})
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return ErrInvalidCredentials
	}
	return nil
}

func (p *HTTPProvider) postJSON(ctx context.Context, path, bearer string, body any, out any) (int, error) {
	return p.do(ctx, http.MethodPost, path, bearer, body, out)
}

func (p *HTTPProvider) putJSON(ctx context.Context, path, bearer string, body any) (int, error) {
	return p.do(ctx, http.MethodPut, path, bearer, body, nil)
}

func (p *HTTPProvider) do(ctx context.Context, method, path, bearer string, body any, out any) (int, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("apikey", p.apiKey)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		if p.logger != nil {
			p.logger.Printf("[Identity] %s %s failed: %v", method, path, err)
		}
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if p.logger != nil {
			p.logger.Printf("[Identity] %s %s status=%d body=%q", method, path, resp.StatusCode, strings.TrimSpace(string(rb)))
		}
		return resp.StatusCode, ErrUnavailable
	}

	if out != nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}
	return resp.StatusCode, nil
}

// identityFromSubject handles both response shapes the auth API uses: the
// subject at the top level (signup) or nested under "user" (password grant).
func identityFromSubject(out subjectResponse, fallbackEmail string) (Identity, error) {
	id := strings.TrimSpace(out.ID)
	email := strings.TrimSpace(out.Email)
	if out.User != nil && id == "" {
		id = strings.TrimSpace(out.User.ID)
		email = strings.TrimSpace(out.User.Email)
	}
	if email == "" {
		email = fallbackEmail
	}

	subject, err := uuid.Parse(id)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: malformed subject id %q", ErrUnavailable, id)
	}
	return Identity{SubjectID: subject, Email: strings.ToLower(email)}, nil
}

var _ Provider = (*HTTPProvider)(nil)
