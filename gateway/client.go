package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// FallbackMessage is surfaced when a rejected response carries no message
// of its own.
const FallbackMessage = "Request failed"

// ConnectionMessage is surfaced for transport-level failures. By design it
// is indistinguishable, from the user's point of view, from a server
// rejection with a generic message.
const ConnectionMessage = "Connection error"

// ErrConnection is an exported constant or variable used by the auth gateway.
var ErrConnection = errors.New(ConnectionMessage)

// RejectedError reports a non-success HTTP status from the remote API,
// carrying the user-facing message extracted from the response body.
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("gateway: request rejected (%d): %s", e.Status, e.Message)
}

// User is the remote API's user object as it appears in login and
// current-user responses.
type User struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Role      string `json:"role,omitempty"`
}

// AuthResponse is the common success-response shape of the auth endpoints.
// Fields not present in a given response are left at their zero values.
type AuthResponse struct {
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
	User    *User  `json:"user,omitempty"`
	Valid   bool   `json:"valid,omitempty"`
}

// MFAProvision is the provisioning material returned by the generate-mfa
// endpoint: a shared secret and a scannable code image reference.
type MFAProvision struct {
	Secret    string `json:"secret"`
	QRCodeURL string `json:"qrCodeUrl"`
}

// Config defines a public type used by gateway APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	BaseURL string
	// DevMode skips the APIPrefix suffix, matching local development
	// deployments that expose the API at the bare base URL.
	DevMode           bool
	APIPrefix         string
	Timeout           time.Duration
	SessionCookieName string
}

// Client defines a public type used by gateway APIs.
//
// Client instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Client struct {
	base       string
	cookieName string
	httpClient *http.Client
}

// NewClient creates a gateway client. When httpClient is nil a client with
// the configured timeout is used.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	cookieName := cfg.SessionCookieName
	if cookieName == "" {
		cookieName = "auth_token"
	}

	return &Client{
		base:       ResolveBaseURL(cfg.BaseURL, cfg.APIPrefix, cfg.DevMode),
		cookieName: cookieName,
		httpClient: httpClient,
	}
}

// ResolveBaseURL normalizes a configured base URL: trailing slashes are
// trimmed and, outside dev mode, the API prefix is appended when not
// already present. An empty base URL stays empty (relative requests).
func ResolveBaseURL(baseURL, apiPrefix string, devMode bool) string {
	base := strings.TrimRight(baseURL, "/")
	if apiPrefix == "" {
		apiPrefix = "/api"
	}
	if !devMode && base != "" && !strings.HasSuffix(base, apiPrefix) {
		base += apiPrefix
	}
	return base
}

// Login submits step one of the two-step login.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	return c.post(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// VerifyCode submits the one-time code together with the staged email for
// user lookup, completing session establishment.
func (c *Client) VerifyCode(ctx context.Context, email, code string) (*AuthResponse, error) {
	return c.post(ctx, "/auth/verify-2fa", map[string]string{
		"code":  code,
		"email": email,
	})
}

// Logout notifies the server that the session is ending. Best-effort by
// contract: callers are free to ignore the error.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.post(ctx, "/auth/logout", nil)
	return err
}

// Me fetches the current user using the session token as the cookie
// credential.
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/auth/me"), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	req.AddCookie(&http.Cookie{Name: c.cookieName, Value: token})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, rejectedFromBody(resp)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return &user, nil
}

// GenerateMFA requests provisioning material for the given account.
func (c *Client) GenerateMFA(ctx context.Context, email string) (*MFAProvision, error) {
	resp, err := c.postRaw(ctx, "/auth/generate-mfa", map[string]string{"email": email})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var provision MFAProvision
	if err := json.NewDecoder(resp.Body).Decode(&provision); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return &provision, nil
}

// VerifyMFA checks a 6-digit code against a provisioned secret.
func (c *Client) VerifyMFA(ctx context.Context, secret, code string) (*AuthResponse, error) {
	return c.post(ctx, "/auth/verify-mfa", map[string]string{
		"secret": secret,
		"code":   code,
	})
}

func (c *Client) endpoint(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.base + path
}

func (c *Client) post(ctx context.Context, path string, body any) (*AuthResponse, error) {
	resp, err := c.postRaw(ctx, path, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var decoded AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		// Logout legitimately returns an empty body.
		if errors.Is(err, io.EOF) {
			return &AuthResponse{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return &decoded, nil
}

func (c *Client) postRaw(ctx context.Context, path string, body any) (*http.Response, error) {
	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConnection, err)
		}
		payload = encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, rejectedFromBody(resp)
	}
	return resp, nil
}

func rejectedFromBody(resp *http.Response) error {
	message := FallbackMessage
	var decoded struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err == nil && decoded.Message != "" {
		message = decoded.Message
	}
	return &RejectedError{Status: resp.StatusCode, Message: message}
}
