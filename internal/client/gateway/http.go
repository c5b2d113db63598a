package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mlevkov/authgate/internal/client/tokenstore"
	"github.com/mlevkov/authgate/internal/logging"
)

// genericRejection is shown when the service refuses a request without a
// usable error message in the body.
const genericRejection = "authentication failed"

// HTTPGateway talks JSON over HTTP to the authentication service.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
	store   tokenstore.Store
	log     logging.Logger
}

// NewHTTPGateway builds a gateway rooted at baseURL (e.g.
// "http://127.0.0.1:8080"). A nil httpClient falls back to a default
// client with the transport's own timeouts.
func NewHTTPGateway(baseURL string, store tokenstore.Store, log logging.Logger, httpClient *http.Client) *HTTPGateway {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
		store:   store,
		log:     log,
	}
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type authResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       int64  `json:"user_id"`
	Username     string `json:"username"`
}

type profileResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Signup creates an account and stores the issued token pair.
func (g *HTTPGateway) Signup(ctx context.Context, username, email, password string) (*Identity, error) {
	var resp authResponse
	req := signupRequest{Username: username, Email: email, Password: password}
	if err := g.do(ctx, http.MethodPost, "/signup/", "", req, &resp); err != nil {
		return nil, err
	}

	if err := g.store.Set(ctx, tokenstore.NewPair(resp.AccessToken, resp.RefreshToken)); err != nil {
		return nil, err
	}
	return &Identity{UserID: resp.UserID, Username: resp.Username, NewUser: true}, nil
}

// Login authenticates with a username or an email; the service decides
// which one it got, so the identifier travels in the username field as-is.
func (g *HTTPGateway) Login(ctx context.Context, identifier, password string) (*Identity, error) {
	var resp authResponse
	req := loginRequest{Username: identifier, Password: password}
	if err := g.do(ctx, http.MethodPost, "/login/", "", req, &resp); err != nil {
		return nil, err
	}

	if err := g.store.Set(ctx, tokenstore.NewPair(resp.AccessToken, resp.RefreshToken)); err != nil {
		return nil, err
	}
	return &Identity{UserID: resp.UserID, Username: resp.Username, NewUser: false}, nil
}

// Logout revokes the session remotely when it can, and clears the stored
// pair in every case. The remote outcome is logged and deliberately
// dropped: an unreachable server must not keep a client signed in.
func (g *HTTPGateway) Logout(ctx context.Context) error {
	pair, err := g.store.Get(ctx)
	if err != nil {
		g.log.Warn(ctx, "could not read stored tokens before logout", "error", err)
	}

	if pair != nil {
		req := logoutRequest{RefreshToken: pair.Refresh.Unveil()}
		if err := g.do(ctx, http.MethodPost, "/logout/", pair.Access.Unveil(), req, nil); err != nil {
			g.log.Warn(ctx, "remote logout failed, discarding", "error", err)
		}
	}

	return g.store.Clear(ctx)
}

// Profile resolves the identity behind the stored access token. With no
// token present it fails with ErrNoSession before any network call.
func (g *HTTPGateway) Profile(ctx context.Context) (*Identity, error) {
	pair, err := g.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, ErrNoSession
	}

	var resp profileResponse
	if err := g.do(ctx, http.MethodGet, "/profile/", pair.Access.Unveil(), nil, &resp); err != nil {
		return nil, err
	}
	return &Identity{UserID: resp.UserID, Username: resp.Username, NewUser: false}, nil
}

// do sends one JSON request and decodes the response. Non-2xx responses
// become *RejectedError with the server's message when the body carries
// one; anything that fails before a structured response wraps ErrTransport.
func (g *HTTPGateway) do(ctx context.Context, method, path, bearer string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", ErrTransport, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrTransport, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var er errorResponse
		msg := genericRejection
		if json.Unmarshal(data, &er) == nil && er.Error != "" {
			msg = er.Error
		}
		return &RejectedError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrTransport, err)
		}
	}
	return nil
}
