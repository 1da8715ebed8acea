package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/wroger/gymtrack/internal/client/models"
	"github.com/wroger/gymtrack/internal/logging"
	"github.com/wroger/gymtrack/internal/netx"
)

// refreshWindow is how close to expiry the access token may get before
// the client refreshes it ahead of a request.
const refreshWindow = 30 * time.Second

// tokenExpiredMessage is the application message the server uses to flag
// an expired access token on a 401.
const tokenExpiredMessage = "token.expired"

// RESTClient talks to the training service over HTTP. It holds the
// bearer tokens and funnels every response through the error translator.
type RESTClient struct {
	baseURL    string
	httpClient *http.Client
	log        logging.Logger

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func NewRESTClient(baseURL string, timeout time.Duration, log logging.Logger) *RESTClient {
	return &RESTClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With("component", "api"),
	}
}

// SetTokens installs the bearer tokens, e.g. after restoring a session.
func (c *RESTClient) SetTokens(access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = access
	c.refreshToken = refresh
}

// Tokens returns the current bearer tokens.
func (c *RESTClient) Tokens() (string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

// ClearTokens drops the bearer tokens, e.g. on sign-out.
func (c *RESTClient) ClearTokens() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = ""
	c.refreshToken = ""
}

// Get issues a GET request and decodes the response into out.
func (c *RESTClient) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

// Post issues a POST request with a JSON body.
func (c *RESTClient) Post(ctx context.Context, path string, in, out any) error {
	body, err := encodeJSON(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, body, "application/json", out)
}

// Put issues a PUT request with a JSON body.
func (c *RESTClient) Put(ctx context.Context, path string, in, out any) error {
	body, err := encodeJSON(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, body, "application/json", out)
}

// Patch issues a PATCH request with a JSON body.
func (c *RESTClient) Patch(ctx context.Context, path string, in, out any) error {
	body, err := encodeJSON(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, path, body, "application/json", out)
}

func encodeJSON(in any) ([]byte, error) {
	if in == nil {
		return nil, nil
	}
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return body, nil
}

// do is the single request path. Every call gets a request id and the
// bearer token; every failure comes back as an *APIError. The body is a
// byte slice so the request can be replayed after a token refresh.
func (c *RESTClient) do(ctx context.Context, method, path string, body []byte, contentType string, out any) error {
	refreshed := false

	for {
		c.maybeRefresh(ctx)

		status, respBody, err := c.roundTrip(ctx, method, path, body, contentType)
		if err != nil {
			return translateTransport(err)
		}

		if status == http.StatusUnauthorized && !refreshed && c.isTokenExpired(respBody) {
			if err := c.refresh(ctx); err != nil {
				return err
			}
			refreshed = true
			continue
		}

		if status < 200 || status > 299 {
			return translateResponse(status, respBody)
		}

		if out != nil {
			if err := json.Unmarshal(respBody, out); err != nil {
				c.log.Warn(ctx, "undecodable response body", "method", method, "path", path, "error", err)
				return translateTransport(fmt.Errorf("decode response: %w", err))
			}
		}
		return nil
	}
}

func (c *RESTClient) roundTrip(ctx context.Context, method, path string, body []byte, contentType string) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, err
	}

	req.Header.Set("X-Request-Id", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if access, _ := c.Tokens(); access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, respBody, nil
}

func (c *RESTClient) isTokenExpired(body []byte) bool {
	_, refresh := c.Tokens()
	if refresh == "" {
		return false
	}
	var payload messageBody
	if json.Unmarshal(body, &payload) != nil {
		return false
	}
	return payload.Message == tokenExpiredMessage
}

// maybeRefresh renews the access token ahead of a request when it is
// about to expire. Best effort: a failed proactive refresh falls through
// to the normal 401 handling.
func (c *RESTClient) maybeRefresh(ctx context.Context) {
	access, refresh := c.Tokens()
	if access == "" || refresh == "" || !tokenNeedsRefresh(access) {
		return
	}
	if err := c.refresh(ctx); err != nil {
		c.log.Debug(ctx, "proactive token refresh failed", "error", err)
	}
}

// refresh exchanges the refresh token for a new token pair. It bypasses
// do to avoid recursion.
func (c *RESTClient) refresh(ctx context.Context) error {
	_, refreshToken := c.Tokens()

	payload, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return translateTransport(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sessions/refresh-token", bytes.NewReader(payload))
	if err != nil {
		return translateTransport(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return translateTransport(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return translateTransport(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return translateResponse(resp.StatusCode, body)
	}

	var out struct {
		Token        string `json:"token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return translateTransport(fmt.Errorf("decode refresh response: %w", err))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = out.Token
	if out.RefreshToken != "" {
		c.refreshToken = out.RefreshToken
	}
	return nil
}

// tokenNeedsRefresh reports whether the access token expires within
// refreshWindow. Claims are read without signature verification; the
// server stays the authority, this only avoids a guaranteed 401.
func tokenNeedsRefresh(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Until(exp.Time) < refreshWindow
}

// signInResponse is the /sessions success payload. Older deployments
// return only the user; token fields stay empty then.
type signInResponse struct {
	User         models.User `json:"user"`
	Token        string      `json:"token"`
	RefreshToken string      `json:"refresh_token"`
}

// SignIn exchanges credentials for a session payload and installs the
// returned tokens.
func (c *RESTClient) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	var out signInResponse
	in := map[string]string{"email": email, "password": password}
	if err := c.Post(ctx, "/sessions", in, &out); err != nil {
		return nil, err
	}
	if !out.User.Valid() {
		// A 2xx without a usable user is as broken as no response.
		return nil, translateTransport(errors.New("incomplete session payload"))
	}
	if out.Token != "" {
		c.SetTokens(out.Token, out.RefreshToken)
	}
	return &out.User, nil
}

// SignUp creates a new account. The server responds 2xx with an empty
// body or an echo; either way there is nothing to decode.
func (c *RESTClient) SignUp(ctx context.Context, name, email, password string) error {
	in := map[string]string{"name": name, "email": email, "password": password}
	return c.Post(ctx, "/users", in, nil)
}

// UpdateUser submits a profile update.
func (c *RESTClient) UpdateUser(ctx context.Context, req UpdateUserRequest) error {
	return c.Put(ctx, "/users", req, nil)
}

// UploadAvatar sends the candidate as a multipart request and returns
// the server-assigned avatar reference.
func (c *RESTClient) UploadAvatar(ctx context.Context, candidate models.AvatarCandidate) (string, error) {
	f, err := os.Open(candidate.Path)
	if err != nil {
		return "", fmt.Errorf("open avatar file: %w", err)
	}
	defer f.Close()

	body, contentType, err := netx.MultipartFile("avatar", candidate.Path, candidate.MIME, f)
	if err != nil {
		return "", fmt.Errorf("build avatar upload: %w", err)
	}

	var out struct {
		Avatar string `json:"avatar"`
	}
	if err := c.do(ctx, http.MethodPatch, "/users/avatar", body.Bytes(), contentType, &out); err != nil {
		return "", err
	}
	return out.Avatar, nil
}

// Groups lists the muscle group names.
func (c *RESTClient) Groups(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.Get(ctx, "/groups", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExercisesByGroup lists the exercises of one muscle group.
func (c *RESTClient) ExercisesByGroup(ctx context.Context, group string) ([]models.Exercise, error) {
	var out []models.Exercise
	if err := c.Get(ctx, "/exercises/bygroup/"+url.PathEscape(group), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Exercise fetches one exercise record.
func (c *RESTClient) Exercise(ctx context.Context, id int) (*models.Exercise, error) {
	var out models.Exercise
	if err := c.Get(ctx, fmt.Sprintf("/exercises/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// History returns the user's exercise history grouped by day.
func (c *RESTClient) History(ctx context.Context) ([]models.HistoryDay, error) {
	var out []models.HistoryDay
	if err := c.Get(ctx, "/history", &out); err != nil {
		return nil, err
	}
	return out, nil
}
