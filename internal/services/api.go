package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Riboost-Studio/perfect-menu-print-dispatch/internal/model"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrProfileUnavailable = errors.New("restaurant profile unavailable")
	ErrMalformedResponse  = errors.New("malformed api response")
	errNoCredentials      = errors.New("no refresh token or admin credentials configured")
)

// APIError is a non-2xx (or success=false) answer from the ordering API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, msg)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, msg)
}

// IsAuth reports a 401/403 rejection.
func (e *APIError) IsAuth() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// TokenStore keeps the refresh token across restarts.
type TokenStore interface {
	SaveRefreshToken(token string) error
}

// APIClient talks to the remote ordering API. One instance is shared by
// every component of the process.
type APIClient struct {
	baseURL      string
	deviceID     string
	restaurantID string
	email        string
	password     string

	http  *http.Client
	store TokenStore
	log   *zap.Logger
	now   func() time.Time

	RetryAttempts int
	RetryBase     time.Duration
	ProfileTTL    time.Duration

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	generation   uint64
	refreshGroup singleflight.Group

	profileMu sync.Mutex
	profile   *model.RestaurantProfile
	profileAt time.Time
}

func NewAPIClient(cfg model.Config, deviceID string, store TokenStore, log *zap.Logger) *APIClient {
	return &APIClient{
		baseURL:      strings.TrimRight(cfg.APIURL, "/"),
		deviceID:     deviceID,
		restaurantID: cfg.RestaurantID,
		email:        cfg.AdminEmail,
		password:     cfg.AdminPassword,
		http: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		store:         store,
		log:           log.Named("api"),
		now:           time.Now,
		RetryAttempts: 3,
		RetryBase:     time.Second,
		ProfileTTL:    5 * time.Minute,
		accessToken:   cfg.APIToken,
		refreshToken:  cfg.RefreshToken,
	}
}

type apiCall struct {
	method string
	path   string
	query  url.Values
	body   any
	out    any
	// bare skips the envelope: any 2xx is success and the body is ignored
	bare bool
	// anonymous calls carry no bearer token
	anonymous bool
}

// do runs one logical call: transport failures and 5xx are retried, and an
// auth rejection refreshes the session once before a final attempt.
func (c *APIClient) do(ctx context.Context, call apiCall) error {
	refreshed := false

	token, gen := c.session()
	if !call.anonymous && tokenExpired(token, c.now()) && c.canRefresh() {
		c.log.Info("access token expired, refreshing before request")
		if err := c.refreshSession(ctx, gen); err != nil {
			c.log.Warn("proactive token refresh failed", zap.Error(err))
		} else {
			refreshed = true
		}
	}

	for {
		token, gen = c.session()
		err := retry(ctx, c.RetryAttempts, c.RetryBase, c.log, func() error {
			return c.send(ctx, call, token)
		})

		var apiErr *APIError
		if call.anonymous || !errors.As(err, &apiErr) || !apiErr.IsAuth() || !isTokenError(apiErr.Code) {
			return err
		}
		if refreshed || !c.canRefresh() {
			c.logAuthHint()
			return err
		}

		refreshed = true
		c.log.Info("token rejected, refreshing session", zap.String("code", apiErr.Code))
		if rerr := c.refreshSession(ctx, gen); rerr != nil {
			c.logAuthHint()
			return fmt.Errorf("%w (refresh failed: %v)", err, rerr)
		}
	}
}

func (c *APIClient) send(ctx context.Context, call apiCall, token string) error {
	var body io.Reader
	if call.body != nil {
		data, err := json.Marshal(call.body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, call.method, c.baseURL+call.path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if call.query != nil {
		req.URL.RawQuery = call.query.Encode()
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !call.anonymous && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debug("request", zap.String("method", call.method), zap.String("path", call.path))
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env model.Envelope
	decodeErr := json.Unmarshal(data, &env)

	if resp.StatusCode >= 300 {
		msg := env.Error
		if decodeErr != nil || msg == "" {
			msg = strings.TrimSpace(string(data))
		}
		return &APIError{Status: resp.StatusCode, Code: env.Code, Message: msg}
	}
	if call.bare {
		return nil
	}
	if decodeErr != nil {
		return fmt.Errorf("%w: status %d: %v", ErrMalformedResponse, resp.StatusCode, decodeErr)
	}
	if !env.Success {
		return &APIError{Status: resp.StatusCode, Code: env.Code, Message: env.Error}
	}
	if call.out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, call.out); err != nil {
			return fmt.Errorf("%w: data: %v", ErrMalformedResponse, err)
		}
	}
	return nil
}

// PollOrders lists orders waiting for this device. An empty since asks for
// everything pending.
func (c *APIClient) PollOrders(ctx context.Context, since string) (*model.PollResult, error) {
	q := url.Values{}
	q.Set("deviceId", c.deviceID)
	if since != "" {
		q.Set("lastCheckAt", since)
	}

	var res model.PollResult
	if err := c.do(ctx, apiCall{method: http.MethodGet, path: "/api/orders/polling", query: q, out: &res}); err != nil {
		return nil, fmt.Errorf("poll orders: %w", err)
	}
	return &res, nil
}

func (c *APIClient) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := c.do(ctx, apiCall{method: http.MethodGet, path: "/api/orders/" + url.PathEscape(id), out: &order})
	if err != nil {
		var apiErr *APIError
		// a 2xx APIError only comes from an envelope with success=false
		if errors.As(err, &apiErr) && (apiErr.Status == http.StatusNotFound || apiErr.Status < 300) {
			return nil, fmt.Errorf("%w: %s: %v", ErrOrderNotFound, model.ShortID(id, 8), err)
		}
		return nil, fmt.Errorf("get order %s: %w", model.ShortID(id, 8), err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, model.ShortID(id, 8))
	}
	return &order, nil
}

func (c *APIClient) MarkPrinted(ctx context.Context, id string) error {
	path := "/api/orders/" + url.PathEscape(id) + "/mark-kitchen-receipt-printed"
	if err := c.do(ctx, apiCall{method: http.MethodPatch, path: path}); err != nil {
		return fmt.Errorf("mark order %s printed: %w", model.ShortID(id, 8), err)
	}
	return nil
}

// GetRestaurantProfile returns the cached profile while it is younger than
// ProfileTTL. A stale or forced read blocks on a refetch.
func (c *APIClient) GetRestaurantProfile(ctx context.Context, forceRefresh bool) (*model.RestaurantProfile, error) {
	c.profileMu.Lock()
	defer c.profileMu.Unlock()

	if !forceRefresh && c.profile != nil && c.now().Sub(c.profileAt) < c.ProfileTTL {
		p := *c.profile
		return &p, nil
	}

	var profile *model.RestaurantProfile
	var lastErr error

	if c.restaurantID != "" {
		var p model.RestaurantProfile
		err := c.do(ctx, apiCall{method: http.MethodGet, path: "/api/restaurants/" + url.PathEscape(c.restaurantID), out: &p})
		if err == nil {
			profile = &p
		} else {
			lastErr = err
			c.log.Debug("restaurant endpoint failed, trying admin profile", zap.Error(err))
		}
	}

	if profile == nil {
		var admin model.AdminProfile
		err := c.do(ctx, apiCall{method: http.MethodGet, path: "/api/admin/profile", out: &admin})
		switch {
		case err != nil:
			lastErr = err
		case admin.Restaurant == nil:
			lastErr = errors.New("admin profile has no restaurant")
		default:
			profile = admin.Restaurant
		}
	}

	if profile == nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileUnavailable, lastErr)
	}

	c.profile = profile
	c.profileAt = c.now()
	p := *profile
	return &p, nil
}

// TestConnection makes sure the API is reachable with a usable session,
// logging in first when only credentials are configured.
func (c *APIClient) TestConnection(ctx context.Context) error {
	hasCreds := c.email != "" && c.password != ""
	loggedIn := false

	if c.AccessToken() == "" {
		if !hasCreds {
			return errors.New("no API_TOKEN and no ADMIN_EMAIL/ADMIN_PASSWORD configured")
		}
		c.log.Info("no access token configured, logging in")
		if _, err := c.Login(ctx, c.email, c.password); err != nil {
			return fmt.Errorf("auto-login: %w", err)
		}
		loggedIn = true
	}

	err := c.do(ctx, apiCall{method: http.MethodGet, path: "/api/health", bare: true})
	var apiErr *APIError
	if err != nil && errors.As(err, &apiErr) && apiErr.IsAuth() && hasCreds && !loggedIn {
		c.log.Info("health check rejected the token, logging in")
		if _, lerr := c.Login(ctx, c.email, c.password); lerr != nil {
			return fmt.Errorf("auto-login after %v: %w", err, lerr)
		}
		err = c.do(ctx, apiCall{method: http.MethodGet, path: "/api/health", bare: true})
	}
	if err != nil {
		return fmt.Errorf("api health check: %w", err)
	}
	return nil
}
