package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/Riboost-Studio/perfect-menu-print-dispatch/internal/model"
)

const refreshTimeout = 15 * time.Second

func isTokenError(code string) bool {
	switch code {
	case "TOKEN_EXPIRED", "INVALID_TOKEN", "AUTH_ERROR":
		return true
	default:
		return false
	}
}

// tokenExpired reads the exp claim without verifying the signature. Tokens
// that are not JWTs or carry no exp are never considered expired.
func tokenExpired(token string, now time.Time) bool {
	if token == "" {
		return false
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.Time.After(now)
}

func (c *APIClient) session() (string, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken, c.generation
}

// AccessToken returns the token currently used for requests.
func (c *APIClient) AccessToken() string {
	token, _ := c.session()
	return token
}

func (c *APIClient) canRefresh() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshToken != "" || (c.email != "" && c.password != "")
}

func (c *APIClient) setSession(pair *model.TokenPair) {
	c.mu.Lock()
	c.accessToken = pair.AccessToken
	rotated := pair.RefreshToken != "" && pair.RefreshToken != c.refreshToken
	if pair.RefreshToken != "" {
		c.refreshToken = pair.RefreshToken
	}
	c.generation++
	c.mu.Unlock()

	if rotated && c.store != nil {
		if err := c.store.SaveRefreshToken(pair.RefreshToken); err != nil {
			c.log.Warn("could not persist refresh token", zap.Error(err))
		} else {
			c.log.Info("refresh token saved")
		}
	}
}

// refreshSession replaces the session that was current at generation gen.
// Concurrent callers share one refresh, and a caller whose token was
// already replaced returns at once to retry with the new one.
func (c *APIClient) refreshSession(ctx context.Context, gen uint64) error {
	if _, cur := c.session(); cur != gen {
		return nil
	}

	_, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		c.mu.RLock()
		current, refresh := c.generation, c.refreshToken
		c.mu.RUnlock()
		if current != gen {
			return nil, nil
		}

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()

		var pair *model.TokenPair
		var err error
		if refresh != "" {
			c.log.Info("refreshing access token")
			pair, err = c.requestTokens(ctx, "/api/auth/refresh", model.RefreshRequest{RefreshToken: refresh})
			if err != nil {
				c.log.Warn("token refresh failed", zap.Error(err))
			}
		}

		if pair == nil {
			if c.email == "" || c.password == "" {
				if err == nil {
					err = errNoCredentials
				}
				return nil, err
			}
			c.log.Info("logging in with admin credentials")
			pair, err = c.requestTokens(ctx, "/api/admin/login", model.LoginRequest{Email: c.email, Password: c.password})
			if err != nil {
				return nil, fmt.Errorf("auto-login: %w", err)
			}
		}

		c.setSession(pair)
		c.log.Info("session renewed")
		return nil, nil
	})
	return err
}

func (c *APIClient) requestTokens(ctx context.Context, path string, body any) (*model.TokenPair, error) {
	var pair model.TokenPair
	err := c.send(ctx, apiCall{method: http.MethodPost, path: path, body: body, out: &pair, anonymous: true}, "")
	if err != nil {
		return nil, err
	}
	if pair.AccessToken == "" {
		return nil, fmt.Errorf("%s returned no access token", path)
	}
	return &pair, nil
}

// Login exchanges admin credentials for a token pair and adopts it as the
// current session.
func (c *APIClient) Login(ctx context.Context, email, password string) (*model.TokenPair, error) {
	pair, err := c.requestTokens(ctx, "/api/admin/login", model.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	c.setSession(pair)
	return pair, nil
}

func (c *APIClient) logAuthHint() {
	c.mu.RLock()
	hasRefresh := c.refreshToken != ""
	c.mu.RUnlock()

	if hasRefresh {
		c.log.Error("authentication failed and the refresh token was rejected; configure new tokens in .env")
		return
	}
	c.log.Error("authentication failed; set REFRESH_TOKEN or ADMIN_EMAIL/ADMIN_PASSWORD in .env (run get-token to obtain tokens)")
}
