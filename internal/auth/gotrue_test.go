package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGoTrueRequestMagicLink(t *testing.T) {
	var gotBody map[string]any
	var gotQuery, gotKey, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/v1/magiclink", r.URL.Path)
		gotQuery = r.URL.Query().Get("redirect_to")
		gotKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	g := NewGoTrue(srv.URL+"/", "anon", srv.Client(), nil)
	err := g.RequestMagicLink(context.Background(), "user@example.com", "smartbank://auth/callback")
	require.NoError(t, err)
	require.Equal(t, "user@example.com", gotBody["email"])
	require.Equal(t, "smartbank://auth/callback", gotQuery)
	require.Equal(t, "anon", gotKey)
	require.Equal(t, "Bearer anon", gotAuth)
}

func TestGoTrueRequestMagicLinkProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"code":429,"msg":"rate limited"}`))
	}))
	defer srv.Close()

	err := NewGoTrue(srv.URL, "", srv.Client(), nil).
		RequestMagicLink(context.Background(), "user@example.com", "")
	require.Error(t, err)
	var re *RequestError
	require.True(t, errors.As(err, &re))
	require.Equal(t, http.StatusTooManyRequests, re.Status)
	require.Equal(t, "rate limited", re.Message)
	require.Equal(t, "rate limited", Message(err))
}

func TestGoTrueErrorFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	}))
	defer srv.Close()

	err := NewGoTrue(srv.URL, "", srv.Client(), nil).
		RequestMagicLink(context.Background(), "user@example.com", "")
	require.Equal(t, "Bad Gateway", Message(err))
}

func TestGoTrueTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewGoTrue(url, "", nil, nil).RequestMagicLink(context.Background(), "user@example.com", "")
	var re *RequestError
	require.True(t, errors.As(err, &re))
	require.Zero(t, re.Status)
	require.Equal(t, "Network request failed", re.Message)
}

func TestGoTrueHonoursCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := NewGoTrue(srv.URL, "", srv.Client(), nil).RequestMagicLink(ctx, "user@example.com", "")
	require.Error(t, err)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, "The request timed out", Message(err))
}

func TestGoTrueVerifyCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/v1/verify", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "magiclink", body["type"])
		if body["token"] != "123456" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"access_denied","error_description":"Token has expired or is invalid"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"at","refresh_token":"rt","expires_at":1900000000,"user":{"id":"u-1"}}`))
	}))
	defer srv.Close()

	g := NewGoTrue(srv.URL, "", srv.Client(), nil)
	s, err := g.VerifyCode(context.Background(), "user@example.com", "123456")
	require.NoError(t, err)
	require.Equal(t, "at", s.AccessToken)
	require.Equal(t, "rt", s.RefreshToken)
	require.Equal(t, "u-1", s.UserID)
	require.Equal(t, time.Unix(1900000000, 0).UTC(), s.ExpiresAt)

	_, err = g.VerifyCode(context.Background(), "user@example.com", "000000")
	require.Equal(t, "Token has expired or is invalid", Message(err))
}

func TestRedirectURL(t *testing.T) {
	id := uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7")
	require.Equal(t,
		"smartbank://auth/callback?instance=7c9e6679-7425-40de-944b-e07fc1f90ae7",
		RedirectURL("smartbank", "/auth/callback", id))
	require.Equal(t, "smartbank://login", RedirectURL("smartbank://", "login", uuid.Nil))
}
