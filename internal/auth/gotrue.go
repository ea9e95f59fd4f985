package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GoTrue is a client for Supabase Auth (GoTrue).
type GoTrue struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     *slog.Logger
}

func NewGoTrue(baseURL, apiKey string, client *http.Client, logger *slog.Logger) *GoTrue {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GoTrue{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
		log:     logger,
	}
}

func (g *GoTrue) Name() string { return "gotrue" }

// RequestMagicLink asks GoTrue to e-mail a sign-in link for email. New
// addresses are signed up on first use.
func (g *GoTrue) RequestMagicLink(ctx context.Context, email, redirectTo string) error {
	q := url.Values{}
	if redirectTo != "" {
		q.Set("redirect_to", redirectTo)
	}
	body := map[string]any{"email": email}
	if err := g.post(ctx, "magiclink", "/auth/v1/magiclink", q, body, nil); err != nil {
		return err
	}
	g.log.InfoContext(ctx, "magic link requested", "provider", g.Name())
	return nil
}

type gotrueSession struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	User         struct {
		ID string `json:"id"`
	} `json:"user"`
}

// VerifyCode exchanges the one-time code from the magic-link mail for a session.
func (g *GoTrue) VerifyCode(ctx context.Context, email, code string) (Session, error) {
	body := map[string]any{"type": "magiclink", "email": email, "token": code}
	var out gotrueSession
	if err := g.post(ctx, "verify", "/auth/v1/verify", nil, body, &out); err != nil {
		return Session{}, err
	}
	s := Session{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		UserID:       out.User.ID,
	}
	switch {
	case out.ExpiresAt > 0:
		s.ExpiresAt = time.Unix(out.ExpiresAt, 0).UTC()
	case out.ExpiresIn > 0:
		s.ExpiresAt = time.Now().UTC().Add(time.Duration(out.ExpiresIn) * time.Second)
	}
	if s.AccessToken == "" {
		return Session{}, &RequestError{Op: "verify", Message: "Provider returned no session"}
	}
	return s, nil
}

// gotrueError covers the error shapes GoTrue has used across versions.
type gotrueError struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e gotrueError) text() string {
	for _, s := range []string{e.Msg, e.ErrorDescription, e.Message, e.Error} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

func (g *GoTrue) post(ctx context.Context, op, path string, q url.Values, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("auth %s: encode body: %w", op, err)
	}
	endpoint := g.baseURL + path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("auth %s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if g.apiKey != "" {
		req.Header.Set("apikey", g.apiKey)
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.WarnContext(ctx, "auth request failed", "op", op, "err", err)
		return transportError(op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return transportError(op, err)
	}
	if resp.StatusCode >= 400 {
		var ge gotrueError
		msg := ""
		if json.Unmarshal(data, &ge) == nil {
			msg = ge.text()
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		g.log.WarnContext(ctx, "auth provider rejected request", "op", op, "status", resp.StatusCode, "message", msg)
		return &RequestError{Op: op, Status: resp.StatusCode, Message: msg}
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &RequestError{Op: op, Status: resp.StatusCode, Message: "Unexpected response from provider", Err: err}
	}
	return nil
}
