package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	ory "github.com/ory/kratos-client-go"
)

const kratosSentEmail = "sent_email"

// Kratos drives Ory Kratos native login flows with the "code" method: the
// first submission mails a one-time code (and link), the second exchanges it.
type Kratos struct {
	api *ory.APIClient
	log *slog.Logger

	mu    sync.Mutex
	flows map[string]string // email -> login flow id awaiting a code
}

func NewKratos(publicURL string, client *http.Client, logger *slog.Logger) *Kratos {
	if logger == nil {
		logger = slog.Default()
	}
	cfg := ory.NewConfiguration()
	cfg.Servers = []ory.ServerConfiguration{{URL: strings.TrimRight(publicURL, "/")}}
	if client != nil {
		cfg.HTTPClient = client
	}
	return &Kratos{
		api:   ory.NewAPIClient(cfg),
		log:   logger,
		flows: make(map[string]string),
	}
}

func (k *Kratos) Name() string { return "kratos" }

// kratosFlowPayload is the part of a flow or error body we translate.
type kratosFlowPayload struct {
	State any `json:"state"`
	UI    struct {
		Messages []struct {
			ID   int64  `json:"id"`
			Text string `json:"text"`
			Type string `json:"type"`
		} `json:"messages"`
	} `json:"ui"`
	Error struct {
		Message string `json:"message"`
		Reason  string `json:"reason"`
	} `json:"error"`
}

func (p kratosFlowPayload) state() string {
	if s, ok := p.State.(string); ok {
		return s
	}
	return ""
}

func (p kratosFlowPayload) message() string {
	for _, m := range p.UI.Messages {
		if m.Type == "error" && m.Text != "" {
			return m.Text
		}
	}
	if p.Error.Reason != "" {
		return p.Error.Reason
	}
	return p.Error.Message
}

// RequestMagicLink starts a native login flow and submits the address.
// Kratos answers 400 with the flow in state sent_email when the code is out.
func (k *Kratos) RequestMagicLink(ctx context.Context, email, redirectTo string) error {
	req := k.api.FrontendAPI.CreateNativeLoginFlow(ctx)
	if redirectTo != "" {
		req = req.ReturnTo(redirectTo)
	}
	flow, resp, err := req.Execute()
	if err != nil {
		return k.translate(ctx, "create login flow", resp, err)
	}

	body := ory.UpdateLoginFlowBody{
		UpdateLoginFlowWithCodeMethod: &ory.UpdateLoginFlowWithCodeMethod{
			Method:     "code",
			Identifier: &email,
		},
	}
	_, resp, err = k.api.FrontendAPI.UpdateLoginFlow(ctx).
		Flow(flow.Id).
		UpdateLoginFlowBody(body).
		Execute()
	if err == nil {
		return &RequestError{Op: "send code", Message: "Provider signed in without sending a code"}
	}
	if payload, ok := decodeKratos(err); ok && payload.state() == kratosSentEmail {
		k.mu.Lock()
		k.flows[strings.ToLower(email)] = flow.Id
		k.mu.Unlock()
		k.log.InfoContext(ctx, "login code sent", "provider", k.Name(), "flow_id", flow.Id)
		return nil
	}
	return k.translate(ctx, "send code", resp, err)
}

// VerifyCode submits the mailed code to the flow started for email.
func (k *Kratos) VerifyCode(ctx context.Context, email, code string) (Session, error) {
	k.mu.Lock()
	flowID, ok := k.flows[strings.ToLower(email)]
	k.mu.Unlock()
	if !ok {
		return Session{}, &RequestError{Op: "verify", Message: "No sign-in in progress for this address"}
	}

	body := ory.UpdateLoginFlowBody{
		UpdateLoginFlowWithCodeMethod: &ory.UpdateLoginFlowWithCodeMethod{
			Method:     "code",
			Identifier: &email,
			Code:       &code,
		},
	}
	result, resp, err := k.api.FrontendAPI.UpdateLoginFlow(ctx).
		Flow(flowID).
		UpdateLoginFlowBody(body).
		Execute()
	if err != nil {
		return Session{}, k.translate(ctx, "verify", resp, err)
	}

	k.mu.Lock()
	delete(k.flows, strings.ToLower(email))
	k.mu.Unlock()

	s := Session{AccessToken: result.Session.Id}
	if result.SessionToken != nil {
		s.AccessToken = *result.SessionToken
	}
	if result.Session.Identity != nil {
		s.UserID = result.Session.Identity.Id
	}
	if result.Session.ExpiresAt != nil {
		s.ExpiresAt = result.Session.ExpiresAt.UTC()
	}
	return s, nil
}

func decodeKratos(err error) (kratosFlowPayload, bool) {
	var apiErr *ory.GenericOpenAPIError
	if !errors.As(err, &apiErr) {
		return kratosFlowPayload{}, false
	}
	var payload kratosFlowPayload
	if json.Unmarshal(apiErr.Body(), &payload) != nil {
		return kratosFlowPayload{}, false
	}
	return payload, true
}

func (k *Kratos) translate(ctx context.Context, op string, resp *http.Response, err error) error {
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	if status == 0 {
		k.log.WarnContext(ctx, "kratos unreachable", "op", op, "err", err)
		return transportError(op, err)
	}
	msg := ""
	if payload, ok := decodeKratos(err); ok {
		msg = payload.message()
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	k.log.WarnContext(ctx, "kratos rejected request", "op", op, "status", status, "message", msg)
	return &RequestError{Op: op, Status: status, Message: msg, Err: err}
}
