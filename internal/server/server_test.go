package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"incorporate-run-be/internal/bootstrap"
	"incorporate-run-be/internal/config"
	"incorporate-run-be/internal/dto"
	"incorporate-run-be/internal/pkg/logger"
	"incorporate-run-be/internal/pkg/mailer"
	"incorporate-run-be/internal/repository/memory"
	"incorporate-run-be/pkg/embedding"
	"incorporate-run-be/pkg/events"
	"incorporate-run-be/pkg/llm"
	"incorporate-run-be/pkg/speech"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLLM struct{}

func (stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return "# Draft", nil
}

func (stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return "Delaware it is.", nil
}

type captureMailer struct {
	mu       sync.Mutex
	signURLs map[string]string
}

func (m *captureMailer) SendFounderInvitation(toEmail string, data mailer.FounderInvitation) error {
	return nil
}

func (m *captureMailer) SendSignatureRequest(toEmail string, data mailer.SignatureRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.signURLs[toEmail] = data.SignURL
	return nil
}

func (m *captureMailer) token(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	url := m.signURLs[email]
	return url[strings.LastIndex(url, "/")+1:]
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type client struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func (c *client) do(method, path string, body interface{}, out interface{}) int {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&env))
	if out != nil && resp.StatusCode < 300 {
		require.NoError(c.t, json.Unmarshal(env.Data, out))
	}
	return resp.StatusCode
}

func newTestApp(t *testing.T) (*fiber.App, *captureMailer) {
	t.Helper()
	cfg := &config.Config{
		App: config.AppConfig{
			ClientURL:          "http://client.test",
			CorsAllowedOrigins: "http://client.test",
			JwtSecret:          "e2e-secret",
		},
		Keys:   config.APIKeys{IndexTopicName: "index-document"},
		Worker: config.WorkerConfig{OutboxReconcileInterval: time.Hour, OutboxMaxAttempts: 3},
	}

	bus := events.NewChannelBus(nil)
	mail := &captureMailer{signURLs: map[string]string{}}
	infra := &bootstrap.Infrastructure{
		RepositoryFactory:  memory.NewRepositoryFactory(memory.NewStore()),
		LLM:                stubLLM{},
		Embedding:          embedding.NewDisabledProvider(),
		Mailer:             mail,
		Speech:             speech.NewUnavailable(),
		Events:             bus,
		Subscriber:         bus,
		NotificationLogger: logger.NewNop(),
	}

	container := bootstrap.NewContainer(cfg, infra, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, container.Start(ctx))

	return New(cfg, container, logger.NewNop()).GetApp(), mail
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)
	c := &client{t: t, app: app}
	assert.Equal(t, fiber.StatusOK, c.do("GET", "/health", nil, nil))
}

func TestIncorporationFlow(t *testing.T) {
	app, mail := newTestApp(t)
	c := &client{t: t, app: app}

	assert.Equal(t, fiber.StatusUnauthorized, c.do("GET", "/api/founders", nil, nil))

	var auth dto.AuthResponse
	require.Equal(t, fiber.StatusCreated, c.do("POST", "/api/auth/register", dto.RegisterRequest{
		Email: "owner@acme.test", Password: "long-enough", FullName: "Olivia Owner",
	}, &auth))
	require.NotEmpty(t, auth.AccessToken)
	c.token = auth.AccessToken

	assert.Equal(t, fiber.StatusNotFound, c.do("GET", "/api/company", nil, nil))
	assert.Equal(t, fiber.StatusBadRequest, c.do("POST", "/api/company", map[string]string{"name": "Acme", "jurisdiction": "nevada"}, nil))

	var company dto.CompanyResponse
	require.Equal(t, fiber.StatusCreated, c.do("POST", "/api/company", dto.CreateCompanyRequest{Name: "Acme", Jurisdiction: "delaware"}, &company))
	assert.Equal(t, "Acme", company.Name)

	var founder dto.FounderResponse
	require.Equal(t, fiber.StatusCreated, c.do("POST", "/api/founders", dto.InviteFounderRequest{
		Email: "alice@acme.test", FirstName: "Alice", Role: "CEO", EquityPercentage: 60,
	}, &founder))
	assert.Equal(t, "invited", founder.Status)

	var doc dto.DocumentResponse
	require.Equal(t, fiber.StatusCreated, c.do("POST", "/api/documents", dto.CreateDocumentRequest{
		Type: "founders_agreement", Title: "Founders Agreement", Content: "Terms.",
	}, &doc))
	assert.Equal(t, "drafting", doc.Status)

	var sent dto.SendForSignatureResponse
	require.Equal(t, fiber.StatusOK, c.do("POST", "/api/documents/"+doc.Id.String()+"/send-for-signature", dto.SendForSignatureRequest{
		Signers: []dto.SignerRequest{{Email: "Alice@Acme.test", Name: "Alice"}},
	}, &sent))
	assert.Equal(t, "signing", sent.Document.Status)
	require.Len(t, sent.Signatures, 1)

	token := mail.token("alice@acme.test")
	require.NotEmpty(t, token)

	// the signer has no account
	signer := &client{t: t, app: app}
	var public dto.PublicSignatureResponse
	require.Equal(t, fiber.StatusOK, signer.do("GET", "/api/signatures/"+token, nil, &public))
	assert.Equal(t, "Founders Agreement", public.Document.Title)
	assert.Equal(t, "sent", public.Status)

	var signed dto.SignResponse
	require.Equal(t, fiber.StatusOK, signer.do("POST", "/api/signatures/"+token+"/sign", nil, &signed))
	assert.Equal(t, "active", signed.DocumentStatus)
	assert.Equal(t, "signed", signed.Signature.Status)
	assert.Equal(t, fiber.StatusBadRequest, signer.do("POST", "/api/signatures/"+token+"/sign", nil, nil))
	assert.Equal(t, fiber.StatusNotFound, signer.do("GET", "/api/signatures/unknown-token", nil, nil))

	require.Equal(t, fiber.StatusOK, c.do("GET", "/api/founders/"+founder.Id.String(), nil, &founder))
	assert.Equal(t, "active", founder.Status)

	// sending an active document again is rejected
	assert.Equal(t, fiber.StatusBadRequest, c.do("POST", "/api/documents/"+doc.Id.String()+"/send-for-signature", dto.SendForSignatureRequest{
		Signers: []dto.SignerRequest{{Email: "alice@acme.test", Name: "Alice"}},
	}, nil))

	var unread dto.UnreadCountResponse
	require.Equal(t, fiber.StatusOK, c.do("GET", "/api/notifications/unread-count", nil, &unread))
	assert.EqualValues(t, 4, unread.Count)

	var exchange dto.ChatExchangeResponse
	require.Equal(t, fiber.StatusOK, c.do("POST", "/api/chat/messages", dto.SendChatMessageRequest{Content: "Where are we incorporated?"}, &exchange))
	assert.Equal(t, "Delaware it is.", exchange.AssistantMessage.Content)

	assert.Equal(t, fiber.StatusServiceUnavailable, c.do("POST", "/api/voice/tts", dto.TextToSpeechRequest{Text: "hello"}, nil))
}
