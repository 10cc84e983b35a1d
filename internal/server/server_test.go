package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/serenity-health/serenity/internal/gateway"
	"github.com/serenity-health/serenity/internal/models"
	"github.com/serenity-health/serenity/internal/session"
	"github.com/serenity-health/serenity/internal/storage"
	"github.com/serenity-health/serenity/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticGateway struct {
	reply string
}

func (g *staticGateway) Generate(ctx context.Context, req gateway.Request) (string, error) {
	return g.reply, nil
}

func newTestServer(gw gateway.Gateway) *Server {
	cfg := &config.Config{}
	cfg.Server.AllowedOrigins = "*"
	store := storage.NewMemoryStorage()
	sessions := session.New(store, gw, zap.NewNop())
	return New(cfg, store, sessions, nil, zap.NewNop())
}

func doJSON(t *testing.T, s *Server, method, path, body string) (int, map[string]json.RawMessage) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("X-User-ID", "u1")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp.StatusCode, parsed
}

func TestRequireUserHeader(t *testing.T) {
	s := newTestServer(&staticGateway{})

	req := httptest.NewRequest("GET", "/api/v1/messages", nil)
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestGetMessagesSeedsUser(t *testing.T) {
	s := newTestServer(&staticGateway{})

	status, body := doJSON(t, s, "GET", "/api/v1/messages", "")
	require.Equal(t, 200, status)

	var messages []*models.Message
	require.NoError(t, json.Unmarshal(body["data"], &messages))
	require.Len(t, messages, 1)
	assert.Equal(t, models.RoleModel, messages[0].Role)

	// Second request returns the same single seeded message.
	status, body = doJSON(t, s, "GET", "/api/v1/messages", "")
	require.Equal(t, 200, status)
	require.NoError(t, json.Unmarshal(body["data"], &messages))
	assert.Len(t, messages, 1)
}

func TestChatEndpoint(t *testing.T) {
	s := newTestServer(&staticGateway{reply: "Tell me more about that."})

	status, body := doJSON(t, s, "POST", "/api/v1/chat", `{"message":"I feel anxious."}`)
	require.Equal(t, 200, status)

	var reply models.Message
	require.NoError(t, json.Unmarshal(body["data"], &reply))
	assert.Equal(t, models.RoleModel, reply.Role)
	assert.Equal(t, "Tell me more about that.", reply.Content)
}

func TestChatEndpointRejectsBlank(t *testing.T) {
	s := newTestServer(&staticGateway{reply: "unused"})

	status, _ := doJSON(t, s, "POST", "/api/v1/chat", `{"message":"   "}`)
	assert.Equal(t, 400, status)
}

func TestEndSessionWithoutConversation(t *testing.T) {
	s := newTestServer(&staticGateway{})

	// Only the seeded welcome message exists, so no note is produced.
	status, body := doJSON(t, s, "POST", "/api/v1/session/end", "")
	require.Equal(t, 200, status)
	assert.Equal(t, "null", string(body["data"]))
}

func TestProfileRoundTrip(t *testing.T) {
	s := newTestServer(&staticGateway{})

	status, body := doJSON(t, s, "GET", "/api/v1/profile", "")
	require.Equal(t, 200, status)

	var profile models.ClinicalProfile
	require.NoError(t, json.Unmarshal(body["data"], &profile))
	assert.Equal(t, "Alex Thompson", profile.Name)

	profile.Medications = append(profile.Medications, "Melatonin 3mg")
	updated, err := json.Marshal(profile)
	require.NoError(t, err)

	status, _ = doJSON(t, s, "PUT", "/api/v1/profile", string(updated))
	require.Equal(t, 200, status)

	status, body = doJSON(t, s, "GET", "/api/v1/profile", "")
	require.Equal(t, 200, status)
	require.NoError(t, json.Unmarshal(body["data"], &profile))
	assert.Contains(t, profile.Medications, "Melatonin 3mg")
}

func TestAppointmentsEndpoint(t *testing.T) {
	s := newTestServer(&staticGateway{})

	status, body := doJSON(t, s, "GET", "/api/v1/appointments", "")
	require.Equal(t, 200, status)

	var appointments []*models.Appointment
	require.NoError(t, json.Unmarshal(body["data"], &appointments))
	assert.Len(t, appointments, 3)
}

func TestBriefingEndpoint(t *testing.T) {
	s := newTestServer(&staticGateway{reply: "Two sessions scheduled. Alex is trending well."})

	status, body := doJSON(t, s, "GET", "/api/v1/briefing", "")
	require.Equal(t, 200, status)

	var text string
	require.NoError(t, json.Unmarshal(body["data"], &text))
	assert.Equal(t, "Two sessions scheduled. Alex is trending well.", text)
}
