package teams_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partflow/internal/domain"
	"partflow/internal/notify/teams"
)

func captureWebhook(t *testing.T, status int) (*httptest.Server, *[]map[string]any) {
	t.Helper()
	var payloads []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var payload map[string]any
		require.NoError(t, json.Unmarshal(body, &payload))
		payloads = append(payloads, payload)

		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, &payloads
}

func TestFileDiscovered_CardShape(t *testing.T) {
	srv, payloads := captureWebhook(t, http.StatusOK)
	n := teams.NewTeamsNotifier(srv.URL, "https://dashboard.example.com")

	f := &domain.ImageFile{
		ID:                uuid.New(),
		Filename:          "J1234567_detail.psd",
		PartNumber:        "J1234567",
		MappingMethod:     domain.MappingDirectMatch,
		MappingConfidence: 0.95,
	}
	require.NoError(t, n.FileDiscovered(context.Background(), f))

	require.Len(t, *payloads, 1)
	card := (*payloads)[0]
	assert.Equal(t, "MessageCard", card["@type"])
	assert.Equal(t, "http://schema.org/extensions", card["@context"])
	assert.Equal(t, "0078D4", card["themeColor"])

	sections := card["sections"].([]any)
	require.Len(t, sections, 1)
	facts := sections[0].(map[string]any)["facts"].([]any)
	first := facts[0].(map[string]any)
	assert.Equal(t, "Part Number", first["name"])
	assert.Equal(t, "J1234567", first["value"])

	actions := card["potentialAction"].([]any)
	require.Len(t, actions, 1)
	targets := actions[0].(map[string]any)["targets"].([]any)
	uri := targets[0].(map[string]any)["uri"].(string)
	assert.Equal(t, "https://dashboard.example.com/files/"+f.ID.String(), uri)
}

func TestProcessingFailed_ErrorColor(t *testing.T) {
	srv, payloads := captureWebhook(t, http.StatusOK)
	n := teams.NewTeamsNotifier(srv.URL, "")

	f := &domain.ImageFile{ID: uuid.New(), Filename: "bad.psd"}
	require.NoError(t, n.ProcessingFailed(context.Background(), f, "background_removal", "model timed out"))

	require.Len(t, *payloads, 1)
	card := (*payloads)[0]
	assert.Equal(t, "DC3545", card["themeColor"])
	assert.Nil(t, card["potentialAction"], "no dashboard URL means no open action")
}

func TestPost_WebhookErrorSurfaces(t *testing.T) {
	srv, _ := captureWebhook(t, http.StatusBadGateway)
	n := teams.NewTeamsNotifier(srv.URL, "")

	err := n.ReviewReady(context.Background(), &domain.ImageFile{ID: uuid.New()})
	assert.Error(t, err)
}

func TestUnmappedFileShowsDash(t *testing.T) {
	srv, payloads := captureWebhook(t, http.StatusOK)
	n := teams.NewTeamsNotifier(srv.URL, "")

	f := &domain.ImageFile{ID: uuid.New(), Filename: "mystery.jpg", RequiresReview: true}
	require.NoError(t, n.FileDiscovered(context.Background(), f))

	card := (*payloads)[0]
	facts := card["sections"].([]any)[0].(map[string]any)["facts"].([]any)
	assert.Equal(t, "-", facts[0].(map[string]any)["value"])
	assert.Equal(t, "Yes", facts[3].(map[string]any)["value"])
}
