package http

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdomain "github.com/jamie33k/EmergencySystemFinal-draft/internal/auth/domain"
	"github.com/jamie33k/EmergencySystemFinal-draft/internal/events"
)

func TestStreamDeliversPublishedEvents(t *testing.T) {
	api := newTestAPI(t)
	_, tok := api.signupAndSignin(t, "Watcher", "watch@x.com", "abc", authdomain.RoleAdmin)

	srv := httptest.NewServer(api.router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// EventSource clients cannot set headers; the token rides the query
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/emergency/stream?token="+tok, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)

	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: connected", strings.TrimSpace(line))

	// drain the rest of the handshake frame
	_, _ = reader.ReadString('\n')
	_, _ = reader.ReadString('\n')

	// wait for the subscription to land before publishing
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, api.bus.Publish(context.Background(), events.Event{
		Type:      events.TypeRequestCreated,
		RequestID: "r1",
		Status:    "Pending",
		City:      "Nairobi",
		At:        time.Now().UTC(),
	}))

	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: request.created", strings.TrimSpace(line))

	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, line, `"request_id":"r1"`)
}

func TestStreamRequiresAuth(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/emergency/stream", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
