package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/louisbranch/spawning/internal/services/spawn/app"
	"github.com/louisbranch/spawning/internal/services/spawn/content"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func newTestSession(t *testing.T) *app.Service {
	t.Helper()
	svc, err := app.New(context.Background(), content.Default(), nil, app.Options{Seed: 11})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return svc
}

// connectClient serves session over in-memory transports and returns a
// connected client session plus a stop function that waits for the server.
func connectClient(t *testing.T, session *app.Service) (*mcp.ClientSession, func()) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- runWithTransport(ctx, session, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	clientCtx, clientCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer clientCancel()

	clientSession, err := client.Connect(clientCtx, clientTransport, nil)
	if err != nil {
		cancel()
		t.Fatalf("connect client: %v", err)
	}

	stop := func() {
		cancel()
		select {
		case err := <-serveErr:
			if err != nil {
				t.Errorf("serve: %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("server did not stop")
		}
		_ = clientSession.Close()
	}
	return clientSession, stop
}

func decodeStructuredContent[T any](t *testing.T, value any) T {
	t.Helper()
	data, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	var output T
	if err := json.Unmarshal(data, &output); err != nil {
		t.Fatalf("unmarshal structured content: %v", err)
	}
	return output
}
