// Package testnats starts throwaway JetStream-enabled NATS servers for tests.
package testnats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/nats"
	"github.com/testcontainers/testcontainers-go/wait"
)

const image = "nats:2.10-alpine"

// New starts NATS with JetStream and returns its client URL. The test is
// skipped under -short or when no container provider is available.
func New(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping nats test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := nats.Run(ctx,
		image,
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForLog("Server is ready"),
				wait.ForListeningPort("4222/tcp"),
			).WithDeadline(45*time.Second),
		),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	return url
}
