package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

var (
	valkeyInstance *ValkeyClient
	valkeyOnce     sync.Once
)

// ValkeyClient caches the latest artifact reference per identity so status
// consumers can find a prior result without touching the store.
type ValkeyClient struct {
	Client valkey.Client
}

const (
	valkeyArtifactPrefix = "persona:latest_artifact:"
	valkeyArtifactTTL    = 86400 // seconds
)

func InitValkey() *ValkeyClient {
	valkeyOnce.Do(func() {
		valkeyAddr := os.Getenv("VALKEY_INIT_ADDRESS")
		valkeyPassword := os.Getenv("VALKEY_PASSWORD")
		useTLS := os.Getenv("VALKEY_TLS") == "true"

		opts := valkey.ClientOption{
			InitAddress:      []string{valkeyAddr},
			Password:         valkeyPassword,
			ConnWriteTimeout: 5 * time.Second,
			SelectDB:         0,
		}

		if useTLS {
			opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
		}

		client, err := valkey.NewClient(opts)
		if err != nil {
			panic(fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err))
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
		defer cancel()

		if c := client.Do(ctx, client.B().Ping().Build()); c.Error() != nil {
			panic(fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", c.Error()))
		}

		slog.Info("[ValkeyClient] Successfully connected to valkey")
		valkeyInstance = &ValkeyClient{Client: client}
	})
	return valkeyInstance
}

func CloseValkey() {
	if valkeyInstance != nil {
		valkeyInstance.Client.Close()
	}
}

// GetValkeyClient returns the cache client, or nil when Valkey was never
// initialized; the cache is an optional collaborator.
func GetValkeyClient() *ValkeyClient {
	return valkeyInstance
}

// RecordArtifact remembers the identity's newest artifact reference for a
// day.
func (vc *ValkeyClient) RecordArtifact(ctx context.Context, username, artifactRef string) error {
	cmd := vc.Client.B().Set().
		Key(valkeyArtifactPrefix + username).
		Value(artifactRef).
		ExSeconds(valkeyArtifactTTL).
		Build()

	if err := vc.doWithRetry(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("[ValkeyClient] failed to record artifact: %w", err)
	}

	slog.Info("[ValkeyClient] Artifact recorded",
		slog.String("username", username),
		slog.String("artifact", artifactRef))
	return nil
}

// LatestArtifact looks up the identity's most recent artifact reference.
func (vc *ValkeyClient) LatestArtifact(ctx context.Context, username string) (string, bool) {
	res := vc.doWithRetry(ctx, vc.Client.B().Get().Key(valkeyArtifactPrefix+username).Build())
	if res.Error() != nil {
		return "", false
	}

	ref, err := res.ToString()
	if err != nil || ref == "" {
		return "", false
	}
	return ref, true
}

func (vc *ValkeyClient) doWithRetry(ctx context.Context, completed valkey.Completed) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < 3; i++ {
		result = vc.Client.Do(ctx, completed)
		if result.Error() == nil {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", result.Error().Error()))

		time.Sleep(250 * time.Millisecond)
	}

	return result
}
