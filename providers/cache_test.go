package providers_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csv610/dialectica/providers"
)

type stubClient struct {
	config providers.Config
}

func (s *stubClient) Respond(ctx context.Context, prompt string) (*providers.Response, error) {
	return &providers.Response{Content: "ok", Model: s.config.Model}, nil
}

func TestCacheMemoizesConstruction(t *testing.T) {
	t.Parallel()

	var built int
	cache := providers.NewCache(func(config providers.Config) (providers.Client, error) {
		built++
		return &stubClient{config: config}, nil
	})

	warm := providers.Config{Model: "llama3.2", Temperature: 0.8, MaxTokens: 4000}

	first, err := cache.Get(warm)
	require.NoError(t, err)
	second, err := cache.Get(warm)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, built)

	_, err = cache.Get(providers.Config{Model: "llama3.2", Temperature: 0.5, MaxTokens: 4000})
	require.NoError(t, err)
	assert.Equal(t, 2, built)
	assert.Equal(t, 2, cache.Len())
}

func TestCacheFactoryErrorNotCached(t *testing.T) {
	t.Parallel()

	fail := true
	cache := providers.NewCache(func(config providers.Config) (providers.Client, error) {
		if fail {
			return nil, errors.New("backend unavailable")
		}
		return &stubClient{config: config}, nil
	})

	cfg := providers.Config{Model: "llama3.1"}
	_, err := cache.Get(cfg)
	require.Error(t, err)
	assert.Equal(t, 0, cache.Len())

	fail = false
	client, err := cache.Get(cfg)
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestCacheConcurrentGet(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	built := 0
	cache := providers.NewCache(func(config providers.Config) (providers.Client, error) {
		mu.Lock()
		built++
		mu.Unlock()
		return &stubClient{config: config}, nil
	})

	cfg := providers.Config{Model: "llama3.2", Temperature: 0.8, MaxTokens: 4000}
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.Get(cfg)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, built)
}

func TestCountTokens(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, providers.CountTokens(""))
	assert.Greater(t, providers.CountTokens("What is the unexamined life worth?"), 0)
}
