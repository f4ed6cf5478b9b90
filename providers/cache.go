package providers

import "sync"

// Factory constructs a client for one Config. The cache calls it at most
// once per distinct tuple.
type Factory func(Config) (Client, error)

// Cache memoizes client construction keyed on the full Config tuple, so
// repeated page renders with unchanged settings reuse the same client
// instead of rebuilding it.
type Cache struct {
	mu      sync.Mutex
	factory Factory
	clients map[Config]Client
}

// NewCache builds an empty cache around factory.
func NewCache(factory Factory) *Cache {
	return &Cache{
		factory: factory,
		clients: make(map[Config]Client),
	}
}

// Get returns the client for config, constructing it on first use. A
// factory error is returned without caching so a later call may retry.
func (c *Cache) Get(config Config) (Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if client, ok := c.clients[config]; ok {
		return client, nil
	}
	client, err := c.factory(config)
	if err != nil {
		return nil, err
	}
	c.clients[config] = client
	return client, nil
}

// Len reports how many distinct configurations have been constructed.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.clients)
}
