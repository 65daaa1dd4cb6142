// Package ratelimit provides per-client request rate limiting for the API.
package ratelimit

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// client is one tracked client+endpoint bucket.
type client struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// Limiter manages token buckets for client+endpoint combinations.
type Limiter struct {
	mu      sync.Mutex
	clients map[string]*client
	config  *Config

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
}

// NewLimiter creates a rate limiter with the given configuration.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
			Whitelist:       make(map[string]bool),
			Blacklist:       make(map[string]bool),
		}
	}

	l := &Limiter{
		clients: make(map[string]*client),
		config:  config,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(config.CleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanupLoop()
	}

	return l
}

// Allow checks whether a request from the given client is allowed for the
// endpoint. Returns the decision plus header-ready limit information.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	endpoint := MatchEndpoint(path, method, l.config.EndpointConfigs)
	if endpoint == nil {
		endpoint = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}
	// Unlimited endpoint (e.g., health check)
	if endpoint.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	key := clientID + ":" + endpoint.Path + ":" + method
	bucket := l.getClient(key, endpoint)

	allowed := bucket.limiter.Allow()
	tokens := bucket.limiter.Tokens()
	if tokens < 0 {
		tokens = 0
	}

	refillPerSecond := float64(endpoint.Limit) / endpoint.Window.Seconds()
	missing := float64(endpoint.burstOrLimit()) - tokens
	resetTime := time.Now().Add(time.Duration(missing / refillPerSecond * float64(time.Second)))

	info := Info{
		Allowed:   allowed,
		Limit:     endpoint.Limit,
		Remaining: int(math.Floor(tokens)),
		ResetTime: resetTime,
	}
	if !allowed {
		// Time until one token is available
		wait := time.Duration((1 - tokens) / refillPerSecond * float64(time.Second))
		if wait < 0 {
			wait = 0
		}
		info.RetryAfter = wait
	}
	return allowed, info
}

func (l *Limiter) getClient(key string, endpoint *EndpointConfig) *client {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[key]
	if !ok {
		refill := rate.Limit(float64(endpoint.Limit) / endpoint.Window.Seconds())
		c = &client{limiter: rate.NewLimiter(refill, endpoint.burstOrLimit())}
		l.clients[key] = c
	}
	c.lastAccess = time.Now()
	return c
}

func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.removeStale()
		case <-l.cleanupStop:
			return
		}
	}
}

// removeStale drops buckets idle for over an hour.
func (l *Limiter) removeStale() {
	cutoff := time.Now().Add(-1 * time.Hour)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, c := range l.clients {
		if c.lastAccess.Before(cutoff) {
			delete(l.clients, key)
		}
	}
}

// Stop stops the cleanup goroutine.
func (l *Limiter) Stop() {
	if l.cleanupTicker != nil {
		l.cleanupTicker.Stop()
	}
	if l.cleanupStop != nil {
		close(l.cleanupStop)
	}
}
