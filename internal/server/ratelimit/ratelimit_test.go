package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Whitelist:     make(map[string]bool),
		Blacklist:     make(map[string]bool),
		EndpointConfigs: []EndpointConfig{
			{Path: "/api/import", Method: "POST", Limit: 2, Window: time.Hour, Burst: 2},
		},
	}
}

func TestAllow_BurstThenLimited(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 2; i++ {
		allowed, info := l.Allow("1.2.3.4", "/api/import", "POST")
		assert.True(t, allowed, "request %d within burst should pass", i)
		assert.Equal(t, 2, info.Limit)
	}

	allowed, info := l.Allow("1.2.3.4", "/api/import", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestAllow_ClientsAreIndependent(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	l.Allow("1.1.1.1", "/api/import", "POST")
	l.Allow("1.1.1.1", "/api/import", "POST")

	allowed, _ := l.Allow("2.2.2.2", "/api/import", "POST")
	assert.True(t, allowed, "a different client must have its own bucket")
}

func TestAllow_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/api/import", "POST")
		require.True(t, allowed)
	}
}

func TestAllow_WhitelistAndBlacklist(t *testing.T) {
	cfg := testConfig()
	cfg.Whitelist["9.9.9.9"] = true
	cfg.Blacklist["6.6.6.6"] = true
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("9.9.9.9", "/api/import", "POST")
		require.True(t, allowed)
	}

	allowed, _ := l.Allow("6.6.6.6", "/api/health", "GET")
	assert.False(t, allowed)
}

func TestAllow_DefaultLimitForUnmatchedPath(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	allowed, info := l.Allow("1.2.3.4", "/api/stats", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 100, info.Limit)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/api/import", Method: "POST", Limit: 30},
		{Path: "/api/companies/", Method: "GET", Limit: 50},
	}

	tests := []struct {
		name      string
		path      string
		method    string
		wantLimit int
		wantNil   bool
	}{
		{"exact match", "/api/import", "POST", 30, false},
		{"prefix match", "/api/companies/acme.com", "GET", 50, false},
		{"method mismatch", "/api/import", "GET", 0, true},
		{"health unlimited", "/api/health", "GET", 0, false},
		{"no match", "/api/stats", "GET", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}
