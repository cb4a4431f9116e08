package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient(t *testing.T) {
	t.Parallel()

	c := NewHTTPClient(7 * time.Second)
	assert.Equal(t, 7*time.Second, c.Timeout)

	tr, ok := c.Transport.(*http.Transport)
	require.True(t, ok, "expected *http.Transport")
	assert.Equal(t, maxIdleConns, tr.MaxIdleConns)
	assert.Equal(t, maxIdleConnsPerHost, tr.MaxIdleConnsPerHost)
	assert.Equal(t, tlsHandshakeTimeout, tr.TLSHandshakeTimeout)
	assert.True(t, tr.ForceAttemptHTTP2)
	assert.NotNil(t, tr.Proxy)
}

func TestNewHTTPClient_NoOverallTimeout(t *testing.T) {
	t.Parallel()

	c := NewHTTPClient(0)
	assert.Zero(t, c.Timeout)
	assert.NotSame(t, NewHTTPClient(0).Transport, c.Transport, "each client owns its transport")
}
