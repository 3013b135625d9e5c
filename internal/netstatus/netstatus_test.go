package netstatus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"))
}

func TestCheck(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer healthy.Close()

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer failing.Close()

	closed := httptest.NewServer(http.NotFoundHandler())
	closedURL := closed.URL
	closed.Close()

	tests := []struct {
		name string
		url  string
		want Status
	}{
		{name: "no url", url: "", want: Unknown},
		{name: "healthy", url: healthy.URL, want: Online},
		{name: "server error", url: failing.URL, want: Offline},
		{name: "connection refused", url: closedURL, want: Offline},
		{name: "bad url", url: "://nope", want: Offline},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.url, nil)
			c.Client = &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
			assert.Equal(t, tt.want, c.Check(context.Background()))
		})
	}
}

func TestCheckTimeout(t *testing.T) {
	release := make(chan struct{})
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer slow.Close()
	defer close(release)

	c := New(slow.URL, nil)
	c.Client = &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	c.Timeout = 50 * time.Millisecond
	assert.Equal(t, Offline, c.Check(context.Background()))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "online", Online.String())
	assert.Equal(t, "offline", Offline.String())
	assert.Equal(t, "unknown", Unknown.String())
}
