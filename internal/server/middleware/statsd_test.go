package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/goto/metasearch/pkg/statsd"
	"github.com/goto/salt/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsD(t *testing.T) {
	newRouter := func(reporter *statsd.Reporter, called *bool) *mux.Router {
		router := mux.NewRouter()
		router.Use(StatsD(reporter))
		router.HandleFunc("/MetaSearch", func(w http.ResponseWriter, r *http.Request) {
			*called = true
			w.WriteHeader(http.StatusTeapot)
		})
		return router
	}

	t.Run("handlers should still be called if reporter is nil", func(t *testing.T) {
		var called bool
		rw := httptest.NewRecorder()
		newRouter(nil, &called).ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/MetaSearch", nil))

		assert.True(t, called)
		assert.Equal(t, http.StatusTeapot, rw.Code)
	})

	t.Run("handlers should still be called if reporter is disabled", func(t *testing.T) {
		reporter, err := statsd.Init(log.NewNoop(), statsd.Config{Enabled: false})
		require.NoError(t, err)

		var called bool
		rw := httptest.NewRecorder()
		newRouter(reporter, &called).ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/MetaSearch", nil))

		assert.True(t, called)
		assert.Equal(t, http.StatusTeapot, rw.Code)
	})

	t.Run("response time is reported with route template", func(t *testing.T) {
		conn, err := net.ListenPacket("udp", "127.0.0.1:0")
		require.NoError(t, err)
		defer conn.Close()

		reporter, err := statsd.Init(log.NewNoop(), statsd.Config{
			Enabled:      true,
			Address:      conn.LocalAddr().String(),
			Prefix:       "metasearch",
			Separator:    ".",
			SamplingRate: 1,
		})
		require.NoError(t, err)
		defer reporter.Close()

		var called bool
		rw := httptest.NewRecorder()
		newRouter(reporter, &called).ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/MetaSearch", nil))
		assert.True(t, called)

		var received strings.Builder
		buf := make([]byte, 4096)
		deadline := time.Now().Add(3 * time.Second)
		for time.Now().Before(deadline) && !strings.Contains(received.String(), "metasearch.responseTime") {
			require.NoError(t, conn.SetReadDeadline(deadline))
			n, _, err := conn.ReadFrom(buf)
			if err != nil {
				break
			}
			received.Write(buf[:n])
		}

		assert.Contains(t, received.String(), "metasearch.responseTime")
		assert.Contains(t, received.String(), "route:/MetaSearch")
	})
}
