package elasticsearch_test

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientInit(t *testing.T) {
	cli, _ := newFakeClient(t, func(w http.ResponseWriter, r *http.Request, body string) {})

	info, err := cli.Init()
	require.NoError(t, err)
	assert.Equal(t, `"test" (server version 7.16.0)`, info)
}

func TestClientMigrate(t *testing.T) {
	ctx := context.Background()

	t.Run("should create the index when it does not exist", func(t *testing.T) {
		cli, node := newFakeClient(t, func(w http.ResponseWriter, r *http.Request, body string) {
			if r.Method == http.MethodHead {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = io.WriteString(w, `{"acknowledged":true}`)
		})

		require.NoError(t, cli.Migrate(ctx))

		requests := node.Requests()
		require.Len(t, requests, 2)
		assert.Equal(t, http.MethodPut, requests[1].Method)
		assert.Equal(t, "/"+testIndex, requests[1].Path)
		assert.Contains(t, requests[1].Body, "surname_folded")
	})

	t.Run("should update the mapping of an existing index", func(t *testing.T) {
		cli, node := newFakeClient(t, func(w http.ResponseWriter, r *http.Request, body string) {
			_, _ = io.WriteString(w, `{"acknowledged":true}`)
		})

		require.NoError(t, cli.Migrate(ctx))

		requests := node.Requests()
		require.Len(t, requests, 2)
		assert.Equal(t, "/"+testIndex+"/_mapping", requests[1].Path)
	})

	t.Run("should return the reason of a failed creation", func(t *testing.T) {
		cli, _ := newFakeClient(t, func(w http.ResponseWriter, r *http.Request, body string) {
			if r.Method == http.MethodHead {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":{"reason":"invalid mapping"}}`)
		})

		err := cli.Migrate(ctx)
		assert.ErrorContains(t, err, "invalid mapping")
	})
}
