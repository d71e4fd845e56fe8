package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goto/metasearch/core/search"
	"github.com/goto/metasearch/internal/server/v1/mocks"
	"github.com/goto/salt/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNewRouter(t *testing.T) {
	cases := []struct {
		Description  string
		Config       Config
		Method       string
		Target       string
		ExpectStatus int
		Setup        func(*mocks.SearchService)
	}{
		{
			Description:  "ping",
			Method:       http.MethodGet,
			Target:       "/ping",
			ExpectStatus: http.StatusOK,
		},
		{
			Description:  "default route",
			Method:       http.MethodGet,
			Target:       "/MetaSearch?lastname=Kennedy",
			ExpectStatus: http.StatusOK,
			Setup: func(ss *mocks.SearchService) {
				ss.EXPECT().Search(mock.Anything, search.RawParams{LastName: "Kennedy"}).
					Return(search.Response{Hits: search.Hits{}}, nil)
			},
		},
		{
			Description:  "configured route",
			Config:       Config{Route: "/plugin/metasearch"},
			Method:       http.MethodPost,
			Target:       "/plugin/metasearch?lastname=Kennedy",
			ExpectStatus: http.StatusOK,
			Setup: func(ss *mocks.SearchService) {
				ss.EXPECT().Search(mock.Anything, search.RawParams{LastName: "Kennedy"}).
					Return(search.Response{Hits: search.Hits{}}, nil)
			},
		},
		{
			Description:  "versioned alias",
			Method:       http.MethodGet,
			Target:       "/v1/search",
			ExpectStatus: http.StatusOK,
			Setup: func(ss *mocks.SearchService) {
				ss.EXPECT().Search(mock.Anything, search.RawParams{}).
					Return(search.Response{Empty: true, Hits: search.Hits{}}, nil)
			},
		},
		{
			Description:  "unsupported method",
			Method:       http.MethodDelete,
			Target:       "/MetaSearch",
			ExpectStatus: http.StatusMethodNotAllowed,
		},
		{
			Description:  "unknown path",
			Method:       http.MethodGet,
			Target:       "/unknown",
			ExpectStatus: http.StatusNotFound,
		},
		{
			Description:  "request timeout",
			Config:       Config{RequestTimeout: 50 * time.Millisecond},
			Method:       http.MethodGet,
			Target:       "/MetaSearch",
			ExpectStatus: http.StatusServiceUnavailable,
			Setup: func(ss *mocks.SearchService) {
				ss.EXPECT().Search(mock.Anything, mock.Anything).
					Run(func(ctx context.Context, _ search.RawParams) { <-ctx.Done() }).
					Return(search.Response{}, context.DeadlineExceeded)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.Description, func(t *testing.T) {
			ss := mocks.NewSearchService(t)
			if tc.Setup != nil {
				tc.Setup(ss)
			}

			router := NewRouter(tc.Config, log.NewNoop(), nil, nil, ss)
			rw := httptest.NewRecorder()
			router.ServeHTTP(rw, httptest.NewRequest(tc.Method, tc.Target, nil))

			assert.Equal(t, tc.ExpectStatus, rw.Code)
		})
	}
}
