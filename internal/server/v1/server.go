package handlersv1

//go:generate mockery --name=SearchService -r --case underscore --with-expecter --structname SearchService --filename search_service.go --output=./mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/goto/metasearch/core/search"
	"github.com/goto/salt/log"
)

// Error classes reported to callers.
const (
	ClassInvalidKey    = search.ClassInvalidKey
	ClassBadDate       = search.ClassBadDate
	ClassInvalidTree   = search.ClassInvalidTree
	ClassTreeNotFound  = search.ClassTreeNotFound
	ClassBadRequest    = search.ClassBadRequest
	ClassInternalError = search.ClassInternal
)

type SearchService interface {
	Search(ctx context.Context, raw search.RawParams) (search.Response, error)
}

type APIServer struct {
	searchService SearchService
	logger        log.Logger
}

func NewAPIServer(logger log.Logger, searchService SearchService) *APIServer {
	return &APIServer{
		searchService: searchService,
		logger:        logger,
	}
}

// ErrorResponse is the payload of every failed request.
type ErrorResponse struct {
	Class   string `json:"class"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, class, msg string) {
	writeJSON(w, status, ErrorResponse{Class: class, Message: msg})
}

// writeError maps domain errors to their status code and class.
func (server *APIServer) writeError(w http.ResponseWriter, err error) {
	switch class := search.ErrorClass(err); class {
	case ClassInvalidKey:
		writeJSONError(w, http.StatusUnauthorized, class, err.Error())
	case ClassBadDate, ClassInvalidTree, ClassBadRequest:
		writeJSONError(w, http.StatusBadRequest, class, err.Error())
	case ClassTreeNotFound:
		writeJSONError(w, http.StatusNotFound, class, err.Error())
	default:
		writeJSONError(w, http.StatusInternalServerError, ClassInternalError, server.internalServerError(err))
	}
}

func (server *APIServer) internalServerError(err error) string {
	ref := uuid.NewString()

	server.logger.Error("internal server error", "err", err, "ref", ref)
	return fmt.Sprintf(
		"%s - ref (%s)",
		http.StatusText(http.StatusInternalServerError),
		ref,
	)
}

// Ping reports that the server is up.
func (server *APIServer) Ping(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "SERVING"})
}
