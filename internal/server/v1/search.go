package handlersv1

import (
	"net/http"

	"github.com/goto/metasearch/core/search"
)

// Search answers GET and form POST requests of the metasearch aggregator.
func (server *APIServer) Search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSONError(w, http.StatusBadRequest, ClassBadRequest, bodyParserErrorMsg(err))
		return
	}

	raw := search.RawParams{
		Key:       r.Form.Get("key"),
		Trees:     r.Form.Get("trees"),
		Tree:      r.Form.Get("tree"),
		LastName:  r.Form.Get("lastname"),
		PlaceName: r.Form.Get("placename"),
		PlaceID:   r.Form.Get("placeid"),
		Since:     r.Form.Get("since"),
	}

	resp, err := server.searchService.Search(r.Context(), raw)
	if err != nil {
		server.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func bodyParserErrorMsg(err error) string {
	return "error parsing request: " + err.Error()
}
