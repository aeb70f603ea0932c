package httpx

import (
	"errors"
	"net/http"
)

// NotFound handles 404s. Browser requests get the error page; API requests
// get a JSON error.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if !IsBrowserRequest(r) {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "not_found",
			Err:     errors.New("resource not found"),
		})
		return
	}

	session := CurrentSession(r.Context())
	data := map[string]any{
		"Title":           "Page Not Found - Learnix",
		"Code":            "404",
		"Message":         "The page you're looking for doesn't exist.",
		"IsAuthenticated": !session.IsAnonymous(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := h.T.RenderError(w, r, data); err != nil {
		http.Error(w, "Not Found", http.StatusNotFound)
	}
}
