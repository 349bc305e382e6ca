package http

import "net/http"

// NotFoundHandler answers unmatched paths with a JSON 404 that names the
// path and lists the routes the service does serve.
func NotFoundHandler(routes ...string) http.Handler {
	known := append([]string(nil), routes...)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErrorResponse(w, http.StatusNotFound, errorResponse{
			Error:  "no route for " + r.Method + " " + r.URL.Path,
			Code:   codeRouteNotFound,
			Routes: known,
		})
	})
}
