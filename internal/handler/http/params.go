package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/exellar/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// maxJSONBody caps request bodies for JSON endpoints.
const maxJSONBody = 1 << 20

// decodeJSON decodes the request body into dst, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			response.BadRequest(w, "Request body is required", nil)
			return false
		}
		slog.Debug("failed to decode request body", "path", r.URL.Path, "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// idParam parses the int64 {key} URL param, writing a 400 on failure.
func idParam(w http.ResponseWriter, r *http.Request, key string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid "+key, nil)
		return 0, false
	}
	return id, true
}

// getStringQueryParam returns nil for a missing or blank parameter.
func getStringQueryParam(r *http.Request, key string) *string {
	val := strings.TrimSpace(r.URL.Query().Get(key))
	if val == "" {
		return nil
	}
	return &val
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

// getBoolQueryParam returns nil unless the parameter is a recognisable bool.
func getBoolQueryParam(r *http.Request, key string) *bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return nil
	}
	return &b
}

// ordering splits "-name" style ordering into a column and direction.
func ordering(r *http.Request) (sortBy, sortOrder string) {
	o := strings.TrimSpace(r.URL.Query().Get("ordering"))
	if o == "" {
		return r.URL.Query().Get("sort_by"), r.URL.Query().Get("sort_order")
	}
	if strings.HasPrefix(o, "-") {
		return o[1:], "desc"
	}
	return o, "asc"
}
