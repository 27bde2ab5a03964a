package errutil

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/classroom-tools/attendctl/pkg/utils/safe"
)

// WriteJSON encodes v as the response body with the given status code
func WriteJSON(ctx context.Context, w http.ResponseWriter, statusCode int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	safe.Write(ctx, w, data)
}
