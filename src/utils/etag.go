package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// GenerateETag hashes the JSON encoding of v.
func GenerateETag(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal value for ETag: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// CheckETag sets the ETag header for v and reports whether the client already
// holds it, in which case 304 has been written.
func CheckETag(w http.ResponseWriter, r *http.Request, v any) bool {
	etag, err := GenerateETag(v)
	if err != nil || etag == "" {
		return false
	}
	quoted := `"` + etag + `"`
	w.Header().Set("ETag", quoted)
	w.Header().Set("Cache-Control", "no-cache, private")
	for _, candidate := range strings.Split(r.Header.Get("If-None-Match"), ",") {
		if strings.TrimSpace(candidate) == quoted {
			w.WriteHeader(http.StatusNotModified)
			return true
		}
	}
	return false
}
