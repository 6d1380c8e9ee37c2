package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"shareit/internal/models"
)

func callerID(r *http.Request) (int64, error) {
	raw := r.Header.Get(models.HeaderUserID)
	if raw == "" {
		return 0, fmt.Errorf("%s header is required", models.HeaderUserID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s header must be a positive integer", models.HeaderUserID)
	}
	return id, nil
}

// pathID extracts the numeric id segment after the prefix. The remaining
// path after the id, if any, is returned as rest.
func pathID(path, prefix string) (int64, string, error) {
	tail := strings.TrimPrefix(path, prefix)
	rest := ""
	if i := strings.IndexByte(tail, '/'); i >= 0 {
		rest = tail[i+1:]
		tail = tail[:i]
	}
	id, err := strconv.ParseInt(tail, 10, 64)
	if err != nil || id <= 0 {
		return 0, "", fmt.Errorf("invalid id in path")
	}
	return id, rest, nil
}

// pageParams reads the from/size query pair. Absent values fall back to the
// full first page.
func pageParams(r *http.Request) (from, size int, err error) {
	q := r.URL.Query()
	from = 0
	size = models.DefaultPageSize

	if raw := q.Get("from"); raw != "" {
		if from, err = strconv.Atoi(raw); err != nil || from < 0 {
			return 0, 0, fmt.Errorf("from must be a non-negative integer")
		}
	}
	if raw := q.Get("size"); raw != "" {
		if size, err = strconv.Atoi(raw); err != nil || size <= 0 {
			return 0, 0, fmt.Errorf("size must be a positive integer")
		}
	}
	return from, size, nil
}
