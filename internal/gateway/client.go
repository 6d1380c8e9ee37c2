package gateway

import (
	"io"
	"net/http"
	"time"

	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// Client forwards validated requests to the inner server tier.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zerolog.Logger
}

func NewClient(baseURL string, logger *zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// Forward replays the request against the server and copies the response
// back verbatim, preserving status, headers and body.
func (c *Client) Forward(w http.ResponseWriter, r *http.Request, body io.Reader) {
	url := c.baseURL + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, body)
	if err != nil {
		c.logger.Error().Err(err).Str("url", url).Msg("build upstream request error")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if v := r.Header.Get("Content-Type"); v != "" {
		req.Header.Set("Content-Type", v)
	}
	if v := r.Header.Get(models.HeaderUserID); v != "" {
		req.Header.Set(models.HeaderUserID, v)
	}
	if v := r.Header.Get(models.HeaderRequestID); v != "" {
		req.Header.Set(models.HeaderRequestID, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", url).Msg("upstream request error")
		writeError(w, http.StatusBadGateway, "server is unavailable")
		return
	}
	defer resp.Body.Close()

	for key, values := range resp.Header {
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		c.logger.Warn().Err(err).Msg("copy upstream response error")
	}
}
