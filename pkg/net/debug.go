package net

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"time"
)

// PrintHTTPResponse dumps the response headers at debug level.
func PrintHTTPResponse(resp *http.Response) {
	if resp == nil {
		return
	}
	if respDump, err := httputil.DumpResponse(resp, false); err == nil {
		slog.Debug("http response", "dump", string(respDump))
	}
}

// PrintRetry logs a failed attempt that is about to be retried.
func PrintRetry(url string, err error, next time.Duration) {
	slog.Debug("retrying request", "url", url, "error", err, "next", next)
}
