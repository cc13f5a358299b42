// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// imageProxyPrefix marks the one route whose bodies are already
// compressed formats (JPEG/PNG); gzipping those wastes CPU for no
// size win.
const imageProxyPrefix = "/api/v1/proxy/image"

var gzipPool = sync.Pool{
	New: func() any { return gzip.NewWriter(io.Discard) },
}

// Compression gzips JSON responses for clients that advertise support.
// NEO feed and Mars photo payloads routinely exceed 100KB of JSON, so
// compression matters for dashboard load times.
func Compression(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !compressible(r) {
			next(w, r)
			return
		}

		gz := gzipPool.Get().(*gzip.Writer)
		gz.Reset(w)
		defer func() {
			_ = gz.Close() // best effort, response already sent
			gzipPool.Put(gz)
		}()

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Del("Content-Length") // length changes under compression

		next(&gzipWriter{Writer: gz, ResponseWriter: w}, r)
	}
}

func compressible(r *http.Request) bool {
	if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
		return false
	}
	return !strings.HasPrefix(r.URL.Path, imageProxyPrefix)
}

// gzipWriter routes body writes through the gzip stream while headers
// and status go to the underlying ResponseWriter.
type gzipWriter struct {
	io.Writer
	http.ResponseWriter
	wroteHeader bool
}

func (w *gzipWriter) WriteHeader(status int) {
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *gzipWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.Writer.Write(b)
}
