/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Handler returns the HTTP handler serving the page, widget fragments, sort
// clicks and the health report.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		s.writeResult(w, r, s.HandlePageRequest(w))
	})

	mux.HandleFunc("GET /widget", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		s.writeResult(w, r, s.HandleWidgetRequest(w, r.URL))
	})

	mux.HandleFunc("GET /sort", func(w http.ResponseWriter, r *http.Request) {
		location, result := s.HandleSortRequest(r.URL)
		if result != nil {
			s.writeResult(w, r, result)
			return
		}
		http.Redirect(w, r, location, http.StatusSeeOther)
	})

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]interface{}{"widgets": s.Status()}); err != nil {
			s.logger.Warn("failed to write health report", zap.Error(err))
		}
	})

	return s.logRequests(mux)
}

// writeResult turns a failed HandlerResult into an HTTP error. A result
// without a status code means the response was already partly written.
func (s *Server) writeResult(w http.ResponseWriter, r *http.Request, result *HandlerResult) {
	if result == nil {
		return
	}
	if result.StatusCode == 0 {
		s.logger.Warn("failed to write response", zap.String("path", r.URL.Path), zap.Error(result.Error))
		return
	}
	if result.StatusCode >= 500 {
		s.logger.Error(result.Message, zap.String("path", r.URL.Path), zap.Error(result.Error))
	}
	http.Error(w, result.Message, result.StatusCode)
}

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("uri", r.URL.RequestURI()),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

// Serve starts every widget and serves HTTP on l until ctx ends, then shuts
// down gracefully.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	s.Start(ctx)

	g.Go(func() error {
		if err := srv.Serve(l); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := s.Wait(ctx); err == nil {
			s.logger.Info("all widgets loaded", zap.Int("widgets", len(s.Widgets())))
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	s.logger.Info("serving", zap.String("addr", l.Addr().String()))
	return g.Wait()
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}
