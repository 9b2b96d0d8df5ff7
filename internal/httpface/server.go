// Package httpface is the gateway's thin JSON HTTP façade: a health
// check, the camera topology list, a command-submission endpoint backed
// by the controller's outward API, and an SSE feed off the activity ring
// buffer. It follows the teacher's internal/web shape closely — same
// CORS middleware, same writeJSON helper, same SSE loop structure —
// aimed at cameras instead of ONVIF devices.
package httpface

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"viscabridge/internal/controller"
	"viscabridge/internal/events"
	"viscabridge/internal/hub"
	"viscabridge/internal/registry"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type Config struct {
	Host string
	Port int
}

type Server struct {
	http *http.Server
	ctl  *controller.Controller
	reg  *registry.Store
	ev   events.Buffer
	hub  *hub.Hub
}

func New(cfg Config, ctl *controller.Controller, reg *registry.Store, ev events.Buffer, h *hub.Hub) *Server {
	mux := http.NewServeMux()
	s := &Server{ctl: ctl, reg: reg, ev: ev, hub: h}

	mux.HandleFunc("/api/v1/health", s.handleHealth)
	mux.HandleFunc("/api/v1/cameras", s.handleCameras)
	mux.HandleFunc("/api/v1/cameras/", s.handleCameraSubroute)
	mux.HandleFunc("/api/v1/events/stream", s.handleEventsStream)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	s.http = &http.Server{
		Addr:              addr,
		Handler:           withCommonHeaders(mux),
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		log.Printf("[httpface] listening on http://%s", s.http.Addr)
		if err := s.http.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.http.Shutdown(shCtx); err != nil {
			log.Printf("[httpface] shutdown error: %v", err)
		} else {
			log.Printf("[httpface] stopped")
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

func withCommonHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "600")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
