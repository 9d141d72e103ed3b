/*
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

// Package srv runs the verification API server. Captured files are scanned
// on request and every run is persisted to the history database.
package srv

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"jinr.ru/greenlab/go-imu/pkg/config"
	"jinr.ru/greenlab/go-imu/pkg/log"
	"jinr.ru/greenlab/go-imu/pkg/verify"
)

const (
	ApiPort = 8005
)

// CheckRequest is the body of POST /api/check
type CheckRequest struct {
	Path      string `json:"path"`
	FrameSize int    `json:"frameSize,omitempty"`
}

type ApiServer struct {
	context.Context
	*config.Config
	*mux.Router
	state *CheckState
}

func NewApiServer(ctx context.Context, cfg *config.Config) (*ApiServer, error) {
	log.Info("Initializing API server with address: %s port: %d", cfg.IP, ApiPort)

	state, err := NewCheckState(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}

	s := &ApiServer{
		Context: ctx,
		Config:  cfg,
		state:   state,
	}
	return s, nil
}

// Run ...
func (s *ApiServer) Run() error {
	log.Debug("Starting API server: address: %s port: %d", s.Config.IP, ApiPort)
	s.configureRouter()
	defer s.state.Close()

	httpServer := &http.Server{
		Handler: handlers.RecoveryHandler()(handlers.LoggingHandler(os.Stderr, s.Router)),
		Addr:    fmt.Sprintf("%s:%d", s.Config.IP, ApiPort),
	}
	return httpServer.ListenAndServe()
}

func (s *ApiServer) configureRouter() {
	s.Router = mux.NewRouter()
	subRouter := s.Router.PathPrefix("/api").Subrouter()
	subRouter.HandleFunc("/check", s.handleCheck()).Methods("POST")
	subRouter.HandleFunc("/checks", s.handleListChecks()).Methods("GET")
}

func (s *ApiServer) handleCheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		request := &CheckRequest{}
		if err := json.NewDecoder(r.Body).Decode(request); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if request.FrameSize == 0 {
			request.FrameSize = s.Config.FrameSize
		}

		scanner, err := verify.NewScanner(request.FrameSize)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		data, err := os.ReadFile(request.Path)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		result := scanner.Scan(data)
		record := &Record{
			Path:       request.Path,
			Time:       time.Now(),
			Result:     result,
			Continuity: result.Continuity(),
		}
		if _, err := s.state.AddRecord(record); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		log.Info("Checked %s: %d valid frames, %d bad hits",
			request.Path, result.Valid, result.BadHits)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(record); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

func (s *ApiServer) handleListChecks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := s.state.ListRecords()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
