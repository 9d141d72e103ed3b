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

package srv

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"jinr.ru/greenlab/go-imu/pkg/config"
	"jinr.ru/greenlab/go-imu/pkg/crc"
	"jinr.ru/greenlab/go-imu/pkg/layers"
)

func validFrame(counter uint32) []byte {
	frm := make([]byte, layers.DefaultFrameSize)
	copy(frm, layers.Header[:])
	binary.LittleEndian.PutUint32(frm[layers.CounterOffset:layers.CounterOffset+4], counter)
	sum := crc.Update(frm[:len(frm)-layers.ChecksumSize], crc.Seed)
	binary.LittleEndian.PutUint32(frm[len(frm)-layers.ChecksumSize:], sum)
	return frm
}

func newTestServer(t *testing.T) *ApiServer {
	t.Helper()
	dir := t.TempDir()
	cfg := config.NewConfig(filepath.Join(dir, "config"))
	cfg.DBPath = filepath.Join(dir, "checks.db")

	s, err := NewApiServer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewApiServer: %v", err)
	}
	t.Cleanup(s.state.Close)
	s.configureRouter()
	return s
}

func TestHandleCheckAndHistory(t *testing.T) {
	s := newTestServer(t)

	capturePath := filepath.Join(t.TempDir(), "cap.bin")
	data := append(validFrame(100), validFrame(101)...)
	if err := os.WriteFile(capturePath, data, 0644); err != nil {
		t.Fatalf("write capture: %v", err)
	}

	body, _ := json.Marshal(&CheckRequest{Path: capturePath})
	req := httptest.NewRequest("POST", "/api/check", bytes.NewReader(body))
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("POST /api/check = %d: %s", w.Code, w.Body.String())
	}
	record := &Record{}
	if err := json.Unmarshal(w.Body.Bytes(), record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if record.Result.Valid != 2 || record.Result.BadHits != 0 {
		t.Fatalf("result = %+v", record.Result)
	}
	if record.Continuity == nil || record.Continuity.OffsetGapMin != layers.DefaultFrameSize {
		t.Fatalf("continuity = %+v", record.Continuity)
	}

	req = httptest.NewRequest("GET", "/api/checks", nil)
	w = httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/checks = %d", w.Code)
	}
	var records []*Record
	if err := json.Unmarshal(w.Body.Bytes(), &records); err != nil {
		t.Fatalf("decode records: %v", err)
	}
	if len(records) != 1 || records[0].Path != capturePath {
		t.Fatalf("records = %+v", records)
	}
}

func TestHandleCheckMissingFile(t *testing.T) {
	s := newTestServer(t)

	body, _ := json.Marshal(&CheckRequest{Path: "/nonexistent/capture.bin"})
	req := httptest.NewRequest("POST", "/api/check", bytes.NewReader(body))
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("POST /api/check = %d, want 400", w.Code)
	}
}

func TestHandleCheckBadFrameSize(t *testing.T) {
	s := newTestServer(t)

	body, _ := json.Marshal(&CheckRequest{Path: "/tmp/whatever.bin", FrameSize: 4})
	req := httptest.NewRequest("POST", "/api/check", bytes.NewReader(body))
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("POST /api/check = %d, want 400", w.Code)
	}
}
