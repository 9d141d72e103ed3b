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
	"context"
	"encoding/binary"
	"encoding/json"
	"time"

	"go.etcd.io/bbolt"

	"jinr.ru/greenlab/go-imu/pkg/log"
	"jinr.ru/greenlab/go-imu/pkg/verify"
)

const (
	BucketName = "checks"
)

// Record is one persisted verification run
type Record struct {
	Seq        uint64             `json:"seq,omitempty"`
	Path       string             `json:"path"`
	Time       time.Time          `json:"time"`
	Result     *verify.Result     `json:"result"`
	Continuity *verify.Continuity `json:"continuity,omitempty"`
}

// CheckState keeps the verification history in a bbolt database
type CheckState struct {
	context.Context
	DB *bbolt.DB
}

func NewCheckState(ctx context.Context, dbPath string) (*CheckState, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, err
	}
	if err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(BucketName))
		return err
	}); err != nil {
		return nil, err
	}
	return &CheckState{
		Context: ctx,
		DB:      db,
	}, nil
}

// Close ...
func (s *CheckState) Close() {
	s.DB.Close()
}

func seqToBytes(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

// AddRecord appends a record to the history and returns its sequence number
func (s *CheckState) AddRecord(record *Record) (uint64, error) {
	log.Debug("Persisting check record for %s", record.Path)
	var seq uint64
	if err := s.DB.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketName))
		if b == nil {
			return ErrBucketNotFound{Bucket: BucketName}
		}
		var err error
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		record.Seq = seq
		data, err := json.Marshal(record)
		if err != nil {
			return err
		}
		return b.Put(seqToBytes(seq), data)
	}); err != nil {
		return 0, err
	}
	return seq, nil
}

// ListRecords returns the whole history in sequence order
func (s *CheckState) ListRecords() ([]*Record, error) {
	var records []*Record
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketName))
		if b == nil {
			return ErrBucketNotFound{Bucket: BucketName}
		}
		return b.ForEach(func(k, v []byte) error {
			record := &Record{}
			if err := json.Unmarshal(v, record); err != nil {
				return err
			}
			records = append(records, record)
			return nil
		})
	}); err != nil {
		return nil, err
	}
	return records, nil
}
