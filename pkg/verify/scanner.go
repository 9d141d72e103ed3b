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

// Package verify locates IMU frames inside a raw serial capture and derives
// stream-health statistics from them.
package verify

import (
	"github.com/google/gopacket"

	"jinr.ru/greenlab/go-imu/pkg/layers"
)

// Scanner walks a capture buffer and validates fixed-length frame candidates.
// It holds no state across Scan calls.
type Scanner struct {
	frameSize int
}

// NewScanner returns a scanner for the given total frame size. The size must
// at least hold the header and the trailing CRC.
func NewScanner(frameSize int) (*Scanner, error) {
	if frameSize < layers.MinFrameSize {
		return nil, ErrFrameSizeTooSmall{FrameSize: frameSize}
	}
	return &Scanner{frameSize: frameSize}, nil
}

func (s *Scanner) FrameSize() int {
	return s.frameSize
}

// Result is the outcome of one scan. Offsets and Counters are parallel and
// ordered by discovery, which is increasing byte offset.
type Result struct {
	FrameSize int      `json:"frameSize"`
	Valid     int      `json:"validFrames"`
	BadHits   int      `json:"crcFailHits"`
	Offsets   []int    `json:"offsets,omitempty"`
	Counters  []uint32 `json:"counters,omitempty"`
}

// Scan runs a resynchronizing pass over data. A header match is validated as
// a whole frame; on CRC pass the cursor jumps by the frame size since a valid
// frame implies correct alignment, on CRC fail the hit is counted and the
// cursor moves a single byte so the true boundary can be rediscovered inside
// corrupted or unstructured data. Trailing bytes shorter than one frame are
// ignored.
func (s *Scanner) Scan(data []byte) *Result {
	res := &Result{FrameSize: s.frameSize}

	i := 0
	for i+s.frameSize <= len(data) {
		if layers.HasHeader(data[i:]) {
			frame := &layers.FrameLayer{}
			if err := frame.DecodeFromBytes(data[i:i+s.frameSize], gopacket.NilDecodeFeedback); err == nil {
				res.Valid++
				res.Offsets = append(res.Offsets, i)
				res.Counters = append(res.Counters, frame.TransTimestamp)
				i += s.frameSize
				continue
			}
			// header matched but the frame did not check out
			res.BadHits++
		}
		i++
	}

	return res
}
