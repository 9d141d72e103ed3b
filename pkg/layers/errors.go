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

package layers

import (
	"fmt"
)

// ErrFrameTooShort returned when a candidate slice cannot hold header and CRC
type ErrFrameTooShort struct {
	Len int
}

func (e ErrFrameTooShort) Error() string {
	return fmt.Sprintf("Frame too short: %d bytes, need at least %d", e.Len, MinFrameSize)
}

// ErrWrongHeader returned when the candidate does not start with A5 5A 01 3C
type ErrWrongHeader struct {
	Got []byte
}

func (e ErrWrongHeader) Error() string {
	return fmt.Sprintf("Wrong frame header: % x, must be % x", e.Got, Header[:])
}

// ErrCrcMismatch returned when the stored CRC does not match the computed one
type ErrCrcMismatch struct {
	Stored   uint32
	Computed uint32
}

func (e ErrCrcMismatch) Error() string {
	return fmt.Sprintf("CRC mismatch: stored 0x%08x, computed 0x%08x", e.Stored, e.Computed)
}
