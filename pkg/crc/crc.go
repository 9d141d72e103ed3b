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

// Package crc implements the CRC32 variant used by the IMU firmware.
// It is the reflected-polynomial table algorithm, but the init value is 1
// instead of 0xFFFFFFFF and there is no final XOR, so hash/crc32 cannot be
// used. Both deviations must be preserved to match the device.
package crc

import (
	"sync"
)

const (
	// Poly is the reflected form of the standard CRC32 polynomial
	Poly uint32 = 0xEDB88320
	// Seed is the firmware CRC init value
	Seed uint32 = 1
)

var (
	table     [256]uint32
	tableOnce sync.Once
)

// buildTable fills the 256-entry lookup table. For each byte value the
// accumulator is shifted right 8 times, applying the polynomial whenever
// the bit shifted out is set.
func buildTable() {
	for i := 0; i < 256; i++ {
		c := uint32(i)
		for k := 0; k < 8; k++ {
			if c&1 != 0 {
				c = Poly ^ (c >> 1)
			} else {
				c >>= 1
			}
		}
		table[i] = c
	}
}

// Update runs the checksum over buf starting from seed and returns the new
// value. An empty buf returns the seed unchanged.
func Update(buf []byte, seed uint32) uint32 {
	tableOnce.Do(buildTable)
	crc := seed
	for _, b := range buf {
		crc = table[(crc^uint32(b))&0xFF] ^ (crc >> 8)
	}
	return crc
}

// Checksum is Update with the firmware seed.
func Checksum(buf []byte) uint32 {
	return Update(buf, Seed)
}
