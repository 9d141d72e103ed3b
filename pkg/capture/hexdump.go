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

package capture

import (
	"fmt"
	"io"
	"strings"
)

// HexDump writes an xxd-like dump of count bytes of data starting at start.
// Row offsets are relative to start. Out-of-range requests are clamped.
func HexDump(w io.Writer, data []byte, start, count int) error {
	if start < 0 {
		start = 0
	}
	if start > len(data) {
		start = len(data)
	}
	end := start + count
	if count <= 0 || end > len(data) {
		end = len(data)
	}
	chunk := data[start:end]

	for row := 0; row < len(chunk); row += 16 {
		line := chunk[row:]
		if len(line) > 16 {
			line = line[:16]
		}

		var hx strings.Builder
		var ascii strings.Builder
		for k, b := range line {
			if k > 0 {
				hx.WriteByte(' ')
			}
			fmt.Fprintf(&hx, "%02x", b)
			if b >= 32 && b <= 126 {
				ascii.WriteByte(b)
			} else {
				ascii.WriteByte('.')
			}
		}

		if _, err := fmt.Fprintf(w, "%08x: %-47s  %s\n", row, hx.String(), ascii.String()); err != nil {
			return err
		}
	}
	return nil
}
