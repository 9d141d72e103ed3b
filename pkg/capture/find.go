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
	"bytes"
	"encoding/hex"
	"strings"
)

// ParseHexPattern turns hex text like "a55a013c" or "a5 5a 01 3c" into bytes
func ParseHexPattern(s string) ([]byte, error) {
	return hex.DecodeString(strings.ReplaceAll(s, " ", ""))
}

// FindPattern returns the byte offsets of occurrences of pattern in data,
// overlapping matches included. A limit <= 0 means no limit.
func FindPattern(data, pattern []byte, limit int) []int {
	var out []int
	if len(pattern) == 0 {
		return out
	}
	i := 0
	for {
		k := bytes.Index(data[i:], pattern)
		if k < 0 {
			break
		}
		out = append(out, i+k)
		i += k + 1
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}
