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
	"reflect"
	"strings"
	"testing"
)

func TestParseHexPattern(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []byte
		wantErr bool
	}{
		{name: "plain", in: "a55a013c", want: []byte{0xA5, 0x5A, 0x01, 0x3C}},
		{name: "spaced", in: "a5 5a 01 3c", want: []byte{0xA5, 0x5A, 0x01, 0x3C}},
		{name: "odd length", in: "a55", wantErr: true},
		{name: "not hex", in: "zz", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseHexPattern(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %x", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHexPattern: %v", err)
			}
			if !bytes.Equal(got, tc.want) {
				t.Fatalf("got %x, want %x", got, tc.want)
			}
		})
	}
}

func TestFindPattern(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		pattern []byte
		limit   int
		want    []int
	}{
		{
			name:    "two hits",
			data:    []byte{0x00, 0xA5, 0x5A, 0x01, 0xFF, 0xA5, 0x5A, 0x01},
			pattern: []byte{0xA5, 0x5A, 0x01},
			want:    []int{1, 5},
		},
		{
			name:    "overlapping hits",
			data:    []byte{0xAA, 0xAA, 0xAA},
			pattern: []byte{0xAA, 0xAA},
			want:    []int{0, 1},
		},
		{
			name:    "limit applied",
			data:    []byte{0xAA, 0xAA, 0xAA, 0xAA},
			pattern: []byte{0xAA},
			limit:   2,
			want:    []int{0, 1},
		},
		{
			name:    "no hit",
			data:    []byte{0x01, 0x02},
			pattern: []byte{0xA5},
			want:    nil,
		},
		{
			name:    "empty pattern",
			data:    []byte{0x01},
			pattern: nil,
			want:    nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FindPattern(tc.data, tc.pattern, tc.limit)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestHexDump(t *testing.T) {
	data := append([]byte("imu-ok"), 0x00, 0xFF)
	var sb strings.Builder
	if err := HexDump(&sb, data, 0, len(data)); err != nil {
		t.Fatalf("HexDump: %v", err)
	}
	out := sb.String()
	want := "00000000: 69 6d 75 2d 6f 6b 00 ff" // hex column
	if !strings.Contains(out, want) {
		t.Fatalf("dump missing %q:\n%s", want, out)
	}
	if !strings.Contains(out, "imu-ok..") {
		t.Fatalf("dump missing ascii column:\n%s", out)
	}
}

func TestHexDumpClampsRange(t *testing.T) {
	var sb strings.Builder
	if err := HexDump(&sb, []byte{0x01, 0x02}, 1, 100); err != nil {
		t.Fatalf("HexDump: %v", err)
	}
	if !strings.Contains(sb.String(), "02") {
		t.Fatalf("clamped dump wrong:\n%s", sb.String())
	}
	sb.Reset()
	if err := HexDump(&sb, []byte{0x01}, 5, 4); err != nil {
		t.Fatalf("HexDump past end: %v", err)
	}
	if sb.Len() != 0 {
		t.Fatalf("dump past end produced output:\n%s", sb.String())
	}
}
