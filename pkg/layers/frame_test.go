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
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/google/gopacket"

	"jinr.ru/greenlab/go-imu/pkg/crc"
)

// validFrame builds a wire-exact 68-byte frame with the given counter
func validFrame(counter uint32) []byte {
	frm := make([]byte, DefaultFrameSize)
	copy(frm, Header[:])
	binary.LittleEndian.PutUint32(frm[CounterOffset:CounterOffset+4], counter)
	sum := crc.Update(frm[:DefaultFrameSize-ChecksumSize], crc.Seed)
	binary.LittleEndian.PutUint32(frm[DefaultFrameSize-ChecksumSize:], sum)
	return frm
}

func TestDecodeValidFrame(t *testing.T) {
	frm := validFrame(0x01020304)
	f := &FrameLayer{}
	if err := f.DecodeFromBytes(frm, gopacket.NilDecodeFeedback); err != nil {
		t.Fatalf("DecodeFromBytes: %v", err)
	}
	if f.Sync != FrameSync {
		t.Errorf("Sync = %#x, want %#x", f.Sync, FrameSync)
	}
	if f.Type != FrameType {
		t.Errorf("Type = %#x, want %#x", f.Type, FrameType)
	}
	if f.PayloadLen != FramePayloadLen {
		t.Errorf("PayloadLen = %#x, want %#x", f.PayloadLen, FramePayloadLen)
	}
	if f.TransTimestamp != 0x01020304 {
		t.Errorf("TransTimestamp = %#x, want 0x01020304", f.TransTimestamp)
	}
	if len(f.Payload) != DefaultFrameSize-HeaderSize-ChecksumSize {
		t.Errorf("payload length = %d, want %d", len(f.Payload), DefaultFrameSize-HeaderSize-ChecksumSize)
	}
}

func TestDecodeTooShort(t *testing.T) {
	f := &FrameLayer{}
	err := f.DecodeFromBytes([]byte{0xA5, 0x5A, 0x01}, gopacket.NilDecodeFeedback)
	var tooShort ErrFrameTooShort
	if !errors.As(err, &tooShort) {
		t.Fatalf("expected ErrFrameTooShort, got %v", err)
	}
}

func TestDecodeWrongHeader(t *testing.T) {
	frm := validFrame(1)
	frm[1] = 0xA5
	f := &FrameLayer{}
	err := f.DecodeFromBytes(frm, gopacket.NilDecodeFeedback)
	var wrongHeader ErrWrongHeader
	if !errors.As(err, &wrongHeader) {
		t.Fatalf("expected ErrWrongHeader, got %v", err)
	}
}

func TestDecodeCrcMismatch(t *testing.T) {
	frm := validFrame(1)
	frm[10] ^= 0x01
	f := &FrameLayer{}
	err := f.DecodeFromBytes(frm, gopacket.NilDecodeFeedback)
	var mismatch ErrCrcMismatch
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected ErrCrcMismatch, got %v", err)
	}
	if mismatch.Stored == mismatch.Computed {
		t.Fatalf("mismatch error carries equal sums: %#x", mismatch.Stored)
	}
}

func TestSerializeMatchesManualBuild(t *testing.T) {
	counter := uint32(0xCAFE0042)
	payload := make([]byte, DefaultFrameSize-HeaderSize-ChecksumSize)
	binary.LittleEndian.PutUint32(payload[CounterOffset-HeaderSize:], counter)

	f := &FrameLayer{}
	buf := gopacket.NewSerializeBuffer()
	err := gopacket.SerializeLayers(buf, gopacket.SerializeOptions{ComputeChecksums: true},
		f, gopacket.Payload(payload))
	if err != nil {
		t.Fatalf("SerializeLayers: %v", err)
	}

	if !bytes.Equal(buf.Bytes(), validFrame(counter)) {
		t.Fatalf("serialized frame differs from manual build\n got %x\nwant %x",
			buf.Bytes(), validFrame(counter))
	}

	// and it must decode back as valid
	decoded := &FrameLayer{}
	if err := decoded.DecodeFromBytes(buf.Bytes(), gopacket.NilDecodeFeedback); err != nil {
		t.Fatalf("decode of serialized frame: %v", err)
	}
	if decoded.TransTimestamp != counter {
		t.Fatalf("TransTimestamp = %#x, want %#x", decoded.TransTimestamp, counter)
	}
}
