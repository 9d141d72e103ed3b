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
	"encoding/binary"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"jinr.ru/greenlab/go-imu/pkg/crc"
)

const (
	// FrameLayerNum identifies the layer
	FrameLayerNum = 2001
	// FrameSync is the magic number in the beginning of each frame
	FrameSync uint16 = 0xA55A
	// FrameType is the data type byte used by the IMU firmware
	FrameType uint8 = 0x01
	// FramePayloadLen is the payload length byte, 60 bytes of payload
	FramePayloadLen uint8 = 0x3C

	// HeaderSize is the size of the frame header: sync + type + payload length
	HeaderSize = 4
	// ChecksumSize is the size of the trailing CRC32 field
	ChecksumSize = 4
	// MinFrameSize is the smallest frame that can hold header and CRC
	MinFrameSize = HeaderSize + ChecksumSize
	// DefaultFrameSize is the full frame length used by the firmware
	DefaultFrameSize = 68
	// CounterOffset is the byte offset of the transmission timestamp counter
	// within the frame: 2 sync + 1 type + 1 length + 52 payload bytes
	CounterOffset = 56
)

// Header is the frame header pattern on the wire: A5 5A 01 3C
var Header = [HeaderSize]byte{0xA5, 0x5A, 0x01, 0x3C}

// FrameLayer is one fixed-length IMU UART frame. The CRC32 covers every byte
// of the frame except the CRC field itself and is stored little-endian, as is
// the counter.
type FrameLayer struct {
	layers.BaseLayer
	Sync           uint16
	Type           uint8
	PayloadLen     uint8
	TransTimestamp uint32
	Crc            uint32
}

var FrameLayerType = gopacket.RegisterLayerType(FrameLayerNum,
	gopacket.LayerTypeMetadata{Name: "IMUFrameLayerType", Decoder: gopacket.DecodeFunc(decodeFrameLayer)})

func (f *FrameLayer) LayerType() gopacket.LayerType {
	return FrameLayerType
}

// HasHeader reports whether data starts with the frame header pattern
func HasHeader(data []byte) bool {
	return len(data) >= HeaderSize &&
		data[0] == Header[0] && data[1] == Header[1] &&
		data[2] == Header[2] && data[3] == Header[3]
}

// DecodeFromBytes attempts to decode the byte slice as one whole frame.
// The slice must be exactly the frame, header through CRC.
func (f *FrameLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if len(data) < MinFrameSize {
		df.SetTruncated()
		return ErrFrameTooShort{Len: len(data)}
	}

	if !HasHeader(data) {
		return ErrWrongHeader{Got: data[:HeaderSize]}
	}

	f.Sync = binary.BigEndian.Uint16(data[0:2])
	f.Type = data[2]
	f.PayloadLen = data[3]
	f.Crc = binary.LittleEndian.Uint32(data[len(data)-ChecksumSize:])

	calc := crc.Update(data[:len(data)-ChecksumSize], crc.Seed)
	if calc != f.Crc {
		return ErrCrcMismatch{Stored: f.Crc, Computed: calc}
	}

	// The counter exists only in frames long enough to carry it ahead of
	// the CRC field. The firmware frame always is.
	if len(data)-ChecksumSize >= CounterOffset+4 {
		f.TransTimestamp = binary.LittleEndian.Uint32(data[CounterOffset : CounterOffset+4])
	}

	f.BaseLayer = layers.BaseLayer{
		Contents: data[0:HeaderSize],
		Payload:  data[HeaderSize : len(data)-ChecksumSize],
	}

	return nil
}

// SerializeTo serializes the layer into bytes and writes the bytes to the
// SerializeBuffer. With ComputeChecksums set the CRC field is computed over
// header and payload, otherwise f.Crc is written as is.
func (f *FrameLayer) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	headerBytes, err := b.PrependBytes(HeaderSize)
	if err != nil {
		return err
	}
	copy(headerBytes, Header[:])

	tailBytes, err := b.AppendBytes(ChecksumSize)
	if err != nil {
		return err
	}
	if opts.ComputeChecksums {
		whole := b.Bytes()
		f.Crc = crc.Update(whole[:len(whole)-ChecksumSize], crc.Seed)
	}
	binary.LittleEndian.PutUint32(tailBytes, f.Crc)
	return nil
}

func (f *FrameLayer) NextLayerType() gopacket.LayerType {
	return gopacket.LayerTypePayload
}

func decodeFrameLayer(data []byte, p gopacket.PacketBuilder) error {
	f := &FrameLayer{}
	if err := f.DecodeFromBytes(data, p); err != nil {
		return err
	}
	p.AddLayer(f)
	return p.NextDecoder(f.NextLayerType())
}
