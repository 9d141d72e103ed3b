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

// Package capture reads raw bytes from the IMU serial line into files and
// provides the offline helpers for poking at the captured binary.
package capture

import (
	"os"
	"time"

	"go.bug.st/serial"

	"jinr.ru/greenlab/go-imu/pkg/log"
)

const (
	readBufferSize = 4096
	readTimeout    = 100 * time.Millisecond
)

// ListPorts enumerates the serial devices present on the host
func ListPorts() ([]string, error) {
	return serial.GetPortsList()
}

// Capture opens the device at the given baud rate, 8N1, and copies raw bytes
// to the output file until the duration elapses or maxBytes bytes are
// written. A zero duration means no time limit, a zero maxBytes means no size
// limit, at least one of them must be set by the caller. Returns the number
// of bytes captured.
func Capture(device string, baud int, output string, duration time.Duration, maxBytes int64) (int64, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(device, mode)
	if err != nil {
		return 0, err
	}
	defer port.Close()

	if err := port.SetReadTimeout(readTimeout); err != nil {
		return 0, err
	}

	out, err := os.Create(output)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	log.Info("Capturing from %s at %d baud to %s", device, baud, output)

	var deadline time.Time
	if duration > 0 {
		deadline = time.Now().Add(duration)
	}

	buf := make([]byte, readBufferSize)
	var total int64
	for {
		if duration > 0 && !time.Now().Before(deadline) {
			break
		}
		if maxBytes > 0 && total >= maxBytes {
			break
		}

		n, err := port.Read(buf)
		if err != nil {
			return total, err
		}
		if n == 0 {
			// read timeout with no data, re-check the limits
			continue
		}

		chunk := buf[:n]
		if maxBytes > 0 && total+int64(n) > maxBytes {
			chunk = chunk[:maxBytes-total]
		}
		if _, err := out.Write(chunk); err != nil {
			return total, err
		}
		total += int64(len(chunk))
	}

	log.Info("Captured %d bytes to %s", total, output)
	return total, nil
}
