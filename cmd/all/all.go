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

package all

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-imu/cmd/check"
	"jinr.ru/greenlab/go-imu/cmd/find"
	pkgcapture "jinr.ru/greenlab/go-imu/pkg/capture"
	"jinr.ru/greenlab/go-imu/pkg/config"
	"jinr.ru/greenlab/go-imu/pkg/verify"
)

const (
	DeviceOptionName    = "device"
	OutputOptionName    = "output"
	BaudOptionName      = "baud"
	SecondsOptionName   = "seconds"
	BytesOptionName     = "bytes"
	PatternOptionName   = "pattern"
	LimitOptionName     = "limit"
	FrameSizeOptionName = "frame-size"
)

// Report prints header offsets and the CRC verification summary for a
// finished capture.
func Report(w io.Writer, path string, data []byte, pattern string, limit, frameSize int) error {
	pat, err := pkgcapture.ParseHexPattern(pattern)
	if err != nil {
		return err
	}
	offsets := pkgcapture.FindPattern(data, pat, limit)
	fmt.Fprintf(w, "header_hits=%d\n", len(offsets))
	for _, off := range offsets {
		fmt.Fprintln(w, off)
	}

	scanner, err := verify.NewScanner(frameSize)
	if err != nil {
		return err
	}
	check.PrintReport(w, path, scanner.Scan(data))
	return nil
}

// NewCommand creates a cobra command that runs the whole pipeline in one go:
// capture the line, locate frame headers and verify CRC continuity. The port
// is configured on open, so there is no separate setup step.
func NewCommand() *cobra.Command {
	var device, output, pattern string
	var baud, seconds, limit, frameSize int
	var maxBytes int64
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Capture UART bytes, then find headers and verify frames",
		RunE: func(cmd *cobra.Command, args []string) error {
			if device == "" {
				device = cfg.Device
			}
			if output == "" {
				output = cfg.Output
			}
			if baud == 0 {
				baud = cfg.Baud
			}
			if frameSize == 0 {
				frameSize = cfg.FrameSize
			}
			if seconds <= 0 && maxBytes <= 0 {
				return errors.New("either --seconds or --bytes must be set")
			}

			total, err := pkgcapture.Capture(device, baud, output,
				time.Duration(seconds)*time.Second, maxBytes)
			if err != nil {
				return err
			}
			cmd.Printf("captured %d bytes to %s\n", total, output)

			data, err := os.ReadFile(output)
			if err != nil {
				return err
			}
			return Report(cmd.OutOrStdout(), output, data, pattern, limit, frameSize)
		},
	}
	cmd.Flags().StringVarP(&device, DeviceOptionName, "d", "", "Serial device. E.g. /dev/ttyS5")
	cmd.Flags().StringVarP(&output, OutputOptionName, "o", "", "Output capture file")
	cmd.Flags().IntVar(&baud, BaudOptionName, 0, "Baud rate, the line is 8N1 raw")
	cmd.Flags().IntVar(&seconds, SecondsOptionName, 0, "Capture duration in seconds")
	cmd.Flags().Int64Var(&maxBytes, BytesOptionName, 0, "Stop after this many bytes")
	cmd.Flags().StringVar(&pattern, PatternOptionName, find.DefaultPattern, "Hex byte pattern, no 0x prefix")
	cmd.Flags().IntVar(&limit, LimitOptionName, 10, "Max offsets to print, <=0 for all")
	cmd.Flags().IntVar(&frameSize, FrameSizeOptionName, 0, "Total frame size in bytes")
	return cmd
}
