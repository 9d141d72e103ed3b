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
	"errors"
	"time"

	"github.com/spf13/cobra"

	pkgcapture "jinr.ru/greenlab/go-imu/pkg/capture"
	"jinr.ru/greenlab/go-imu/pkg/config"
)

const (
	DeviceOptionName  = "device"
	OutputOptionName  = "output"
	BaudOptionName    = "baud"
	SecondsOptionName = "seconds"
	BytesOptionName   = "bytes"
)

// NewCommand creates a cobra command that captures raw UART bytes to a file
func NewCommand() *cobra.Command {
	var device, output string
	var baud, seconds int
	var maxBytes int64
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Capture UART bytes to a file",
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
			if seconds <= 0 && maxBytes <= 0 {
				return errors.New("either --seconds or --bytes must be set")
			}

			total, err := pkgcapture.Capture(device, baud, output,
				time.Duration(seconds)*time.Second, maxBytes)
			if err != nil {
				return err
			}
			cmd.Printf("captured %d bytes to %s\n", total, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&device, DeviceOptionName, "d", "", "Serial device. E.g. /dev/ttyS5")
	cmd.Flags().StringVarP(&output, OutputOptionName, "o", "", "Output capture file")
	cmd.Flags().IntVar(&baud, BaudOptionName, 0, "Baud rate, the line is 8N1 raw")
	cmd.Flags().IntVar(&seconds, SecondsOptionName, 0, "Capture duration in seconds")
	cmd.Flags().Int64Var(&maxBytes, BytesOptionName, 0, "Stop after this many bytes")
	return cmd
}
