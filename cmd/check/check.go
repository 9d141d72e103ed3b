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

package check

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-imu/pkg/config"
	"jinr.ru/greenlab/go-imu/pkg/verify"
)

const (
	InputOptionName     = "input"
	FrameSizeOptionName = "frame-size"
)

// PrintReport writes the scan summary in the fixed key=value report format
func PrintReport(w io.Writer, path string, result *verify.Result) {
	fmt.Fprintf(w, "file=%s\n", path)
	fmt.Fprintf(w, "valid_frames=%d, crc_fail_hits=%d\n", result.Valid, result.BadHits)

	c := result.Continuity()
	if c == nil {
		return
	}
	fmt.Fprintf(w, "timestamp_monotonic_ratio=%d/%d\n", c.MonotonicPairs, c.Pairs)
	fmt.Fprintf(w, "timestamp_delta_min=%d, max=%d\n", c.CounterDeltaMin, c.CounterDeltaMax)
	fmt.Fprintf(w, "offset_gap_min=%d, max=%d\n", c.OffsetGapMin, c.OffsetGapMax)
}

// NewCommand creates a cobra command that verifies a capture file offline
func NewCommand() *cobra.Command {
	var input string
	var frameSize int
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify frames in a capture file by CRC and report continuity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" {
				input = cfg.Output
			}
			if frameSize == 0 {
				frameSize = cfg.FrameSize
			}

			scanner, err := verify.NewScanner(frameSize)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(input)
			if err != nil {
				return err
			}

			PrintReport(cmd.OutOrStdout(), input, scanner.Scan(data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, InputOptionName, "i", "", "Capture file to verify")
	cmd.Flags().IntVar(&frameSize, FrameSizeOptionName, 0, "Total frame size in bytes")
	return cmd
}
