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

package dump

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-imu/pkg/capture"
	"jinr.ru/greenlab/go-imu/pkg/config"
)

const (
	InputOptionName   = "input"
	OffsetsOptionName = "offsets"
	PreOptionName     = "pre"
	CountOptionName   = "count"
)

func parseOffsets(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		off, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		out = append(out, off)
	}
	return out, nil
}

// NewCommand creates a cobra command that hexdumps bytes around offsets
func NewCommand() *cobra.Command {
	var input, offsets string
	var pre, count int
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Dump capture bytes around offsets",
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" {
				input = cfg.Output
			}
			data, err := os.ReadFile(input)
			if err != nil {
				return err
			}
			offs, err := parseOffsets(offsets)
			if err != nil {
				return err
			}
			for _, off := range offs {
				start := off - pre
				if start < 0 {
					start = 0
				}
				cmd.Printf("==== offset=%d ====\n", off)
				if err := capture.HexDump(cmd.OutOrStdout(), data, start, count); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, InputOptionName, "i", "", "Capture file to dump")
	cmd.Flags().StringVar(&offsets, OffsetsOptionName, "", "Comma-separated byte offsets")
	cmd.Flags().IntVar(&pre, PreOptionName, 8, "Bytes of context before each offset")
	cmd.Flags().IntVar(&count, CountOptionName, 64, "Bytes to dump per offset")
	cmd.MarkFlagRequired(OffsetsOptionName)
	return cmd
}
