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

package find

import (
	"os"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-imu/pkg/capture"
	"jinr.ru/greenlab/go-imu/pkg/config"
)

const (
	InputOptionName   = "input"
	PatternOptionName = "pattern"
	LimitOptionName   = "limit"

	// first three header bytes, enough to locate candidates without
	// assuming the payload length byte
	DefaultPattern = "a55a01"
)

// NewCommand creates a cobra command that prints header offsets in a capture
func NewCommand() *cobra.Command {
	var input, pattern string
	var limit int
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find frame header offsets in a capture file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" {
				input = cfg.Output
			}
			data, err := os.ReadFile(input)
			if err != nil {
				return err
			}
			pat, err := capture.ParseHexPattern(pattern)
			if err != nil {
				return err
			}
			for _, off := range capture.FindPattern(data, pat, limit) {
				cmd.Println(off)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, InputOptionName, "i", "", "Capture file to search")
	cmd.Flags().StringVar(&pattern, PatternOptionName, DefaultPattern, "Hex byte pattern, no 0x prefix")
	cmd.Flags().IntVar(&limit, LimitOptionName, 10, "Max offsets to print, <=0 for all")
	return cmd
}
