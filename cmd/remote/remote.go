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

package remote

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-imu/pkg/command"
	"jinr.ru/greenlab/go-imu/pkg/config"
)

const (
	IPOptionName        = "ip"
	PathOptionName      = "path"
	FrameSizeOptionName = "frame-size"
)

// NewCommand creates the command group that drives a running API server
func NewCommand() *cobra.Command {
	var ip string
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Drive a running verification API server",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if ip != "" {
				cfg.IP = ip
			}
		},
	}
	cmd.PersistentFlags().StringVar(&ip, IPOptionName, "", "API server address")
	cmd.AddCommand(newCheckCommand(cfg))
	cmd.AddCommand(newHistoryCommand(cfg))
	return cmd
}

func newCheckCommand(cfg *config.Config) *cobra.Command {
	var path string
	var frameSize int
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Ask the server to verify a capture file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = cfg.Output
			}
			client := command.NewApiClient(cfg)
			record, err := client.Check(path, frameSize)
			if err != nil {
				return err
			}
			return printJSON(cmd, record)
		},
	}
	cmd.Flags().StringVar(&path, PathOptionName, "", "Capture file path on the server host")
	cmd.Flags().IntVar(&frameSize, FrameSizeOptionName, 0, "Total frame size, 0 for the server default")
	return cmd
}

func newHistoryCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Fetch the verification history",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := command.NewApiClient(cfg)
			records, err := client.History()
			if err != nil {
				return err
			}
			return printJSON(cmd, records)
		},
	}
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(data))
	return nil
}
