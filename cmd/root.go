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

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-imu/cmd/all"
	"jinr.ru/greenlab/go-imu/cmd/capture"
	"jinr.ru/greenlab/go-imu/cmd/check"
	"jinr.ru/greenlab/go-imu/cmd/completion"
	"jinr.ru/greenlab/go-imu/cmd/config"
	"jinr.ru/greenlab/go-imu/cmd/dump"
	"jinr.ru/greenlab/go-imu/cmd/find"
	"jinr.ru/greenlab/go-imu/cmd/logscan"
	"jinr.ru/greenlab/go-imu/cmd/ports"
	"jinr.ru/greenlab/go-imu/cmd/remote"
	"jinr.ru/greenlab/go-imu/cmd/serve"
	pkgconfig "jinr.ru/greenlab/go-imu/pkg/config"
	"jinr.ru/greenlab/go-imu/pkg/log"
)

const (
	LogLevelOptionName = "log-level"
)

func NewRootCommand(out io.Writer) *cobra.Command {
	var logLevel string
	cfg := pkgconfig.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "go-imu",
		Short: "Tool to capture and verify IMU UART frames",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			log.Init(cmd.ErrOrStderr(), cfg.LogLevel)
		},
	}
	cmd.SetOut(out)
	cmd.AddCommand(ports.NewCommand())
	cmd.AddCommand(capture.NewCommand())
	cmd.AddCommand(find.NewCommand())
	cmd.AddCommand(dump.NewCommand())
	cmd.AddCommand(check.NewCommand())
	cmd.AddCommand(all.NewCommand())
	cmd.AddCommand(serve.NewCommand())
	cmd.AddCommand(remote.NewCommand())
	cmd.AddCommand(logscan.NewCommand())
	cmd.AddCommand(config.NewCommand())
	cmd.AddCommand(completion.NewCommand())
	cmd.PersistentFlags().StringVar(&logLevel, LogLevelOptionName, "", fmt.Sprintf("Log level. %s", log.HelpLevels))
	return cmd
}
