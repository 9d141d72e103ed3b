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

package logscan

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	pkglogscan "jinr.ru/greenlab/go-imu/pkg/logscan"
)

const (
	WindowOptionName = "window"
)

// NewCommand creates the command group for robot log analytics
func NewCommand() *cobra.Command {
	var windowSec float64
	cmd := &cobra.Command{
		Use:   "logscan",
		Short: "Scan robot logs for odometry failures and their context",
	}
	cmd.PersistentFlags().Float64Var(&windowSec, WindowOptionName, 1.0, "Coincidence window in seconds")
	cmd.AddCommand(newCoincidentCommand(&windowSec))
	cmd.AddCommand(newStatsCommand(&windowSec))
	cmd.AddCommand(newVelRotateCommand())
	return cmd
}

func window(windowSec float64) time.Duration {
	return time.Duration(windowSec * float64(time.Second))
}

func newCoincidentCommand(windowSec *float64) *cobra.Command {
	return &cobra.Command{
		Use:   "coincident <logfile>...",
		Short: "List alarms that fired within the window of an odo_update_fail",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("at least one log file is required")
			}
			for _, path := range args {
				fs, err := pkglogscan.ScanFile(path)
				if err != nil {
					return err
				}
				hits, warnings, errs, _ := pkglogscan.Coincident(fs, window(*windowSec))
				cmd.Printf("file=%s coincident_warnings=%d coincident_errors=%d\n",
					path, warnings, errs)
				for _, hit := range hits {
					cmd.Printf("  %s %s (%.0fms from fail)\n",
						hit.Time.Format("2006-01-02 15:04:05.000"), hit.Key(),
						float64(hit.NearestFail)/float64(time.Millisecond))
				}
			}
			return nil
		},
	}
}

func newStatsCommand(windowSec *float64) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <logfile>...",
		Short: "Per-file odometry failure stats and root-cause judgement",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("at least one log file is required")
			}
			for _, path := range args {
				stats, err := pkglogscan.AnalyzeFile(path, window(*windowSec))
				if err != nil {
					return err
				}
				printStats(cmd, stats)
			}
			return nil
		},
	}
}

func newVelRotateCommand() *cobra.Command {
	var warningLog, errorLog, startStr, endStr string
	cmd := &cobra.Command{
		Use:   "velrotate <logfile>",
		Short: "Judge whether missing vel_rotate is a zero default or a broken odometer feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseBound(startStr)
			if err != nil {
				return err
			}
			end, err := parseBound(endStr)
			if err != nil {
				return err
			}
			vs, err := pkglogscan.AnalyzeVelRotate(args[0],
				[]string{warningLog, errorLog}, start, end)
			if err != nil {
				return err
			}
			printVelRotate(cmd, vs)
			return nil
		},
	}
	cmd.Flags().StringVar(&warningLog, "warning", "", "Warning log to scan for fault keywords")
	cmd.Flags().StringVar(&errorLog, "error", "", "Error log to scan for fault keywords")
	cmd.Flags().StringVar(&startStr, "start", "", "Window start, format: YYMMDD HHMMSS.mmm")
	cmd.Flags().StringVar(&endStr, "end", "", "Window end, format: YYMMDD HHMMSS.mmm")
	return cmd
}

// parseBound turns an optional window bound into a time; empty means open
func parseBound(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(pkglogscan.TimestampLayout, s)
}

func printVelRotate(cmd *cobra.Command, vs *pkglogscan.VelRotateScan) {
	cmd.Printf("file=%s\n", vs.Path)
	cmd.Printf("  odometer=%d imu=%d odo_update_fail=%d\n",
		vs.OdometerTotal, vs.ImuTotal, vs.FailTotal)
	cmd.Printf("  vel_rotate: zero=%d nonzero=%d parse_fail=%d\n",
		vs.VelRotateZero, vs.VelRotateNonzero, vs.VelRotateParseFail)
	cmd.Printf("  cycle: jumps=%d max_step=%d\n", vs.CycleJumpCount, vs.CycleMaxStep)
	for _, k := range []string{"no odom", "transform fail", "encoder timeout", "no imu"} {
		if vs.KeywordHits[k] > 0 {
			cmd.Printf("  keyword.%q=%d\n", k, vs.KeywordHits[k])
		}
	}
	cmd.Printf("  verdict=%s\n", vs.Verdict)
	for _, reason := range vs.Reasons {
		cmd.Printf("  reason=%s\n", reason)
	}
	for _, line := range vs.KeywordSamples {
		cmd.Printf("  sample=%s\n", line)
	}
}

func printStats(cmd *cobra.Command, s *pkglogscan.Stats) {
	cmd.Printf("file=%s\n", s.Path)
	cmd.Printf("  imu=%d odometer=%d odo_update_fail=%d\n", s.ImuTotal, s.OdometerTotal, s.FailTotal)
	for name, count := range s.Events {
		if count > 0 {
			cmd.Printf("  event.%s=%d\n", name, count)
		}
	}
	cmd.Printf("  coincident: warnings=%d errors=%d", s.CoincidentWarning, s.CoincidentError)
	if s.CoincidentTop != "" {
		cmd.Printf(" top=%s", s.CoincidentTop)
	}
	cmd.Println()
	cmd.Printf("  lead: encoder=%s ethercat=%s\n",
		fmt.Sprintf("%.2f", s.LeadEncoderRatio), fmt.Sprintf("%.2f", s.LeadEtherCATRatio))
	cmd.Printf("  priority=%s\n", s.Priority)
	cmd.Printf("  cause=%s\n", s.Cause)
}
