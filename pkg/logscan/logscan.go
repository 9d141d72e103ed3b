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

// Package logscan scans timestamped robot log files for odometry update
// failures and the warning/error events around them.
package logscan

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"time"
)

// TimestampLayout matches log prefixes like [240101 120000.000]
const TimestampLayout = "060102 150405.000"

var (
	tsRE    = regexp.MustCompile(`^\[(\d{6} \d{6}\.\d{3})\]`)
	imuRE   = regexp.MustCompile(`\[DC\]\[d\] \[IMU\]\[`)
	odomRE  = regexp.MustCompile(`\[OC\]\[d\] \[Odometer\]\[([^\]]+)\]`)
	failRE  = regexp.MustCompile(`\[OC\]\[d\] \[odo_update_fail\]\[`)
	alarmRE = regexp.MustCompile(`(?i)\[Alarm\]\[(Warning|Error)\|([^|\]]+)\|([^\]]+)\]`)
)

// EventPatterns are the driver-side symptoms tracked across logs
var EventPatterns = map[string]*regexp.Regexp{
	"ethercat_timeout":     regexp.MustCompile(`(?i)EtherCAT Motor timeout`),
	"encoder_timeout":      regexp.MustCompile(`(?i)out encoder timeout`),
	"dio_disconnect":       regexp.MustCompile(`(?i)can not connect to DIO board`),
	"no_odom":              regexp.MustCompile(`(?i)no odom`),
	"transform_fail":       regexp.MustCompile(`(?i)Transform fail`),
	"robot_out_of_path":    regexp.MustCompile(`(?i)robot out of path`),
	"pgv_cannot_find_code": regexp.MustCompile(`(?i)PGV cannot find code`),
}

// Alarm is one parsed [Alarm][Level|code|message] line
type Alarm struct {
	Time    time.Time
	Level   string
	Code    string
	Message string
}

// FileScan is the raw per-file collection a single pass produces
type FileScan struct {
	Path          string
	StartTime     time.Time
	EndTime       time.Time
	ImuTotal      int
	OdometerTotal int
	FailTotal     int
	FailTimes     []time.Time
	Alarms        []Alarm
	EventTimes    map[string][]time.Time
}

// ParseTimestamp extracts the leading timestamp of a log line
func ParseTimestamp(line string) (time.Time, bool) {
	m := tsRE.FindStringSubmatch(line)
	if m == nil {
		return time.Time{}, false
	}
	ts, err := time.Parse(TimestampLayout, m[1])
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

func normalizeLevel(level string) string {
	switch level {
	case "warning", "Warning", "WARNING":
		return "Warning"
	case "error", "Error", "ERROR":
		return "Error"
	}
	return level
}

// Scan reads log lines and collects counters, fail times, alarms and event
// times in a single pass.
func Scan(r io.Reader) (*FileScan, error) {
	fs := &FileScan{EventTimes: make(map[string][]time.Time)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		ts, hasTS := ParseTimestamp(line)
		if hasTS {
			if fs.StartTime.IsZero() {
				fs.StartTime = ts
			}
			fs.EndTime = ts
		}

		if imuRE.MatchString(line) {
			fs.ImuTotal++
		}
		if odomRE.MatchString(line) {
			fs.OdometerTotal++
		}
		if failRE.MatchString(line) {
			fs.FailTotal++
			if hasTS {
				fs.FailTimes = append(fs.FailTimes, ts)
			}
		}

		if m := alarmRE.FindStringSubmatch(line); m != nil && hasTS {
			fs.Alarms = append(fs.Alarms, Alarm{
				Time:    ts,
				Level:   normalizeLevel(m[1]),
				Code:    m[2],
				Message: m[3],
			})
		}

		if hasTS {
			for name, pattern := range EventPatterns {
				if pattern.MatchString(line) {
					fs.EventTimes[name] = append(fs.EventTimes[name], ts)
				}
			}
		}
	}
	return fs, scanner.Err()
}

// ScanFile runs Scan over a log file
func ScanFile(path string) (*FileScan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fs, err := Scan(f)
	if err != nil {
		return nil, err
	}
	fs.Path = path
	return fs, nil
}
