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
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// Verdicts on why vel_rotate is missing from the encoded odometry stream
const (
	VerdictNoOdometer = "no odometer packets in the window (upstream stalled or unavailable)"
	VerdictUpstream   = "upstream odometer update broken, not plain zero omission"
	VerdictZeroOmit   = "vel_rotate is zero and dropped as a default value"
	VerdictGrayZone   = "inconclusive, narrow the window and recheck against motion state"
)

// fault keywords counted in warning/error logs, matched case-insensitively
var velRotateKeywords = []string{"no odom", "transform fail", "encoder timeout", "no imu"}

// keywordSampleLimit caps the matched lines kept for the report
const keywordSampleLimit = 20

// VelRotateScan separates two explanations for a missing vel_rotate field:
// the value is genuinely zero and the encoder omits the default, or the
// upstream odometer feed is broken. Odometer payloads look like
// cycle|timestamp|x|y|angle|...|vel_x|vel_y|vel_rotate; the first and last
// fields carry the evidence.
type VelRotateScan struct {
	Path               string         `json:"path"`
	OdometerTotal      int            `json:"odometerTotal"`
	ImuTotal           int            `json:"imuTotal"`
	FailTotal          int            `json:"failTotal"`
	VelRotateZero      int            `json:"velRotateZero"`
	VelRotateNonzero   int            `json:"velRotateNonzero"`
	VelRotateParseFail int            `json:"velRotateParseFail"`
	CycleJumpCount     int            `json:"cycleJumpCount"`
	CycleMaxStep       int            `json:"cycleMaxStep"`
	KeywordHits        map[string]int `json:"keywordHits"`
	KeywordSamples     []string       `json:"keywordSamples,omitempty"`
	Verdict            string         `json:"verdict"`
	Reasons            []string       `json:"reasons"`
}

// ParseOdoPayload splits an Odometer payload into its first field (cycle)
// and last field (vel_rotate). hasCycle and hasVel report whether the field
// parsed; a payload with a single field has no vel_rotate at all.
func ParseOdoPayload(payload string) (cycle int, hasCycle bool, velRotate float64, hasVel bool) {
	parts := strings.Split(payload, "|")
	if c, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil {
		cycle = c
		hasCycle = true
	}
	if len(parts) >= 2 {
		if v, err := strconv.ParseFloat(strings.TrimSpace(parts[len(parts)-1]), 64); err == nil {
			velRotate = v
			hasVel = true
		}
	}
	return
}

// inWindow bounds ts by start/end; a zero bound is open
func inWindow(ts, start, end time.Time) bool {
	if !start.IsZero() && ts.Before(start) {
		return false
	}
	if !end.IsZero() && ts.After(end) {
		return false
	}
	return true
}

// ScanVelRotate reads the main log and collects the vel_rotate and cycle
// continuity counters. Lines without a leading timestamp are skipped.
func ScanVelRotate(r io.Reader, start, end time.Time) (*VelRotateScan, error) {
	vs := &VelRotateScan{CycleMaxStep: 1, KeywordHits: make(map[string]int)}
	prevCycle := 0
	hasPrev := false

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		ts, ok := ParseTimestamp(line)
		if !ok || !inWindow(ts, start, end) {
			continue
		}

		if imuRE.MatchString(line) {
			vs.ImuTotal++
		}
		if failRE.MatchString(line) {
			vs.FailTotal++
		}

		m := odomRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		vs.OdometerTotal++

		cycle, hasCycle, vel, hasVel := ParseOdoPayload(m[1])
		if hasCycle {
			if hasPrev {
				step := cycle - prevCycle
				if step != 1 {
					vs.CycleJumpCount++
					if step > vs.CycleMaxStep {
						vs.CycleMaxStep = step
					}
				}
			}
			prevCycle = cycle
			hasPrev = true
		}

		switch {
		case !hasVel:
			vs.VelRotateParseFail++
		case math.Abs(vel) < 1e-9:
			vs.VelRotateZero++
		default:
			vs.VelRotateNonzero++
		}
	}
	return vs, scanner.Err()
}

// ScanKeywords counts the fault keywords in a warning/error log. Lines whose
// timestamp falls outside the window are skipped, lines without a timestamp
// still count.
func (vs *VelRotateScan) ScanKeywords(r io.Reader, start, end time.Time) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if ts, ok := ParseTimestamp(line); ok && !inWindow(ts, start, end) {
			continue
		}
		lowered := strings.ToLower(line)
		for _, k := range velRotateKeywords {
			if strings.Contains(lowered, k) {
				vs.KeywordHits[k]++
				if len(vs.KeywordSamples) < keywordSampleLimit {
					vs.KeywordSamples = append(vs.KeywordSamples, strings.TrimRight(line, " \t\r"))
				}
				break
			}
		}
	}
	return scanner.Err()
}

// Classify fills Verdict and Reasons from the collected counters.
// Frequent fails together with cycle jumps, or no odom / transform fail in
// the warning and error logs, point upstream; a clean stream with zero
// samples points at default-value omission.
func (vs *VelRotateScan) Classify() {
	vs.Reasons = nil
	if vs.OdometerTotal == 0 {
		vs.Verdict = VerdictNoOdometer
		vs.Reasons = append(vs.Reasons, "no Odometer packets in the window")
		return
	}

	jumpLimit := vs.OdometerTotal / 100
	if jumpLimit < 2 {
		jumpLimit = 2
	}
	failHigh := vs.FailTotal > 0
	jumpHigh := vs.CycleJumpCount > jumpLimit
	noOdomHit := vs.KeywordHits["no odom"] > 0 || vs.KeywordHits["transform fail"] > 0

	if failHigh {
		vs.Reasons = append(vs.Reasons,
			fmt.Sprintf("odo_update_fail seen %d times", vs.FailTotal))
	}
	if jumpHigh {
		vs.Reasons = append(vs.Reasons,
			fmt.Sprintf("cycle jumped %d times, max step %d", vs.CycleJumpCount, vs.CycleMaxStep))
	}
	if noOdomHit {
		vs.Reasons = append(vs.Reasons, "warning/error logs mention no odom or transform fail")
	}

	if (failHigh && jumpHigh) || noOdomHit {
		vs.Verdict = VerdictUpstream
		return
	}
	if vs.VelRotateZero > 0 && vs.FailTotal == 0 && vs.CycleJumpCount <= 1 {
		vs.Reasons = append(vs.Reasons,
			fmt.Sprintf("%d zero samples with no fails and at most one cycle jump", vs.VelRotateZero))
		vs.Verdict = VerdictZeroOmit
		return
	}
	vs.Reasons = append(vs.Reasons, "evidence does not converge in one direction")
	vs.Verdict = VerdictGrayZone
}

// AnalyzeVelRotate scans the main log plus optional warning/error logs and
// classifies the result. Missing auxiliary logs are skipped silently.
func AnalyzeVelRotate(logPath string, auxPaths []string, start, end time.Time) (*VelRotateScan, error) {
	f, err := os.Open(logPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	vs, err := ScanVelRotate(f, start, end)
	if err != nil {
		return nil, err
	}
	vs.Path = logPath

	for _, p := range auxPaths {
		if p == "" {
			continue
		}
		aux, err := os.Open(p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		err = vs.ScanKeywords(aux, start, end)
		aux.Close()
		if err != nil {
			return nil, err
		}
	}

	vs.Classify()
	return vs, nil
}
