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
	"time"
)

// Root cause labels, ordered roughly from chassis link to upper layers
const (
	CauseNoFails          = "no odo_update_fail"
	CauseNoData           = "no motion data in log"
	CauseChassisLink      = "chassis link unstable (EtherCAT + encoder)"
	CauseEtherCATFirst    = "EtherCAT link first"
	CauseEncoderFirst     = "encoder link first"
	CauseChassisDIO       = "chassis link / DIO first"
	CauseUpstreamTiming   = "upper-layer timing or queue matching (with no odom)"
	CauseOdometerStalled  = "upstream odometer stalled"
	CauseOdometerSparse   = "odometer extremely sparse (upstream update broken)"
	CauseWeakEvidence     = "weak evidence (need driver-side logs)"
	CauseLinkUnattributed = "link issue (direction unclear)"
)

// Stats is the per-file root-cause summary
type Stats struct {
	Path              string         `json:"path"`
	StartTime         time.Time      `json:"startTime"`
	EndTime           time.Time      `json:"endTime"`
	ImuTotal          int            `json:"imuTotal"`
	OdometerTotal     int            `json:"odometerTotal"`
	FailTotal         int            `json:"failTotal"`
	Events            map[string]int `json:"events"`
	CoincidentWarning int            `json:"coincidentWarning"`
	CoincidentError   int            `json:"coincidentError"`
	CoincidentTop     string         `json:"coincidentTop,omitempty"`
	LeadEncoderRatio  float64        `json:"leadEncoderRatio"`
	LeadEtherCATRatio float64        `json:"leadEthercatRatio"`
	Priority          string         `json:"priority"`
	Cause             string         `json:"cause"`
}

// JudgePriority weighs how often encoder and EtherCAT symptoms lead the
// fails and picks the link to chase first.
func JudgePriority(leadEncoder, leadEtherCAT float64, failTotal int) string {
	switch {
	case failTotal == 0:
		return CauseNoFails
	case leadEncoder < 0.05 && leadEtherCAT < 0.05:
		return CauseWeakEvidence
	case leadEncoder >= 0.3 && leadEtherCAT >= 0.3:
		return CauseChassisLink
	case leadEncoder-leadEtherCAT >= 0.15:
		return CauseEncoderFirst
	case leadEtherCAT-leadEncoder >= 0.15:
		return CauseEtherCATFirst
	case leadEncoder >= 0.2 || leadEtherCAT >= 0.2:
		return CauseLinkUnattributed
	}
	return CauseWeakEvidence
}

// ClassifyCause maps raw counters to a coarse root-cause bucket
func ClassifyCause(imuTotal, odometerTotal, failTotal int, events map[string]int) string {
	ether := events["ethercat_timeout"]
	enc := events["encoder_timeout"]
	dio := events["dio_disconnect"]
	noOdom := events["no_odom"]
	tf := events["transform_fail"]

	switch {
	case imuTotal == 0 && odometerTotal == 0 && failTotal == 0:
		return CauseNoData
	case failTotal == 0:
		return CauseNoFails
	case ether > 0 && enc > 0:
		return CauseChassisLink
	case ether > 0:
		return CauseEtherCATFirst
	case enc > 0:
		return CauseEncoderFirst
	case dio > 0 && (noOdom > 0 || tf > 0):
		return CauseChassisDIO
	case noOdom > 0 || tf > 0:
		return CauseUpstreamTiming
	case odometerTotal == 0 && imuTotal > 0:
		return CauseOdometerStalled
	}

	sparse := imuTotal / 100
	if sparse < 10 {
		sparse = 10
	}
	if odometerTotal < sparse {
		return CauseOdometerSparse
	}
	return CauseWeakEvidence
}

// Analyze reduces a file scan to its summary
func Analyze(fs *FileScan, window time.Duration) *Stats {
	events := make(map[string]int, len(EventPatterns))
	for name := range EventPatterns {
		events[name] = len(fs.EventTimes[name])
	}

	_, warnings, errors, perKey := Coincident(fs, window)

	leadEncoder := LeadRatio(fs.EventTimes["encoder_timeout"], fs.FailTimes, window)
	leadEtherCAT := LeadRatio(fs.EventTimes["ethercat_timeout"], fs.FailTimes, window)

	return &Stats{
		Path:              fs.Path,
		StartTime:         fs.StartTime,
		EndTime:           fs.EndTime,
		ImuTotal:          fs.ImuTotal,
		OdometerTotal:     fs.OdometerTotal,
		FailTotal:         fs.FailTotal,
		Events:            events,
		CoincidentWarning: warnings,
		CoincidentError:   errors,
		CoincidentTop:     TopKey(perKey),
		LeadEncoderRatio:  leadEncoder,
		LeadEtherCATRatio: leadEtherCAT,
		Priority:          JudgePriority(leadEncoder, leadEtherCAT, fs.FailTotal),
		Cause:             ClassifyCause(fs.ImuTotal, fs.OdometerTotal, fs.FailTotal, events),
	}
}

// AnalyzeFile scans the log file and reduces it in one step
func AnalyzeFile(path string, window time.Duration) (*Stats, error) {
	fs, err := ScanFile(path)
	if err != nil {
		return nil, err
	}
	return Analyze(fs, window), nil
}
