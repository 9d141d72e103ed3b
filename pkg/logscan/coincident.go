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
	"fmt"
	"sort"
	"time"
)

// EventHit is an alarm that fired within the window of an odo_update_fail
type EventHit struct {
	Alarm
	// NearestFail is the absolute distance to the closest fail
	NearestFail time.Duration
}

// Key is the alarm identity used for counting: Level|code|message
func (h EventHit) Key() string {
	return fmt.Sprintf("%s|%s|%s", h.Level, h.Code, h.Message)
}

// nearestFailDelta returns the absolute distance from ts to the closest fail
// time, or false when there are no fails at all.
func nearestFailDelta(ts time.Time, failTimes []time.Time) (time.Duration, bool) {
	if len(failTimes) == 0 {
		return 0, false
	}
	best := time.Duration(-1)
	for _, ft := range failTimes {
		d := ts.Sub(ft)
		if d < 0 {
			d = -d
		}
		if best < 0 || d < best {
			best = d
		}
	}
	return best, true
}

// Coincident selects the alarms that fired within window of any fail and
// counts them per alarm identity and per level.
func Coincident(fs *FileScan, window time.Duration) (hits []EventHit, warnings, errors int, perKey map[string]int) {
	perKey = make(map[string]int)
	for _, alarm := range fs.Alarms {
		d, ok := nearestFailDelta(alarm.Time, fs.FailTimes)
		if !ok || d > window {
			continue
		}
		hit := EventHit{Alarm: alarm, NearestFail: d}
		hits = append(hits, hit)
		perKey[hit.Key()]++
		switch alarm.Level {
		case "Warning":
			warnings++
		case "Error":
			errors++
		}
	}
	return hits, warnings, errors, perKey
}

// TopKey returns the most frequent alarm identity, ties broken
// deterministically by key order.
func TopKey(perKey map[string]int) string {
	var top string
	var topCount int
	keys := make([]string, 0, len(perKey))
	for k := range perKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if perKey[k] > topCount {
			top = k
			topCount = perKey[k]
		}
	}
	return top
}

// LeadRatio is the fraction of fails preceded by at least one event within
// window before the fail. Events strictly after a fail do not count for it.
func LeadRatio(eventTimes, failTimes []time.Time, window time.Duration) float64 {
	if len(eventTimes) == 0 || len(failTimes) == 0 {
		return 0
	}
	sorted := make([]time.Time, len(eventTimes))
	copy(sorted, eventTimes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	hit := 0
	for _, ft := range failTimes {
		// last event at or before the fail
		idx := sort.Search(len(sorted), func(i int) bool { return sorted[i].After(ft) })
		if idx == 0 {
			continue
		}
		if lead := ft.Sub(sorted[idx-1]); lead >= 0 && lead <= window {
			hit++
		}
	}
	return float64(hit) / float64(len(failTimes))
}
