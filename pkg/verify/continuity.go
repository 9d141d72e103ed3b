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

package verify

// Continuity holds stream-health statistics over consecutive valid frames.
// Deltas are signed so a counter wraparound shows up as a large negative
// value instead of being normalized away.
type Continuity struct {
	// Pairs is the number of consecutive valid frame pairs, n-1
	Pairs int `json:"pairs"`
	// MonotonicPairs counts pairs whose counter did not decrease
	MonotonicPairs  int   `json:"monotonicPairs"`
	CounterDeltaMin int64 `json:"counterDeltaMin"`
	CounterDeltaMax int64 `json:"counterDeltaMax"`
	// Offset gaps equal to the frame size mean back-to-back frames,
	// larger gaps mean dropped or corrupted data between syncs
	OffsetGapMin int `json:"offsetGapMin"`
	OffsetGapMax int `json:"offsetGapMax"`
}

// MonotonicRatio is the monotonic pair fraction as a float for display.
func (c *Continuity) MonotonicRatio() float64 {
	return float64(c.MonotonicPairs) / float64(c.Pairs)
}

// Continuity reduces the scan result to continuity statistics. It is defined
// only for results with at least two valid frames and returns nil otherwise.
func (r *Result) Continuity() *Continuity {
	if r.Valid < 2 {
		return nil
	}

	c := &Continuity{Pairs: r.Valid - 1}
	for k := 1; k < r.Valid; k++ {
		delta := int64(r.Counters[k]) - int64(r.Counters[k-1])
		gap := r.Offsets[k] - r.Offsets[k-1]

		if delta >= 0 {
			c.MonotonicPairs++
		}
		if k == 1 || delta < c.CounterDeltaMin {
			c.CounterDeltaMin = delta
		}
		if k == 1 || delta > c.CounterDeltaMax {
			c.CounterDeltaMax = delta
		}
		if k == 1 || gap < c.OffsetGapMin {
			c.OffsetGapMin = gap
		}
		if k == 1 || gap > c.OffsetGapMax {
			c.OffsetGapMax = gap
		}
	}

	return c
}
