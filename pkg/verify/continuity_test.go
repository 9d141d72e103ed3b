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

import (
	"testing"
)

func result(offsets []int, counters []uint32) *Result {
	return &Result{
		FrameSize: 68,
		Valid:     len(offsets),
		Offsets:   offsets,
		Counters:  counters,
	}
}

func TestContinuityUndefinedBelowTwoFrames(t *testing.T) {
	if c := result(nil, nil).Continuity(); c != nil {
		t.Fatalf("zero frames: continuity = %+v, want nil", c)
	}
	if c := result([]int{0}, []uint32{5}).Continuity(); c != nil {
		t.Fatalf("one frame: continuity = %+v, want nil", c)
	}
}

func TestContinuityBackToBackMonotonic(t *testing.T) {
	c := result([]int{0, 68, 136}, []uint32{10, 11, 12}).Continuity()
	if c == nil {
		t.Fatal("continuity = nil")
	}
	if c.Pairs != 2 || c.MonotonicPairs != 2 {
		t.Fatalf("monotonic = %d/%d, want 2/2", c.MonotonicPairs, c.Pairs)
	}
	if c.CounterDeltaMin != 1 || c.CounterDeltaMax != 1 {
		t.Fatalf("counter deltas = [%d, %d], want [1, 1]", c.CounterDeltaMin, c.CounterDeltaMax)
	}
	if c.OffsetGapMin != 68 || c.OffsetGapMax != 68 {
		t.Fatalf("offset gaps = [%d, %d], want [68, 68]", c.OffsetGapMin, c.OffsetGapMax)
	}
	if got := c.MonotonicRatio(); got != 1.0 {
		t.Fatalf("ratio = %v, want 1.0", got)
	}
}

func TestContinuityCounterRegression(t *testing.T) {
	c := result([]int{0, 68, 200}, []uint32{100, 50, 60}).Continuity()
	if c.MonotonicPairs != 1 || c.Pairs != 2 {
		t.Fatalf("monotonic = %d/%d, want 1/2", c.MonotonicPairs, c.Pairs)
	}
	if c.CounterDeltaMin != -50 || c.CounterDeltaMax != 10 {
		t.Fatalf("counter deltas = [%d, %d], want [-50, 10]", c.CounterDeltaMin, c.CounterDeltaMax)
	}
	if c.OffsetGapMin != 68 || c.OffsetGapMax != 132 {
		t.Fatalf("offset gaps = [%d, %d], want [68, 132]", c.OffsetGapMin, c.OffsetGapMax)
	}
}

func TestContinuityWraparoundVisible(t *testing.T) {
	c := result([]int{0, 68}, []uint32{0xFFFFFFFF, 0}).Continuity()
	if c.CounterDeltaMin != -4294967295 {
		t.Fatalf("wraparound delta = %d, want -4294967295", c.CounterDeltaMin)
	}
	if c.MonotonicPairs != 0 {
		t.Fatalf("wraparound counted as monotonic")
	}
}

func TestContinuityEqualCountersAreMonotonic(t *testing.T) {
	c := result([]int{0, 68}, []uint32{7, 7}).Continuity()
	if c.MonotonicPairs != 1 {
		t.Fatalf("equal counters: monotonic = %d, want 1", c.MonotonicPairs)
	}
	if c.CounterDeltaMin != 0 || c.CounterDeltaMax != 0 {
		t.Fatalf("counter deltas = [%d, %d], want [0, 0]", c.CounterDeltaMin, c.CounterDeltaMax)
	}
}
