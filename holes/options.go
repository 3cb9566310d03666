package holes

import (
	"math"

	"github.com/npillmayer/refsets"
)

// Mode is a compaction policy. It is chosen when an Array is created and cannot be
// changed afterwards.
type Mode int8

// Compaction modes. Except for Guaranteed, automatic compaction happens only if the
// number of holes has reached the array's hole threshold.
//
//	Auto        at removal time and at start and end of an iteration
//	Eager       before an iteration starts
//	Guaranteed  after every removal which produced a hole (threshold ignored)
//	Lazy        after an iteration has been exhausted
//	Manual      never; clients call Compact()
//
// Lazy compaction fires only if a consumer pulls every element. Iterations
// abandoned early leave holes unreclaimed.
const (
	Auto Mode = iota
	Eager
	Guaranteed
	Lazy
	Manual
)

var modeNames = [...]string{"Auto", "Eager", "Guaranteed", "Lazy", "Manual"}

func (m Mode) String() string {
	if m < Auto || m > Manual {
		return "Mode(?)"
	}
	return modeNames[m]
}

// ModeFromString returns the mode for a (case sensitive) mode name.
func ModeFromString(s string) (Mode, error) {
	for i, n := range modeNames {
		if n == s {
			return Mode(i), nil
		}
	}
	return Auto, refsets.Errorf(refsets.InvalidArgument, "unknown compaction mode %q", s)
}

// Defaults for Array construction.
const (
	DefaultHoleThreshold = 256
	BytesPerHole         = 8 // estimated memory cost of a hole, for ThresholdBytes
)

// config collects the construction parameters of an Array.
type config struct {
	Mode      Mode
	Threshold int
	Bytes     float64 // memory budget, overrides Threshold if set
	Dedup     bool
	bytesSet  bool
}

func defaultConfig() config {
	return config{
		Mode:      Auto,
		Threshold: DefaultHoleThreshold,
		Dedup:     true,
	}
}

// holeThreshold derives the effective threshold, which is at least 1.
func (c config) holeThreshold() int {
	t := c.Threshold
	if c.bytesSet {
		if b := math.Ceil(c.Bytes / BytesPerHole); b >= math.MaxInt {
			t = math.MaxInt
		} else {
			t = int(b)
		}
	}
	if t < 1 {
		t = 1
	}
	return t
}

func (c config) validate() error {
	if c.Mode < Auto || c.Mode > Manual {
		return refsets.Errorf(refsets.InvalidArgument, "unknown compaction mode %d", c.Mode)
	}
	if c.Threshold <= 0 {
		return refsets.Errorf(refsets.InvalidArgument, "hole threshold must be positive, is %d", c.Threshold)
	}
	if c.bytesSet && (!(c.Bytes > 0) || math.IsInf(c.Bytes, 1)) { // catches NaN, too
		return refsets.Errorf(refsets.InvalidArgument, "threshold bytes must be positive and finite, is %v", c.Bytes)
	}
	return nil
}

// Option configures an Array at construction time.
type Option func(*config)

// Compaction sets the compaction mode (default Auto).
func Compaction(m Mode) Option {
	return func(c *config) {
		c.Mode = m
	}
}

// HoleThreshold sets the number of holes which makes an array eligible for
// automatic compaction (default 256).
func HoleThreshold(n int) Option {
	return func(c *config) {
		c.Threshold = n
	}
}

// ThresholdBytes sets the hole threshold as a memory budget. The threshold will be
// ceil(bytes / BytesPerHole), saturating at math.MaxInt. It overrides HoleThreshold.
func ThresholdBytes(bytes float64) Option {
	return func(c *config) {
		c.Bytes = bytes
		c.bytesSet = true
	}
}

// Deduplicate selects a single-occupancy value index if true (default), a
// multi-occupancy index otherwise.
func Deduplicate(dedup bool) Option {
	return func(c *config) {
		c.Dedup = dedup
	}
}
