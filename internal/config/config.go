// Package config holds the membership model's tunables and named presets.
// The sub-machines read only ElderSize and MaxRelocateAttempts; the other
// fields are validated and set by the presets but not read elsewhere.
package config

import (
	"errors"
	"time"
)

var (
	ErrInvalidElderSize        = errors.New("elder size must be >= 1")
	ErrInvalidRecommendedSize  = errors.New("recommended section size must be >= elder size")
	ErrInvalidWorkUnitsToEarn  = errors.New("work units to relocate must be >= 1")
	ErrInvalidMaxProofAttempts = errors.New("max resource proof attempts must be >= 1")
)

// Config bounds the membership and relocation model: how many elders a
// section keeps, when a candidate has done enough work to be relocated, and
// how long sub-machines wait before retrying.
type Config struct {
	// ElderSize is the number of top-ranked members that hold elder status.
	ElderSize int
	// RecommendedSectionSize is the nominal split threshold. No sub-machine
	// reads it: a split is only started through the SetChurnNeeded test event.
	RecommendedSectionSize int
	// MinSectionSize is the nominal merge threshold. No sub-machine reads it:
	// a merge is only started through the SetChurnNeeded test event.
	MinSectionSize int
	// WorkUnitsToRelocate is the nominal work-unit threshold for age-increase
	// relocation. No sub-machine reads it: a node is eligible once its
	// WorkUnitsDone reaches its age.
	WorkUnitsToRelocate int64
	// MaxResourceProofAttempts is validated to be at least 1.
	// StartResourceProof does not read it and does not retry a proof.
	MaxResourceProofAttempts int
	// MaxRelocateAttempts bounds how many CheckRelocate ticks a source
	// section keeps an ExpectCandidate outstanding; after that the candidate
	// is dropped from the tracked set, so a later CheckRelocate can send
	// ExpectCandidate for it again.
	MaxRelocateAttempts int
	// The four durations below are not read: timers are journalled as
	// scheduled events with no delay attached.
	//
	// ResourceProofDuration is how long a destination elder waits for a
	// proof part before timing out.
	ResourceProofDuration time.Duration
	// ApprovalTimeout bounds how long an expected candidate has to connect
	// before its ticket is purged.
	ApprovalTimeout time.Duration
	// CheckRelocateInterval is the nominal period of the CheckRelocate
	// timer.
	CheckRelocateInterval time.Duration
	// CheckElderInterval is how often elder/merge/split churn is evaluated.
	CheckElderInterval time.Duration
}

func (c Config) Validate() error {
	switch {
	case c.ElderSize < 1:
		return ErrInvalidElderSize
	case c.RecommendedSectionSize < c.ElderSize:
		return ErrInvalidRecommendedSize
	case c.WorkUnitsToRelocate < 1:
		return ErrInvalidWorkUnitsToEarn
	case c.MaxResourceProofAttempts < 1:
		return ErrInvalidMaxProofAttempts
	default:
		return nil
	}
}

// DefaultConfig is the baseline tuning: a 3-elder section, a handful of
// work units per relocation, short local timers.
func DefaultConfig() Config {
	return Config{
		ElderSize:                3,
		RecommendedSectionSize:   8,
		MinSectionSize:           4,
		WorkUnitsToRelocate:      5,
		MaxResourceProofAttempts: 3,
		MaxRelocateAttempts:      3,
		ResourceProofDuration:    30 * time.Second,
		ApprovalTimeout:          60 * time.Second,
		CheckRelocateInterval:    10 * time.Second,
		CheckElderInterval:       5 * time.Second,
	}
}

// MainnetConfig widens the section bounds and slows churn checks for a
// production-scale deployment.
func MainnetConfig() Config {
	c := DefaultConfig()
	c.RecommendedSectionSize = 50
	c.MinSectionSize = 15
	c.WorkUnitsToRelocate = 10
	c.CheckRelocateInterval = time.Minute
	c.CheckElderInterval = time.Minute
	return c
}

// TestnetConfig keeps mainnet-shaped sections but relocates and churns
// faster, for soak testing.
func TestnetConfig() Config {
	c := DefaultConfig()
	c.RecommendedSectionSize = 20
	c.MinSectionSize = 6
	c.WorkUnitsToRelocate = 6
	return c
}

// LocalConfig lowers the section-size and work-unit thresholds and the
// timer intervals for local runs; ElderSize stays 3.
func LocalConfig() Config {
	c := DefaultConfig()
	c.ElderSize = 3
	c.RecommendedSectionSize = 5
	c.MinSectionSize = 2
	c.WorkUnitsToRelocate = 1
	c.CheckRelocateInterval = 100 * time.Millisecond
	c.CheckElderInterval = 50 * time.Millisecond
	return c
}

// PresetNames lists the presets GetByName accepts.
func PresetNames() []string { return []string{"mainnet", "testnet", "local"} }

// GetByName resolves a preset name to its Config.
func GetByName(preset string) (Config, error) {
	switch preset {
	case "mainnet":
		return MainnetConfig(), nil
	case "testnet":
		return TestnetConfig(), nil
	case "local", "":
		return LocalConfig(), nil
	default:
		return Config{}, errors.New("unknown config preset: " + preset)
	}
}
