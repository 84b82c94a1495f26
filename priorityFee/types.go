package priorityFee

import (
	"fmt"
	"strconv"
	"strings"
)

// Number of fee samples in one percentile window.
const PRIORITY_FEE_CHUNK_SIZE = 150

// Number of most recent windows looked at.
const PRIORITY_FEE_MAX_CHUNKS = 3

// IPriorityFeeStrategy turns one window of fee samples into a fee.
type IPriorityFeeStrategy interface {
	Calculate(samples []SolanaPriorityFeeResponse) uint64
}

type priorityFeeKind uint8

const (
	priorityFeeKindNone priorityFeeKind = iota
	priorityFeeKindLow
	priorityFeeKindMedium
	priorityFeeKindHigh
	priorityFeeKindVeryHigh
	priorityFeeKindUltimate
	priorityFeeKindCustom
)

// PriorityFeeLevel is one of None, Low, Medium, High, VeryHigh, Ultimate or Custom(fee).
// The zero value is None.
type PriorityFeeLevel struct {
	kind priorityFeeKind
	fee  uint64
}

var (
	PriorityFeeLevelNone     = PriorityFeeLevel{kind: priorityFeeKindNone}
	PriorityFeeLevelLow      = PriorityFeeLevel{kind: priorityFeeKindLow}
	PriorityFeeLevelMedium   = PriorityFeeLevel{kind: priorityFeeKindMedium}
	PriorityFeeLevelHigh     = PriorityFeeLevel{kind: priorityFeeKindHigh}
	PriorityFeeLevelVeryHigh = PriorityFeeLevel{kind: priorityFeeKindVeryHigh}
	PriorityFeeLevelUltimate = PriorityFeeLevel{kind: priorityFeeKindUltimate}
)

// Estimated levels and the percentile each one maps to.
var PriorityFeeLevelPercentiles = map[PriorityFeeLevel]uint8{
	PriorityFeeLevelLow:      70,
	PriorityFeeLevelMedium:   75,
	PriorityFeeLevelHigh:     80,
	PriorityFeeLevelVeryHigh: 85,
	PriorityFeeLevelUltimate: 95,
}

func PriorityFeeLevelCustom(fee uint64) PriorityFeeLevel {
	return PriorityFeeLevel{kind: priorityFeeKindCustom, fee: fee}
}

func (p PriorityFeeLevel) IsNone() bool {
	return p.kind == priorityFeeKindNone
}

// Custom returns the caller supplied fee of a Custom level.
func (p PriorityFeeLevel) Custom() (uint64, bool) {
	if p.kind != priorityFeeKindCustom {
		return 0, false
	}
	return p.fee, true
}

func (p PriorityFeeLevel) Percentile() (uint8, bool) {
	percentile, exists := PriorityFeeLevelPercentiles[p]
	return percentile, exists
}

// Compare orders None < Low < Medium < High < VeryHigh < Ultimate. ok is false when
// either side is Custom.
func (p PriorityFeeLevel) Compare(other PriorityFeeLevel) (result int, ok bool) {
	if p.kind == priorityFeeKindCustom || other.kind == priorityFeeKindCustom {
		return 0, false
	}
	switch {
	case p.kind < other.kind:
		return -1, true
	case p.kind > other.kind:
		return 1, true
	}
	return 0, true
}

func (p PriorityFeeLevel) String() string {
	switch p.kind {
	case priorityFeeKindNone:
		return "none"
	case priorityFeeKindLow:
		return "low"
	case priorityFeeKindMedium:
		return "medium"
	case priorityFeeKindHigh:
		return "high"
	case priorityFeeKindVeryHigh:
		return "veryHigh"
	case priorityFeeKindUltimate:
		return "ultimate"
	case priorityFeeKindCustom:
		return fmt.Sprintf("custom:%d", p.fee)
	}
	return "unknown"
}

func (p PriorityFeeLevel) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PriorityFeeLevel) UnmarshalText(text []byte) error {
	level, err := ParsePriorityFeeLevel(string(text))
	if err != nil {
		return err
	}
	*p = level
	return nil
}

// ParsePriorityFeeLevel accepts the String form of a level, case-insensitively.
// A bare number is read as a custom fee.
func ParsePriorityFeeLevel(text string) (PriorityFeeLevel, error) {
	value := strings.ToLower(strings.TrimSpace(text))
	switch value {
	case "", "none":
		return PriorityFeeLevelNone, nil
	case "low":
		return PriorityFeeLevelLow, nil
	case "medium":
		return PriorityFeeLevelMedium, nil
	case "high":
		return PriorityFeeLevelHigh, nil
	case "veryhigh", "very_high", "very-high":
		return PriorityFeeLevelVeryHigh, nil
	case "ultimate":
		return PriorityFeeLevelUltimate, nil
	}
	value = strings.TrimPrefix(value, "custom:")
	fee, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return PriorityFeeLevelNone, fmt.Errorf("invalid priority fee level %q", text)
	}
	return PriorityFeeLevelCustom(fee), nil
}

// PriorityFeeLevels maps the estimated levels to micro-lamports per compute unit.
type PriorityFeeLevels map[PriorityFeeLevel]uint64

func (p PriorityFeeLevels) Get(level PriorityFeeLevel) uint64 {
	return p[level]
}

func emptyPriorityFeeLevels() PriorityFeeLevels {
	levels := make(PriorityFeeLevels, len(PriorityFeeLevelPercentiles))
	for level := range PriorityFeeLevelPercentiles {
		levels[level] = 0
	}
	return levels
}
