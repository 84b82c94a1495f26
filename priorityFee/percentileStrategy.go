package priorityFee

import (
	"fusiongo/utils"
	"slices"
)

// PercentileStrategy picks the nearest-rank percentile of the sample fees.
type PercentileStrategy struct {
	Percentile uint8
}

func (p *PercentileStrategy) Calculate(samples []SolanaPriorityFeeResponse) uint64 {
	return nearestRank(sortedFees(samples), p.Percentile)
}

func sortedFees(samples []SolanaPriorityFeeResponse) []uint64 {
	fees := utils.ValuesFunc(samples, func(sample SolanaPriorityFeeResponse) uint64 {
		return sample.PrioritizationFee
	})
	slices.Sort(fees)
	return fees
}

// nearestRank expects ascending fees. The 1-based rank is ceil(p/100 * n) clamped to
// [1, n].
func nearestRank(fees []uint64, percentile uint8) uint64 {
	n := len(fees)
	if n == 0 {
		return 0
	}
	rank := (int(percentile)*n + 99) / 100
	rank = max(1, min(rank, n))
	return fees[rank-1]
}

// levelStrategies returns one PercentileStrategy per named level.
func levelStrategies() map[PriorityFeeLevel]IPriorityFeeStrategy {
	strategies := make(map[PriorityFeeLevel]IPriorityFeeStrategy, len(PriorityFeeLevelPercentiles))
	for level, percentile := range PriorityFeeLevelPercentiles {
		strategies[level] = &PercentileStrategy{Percentile: percentile}
	}
	return strategies
}

func calculateLevels(strategies map[PriorityFeeLevel]IPriorityFeeStrategy, samples []SolanaPriorityFeeResponse) PriorityFeeLevels {
	levels := make(PriorityFeeLevels, len(strategies))
	for level, strategy := range strategies {
		levels[level] = strategy.Calculate(samples)
	}
	return levels
}
