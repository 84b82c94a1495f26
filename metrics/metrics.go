// Package metrics contains all smart transaction metrics
package metrics

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"
)

const (
	PathRpc  = "rpc"
	PathJito = "jito"
)

var (
	simulationRetries     = metrics.NewCounter("smarttx_simulation_retries_total")
	simulationFallbacks   = metrics.NewCounter("smarttx_simulation_fallback_total")
	simulationErrors      = metrics.NewCounter("smarttx_simulation_errors_total")
	prepareDurationMillis = metrics.NewSummary("smarttx_prepare_duration_milliseconds")
	priorityFeeApplied    = metrics.NewHistogram("smarttx_priority_fee_micro_lamports")
	computeUnitLimit      = metrics.NewHistogram("smarttx_compute_unit_limit")
)

func IncSimulationRetries() {
	simulationRetries.Inc()
}

func IncSimulationFallbacks() {
	simulationFallbacks.Inc()
}

func IncSimulationErrors() {
	simulationErrors.Inc()
}

func IncTxSent(path string) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`smarttx_sent_total{path=%q}`, path)).Inc()
}

func IncTxConfirmed(path string) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`smarttx_confirmed_total{path=%q}`, path)).Inc()
}

func IncTxFailed(path string) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`smarttx_failed_total{path=%q}`, path)).Inc()
}

func IncTxTimeout(path string) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`smarttx_timeout_total{path=%q}`, path)).Inc()
}

func RecordPrepareDuration(duration int64) {
	prepareDurationMillis.Update(float64(duration))
}

func RecordSendDuration(path string, duration int64) {
	metrics.GetOrCreateSummary(fmt.Sprintf(`smarttx_send_duration_milliseconds{path=%q}`, path)).Update(float64(duration))
}

func RecordConfirmDuration(path string, duration int64) {
	metrics.GetOrCreateSummary(fmt.Sprintf(`smarttx_confirm_duration_milliseconds{path=%q}`, path)).Update(float64(duration))
}

func RecordPriorityFee(fee uint64) {
	priorityFeeApplied.Update(float64(fee))
}

func RecordComputeUnitLimit(limit uint32) {
	computeUnitLimit.Update(float64(limit))
}
