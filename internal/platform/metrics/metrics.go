package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	rateLimited     uint64
	payslipsIssued  uint64
	renderFailures  uint64
	totalDurationMs uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) PayslipIssued() {
	atomic.AddUint64(&c.payslipsIssued, 1)
}

// RenderFailure counts payslips persisted without a generated document so
// operators can spot orphaned records.
func (c *Collector) RenderFailure() {
	atomic.AddUint64(&c.renderFailures, 1)
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	limited := atomic.LoadUint64(&c.rateLimited)
	issued := atomic.LoadUint64(&c.payslipsIssued)
	renderFailed := atomic.LoadUint64(&c.renderFailures)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":       total,
		"errorsTotal":         errs,
		"rateLimitedTotal":    limited,
		"payslipsIssuedTotal": issued,
		"renderFailuresTotal": renderFailed,
		"avgDurationMs":       avg,
		"totalDurationMs":     totalMs,
	}
}
