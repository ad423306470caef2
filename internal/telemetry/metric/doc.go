// Package metric provides Prometheus metrics for token operations.
//
// Metrics include:
//
//   - Generated and cleared token counters
//   - Constant-time comparison results
//   - Decode error counters
//   - Batch issue latency histograms
//
// The registry is written to a node_exporter textfile with WriteTextfile,
// since tokgen exits before any scraper could reach it.
package metric
