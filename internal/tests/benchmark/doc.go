// Package benchmark holds cross-package benchmarks for token generation,
// comparison, set lookup and the tokgen services.
//
// Run benchmarks with:
//
//	go test -bench=. -benchmem ./internal/tests/benchmark/...
//
// Check that equality cost does not depend on where tokens differ:
//
//	go test -bench=BenchmarkEqualTiming -count=10 ./internal/tests/benchmark/... | tee timing.txt
//	benchstat timing.txt
package benchmark
