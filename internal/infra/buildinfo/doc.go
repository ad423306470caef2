// Package buildinfo reports the tokgen version.
//
// Release builds inject values via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/securetoken-go/internal/infra/buildinfo.Version=v1.0.0"
//
// Development builds fall back to the module and VCS data the Go toolchain
// embeds in the binary.
package buildinfo
