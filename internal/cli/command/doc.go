// Package command defines the tokgen command line with urfave/cli/v2.
//
//   - root.go: App, global flags, shared runtime
//   - generate.go: issue a batch of tokens
//   - compare.go: compare, sort and inspect encoded tokens
//   - config.go: show the effective configuration
//   - version.go: build information
//
// Every command renders its result through internal/cli/output, so the
// --output flag applies uniformly.
package command
