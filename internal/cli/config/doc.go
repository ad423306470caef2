// Package config defines tokgen's configuration.
//
// Values are layered by confloader: built-in defaults, then the YAML file
// (~/.tokgen/config.yaml unless --config is given), then TOKGEN_* environment
// variables, then command-line flags.
//
// Example file:
//
//	token:
//	  size: 32
//	  encoding: base64
//	issue:
//	  count: 1
//	  rate: 100
//	  burst: 10
//	log:
//	  level: warn
//	output: table
package config
