// Package confloader loads layered configuration with koanf.
//
// Sources are merged in increasing priority:
//
//  1. Defaults, supplied as a map
//  2. A YAML file
//  3. Environment variables (TOKGEN_SECTION_KEY)
//  4. Command-line flag overrides, supplied as a map
//
// Map keys may be nested maps or dotted paths such as "token.size".
package confloader
