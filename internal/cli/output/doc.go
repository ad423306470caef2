// Package output renders tokgen results as a table, JSON or YAML.
//
// Result types implement Tabular to control their table layout. Other values
// fall back to a reflective field/value table.
package output
