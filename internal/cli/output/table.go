package output

import (
	"fmt"
	"io"
	"reflect"
	"strings"
	"text/tabwriter"
	"time"
)

// Tabular is implemented by results with their own table layout.
type Tabular interface {
	Table() *Table
}

// TableFormatter formats data as aligned columns.
type TableFormatter struct {
	NoHeaders bool
}

// Format renders a Table, a Tabular, a string slice (one per line) or a
// struct (field/value rows).
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case nil:
		return nil
	case *Table:
		return v.RenderWithOptions(w, f.NoHeaders)
	case Table:
		return v.RenderWithOptions(w, f.NoHeaders)
	case Tabular:
		return v.Table().RenderWithOptions(w, f.NoHeaders)
	case []string:
		for _, s := range v {
			if _, err := fmt.Fprintln(w, s); err != nil {
				return err
			}
		}
		return nil
	}

	rv := reflect.ValueOf(data)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("output: cannot render %T as a table", data)
	}
	return structToTable(rv, "").RenderWithOptions(w, f.NoHeaders)
}

// structToTable flattens nested structs into dotted field names.
func structToTable(v reflect.Value, prefix string) *Table {
	table := &Table{Headers: []string{"FIELD", "VALUE"}}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name := prefix + fieldName(field)
		fv := v.Field(i)
		if fv.Kind() == reflect.Struct && fv.Type() != reflect.TypeOf(time.Time{}) {
			table.Rows = append(table.Rows, structToTable(fv, name+".").Rows...)
			continue
		}
		table.AddRow(name, formatValue(fv))
	}

	return table
}

func fieldName(field reflect.StructField) string {
	if tag := field.Tag.Get("json"); tag != "" {
		if name, _, _ := strings.Cut(tag, ","); name != "" && name != "-" {
			return name
		}
	}
	return strings.ToLower(field.Name)
}

func formatValue(v reflect.Value) string {
	if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil() {
		return "-"
	}
	if t, ok := v.Interface().(time.Time); ok {
		if t.IsZero() {
			return "-"
		}
		return t.Format(time.RFC3339)
	}
	if v.Kind() == reflect.String && v.String() == "" {
		return "-"
	}
	return fmt.Sprint(v.Interface())
}

// Table represents tabular data.
type Table struct {
	Headers []string
	Rows    [][]string
}

// NewTable creates a table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers}
}

// Render renders the table with headers.
func (t *Table) Render(w io.Writer) error {
	return t.RenderWithOptions(w, false)
}

// RenderWithOptions renders the table, optionally without the header row.
func (t Table) RenderWithOptions(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if !noHeaders && len(t.Headers) > 0 {
		if _, err := fmt.Fprintln(tw, strings.Join(t.Headers, "\t")); err != nil {
			return err
		}
	}
	for _, row := range t.Rows {
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}

	return tw.Flush()
}

// AddRow appends a row.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}
