package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ChartKind is the rendering type of a chart
type ChartKind string

const (
	ChartBar  ChartKind = "bar"
	ChartLine ChartKind = "line"
	ChartPie  ChartKind = "pie"
)

// ChartKinds is the fixed chart-type catalog
var ChartKinds = []ChartKind{ChartBar, ChartLine, ChartPie}

const (
	// NameColumn holds the row label
	NameColumn = "name"
	// ValueColumn holds the single pie value
	ValueColumn = "value"
)

var (
	ErrUnknownChartKind = errors.New("unknown chart kind")
	ErrRowOutOfRange    = errors.New("chart row out of range")
	ErrUnknownColumn    = errors.New("unknown chart column")
	ErrInconsistentRows = errors.New("chart rows have inconsistent series")
)

// ParseChartKind converts a raw kind string
func ParseChartKind(s string) (ChartKind, error) {
	k := ChartKind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case ChartBar, ChartLine, ChartPie:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownChartKind, s)
}

// Label is the capitalised kind name ("Bar", "Line", "Pie")
func (k ChartKind) Label() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// ChartRow is one record of chart data. Bar and line rows carry one value per
// series; pie rows carry a single "value" entry.
type ChartRow struct {
	Name   string
	Values map[string]float64
}

// MarshalJSON flattens the row to {"name": ..., "<series>": n, ...}
func (r ChartRow) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(r.Values)+1)
	for k, v := range r.Values {
		flat[k] = v
	}
	flat[NameColumn] = r.Name
	return json.Marshal(flat)
}

// UnmarshalJSON reads the flat row form
func (r *ChartRow) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	r.Name = ""
	r.Values = make(map[string]float64, len(flat))
	for k, raw := range flat {
		if k == NameColumn {
			if err := json.Unmarshal(raw, &r.Name); err != nil {
				return fmt.Errorf("row name: %w", err)
			}
			continue
		}
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("row value %q: %w", k, err)
		}
		r.Values[k] = v
	}
	return nil
}

// Series returns the row's value keys, sorted
func (r ChartRow) Series() []string {
	keys := make([]string, 0, len(r.Values))
	for k := range r.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r ChartRow) clone() ChartRow {
	values := make(map[string]float64, len(r.Values))
	for k, v := range r.Values {
		values[k] = v
	}
	return ChartRow{Name: r.Name, Values: values}
}

// ChartRecord is a typed, titled table of chart data
type ChartRecord struct {
	ID    string     `json:"id"`
	Kind  ChartKind  `json:"type"`
	Title string     `json:"title"`
	Rows  []ChartRow `json:"data"`
}

// Clone deep-copies the chart
func (c ChartRecord) Clone() ChartRecord {
	if c.Rows != nil {
		rows := make([]ChartRow, len(c.Rows))
		for i, r := range c.Rows {
			rows[i] = r.clone()
		}
		c.Rows = rows
	}
	return c
}

// Columns lists the table columns: name first, then the value columns
func (c *ChartRecord) Columns() []string {
	if c.Kind == ChartPie {
		return []string{NameColumn, ValueColumn}
	}
	cols := []string{NameColumn}
	if len(c.Rows) > 0 {
		cols = append(cols, c.Rows[0].Series()...)
	}
	return cols
}

// AddRow appends a row named "New Row" with every value column at zero
func (c *ChartRecord) AddRow() {
	values := make(map[string]float64)
	for _, col := range c.Columns()[1:] {
		values[col] = 0
	}
	c.Rows = append(c.Rows, ChartRow{Name: "New Row", Values: values})
}

// DeleteRow removes the row at index
func (c *ChartRecord) DeleteRow(index int) error {
	if index < 0 || index >= len(c.Rows) {
		return fmt.Errorf("%w: %d of %d", ErrRowOutOfRange, index, len(c.Rows))
	}
	c.Rows = append(c.Rows[:index], c.Rows[index+1:]...)
	return nil
}

// SetCell writes one table cell. The name column stores text; every other
// column stores a number, and input that does not parse is stored as zero.
func (c *ChartRecord) SetCell(row int, column, raw string) error {
	if row < 0 || row >= len(c.Rows) {
		return fmt.Errorf("%w: %d of %d", ErrRowOutOfRange, row, len(c.Rows))
	}
	known := false
	for _, col := range c.Columns() {
		if col == column {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	if column == NameColumn {
		c.Rows[row].Name = raw
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		v = 0
	}
	if c.Rows[row].Values == nil {
		c.Rows[row].Values = make(map[string]float64)
	}
	c.Rows[row].Values[column] = v
	return nil
}

// Validate checks the kind and the series consistency of the rows. The kind
// must be stored in its canonical lower-case form.
// Empty rows are allowed while the chart is being edited.
func (c *ChartRecord) Validate() error {
	k, err := ParseChartKind(string(c.Kind))
	if err != nil {
		return err
	}
	if k != c.Kind {
		return fmt.Errorf("%w: %q is not canonical, use %q", ErrUnknownChartKind, c.Kind, k)
	}
	if len(c.Rows) == 0 {
		return nil
	}
	if c.Kind == ChartPie {
		for i, r := range c.Rows {
			if _, ok := r.Values[ValueColumn]; !ok || len(r.Values) != 1 {
				return fmt.Errorf("%w: pie row %d must carry exactly %q", ErrInconsistentRows, i, ValueColumn)
			}
		}
		return nil
	}
	want := strings.Join(c.Rows[0].Series(), ",")
	for i, r := range c.Rows[1:] {
		if got := strings.Join(r.Series(), ","); got != want {
			return fmt.Errorf("%w: row %d has [%s], want [%s]", ErrInconsistentRows, i+1, got, want)
		}
	}
	return nil
}
