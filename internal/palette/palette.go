// Package palette assigns stable display colors to categorical values.
package palette

// DefaultColors is the rotating palette used when none is configured.
// The values are the Notion tag background colors, in Notion's menu order.
var DefaultColors = []string{
	"#E3E2E0", // gray
	"#EEE0DA", // brown
	"#FADEC9", // orange
	"#FDECC8", // yellow
	"#DBEDDB", // green
	"#D3E5EF", // blue
	"#E8DEEE", // purple
	"#F5E0E9", // pink
	"#FFE2DD", // red
}

// DefaultColor is returned for records that carry no value for the color property.
// It is deliberately outside DefaultColors.
const DefaultColor = "#487CA5"

// Entry is one value→color pair, used for legends.
type Entry struct {
	Value string `json:"value"`
	Color string `json:"color"`
}

// Table maps categorical values to colors in first-seen order.
// The Nth distinct value receives colors[N mod len(colors)] and keeps it for
// the lifetime of the table. A Table is not safe for concurrent use.
type Table struct {
	colors   []string
	fallback string
	assigned map[string]string
	order    []string
}

// New creates a Table cycling through colors. An empty palette falls back to
// DefaultColors.
func New(colors []string) *Table {
	if len(colors) == 0 {
		colors = DefaultColors
	}
	return &Table{
		colors:   append([]string(nil), colors...),
		fallback: DefaultColor,
		assigned: make(map[string]string),
	}
}

// Default returns the neutral color used for absent values. It is not tracked.
func (t *Table) Default() string {
	return t.fallback
}

// Assign returns the color for value, assigning the next palette color the
// first time the value is seen.
func (t *Table) Assign(value string) string {
	if c, ok := t.assigned[value]; ok {
		return c
	}
	c := t.colors[len(t.order)%len(t.colors)]
	t.assigned[value] = c
	t.order = append(t.order, value)
	return c
}

// Len returns the number of distinct values assigned so far.
func (t *Table) Len() int {
	return len(t.order)
}

// Entries returns the mapping built so far in first-seen order.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t.order))
	for _, v := range t.order {
		entries = append(entries, Entry{Value: v, Color: t.assigned[v]})
	}
	return entries
}
