// Package palette loads single-color themes from a CSV color table.
//
// Each row of the table (name, r, g, b with 0-255 channels) becomes one
// theme whose only color is the row's RGB triple scaled to [0,1]. A Palette
// is immutable once built and safe for concurrent readers.
package palette

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	perrors "github.com/rook-computer/blobposter/internal/errors"
)

// Required header columns.
const (
	ColumnName  = "name"
	ColumnRed   = "r"
	ColumnGreen = "g"
	ColumnBlue  = "b"
)

// Palette maps theme names to colors in file order.
type Palette struct {
	names      []string
	colors     map[string]Color
	duplicates []string
}

// Names returns theme names in first-occurrence order.
func (p *Palette) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Len returns the number of distinct themes.
func (p *Palette) Len() int { return len(p.names) }

// Has reports whether theme is in the palette.
func (p *Palette) Has(theme string) bool {
	_, ok := p.colors[theme]
	return ok
}

// Color returns the theme's color or a LOOKUP_ERROR.
func (p *Palette) Color(theme string) (Color, error) {
	c, ok := p.colors[theme]
	if !ok {
		return Color{}, perrors.New(perrors.ErrCodeLookup, "unknown theme %q", theme)
	}
	return c, nil
}

// Colors returns the theme's colors. Themes are single-color, so the slice
// always has exactly one element.
func (p *Palette) Colors(theme string) ([]Color, error) {
	c, err := p.Color(theme)
	if err != nil {
		return nil, err
	}
	return []Color{c}, nil
}

// Duplicates lists names that appeared on more than one row, in the order
// the repeats were seen.
func (p *Palette) Duplicates() []string {
	out := make([]string, len(p.duplicates))
	copy(out, p.duplicates)
	return out
}

// Load reads the color table at path.
func Load(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeData, err, "open color table %s", path)
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeData, err, "load %s", path)
	}
	return p, nil
}

// Parse reads a CSV color table. The header must contain name, r, g and b
// (any order, case-insensitive); other columns are ignored. A repeated name
// overwrites the earlier color but keeps its position.
func Parse(r io.Reader) (*Palette, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, perrors.New(perrors.ErrCodeData, "color table is empty")
	}
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeData, err, "read header")
	}
	cols, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	p := &Palette{colors: make(map[string]Color)}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeData, err, "read row")
		}
		line, _ := reader.FieldPos(0)
		if isBlank(record) {
			continue
		}
		row, err := parseRow(record, cols, line)
		if err != nil {
			return nil, err
		}
		p.add(row)
	}

	if len(p.names) == 0 {
		return nil, perrors.New(perrors.ErrCodeData, "color table has no rows")
	}
	return p, nil
}

func (p *Palette) add(row Row) {
	if _, seen := p.colors[row.Name]; seen {
		p.duplicates = append(p.duplicates, row.Name)
	} else {
		p.names = append(p.names, row.Name)
	}
	p.colors[row.Name] = row.Color()
}

type columns struct{ name, r, g, b int }

func indexColumns(header []string) (columns, error) {
	idx := map[string]int{}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}

	var missing []string
	lookup := func(name string) int {
		i, ok := idx[name]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}
	cols := columns{
		name: lookup(ColumnName),
		r:    lookup(ColumnRed),
		g:    lookup(ColumnGreen),
		b:    lookup(ColumnBlue),
	}
	if len(missing) > 0 {
		return columns{}, perrors.New(perrors.ErrCodeData, "missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func parseRow(record []string, cols columns, line int) (Row, error) {
	field := func(i int) string {
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	row := Row{Name: field(cols.name)}
	if row.Name == "" {
		return Row{}, perrors.New(perrors.ErrCodeData, "line %d: empty name", line)
	}

	channels := []struct {
		column string
		value  string
		dst    *uint8
	}{
		{ColumnRed, field(cols.r), &row.R},
		{ColumnGreen, field(cols.g), &row.G},
		{ColumnBlue, field(cols.b), &row.B},
	}
	for _, ch := range channels {
		v, err := strconv.Atoi(ch.value)
		if err != nil {
			return Row{}, perrors.New(perrors.ErrCodeData, "line %d: %s=%q is not an integer", line, ch.column, ch.value)
		}
		if v < 0 || v > 255 {
			return Row{}, perrors.New(perrors.ErrCodeData, "line %d: %s=%d outside 0-255", line, ch.column, v)
		}
		*ch.dst = uint8(v)
	}
	return row, nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
