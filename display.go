package frame

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"
)

// DisplayConfig controls how DataFrames and Series are formatted when printed.
type DisplayConfig struct {
	// MaxRows is the maximum number of rows to display. Longer tables show
	// head and tail rows with an ellipsis row in between.
	// Default: 10
	MaxRows int

	// MaxCols is the maximum number of columns to display.
	// Default: 10
	MaxCols int

	// MaxColWidth is the maximum width for column content.
	// Default: 25
	MaxColWidth int

	// MinColWidth is the minimum column width for alignment.
	// Default: 8
	MinColWidth int

	// FloatPrecision is the number of decimal places for float values.
	// Default: 4
	FloatPrecision int

	// ShowDTypes controls whether data types are printed under column names.
	ShowDTypes bool

	// ShowShape controls whether the shape header is printed.
	ShowShape bool

	// TableStyle is one of "rounded", "sharp", "ascii", "minimal".
	TableStyle string
}

type tableChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topT, bottomT, leftT, rightT, cross        string
}

var tableStyles = map[string]tableChars{
	"rounded": {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topT: "┬", bottomT: "┴", leftT: "├", rightT: "┤", cross: "┼",
	},
	"sharp": {
		topLeft: "┌", topRight: "┐", bottomLeft: "└", bottomRight: "┘",
		horizontal: "─", vertical: "│",
		topT: "┬", bottomT: "┴", leftT: "├", rightT: "┤", cross: "┼",
	},
	"ascii": {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topT: "+", bottomT: "+", leftT: "+", rightT: "+", cross: "+",
	},
	"minimal": {
		topLeft: " ", topRight: " ", bottomLeft: " ", bottomRight: " ",
		horizontal: "─", vertical: " ",
		topT: " ", bottomT: " ", leftT: " ", rightT: " ", cross: " ",
	},
}

// IsTableStyle reports whether style names a known table style.
func IsTableStyle(style string) bool {
	_, ok := tableStyles[style]
	return ok
}

// DefaultDisplayConfig returns the default display configuration.
func DefaultDisplayConfig() DisplayConfig {
	return DisplayConfig{
		MaxRows:        10,
		MaxCols:        10,
		MaxColWidth:    25,
		MinColWidth:    8,
		FloatPrecision: 4,
		ShowDTypes:     true,
		ShowShape:      true,
		TableStyle:     "rounded",
	}
}

var (
	globalDisplayConfig = DefaultDisplayConfig()
	displayConfigMu     sync.RWMutex
)

// SetDisplayConfig sets the global display configuration.
func SetDisplayConfig(cfg DisplayConfig) {
	displayConfigMu.Lock()
	defer displayConfigMu.Unlock()
	globalDisplayConfig = cfg
}

// GetDisplayConfig returns the current global display configuration.
func GetDisplayConfig() DisplayConfig {
	displayConfigMu.RLock()
	defer displayConfigMu.RUnlock()
	return globalDisplayConfig
}

// SetMaxDisplayRows sets the maximum number of rows to display.
func SetMaxDisplayRows(n int) {
	displayConfigMu.Lock()
	defer displayConfigMu.Unlock()
	globalDisplayConfig.MaxRows = n
}

// SetFloatPrecision sets the decimal precision for float display.
func SetFloatPrecision(n int) {
	displayConfigMu.Lock()
	defer displayConfigMu.Unlock()
	globalDisplayConfig.FloatPrecision = n
}

// SetTableStyle sets the table border style. Unknown styles are ignored.
func SetTableStyle(style string) {
	displayConfigMu.Lock()
	defer displayConfigMu.Unlock()
	if IsTableStyle(style) {
		globalDisplayConfig.TableStyle = style
	}
}

// ============================================================================
// Rendering
// ============================================================================

// ellipsis marks an elided row or column index.
const ellipsis = -1

func formatDisplayValue(val interface{}, cfg DisplayConfig) string {
	var s string
	switch v := val.(type) {
	case float64:
		s = strconv.FormatFloat(v, 'f', cfg.FloatPrecision, 64)
	case float32:
		s = strconv.FormatFloat(float64(v), 'f', cfg.FloatPrecision, 32)
	default:
		s = FormatValue(v)
	}
	return truncate(s, cfg.MaxColWidth)
}

func truncate(s string, width int) string {
	if width < 4 || utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-3]) + "..."
}

// window returns the indices to show out of n, inserting an ellipsis marker
// in the middle when n exceeds max.
func window(n, max int) []int {
	if max <= 0 || n <= max {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	head := max / 2
	tail := max - head
	idx := make([]int, 0, max+1)
	for i := 0; i < head; i++ {
		idx = append(idx, i)
	}
	idx = append(idx, ellipsis)
	for i := n - tail; i < n; i++ {
		idx = append(idx, i)
	}
	return idx
}

// grid is a rendered table: header cells, optional dtype cells and body rows,
// all already formatted as strings.
type grid struct {
	header []string
	dtypes []string
	rows   [][]string
	align  []bool // true = right-align body cells
}

func (g grid) render(sb *strings.Builder, cfg DisplayConfig) {
	chars, ok := tableStyles[cfg.TableStyle]
	if !ok {
		chars = tableStyles["rounded"]
	}

	widths := make([]int, len(g.header))
	for i, h := range g.header {
		widths[i] = utf8.RuneCountInString(h)
		if g.dtypes != nil && utf8.RuneCountInString(g.dtypes[i]) > widths[i] {
			widths[i] = utf8.RuneCountInString(g.dtypes[i])
		}
		for _, row := range g.rows {
			if w := utf8.RuneCountInString(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
		if widths[i] < cfg.MinColWidth {
			widths[i] = cfg.MinColWidth
		}
		if cfg.MaxColWidth > 0 && widths[i] > cfg.MaxColWidth {
			widths[i] = cfg.MaxColWidth
		}
	}

	border := func(left, mid, right string) {
		sb.WriteString(left)
		for i, w := range widths {
			if i > 0 {
				sb.WriteString(mid)
			}
			sb.WriteString(strings.Repeat(chars.horizontal, w+2))
		}
		sb.WriteString(right)
		sb.WriteString("\n")
	}
	line := func(cells []string, right bool) {
		sb.WriteString(chars.vertical)
		for i, c := range cells {
			c = truncate(c, widths[i])
			gap := widths[i] - utf8.RuneCountInString(c)
			if gap < 0 {
				gap = 0
			}
			pad := strings.Repeat(" ", gap)
			if right && g.align[i] {
				sb.WriteString(" " + pad + c + " ")
			} else {
				sb.WriteString(" " + c + pad + " ")
			}
			sb.WriteString(chars.vertical)
		}
		sb.WriteString("\n")
	}

	border(chars.topLeft, chars.topT, chars.topRight)
	line(g.header, false)
	if g.dtypes != nil {
		line(g.dtypes, false)
	}
	border(chars.leftT, chars.cross, chars.rightT)
	for _, row := range g.rows {
		line(row, true)
	}
	sb.WriteString(chars.bottomLeft)
	for i, w := range widths {
		if i > 0 {
			sb.WriteString(chars.bottomT)
		}
		sb.WriteString(strings.Repeat(chars.horizontal, w+2))
	}
	sb.WriteString(chars.bottomRight)
}

// StringWithConfig formats the DataFrame using the provided configuration.
func (df *DataFrame) StringWithConfig(cfg DisplayConfig) string {
	if len(df.columns) == 0 {
		return "DataFrame(empty)"
	}

	var sb strings.Builder
	if cfg.ShowShape {
		sb.WriteString(fmt.Sprintf("shape: (%d, %d)\n", df.height, len(df.columns)))
	}

	cols := window(len(df.columns), cfg.MaxCols)
	rows := window(df.height, cfg.MaxRows)

	g := grid{
		header: make([]string, len(cols)),
		align:  make([]bool, len(cols)),
		rows:   make([][]string, len(rows)),
	}
	if cfg.ShowDTypes {
		g.dtypes = make([]string, len(cols))
	}
	for j, c := range cols {
		if c == ellipsis {
			g.header[j] = "…"
			if g.dtypes != nil {
				g.dtypes[j] = "---"
			}
			continue
		}
		col := df.columns[c]
		g.header[j] = col.Name()
		g.align[j] = col.DType() != String
		if g.dtypes != nil {
			g.dtypes[j] = col.DType().String()
		}
	}
	for i, r := range rows {
		g.rows[i] = make([]string, len(cols))
		for j, c := range cols {
			if r == ellipsis || c == ellipsis {
				g.rows[i][j] = "…"
				continue
			}
			g.rows[i][j] = formatDisplayValue(df.columns[c].Get(r), cfg)
		}
	}

	g.render(&sb, cfg)
	return sb.String()
}

// SeriesStringWithConfig formats the Series using the provided configuration.
func SeriesStringWithConfig(s *Series, cfg DisplayConfig) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Series: '%s' (%s)\n", s.Name(), s.DType()))
	sb.WriteString(fmt.Sprintf("length: %d\n", s.Len()))
	if s.Len() == 0 {
		sb.WriteString("[]")
		return sb.String()
	}

	rows := window(s.Len(), cfg.MaxRows)
	g := grid{
		header: []string{"idx", s.Name()},
		align:  []bool{true, s.DType() != String},
		rows:   make([][]string, len(rows)),
	}
	for i, r := range rows {
		if r == ellipsis {
			g.rows[i] = []string{"…", "…"}
			continue
		}
		g.rows[i] = []string{strconv.Itoa(r), formatDisplayValue(s.Get(r), cfg)}
	}

	g.render(&sb, cfg)
	return sb.String()
}
