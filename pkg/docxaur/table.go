package docxaur

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/nekoprog/DocXaur/pkg/docxaur/ooxml"
)

// minRowHeight is the floor applied to any declared row height, in twips.
const minRowHeight = 240

// tableState tracks the Declared -> Building -> Built lifecycle.
type tableState int

const (
	tableDeclared tableState = iota
	tableBuilding
	tableBuilt
)

// TableColumn declares one grid column: a width (fixed length or percent)
// and the default style its cells inherit. Immutable after construction.
type TableColumn struct {
	Width   string
	Default CellStyle
}

// CellStyle carries the presentation defaults a cell resolves against.
type CellStyle struct {
	Align      string // paragraph justification
	VAlign     string // vertical alignment inside the cell
	Background string // RRGGBB or #RRGGBB fill
	Margins    *CellMargins
	Bold       bool
	Color      string
	Font       string
	Size       string
}

// CellMargins are per-cell margins as dimension strings.
type CellMargins struct {
	Top    string
	Left   string
	Bottom string
	Right  string
}

// merge applies non-zero override fields on top of the receiver.
func (s CellStyle) merge(o *CellStyle) CellStyle {
	if o == nil {
		return s
	}
	out := s
	if o.Align != "" {
		out.Align = o.Align
	}
	if o.VAlign != "" {
		out.VAlign = o.VAlign
	}
	if o.Background != "" {
		out.Background = o.Background
	}
	if o.Margins != nil {
		out.Margins = o.Margins
	}
	if o.Bold {
		out.Bold = true
	}
	if o.Color != "" {
		out.Color = o.Color
	}
	if o.Font != "" {
		out.Font = o.Font
	}
	if o.Size != "" {
		out.Size = o.Size
	}
	return out
}

// Cell describes one cell of a declared row. Content is either Text (one
// plain run), Runs (rich interleaved content), a single Image or a Shape.
type Cell struct {
	Text  string
	Runs  []Run
	Image *Image
	Shape *Shape

	// Colspan >= 1 spans that many grid columns; 0 is treated as 1.
	Colspan int
	// Rowspan 0 or 1 is a standalone cell; > 1 starts a vertical merge
	// spanning that many rows.
	Rowspan int
	// Merged marks a continuation cell: it must sit in the same grid
	// column as an open merge origin above it.
	Merged bool

	Height string
	Style  *CellStyle
}

func (c Cell) span() int {
	if c.Colspan > 1 {
		return c.Colspan
	}
	return 1
}

// RowOptions carries row-level directives, kept distinct from cell content
// so a row declaration never needs runtime shape-sniffing.
type RowOptions struct {
	Header    bool // repeat this row on each page
	Height    string
	CantSplit bool
}

type rowSpec struct {
	cells []Cell
	opts  RowOptions
}

type builtCell struct {
	spec  Cell
	style CellStyle
	col   int // starting grid column
}

type builtRow struct {
	cells  []builtCell
	opts   RowOptions
	height int // twips, 0 omits
}

// Table is the table layout engine. Row declarations are recorded while
// Declared; Build instantiates cells and registers their resources; only a
// Built table renders.
type Table struct {
	width   string
	columns []TableColumn
	rows    []rowSpec

	mu    sync.Mutex
	state tableState
	built []builtRow
}

// NewTable declares a table with the given width and column grid. The
// width and every column width resolve independently; percent and absolute
// kinds may mix across columns.
func NewTable(width string, columns []TableColumn) *Table {
	return &Table{width: width, columns: columns}
}

// Row records a row declaration. Valid only while the table is Declared.
func (t *Table) Row(cells []Cell, opts *RowOptions) *Table {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != tableDeclared {
		panic("docxaur: Row called after table build started")
	}
	var o RowOptions
	if opts != nil {
		o = *opts
	}
	t.rows = append(t.rows, rowSpec{cells: cells, opts: o})
	return t
}

// Build transitions Declared -> Building -> Built: it validates the
// declared rows against the column grid, instantiates cells with their
// inherited styles, and concurrently registers every embedded image.
// Building the same table twice is a no-op.
func (t *Table) Build(ctx context.Context, d *Document) error {
	t.mu.Lock()
	if t.state != tableDeclared {
		t.mu.Unlock()
		return nil
	}
	t.state = tableBuilding
	t.mu.Unlock()

	built, err := t.instantiate(d)
	if err != nil {
		t.mu.Lock()
		t.state = tableDeclared
		t.mu.Unlock()
		return err
	}

	// Fan out cell initialization: image registration is the only
	// suspension point. Wait-all before the table is marked Built.
	g, gctx := errgroup.WithContext(ctx)
	for _, row := range built {
		for _, cell := range row.cells {
			if cell.spec.Image == nil {
				continue
			}
			img := cell.spec.Image
			g.Go(func() error {
				return img.prepare(gctx, d)
			})
		}
	}
	if err := g.Wait(); err != nil {
		t.mu.Lock()
		t.state = tableDeclared
		t.mu.Unlock()
		return err
	}

	t.mu.Lock()
	t.built = built
	t.state = tableBuilt
	t.mu.Unlock()
	return nil
}

// instantiate checks row shape and merge continuity, resolves style
// inheritance and computes row heights.
func (t *Table) instantiate(d *Document) ([]builtRow, error) {
	strict := d.cfg.StrictDimensions
	cols := len(t.columns)

	// Remaining continuation slots per starting grid column.
	openMerges := make([]int, cols)

	built := make([]builtRow, 0, len(t.rows))
	for rowIdx, row := range t.rows {
		covered := 0
		for _, c := range row.cells {
			covered += c.span()
		}
		if covered != cols {
			return nil, NewRowShapeError(rowIdx, covered, cols)
		}

		br := builtRow{opts: row.opts}
		cursor := 0
		maxHeight := 0
		if row.opts.Height != "" {
			h, err := twips(row.opts.Height, strict, 0)
			if err != nil {
				return nil, err
			}
			maxHeight = h
		}

		for _, c := range row.cells {
			if c.Merged {
				if openMerges[cursor] == 0 {
					return nil, NewMergeContinuityError(rowIdx, cursor)
				}
				openMerges[cursor]--
			} else if c.Rowspan > 1 {
				openMerges[cursor] = c.Rowspan - 1
			}

			if c.Height != "" {
				h, err := twips(c.Height, strict, 0)
				if err != nil {
					return nil, err
				}
				if h > maxHeight {
					maxHeight = h
				}
			}

			br.cells = append(br.cells, builtCell{
				spec:  c,
				style: t.columns[cursor].Default.merge(c.Style),
				col:   cursor,
			})
			cursor += c.span()
		}

		if maxHeight > 0 && maxHeight < minRowHeight {
			maxHeight = minRowHeight
		}
		br.height = maxHeight
		built = append(built, br)
	}
	return built, nil
}

// prepare implements Element.
func (t *Table) prepare(ctx context.Context, d *Document) error {
	return t.Build(ctx, d)
}

// render implements Element. Rendering before Build has completed is a
// programmer error in the assembly ordering and panics.
func (t *Table) render(d *Document) ([]ooxml.BodyElement, error) {
	t.mu.Lock()
	state := t.state
	t.mu.Unlock()
	if state != tableBuilt {
		panic("docxaur: table rendered before Build completed")
	}

	strict := d.cfg.StrictDimensions

	grid := ooxml.TableGrid{}
	colWidths := make([]ooxml.Width, len(t.columns))
	for i, col := range t.columns {
		w, err := resolveWidth(col.Width, strict, 0)
		if err != nil {
			return nil, err
		}
		colWidths[i] = w
		grid.Columns = append(grid.Columns, ooxml.GridColumn{Width: w.Val})
	}

	props := ooxml.TableProperties{Borders: true, Layout: "fixed"}
	if t.width != "" {
		w, err := resolveWidth(t.width, strict, 0)
		if err != nil {
			return nil, err
		}
		props.Width = &w
	}

	out := ooxml.Table{Properties: props, Grid: grid}
	for _, row := range t.built {
		tr := ooxml.TableRow{}
		if row.height > 0 || row.opts.Header || row.opts.CantSplit {
			tr.Properties = &ooxml.TableRowProperties{
				Height:    row.height,
				Header:    row.opts.Header,
				CantSplit: row.opts.CantSplit,
			}
		}
		for _, cell := range row.cells {
			tc, err := t.composeCell(d, cell, colWidths)
			if err != nil {
				return nil, err
			}
			tr.Cells = append(tr.Cells, tc)
		}
		out.Rows = append(out.Rows, tr)
	}

	return []ooxml.BodyElement{out}, nil
}

// composeCell lowers one built cell to markup.
func (t *Table) composeCell(d *Document, cell builtCell, colWidths []ooxml.Width) (ooxml.TableCell, error) {
	strict := d.cfg.StrictDimensions
	spec := cell.spec
	style := cell.style

	props := &ooxml.TableCellProperties{
		GridSpan: spec.span(),
		VAlign:   style.VAlign,
		Shading:  normalizeColor(style.Background),
	}
	if w, ok := spannedWidth(colWidths, cell.col, spec.span()); ok {
		props.Width = &w
	}
	switch {
	case spec.Merged:
		props.VMerge = ooxml.VMergeContinue
	case spec.Rowspan > 1:
		props.VMerge = ooxml.VMergeRestart
	}
	if style.Margins != nil {
		m := &ooxml.CellMargins{}
		for _, edge := range []struct {
			in  string
			out *int
		}{
			{style.Margins.Top, &m.Top},
			{style.Margins.Left, &m.Left},
			{style.Margins.Bottom, &m.Bottom},
			{style.Margins.Right, &m.Right},
		} {
			v, err := twips(edge.in, strict, 0)
			if err != nil {
				return ooxml.TableCell{}, err
			}
			*edge.out = v
		}
		props.Margins = m
	}

	paras, err := t.composeCellContent(d, spec, style)
	if err != nil {
		return ooxml.TableCell{}, err
	}
	return ooxml.TableCell{Properties: props, Paragraphs: paras}, nil
}

// composeCellContent builds the cell's paragraphs from its content variant.
func (t *Table) composeCellContent(d *Document, spec Cell, style CellStyle) ([]ooxml.Paragraph, error) {
	p := NewParagraph()
	if style.Align != "" {
		p.Align(style.Align)
	}

	switch {
	case spec.Image != nil:
		run, err := spec.Image.composeRun(d)
		if err != nil {
			return nil, err
		}
		out, err := p.compose(d)
		if err != nil {
			return nil, err
		}
		out.Content = append(out.Content, run)
		return []ooxml.Paragraph{out}, nil

	case spec.Shape != nil:
		run, err := spec.Shape.composeRun(d)
		if err != nil {
			return nil, err
		}
		out, err := p.compose(d)
		if err != nil {
			return nil, err
		}
		out.Content = append(out.Content, run)
		return []ooxml.Paragraph{out}, nil

	case len(spec.Runs) > 0:
		for _, r := range spec.Runs {
			p.Add(styledRun(r, style))
		}

	case spec.Text != "":
		p.Add(styledRun(Run{Text: spec.Text}, style))
	}

	out, err := p.compose(d)
	if err != nil {
		return nil, err
	}
	return []ooxml.Paragraph{out}, nil
}

// styledRun fills unset run formatting from the cell style.
func styledRun(r Run, style CellStyle) Run {
	if style.Bold {
		r.Bold = true
	}
	if r.Color == "" {
		r.Color = normalizeColor(style.Color)
	}
	if r.Font == "" {
		r.Font = style.Font
	}
	if r.Size == "" {
		r.Size = style.Size
	}
	return r
}

// spannedWidth sums the resolved widths a cell covers. Widths of mixed
// kinds cannot be summed; the cell then inherits the first column's pair.
func spannedWidth(widths []ooxml.Width, col, span int) (ooxml.Width, bool) {
	if col >= len(widths) {
		return ooxml.Width{}, false
	}
	out := widths[col]
	for i := col + 1; i < col+span && i < len(widths); i++ {
		if widths[i].Type != out.Type {
			return out, true
		}
		out.Val += widths[i].Val
	}
	return out, true
}
