package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"tp4-dataops/lib/pdftext"
	"tp4-dataops/lib/tabular"
	"tp4-dataops/lib/textutil"

	"github.com/antzucaro/matchr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// cleaned schema of the by-function price-index table. the published
// table carries a November column between oct_25 and dec_25 that the
// cleaned dataset leaves out.
var inpcColumns = []string{
	"code", "fonction", "poids",
	"dec_24", "sept_25", "oct_25", "dec_25",
	"var_1m", "var_3m", "var_1an", "var_12m",
}

// extracted column positions. "" marks the skipped November column.
var inpcPositions = []string{
	"code", "fonction", "poids",
	"dec_24", "sept_25", "oct_25", "", "dec_25",
	"var_1m", "var_3m", "var_1an", "var_12m",
}

// columns where the extractor tends to glue several index values into
// one cell.
var inpcIndexColumns = []string{"dec_24", "sept_25", "oct_25", "dec_25"}

var (
	tableau2Regex    = regexp.MustCompile(`(?i)\btableau\s*2\b|\btab\.\s*2\b`)
	labelRowRegex    = regexp.MustCompile(`(?i)tableau\s*2|fonctions`)
	codeRegex        = regexp.MustCompile(`^\d{2}$`)
	placeholderRegex = regexp.MustCompile(`^col_\d+$`)
)

func (s Service) FetchInpcPdf(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "FetchInpcPdf")
	defer span.End()

	path, err := s.inpc.Download(ctx, s.cfg.InpcPdfUrl, s.cfg.OutputDir)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return path, nil
}

// pulls the by-function table out of the bulletin and persists the
// shaped version. the returned table keeps its text cells untyped so
// the clean stage can still filter on raw code values.
func (s Service) ExtractInpc(ctx context.Context, pdfPath string, pages pdftext.PageSet) (tabular.Table, error) {
	ctx, span := tracer.Start(ctx, "ExtractInpc")
	defer span.End()

	grids, err := s.extractTables(pdfPath, pages)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return tabular.Table{}, err
	}

	shaped := tabular.FromGrid(chooseTable2(grids)).
		DropEmptyRows().
		PromoteHeader().
		DropRepeatedHeaderRows()

	raw := shaped.CoerceNumeric(0.6).
		WithColumn("source_url", tabular.TextCell(s.cfg.InpcPdfUrl)).
		WithColumn("scraped_at", tabular.TextCell(s.scrapedAt()))

	path := filepath.Join(s.cfg.OutputDir, InpcRawFile)
	if err := raw.WriteCSVFile(path); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return tabular.Table{}, err
	}

	span.SetAttributes(attribute.Int("rows", len(shaped.Rows)))
	return shaped, nil
}

// the bulletin holds several tables, the by-function one is captioned
// "Tableau 2". fall back to the second grid (the caption sometimes
// lands in its own text block), then the first.
func chooseTable2(grids [][][]string) [][]string {
	for _, grid := range grids {
		var joined strings.Builder
		for _, row := range grid {
			for _, cell := range row {
				joined.WriteString(cell)
				joined.WriteString(" ")
			}
		}
		if tableau2Regex.MatchString(joined.String()) {
			return grid
		}
	}
	if len(grids) >= 2 {
		return grids[1]
	}
	return grids[0]
}

func (s Service) CleanInpc(ctx context.Context, shaped tabular.Table) (tabular.Table, error) {
	ctx, span := tracer.Start(ctx, "CleanInpc")
	defer span.End()

	cleaned, err := cleanInpcTable(shaped)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return tabular.Table{}, err
	}
	cleaned = cleaned.
		WithColumn("source_url", tabular.TextCell(s.cfg.InpcPdfUrl)).
		WithColumn("scraped_at", tabular.TextCell(s.scrapedAt()))

	path := filepath.Join(s.cfg.OutputDir, InpcCleanFile)
	if err := cleaned.WriteCSVFile(path); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return tabular.Table{}, err
	}

	span.SetAttributes(attribute.Int("rows", len(cleaned.Rows)))
	return cleaned, nil
}

// normalizes the shaped table into the fixed schema: map columns,
// throw away caption remnants and anything without a two-digit
// function code, unglue the index cells, then type the numeric
// columns.
func cleanInpcTable(shaped tabular.Table) (tabular.Table, error) {
	table := mapInpcColumns(shaped)

	codeIdx := table.ColumnIndex("code")
	if codeIdx < 0 || table.ColumnIndex("fonction") < 0 {
		return tabular.Table{}, fmt.Errorf("no code/fonction mapping for columns %v", shaped.Columns)
	}

	rows := make([][]tabular.Cell, 0, len(table.Rows))
	for _, row := range table.Rows {
		code := row[codeIdx]
		if code.Kind != tabular.CellText {
			continue
		}
		if labelRowRegex.MatchString(code.Text) {
			continue
		}
		if !codeRegex.MatchString(code.Text) {
			continue
		}
		kept := make([]tabular.Cell, len(row))
		copy(kept, row)
		rows = append(rows, kept)
	}
	table = tabular.Table{Columns: table.Columns, Rows: rows}

	for _, name := range inpcIndexColumns {
		splitGluedNumbers(table, name)
	}

	numeric := append([]string{"poids"}, inpcIndexColumns...)
	numeric = append(numeric, "var_1m", "var_3m", "var_1an", "var_12m")
	table = table.CoerceColumns(numeric...)

	return table.SelectColumns(inpcColumns), nil
}

// maps extracted columns onto the cleaned schema. tables whose header
// row never got promoted keep positional names and map by position,
// promoted headers map by normalized name with a fuzzy fallback for
// mangled variants.
func mapInpcColumns(t tabular.Table) tabular.Table {
	positional := true
	for _, name := range t.Columns {
		if !placeholderRegex.MatchString(name) {
			positional = false
			break
		}
	}

	columns := append([]string{}, t.Columns...)
	if positional {
		for i := range columns {
			if i < len(inpcPositions) && inpcPositions[i] != "" {
				columns[i] = inpcPositions[i]
			}
		}
	} else {
		for i, name := range columns {
			columns[i] = canonicalInpcName(name)
		}
	}
	return tabular.Table{Columns: columns, Rows: t.Rows}
}

// exact match first, JaroWinkler above 0.84 second. otherwise the
// name stays as-is and the final column selection drops it.
func canonicalInpcName(name string) string {
	for _, canonical := range inpcColumns {
		if name == canonical {
			return name
		}
	}
	best := ""
	bestScore := 0.0
	for _, canonical := range inpcColumns {
		score := matchr.JaroWinkler(name, canonical, false)
		if score > bestScore {
			bestScore = score
			best = canonical
		}
	}
	if bestScore >= 0.84 {
		return best
	}
	return name
}

func splitGluedNumbers(t tabular.Table, column string) {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return
	}
	for _, row := range t.Rows {
		cell := row[idx]
		if cell.Kind != tabular.CellText {
			continue
		}
		if num, ok := textutil.TrailingNumber(cell.Text); ok {
			row[idx] = tabular.TextCell(num)
		}
	}
}
