// Package export renders a filtered, sorted view of a list as an xlsx
// workbook. Entries fan out to one row per tag and every row of an
// entry shares one randomly assigned fill color, so the rows of a
// multi-tag entry read as a block.
package export

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/xuri/excelize/v2"

	"listit/internal/catalog"
	"listit/pkg/models"
)

const sheetName = "Export"

// Options selects the exported columns.
type Options struct {
	ID       bool
	Name     bool
	Synonyms bool
	Tag      bool
	Opinion  bool
	Episode  bool
	Status   bool
	Synopsis bool
	Content  bool
}

func AllColumns() Options {
	return Options{
		ID: true, Name: true, Synonyms: true, Tag: true, Opinion: true,
		Episode: true, Status: true, Synopsis: true, Content: true,
	}
}

// OptionsFromColumns maps column names from a request to Options. An
// empty selection means every column.
func OptionsFromColumns(cols []string) Options {
	if len(cols) == 0 {
		return AllColumns()
	}
	var o Options
	for _, c := range cols {
		switch strings.ToLower(strings.TrimSpace(c)) {
		case "id":
			o.ID = true
		case "name":
			o.Name = true
		case "synonyms":
			o.Synonyms = true
		case "tag":
			o.Tag = true
		case "opinion":
			o.Opinion = true
		case "episode":
			o.Episode = true
		case "status":
			o.Status = true
		case "synopsis":
			o.Synopsis = true
		case "content":
			o.Content = true
		}
	}
	return o
}

func (o Options) headers() []string {
	var hs []string
	if o.ID {
		hs = append(hs, "ID")
	}
	if o.Name {
		hs = append(hs, "Nome")
	}
	if o.Synonyms {
		hs = append(hs, "Sinonimos")
	}
	if o.Tag {
		hs = append(hs, "Tag")
	}
	if o.Opinion {
		hs = append(hs, "Opinião")
	}
	if o.Episode {
		hs = append(hs, "Ep/Cap")
	}
	if o.Status {
		hs = append(hs, "Status")
	}
	if o.Synopsis {
		hs = append(hs, "Sinopse")
	}
	if o.Content {
		hs = append(hs, "Conteudo")
	}
	return hs
}

func (o Options) rowFor(ln models.Line, tag string) []any {
	var row []any
	if o.ID {
		row = append(row, ln.ID)
	}
	if o.Name {
		row = append(row, ln.Name)
	}
	if o.Synonyms {
		row = append(row, strings.Join(ln.Synonyms, "; "))
	}
	if o.Tag {
		row = append(row, tag)
	}
	if o.Opinion {
		row = append(row, ln.Opinion)
	}
	if o.Episode {
		row = append(row, ln.Episode)
	}
	if o.Status {
		row = append(row, ln.Status)
	}
	if o.Synopsis {
		row = append(row, ln.Synopsis)
	}
	if o.Content {
		row = append(row, ln.Content)
	}
	return row
}

// RandColor draws a six-digit uppercase hex color with every channel
// below 200, keeping rows readable against dark text, and never repeats
// a color already in used.
func RandColor(rng *rand.Rand, used map[string]struct{}) string {
	for {
		c := fmt.Sprintf("%02X%02X%02X", rng.Intn(200), rng.Intn(200), rng.Intn(200))
		if _, taken := used[c]; !taken {
			used[c] = struct{}{}
			return c
		}
	}
}

// Workbook builds the xlsx file from an already filtered and sorted
// view. An entry without tags still produces one row (with an empty Tag
// cell); rng drives the per-entry colors and may be seeded for
// reproducible output.
func Workbook(lines []models.Line, opts Options, rng *rand.Rand) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headers := opts.headers()
	if len(headers) == 0 {
		return nil, fmt.Errorf("no columns selected")
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return nil, fmt.Errorf("column name: %w", err)
	}
	if err := f.SetColWidth(sheetName, "A", lastCol, 20); err != nil {
		return nil, fmt.Errorf("set widths: %w", err)
	}

	hdr := make([]any, len(headers))
	for i, h := range headers {
		hdr[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &hdr); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	used := make(map[string]struct{})
	rowNum := 2
	for _, ln := range lines {
		color := RandColor(rng, used)
		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		})
		if err != nil {
			return nil, fmt.Errorf("new style: %w", err)
		}

		tags := catalog.ParseTags(ln.Tags)
		if len(tags) == 0 {
			tags = []string{""}
		}

		for _, tag := range tags {
			row := opts.rowFor(ln, tag)
			cell := fmt.Sprintf("A%d", rowNum)
			if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
				return nil, fmt.Errorf("write row %d: %w", rowNum, err)
			}
			if err := f.SetCellStyle(sheetName, cell, fmt.Sprintf("%s%d", lastCol, rowNum), style); err != nil {
				return nil, fmt.Errorf("style row %d: %w", rowNum, err)
			}
			rowNum++
		}
	}

	return f, nil
}
