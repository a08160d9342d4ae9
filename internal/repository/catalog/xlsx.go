package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/boardka/boardka/internal/domain"
	"github.com/boardka/boardka/internal/domain/game"
)

// Column headers recognized in a spreadsheet catalog, keyed by field. Korean
// headers are the primary format; English aliases are accepted too.
var columnAliases = map[string][]string{
	colID:         {"id"},
	colName:       {"이름", "name"},
	colMinPlayers: {"최소인원", "min_players"},
	colMaxPlayers: {"최대인원", "max_players"},
	colMinTime:    {"최소 플레이타임", "min_time"},
	colMaxTime:    {"최대 플레이타임", "max_time"},
	colDifficulty: {"난이도", "difficulty"},
	colTags:       {"tags", "태그"},
}

const (
	colID         = "id"
	colName       = "name"
	colMinPlayers = "min_players"
	colMaxPlayers = "max_players"
	colMinTime    = "min_time"
	colMaxTime    = "max_time"
	colDifficulty = "difficulty"
	colTags       = "tags"
)

// XLSXLoader reads games from a spreadsheet. The first row is the header.
type XLSXLoader struct {
	path  string
	sheet string
}

// NewXLSXLoader creates a spreadsheet loader. An empty sheet selects the first sheet.
func NewXLSXLoader(path, sheet string) *XLSXLoader {
	return &XLSXLoader{path: path, sheet: sheet}
}

// Source returns the file path.
func (l *XLSXLoader) Source() string { return l.path }

// Load reads and normalizes every data row.
func (l *XLSXLoader) Load(ctx context.Context) ([]game.Game, error) {
	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrCatalogLoad, l.path, err)
	}
	defer func() { _ = f.Close() }()

	sheet := l.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: %s has no sheets", domain.ErrCatalogLoad, l.path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %w", domain.ErrCatalogLoad, sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, rowToRecord(row, cols))
	}
	return normalize(ctx, l.path, records), nil
}

// mapColumns resolves header cells to column positions.
func mapColumns(header []string) (map[string]int, error) {
	byHeader := make(map[string]string)
	for key, aliases := range columnAliases {
		for _, a := range aliases {
			byHeader[a] = key
		}
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		key, ok := byHeader[strings.ToLower(strings.TrimSpace(h))]
		if !ok {
			continue
		}
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	for _, required := range []string{colName, colDifficulty} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: missing %s column", domain.ErrCatalogLoad, required)
		}
	}
	return cols, nil
}

func rowToRecord(row []string, cols map[string]int) record {
	cell := func(key string) string {
		i, ok := cols[key]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}
	return record{
		ID:         cell(colID),
		Name:       cell(colName),
		MinPlayers: cell(colMinPlayers),
		MaxPlayers: cell(colMaxPlayers),
		MinTime:    cell(colMinTime),
		MaxTime:    cell(colMaxTime),
		Difficulty: cell(colDifficulty),
		Tags:       splitTags(cell(colTags)),
	}
}
