package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopassist/shopassist/internal/models"
	repository "github.com/shopassist/shopassist/internal/repositories"
	"github.com/xuri/excelize/v2"
)

// Recognized header names in the supplier workbook. A sheet may carry any
// subset; unrecognized columns are ignored and missing ones default to
// empty/zero values rather than failing the load.
const (
	colGarmentType = "TIPO_PRENDA"
	colSize        = "TALLA"
	colColor       = "COLOR"
	colCategory    = "CATEGORÍA"
	colDescription = "DESCRIPCIÓN"
	colPrice       = "PRECIO_50_U"
	colStock       = "CANTIDAD_DISPONIBLE"
)

// Loader replaces the product catalog from a spreadsheet. It writes through
// the same product repository every other read path uses.
type Loader struct {
	repo repository.ProductRepository
}

func NewLoader(repo repository.ProductRepository) *Loader {
	return &Loader{repo: repo}
}

// LoadFromFile reads the first sheet of an .xlsx workbook and swaps the whole
// catalog for its rows. Returns the number of products loaded.
func (l *Loader) LoadFromFile(ctx context.Context, path string) (int, error) {

	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}

	defer f.Close()

	sheet := f.GetSheetName(0)

	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	if len(rows) < 2 {
		return 0, nil
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.TrimSpace(name)] = i
	}

	products := make([]*models.Product, 0, len(rows)-1)

	for _, row := range rows[1:] {
		products = append(products, mapRow(header, row))
	}

	if err := l.repo.ReplaceAll(ctx, products); err != nil {
		return 0, fmt.Errorf("failed to store catalog: %w", err)
	}

	return len(products), nil
}

func mapRow(header map[string]int, row []string) *models.Product {

	cell := func(name string) string {
		idx, ok := header[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	name := joinNonEmpty(" ", cell(colGarmentType), cell(colSize), cell(colColor))
	description := joinNonEmpty(" - ", cell(colCategory), cell(colDescription))

	price, err := strconv.ParseFloat(cell(colPrice), 64)
	if err != nil {
		price = 0
	}

	stock, err := strconv.ParseInt(cell(colStock), 10, 64)
	if err != nil {
		stock = 0
	}

	return &models.Product{
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		Category:    cell(colCategory),
	}
}

func joinNonEmpty(sep string, parts ...string) string {

	kept := make([]string, 0, len(parts))

	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}

	return strings.Join(kept, sep)
}
