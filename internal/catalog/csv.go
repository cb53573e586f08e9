package catalog

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// csvHeader is the mandated header for the catalog CSV.
var csvHeader = []string{"product_name", "price", "quantity"}

type seedRow struct {
	Price    decimal.Decimal
	Quantity int
}

// LoadCSV reads the catalog seed file. A missing file yields an empty
// catalog rather than an error: an empty deployment is a valid starting
// state.
func LoadCSV(path string) (map[string]seedRow, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return map[string]seedRow{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	if len(records) == 0 {
		return map[string]seedRow{}, nil
	}

	out := make(map[string]seedRow, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != 3 {
			continue
		}
		price, err := decimal.NewFromString(rec[1])
		if err != nil {
			continue
		}
		var qty int
		if _, err := fmt.Sscanf(rec[2], "%d", &qty); err != nil || qty < 0 {
			continue
		}
		out[rec[0]] = seedRow{Price: price, Quantity: qty}
	}
	return out, nil
}

// WriteCSV atomically replaces path with header + one row per product, in
// map iteration order. Atomic replace is via write-to-temp-then-rename so a
// reader never observes a half-written file.
func WriteCSV(path string, rows map[string]row) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("catalog: create %s: %w", tmp, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return fmt.Errorf("catalog: write header: %w", err)
	}
	for name, r := range rows {
		rec := []string{name, r.price.StringFixed(2), fmt.Sprintf("%d", r.quantity)}
		if err := w.Write(rec); err != nil {
			f.Close()
			return fmt.Errorf("catalog: write row %s: %w", name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("catalog: flush %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("catalog: close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("catalog: rename %s -> %s: %w", tmp, path, err)
	}
	return nil
}
