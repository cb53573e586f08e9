package orderreplica

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

var logHeader = []string{"Order number", "Product name", "Quantity"}

// LogEntry is one row of the order log CSV.
type LogEntry struct {
	OrderNumber int32
	ProductName string
	Quantity    int32
}

// LoadLog reads the order log file, returning the committed records keyed
// by order number. A missing file is treated as an empty log. A malformed
// row or missing header resets the file to a fresh header-only state and
// returns an empty log, rather than surfacing a read error.
func LoadLog(path string) (map[int32]Record, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return map[int32]Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("orderreplica: open %s: %w", path, err)
	}

	log, ok := parseLog(f)
	f.Close()
	if ok {
		return log, nil
	}

	if err := resetLog(path); err != nil {
		return nil, fmt.Errorf("orderreplica: reset %s: %w", path, err)
	}
	return map[int32]Record{}, nil
}

func parseLog(f *os.File) (map[int32]Record, bool) {
	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil || !validHeader(header) {
		return nil, false
	}

	log := make(map[int32]Record)
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return log, true
		}
		if err != nil {
			return nil, false
		}
		if len(rec) != 3 {
			return nil, false
		}

		n, err1 := strconv.Atoi(rec[0])
		qty, err2 := strconv.Atoi(rec[2])
		if err1 != nil || err2 != nil || n < 0 {
			return nil, false
		}
		log[int32(n)] = Record{ProductName: rec[1], Quantity: int32(qty)}
	}
}

func validHeader(header []string) bool {
	if len(header) != len(logHeader) {
		return false
	}
	for i, h := range logHeader {
		if header[i] != h {
			return false
		}
	}
	return true
}

func resetLog(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(logHeader); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// AppendLog writes entries to the end of the log file in a single
// open/close, creating a header-only file first if none exists. It never
// rewrites rows already on disk.
func AppendLog(path string, entries []LogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := resetLog(path); err != nil {
			return fmt.Errorf("orderreplica: create %s: %w", path, err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("orderreplica: open %s for append: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, e := range entries {
		rec := []string{strconv.Itoa(int(e.OrderNumber)), e.ProductName, strconv.Itoa(int(e.Quantity))}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("orderreplica: write row %d: %w", e.OrderNumber, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("orderreplica: flush %s: %w", path, err)
	}
	return nil
}
