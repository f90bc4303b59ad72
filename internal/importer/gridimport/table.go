package gridimport

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrTooManyRows is returned when the input exceeds MaxTableRows.
var ErrTooManyRows = errors.New("too many rows")

// MaxTableRows bounds how much of an upload is read before giving up.
const MaxTableRows = 500

// ReadTable reads a CSV or TSV export into a raw table. The delimiter is
// detected from the first line (tab wins over comma). A UTF-8 BOM is removed
// and rows consisting only of empty cells are dropped.
func ReadTable(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)

	first, err := br.Peek(4096)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("peek input: %w", err)
	}
	if i := bytes.IndexByte(first, '\n'); i >= 0 {
		first = first[:i]
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	if bytes.IndexByte(first, '\t') >= 0 {
		reader.Comma = '\t'
	}

	var table [][]string
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(table)+1, err)
		}
		if len(table) == 0 && len(rec) > 0 {
			rec[0] = strings.TrimPrefix(rec[0], "\ufeff")
		}
		if blank(rec) {
			continue
		}
		if len(table) >= MaxTableRows {
			return nil, ErrTooManyRows
		}
		table = append(table, rec)
	}

	return table, nil
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
