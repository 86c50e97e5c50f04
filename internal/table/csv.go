package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// candidateSeparators are tried in order when sniffing the delimiter.
var candidateSeparators = []rune{',', ';', '\t'}

// ReadCSVFile loads a raw survey export from disk. Field exports are not
// always UTF-8: files from older acquisition software arrive as cp1252 or
// latin-1, so invalid UTF-8 is re-decoded through Windows-1252 (a strict
// superset of latin-1 for the byte values these files use).
func ReadCSVFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read survey file %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		decoded, decErr := charmap.Windows1252.NewDecoder().Bytes(data)
		if decErr != nil {
			return nil, fmt.Errorf("failed to decode survey file %s: %w", path, decErr)
		}
		data = decoded
	}
	return ReadCSV(bytes.NewReader(data))
}

// ReadCSV parses CSV content into a Table. The delimiter is sniffed from the
// header line among comma, semicolon and tab; the first row becomes the
// column names. Ragged rows are tolerated.
func ReadCSV(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("empty survey file")
	}

	sep := sniffSeparator(data)
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	t := New(header)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read data row: %w", err)
		}
		t.AppendRow(record)
	}
	return t, nil
}

// sniffSeparator picks the candidate delimiter that appears most often in the
// first line, defaulting to comma.
func sniffSeparator(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	best := ','
	bestCount := 0
	for _, sep := range candidateSeparators {
		count := strings.Count(string(line), string(sep))
		if count > bestCount {
			best = sep
			bestCount = count
		}
	}
	return best
}
