package iocsv

import (
	"bufio"
	"io"
	"strings"

	"github.com/gnames/occdb/pkg/schema"
)

// WriteTSV writes a table as tab-separated text: a header row with the
// column names, then one line per row. Values are written verbatim;
// the normalized data never contains tabs or newlines, so no quoting
// is applied.
func WriteTSV(w io.Writer, tbl *schema.Table) error {
	bw := bufio.NewWriter(w)

	line := strings.Join(tbl.ColumnNames(), "\t")
	if _, err := bw.WriteString(line + "\n"); err != nil {
		return writeError(err)
	}
	for _, row := range tbl.Rows {
		line = strings.Join(row, "\t")
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return writeError(err)
		}
	}
	if err := bw.Flush(); err != nil {
		return writeError(err)
	}
	return nil
}
