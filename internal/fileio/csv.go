package fileio

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// readCSV reads CSV with headerRow (1-based), auto-detecting encoding and
// converting to UTF-8. ERP exports from the Romanian market are commonly
// Windows-1250 or ISO-8859-2; both are handled alongside UTF-8.
func readCSV(r io.Reader, headerRow int) ([]map[string]string, error) {
	br := bufio.NewReader(r)

	peek, _ := br.Peek(2048)
	cs := "utf-8"
	if len(peek) > 0 {
		if det, err := chardet.NewTextDetector().DetectBest(peek); err == nil && det != nil {
			cs = strings.ToLower(det.Charset)
		}
	}

	var dec io.Reader = br
	switch cs {
	case "windows-1250", "cp1250":
		dec = transform.NewReader(br, charmap.Windows1250.NewDecoder())
	case "iso-8859-2", "latin2":
		dec = transform.NewReader(br, charmap.ISO8859_2.NewDecoder())
	case "windows-1252", "cp1252", "iso-8859-1":
		dec = transform.NewReader(br, charmap.Windows1252.NewDecoder())
	default:
		// assume UTF-8
	}

	cr := csv.NewReader(dec)
	cr.FieldsPerRecord = -1

	// some exports use semicolons; sniff the header line
	if i := strings.IndexByte(string(peek), '\n'); i > 0 {
		line := string(peek[:i])
		if strings.Count(line, ";") > strings.Count(line, ",") {
			cr.Comma = ';'
		}
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	h := pickHeader(rows, headerRow)
	return rowsToMaps(rows, h, headerRow), nil
}
