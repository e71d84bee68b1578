package inputs

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type csvJSONReader struct {
	*io.PipeReader
	done chan struct{}
}

// Close stops the conversion and waits for it to let go of the source reader
func (c *csvJSONReader) Close() error {
	err := c.PipeReader.Close()
	<-c.done
	return err
}

// CSVToJSONLines converts a CSV stream with a header row into one JSON object per line,
// with keys in header order. Header names and cells are trimmed of surrounding whitespace.
// Conversion runs in its own goroutine; a CSV or read error is returned from the Read of
// the returned reader
func CSVToJSONLines(r io.Reader) io.ReadCloser {
	pr, pw := io.Pipe()
	done := make(chan struct{})

	go func() {
		defer close(done)
		pw.CloseWithError(convertCSV(r, pw))
	}()

	return &csvJSONReader{
		PipeReader: pr,
		done:       done,
	}
}

func convertCSV(r io.Reader, w io.Writer) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil
	}

	if err != nil {
		return errors.Wrap(err, "failed to read csv header")
	}

	if len(header) > 0 {
		header[0] = string(bytes.TrimPrefix([]byte(header[0]), utf8BOM))
	}

	keys := make([][]byte, len(header))
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
		keys[i], err = json.Marshal(header[i])
		if err != nil {
			return errors.Wrapf(err, "failed to encode column `%s`", header[i])
		}
	}

	out := bufio.NewWriter(w)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return errors.Wrap(err, "failed to read csv row")
		}

		if err := writeJSONRow(out, keys, row); err != nil {
			return err
		}
	}

	return out.Flush()
}

func writeJSONRow(out *bufio.Writer, keys [][]byte, row []string) error {
	out.WriteByte('{')
	for i, cell := range row {
		if i > 0 {
			out.WriteByte(',')
		}

		if i < len(keys) {
			out.Write(keys[i])
		} else {
			// Cells past the end of the header get positional names
			out.WriteString(strconv.Quote("field" + strconv.Itoa(i+1)))
		}

		out.WriteByte(':')

		// Padding around cells isn't part of the value, quoted or not
		value, err := json.Marshal(strings.TrimSpace(cell))
		if err != nil {
			return errors.Wrap(err, "failed to encode csv cell")
		}

		out.Write(value)
	}

	out.WriteByte('}')
	_, err := out.WriteString("\n")
	return err
}
