package format

import (
	"bytes"

	"github.com/goccy/go-json"
	"github.com/sinkingpoint/feedpipe/internal/feed"
)

// JSONFormatter writes each record as a JSON object with its keys in record order
type JSONFormatter struct{}

func (j *JSONFormatter) Header(rec *feed.Record) ([]byte, error) {
	return nil, nil
}

func (j *JSONFormatter) Format(rec *feed.Record) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range rec.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')

		if f.Null {
			buf.WriteString("null")
			continue
		}

		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}

		buf.Write(value)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}
