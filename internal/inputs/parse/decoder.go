package parse

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/sinkingpoint/feedpipe/internal/feed"
)

var ErrNotFlatObject = errors.New("line is not a flat JSON object")

// JSONDecoder decodes a line holding a single flat JSON object, keeping the
// order of its keys. Strings are kept verbatim, numbers keep their literal text
type JSONDecoder struct{}

func (j *JSONDecoder) Decode(line []byte) (*feed.Record, error) {
	// Token doesn't check the separators between tokens, so the syntax is checked first
	if !json.Valid(line) {
		return nil, errors.Wrap(ErrNotFlatObject, "invalid JSON")
	}

	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read object start")
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotFlatObject
	}

	rec := feed.NewRecord(8)
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return nil, errors.Wrap(err, "failed to read key")
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected a string key, got %v", tok)
		}

		tok, err = dec.Token()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read value of `%s`", key)
		}

		field, err := fieldFromToken(key, tok)
		if err != nil {
			return nil, err
		}

		// Later duplicates win but keep the position of the first occurrence
		rec.Put(field)
	}

	tok, err = dec.Token()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read object end")
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '}' {
		return nil, ErrNotFlatObject
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after object")
	}

	return rec, nil
}

func fieldFromToken(key string, tok json.Token) (feed.Field, error) {
	switch v := tok.(type) {
	case string:
		return feed.Field{Name: key, Value: v}, nil
	case json.Number:
		return feed.Field{Name: key, Value: v.String()}, nil
	case bool:
		return feed.Field{Name: key, Value: strconv.FormatBool(v)}, nil
	case nil:
		return feed.Field{Name: key, Null: true}, nil
	}

	return feed.Field{}, errors.Wrapf(ErrNotFlatObject, "unsupported value for `%s`", key)
}
