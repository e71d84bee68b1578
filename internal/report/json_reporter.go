package report

import (
	"io"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// JSONReporter writes the summary as a single JSON object, followed by a newline
type JSONReporter struct {
	W io.Writer
}

func (j *JSONReporter) Report(summary Summary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return errors.Wrap(err, "failed to encode summary")
	}

	data = append(data, '\n')
	if _, err := j.W.Write(data); err != nil {
		return errors.Wrap(err, "failed to write summary")
	}

	return nil
}
