package outputs

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const DEFAULT_OUTPUT_PATH = "processed.csv.gz"

type FileOutputConfig struct {
	SendConfig
	Path     string
	Compress bool
}

func newFileOutputConfigFromRaw(rawConf map[string]string) (FileOutputConfig, error) {
	conf, err := NewSendConfigFromRaw(rawConf)
	if err != nil {
		return FileOutputConfig{}, err
	}

	path, ok := rawConf["path"]
	if !ok || path == "" {
		return FileOutputConfig{}, fmt.Errorf("missing `path` required for FileOutput")
	}

	compress := strings.HasSuffix(path, ".gz")
	if c, ok := rawConf["compress"]; ok {
		compress, err = strconv.ParseBool(c)
		if err != nil {
			return FileOutputConfig{}, fmt.Errorf("invalid bool `%s` for compress in FileOutput - expected true or false", c)
		}
	}

	return FileOutputConfig{
		SendConfig: conf,
		Path:       path,
		Compress:   compress,
	}, nil
}

// FileOutput writes into a temporary file next to Path, optionally gzipped, and only
// moves it over Path on Commit. A failed run never leaves a partial file at Path
type FileOutput struct {
	SendConfig
	path string
	tmp  *os.File
	gz   *gzip.Writer
	w    io.Writer
	done bool
}

func NewFileOutput(conf FileOutputConfig) (*FileOutput, error) {
	dir, base := filepath.Split(conf.Path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create temporary file for `%s`", conf.Path)
	}

	// CreateTemp makes the file private, but the output should be readable like any other file
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, errors.Wrap(err, "failed to set output permissions")
	}

	output := &FileOutput{
		SendConfig: conf.SendConfig,
		path:       conf.Path,
		tmp:        tmp,
		w:          tmp,
	}

	if conf.Compress {
		output.gz = gzip.NewWriter(tmp)
		output.w = output.gz
	}

	return output, nil
}

func (f *FileOutput) GetSendConfig() SendConfig {
	return f.SendConfig
}

func (f *FileOutput) Path() string {
	return f.path
}

func (f *FileOutput) Write(p []byte) (int, error) {
	if f.done {
		return 0, errors.New("write to a closed file output")
	}

	return f.w.Write(p)
}

func (f *FileOutput) Commit(ctx context.Context) error {
	if f.done {
		return errors.New("file output was already closed")
	}

	f.done = true

	if f.gz != nil {
		if err := f.gz.Close(); err != nil {
			f.discard()
			return errors.Wrap(err, "failed to finish gzip stream")
		}
	}

	if err := f.tmp.Sync(); err != nil {
		f.discard()
		return errors.Wrap(err, "failed to sync output")
	}

	if err := f.tmp.Close(); err != nil {
		os.Remove(f.tmp.Name())
		return errors.Wrap(err, "failed to close output")
	}

	if err := os.Rename(f.tmp.Name(), f.path); err != nil {
		os.Remove(f.tmp.Name())
		return errors.Wrapf(err, "failed to move output into `%s`", f.path)
	}

	return nil
}

func (f *FileOutput) Abort(ctx context.Context) error {
	if f.done {
		return nil
	}

	f.done = true
	log.Debug().Str("path", f.path).Str("tmp_path", f.tmp.Name()).Msg("Discarding output")

	return f.discard()
}

func (f *FileOutput) discard() error {
	f.tmp.Close()
	if err := os.Remove(f.tmp.Name()); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

func init() {
	outputsRegistry.Register("file", func(rawConf map[string]string) (interface{}, error) {
		conf, err := newFileOutputConfigFromRaw(rawConf)
		if err != nil {
			return nil, err
		}

		return conf, nil
	}, func(conf interface{}) (Outputter, error) {
		if c, ok := conf.(FileOutputConfig); ok {
			return NewFileOutput(c)
		}

		return nil, fmt.Errorf("invalid config passed to file output")
	})
}
