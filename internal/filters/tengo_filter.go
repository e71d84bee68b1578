package filters

import (
	"context"
	"fmt"
	"io/ioutil"
	"sort"
	"strconv"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/sinkingpoint/feedpipe/internal/feed"
)

const (
	TENGO_RECORD_VAR = "record"
	TENGO_DROP_VAR   = "drop"
)

type TengoFilterConfig struct {
	Source   []byte
	FailOpen bool
}

func NewTengoFilterConfigFromRaw(raw map[string]string) (TengoFilterConfig, error) {
	conf := TengoFilterConfig{}

	if src, ok := raw["script"]; ok {
		conf.Source = []byte(src)
	} else if path, ok := raw["path"]; ok {
		bytes, err := ioutil.ReadFile(path)
		if err != nil {
			return TengoFilterConfig{}, fmt.Errorf("failed to read tengo script `%s`: %w", path, err)
		}

		conf.Source = bytes
	} else {
		return TengoFilterConfig{}, fmt.Errorf("missing `script` or `path` in TengoFilter")
	}

	if failOpen, ok := raw["fail_open"]; ok {
		val, err := strconv.ParseBool(failOpen)
		if err != nil {
			return TengoFilterConfig{}, fmt.Errorf("invalid fail_open in TengoFilter - expected true or false, got `%s`", failOpen)
		}

		conf.FailOpen = val
	}

	return conf, nil
}

// TengoFilter runs a user supplied script against every record. The script sees the record
// as a map in `record` and drops it by setting `drop` to true. Changes to `record` are kept
type TengoFilter struct {
	compiled *tengo.Compiled
	failOpen bool
}

func NewTengoFilter(conf TengoFilterConfig) (*TengoFilter, error) {
	script := tengo.NewScript(conf.Source)
	script.SetImports(stdlib.GetModuleMap("text", "math"))

	if err := script.Add(TENGO_RECORD_VAR, map[string]interface{}{}); err != nil {
		return nil, err
	}

	if err := script.Add(TENGO_DROP_VAR, false); err != nil {
		return nil, err
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}

	return &TengoFilter{
		compiled: compiled,
		failOpen: conf.FailOpen,
	}, nil
}

func (t *TengoFilter) Filter(ctx context.Context, rec *feed.Record) (shouldDrop bool, err error) {
	fields := make(map[string]interface{}, len(rec.Fields))
	for _, f := range rec.Fields {
		if f.Null {
			fields[f.Name] = nil
		} else {
			fields[f.Name] = f.Value
		}
	}

	if err := t.compiled.Set(TENGO_RECORD_VAR, fields); err != nil {
		return !t.failOpen, err
	}

	// Globals survive between runs, so reset the verdict
	if err := t.compiled.Set(TENGO_DROP_VAR, false); err != nil {
		return !t.failOpen, err
	}

	if err := t.compiled.RunContext(ctx); err != nil {
		return !t.failOpen, err
	}

	if updated := t.compiled.Get(TENGO_RECORD_VAR).Map(); updated != nil {
		applyScriptFields(rec, updated)
	}

	return t.compiled.Get(TENGO_DROP_VAR).Bool(), nil
}

// applyScriptFields copies values back onto the record. Existing fields keep their
// position, new ones are appended in name order so output columns are stable
func applyScriptFields(rec *feed.Record, updated map[string]interface{}) {
	added := make([]string, 0)
	for name, val := range updated {
		if _, ok := rec.Get(name); !ok {
			added = append(added, name)
			continue
		}

		setScriptField(rec, name, val)
	}

	sort.Strings(added)
	for _, name := range added {
		setScriptField(rec, name, updated[name])
	}
}

func setScriptField(rec *feed.Record, name string, val interface{}) {
	switch v := val.(type) {
	case nil:
		rec.Put(feed.Field{Name: name, Null: true})
	case string:
		rec.Set(name, v)
	default:
		rec.Set(name, fmt.Sprint(v))
	}
}

func init() {
	filtersRegistry.Register("tengo", func(rawConf map[string]string) (interface{}, error) {
		return NewTengoFilterConfigFromRaw(rawConf)
	}, func(rawConf interface{}) (Filter, error) {
		if conf, ok := rawConf.(TengoFilterConfig); ok {
			return NewTengoFilter(conf)
		}

		return nil, fmt.Errorf("BUG: invalid type for Tengo filter configuration (expected TengoFilterConfig)")
	})
}
