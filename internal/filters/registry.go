package filters

import (
	"fmt"
	"sort"
	"strings"
)

// configConstructor validates a node's raw attributes into the typed config of a filter
type configConstructor = func(rawConf map[string]string) (interface{}, error)

// filterConstructor builds a Filter from the output of its configConstructor
type filterConstructor = func(conf interface{}) (Filter, error)

type registration struct {
	config    configConstructor
	construct filterConstructor
}

var filtersRegistry = make(filterRegistry)

type filterRegistry map[string]registration

func (r filterRegistry) Register(name string, configGen configConstructor, constructor filterConstructor) {
	r[name] = registration{
		config:    configGen,
		construct: constructor,
	}
}

// Names returns the registered filter types, sorted
func Names() []string {
	names := make([]string, 0, len(filtersRegistry))
	for name := range filtersRegistry {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

func HasConstructorFor(name string) bool {
	_, ok := filtersRegistry[strings.ToLower(name)]
	return ok
}

// Construct validates config and builds the named filter. Validation happens
// entirely in the config step, so a bad config never half-builds a filter
func Construct(name string, config map[string]string) (Filter, error) {
	reg, ok := filtersRegistry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("no filter type called `%s` (known types: %s)", name, strings.Join(Names(), ", "))
	}

	if config == nil {
		config = map[string]string{}
	}

	conf, err := reg.config(config)
	if err != nil {
		return nil, err
	}

	return reg.construct(conf)
}
