package outputs

import (
	"fmt"
	"sort"
	"strings"
)

type outputterConstructor = func(conf interface{}) (Outputter, error)
type configConstructor = func(rawConf map[string]string) (interface{}, error)

type registration struct {
	config    configConstructor
	construct outputterConstructor
}

var outputsRegistry = make(outputterRegistry)

// outputterRegistry maps output type names to the functions that build them.
// Like filters, construction is split into parsing the config and building the output
type outputterRegistry map[string]registration

func (r outputterRegistry) Register(name string, configGen configConstructor, constructor outputterConstructor) {
	r[name] = registration{
		config:    configGen,
		construct: constructor,
	}
}

// Names returns the registered output types, sorted
func Names() []string {
	names := make([]string, 0, len(outputsRegistry))
	for name := range outputsRegistry {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

func HasConstructorFor(name string) bool {
	_, ok := outputsRegistry[strings.ToLower(name)]
	return ok
}

// Construct builds the named output from its raw config. Some outputs create
// their destination here, so callers should Abort an output they end up not using
func Construct(name string, rawConf map[string]string) (Outputter, error) {
	reg, ok := outputsRegistry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("no output type called `%s` (known types: %s)", name, strings.Join(Names(), ", "))
	}

	if rawConf == nil {
		rawConf = map[string]string{}
	}

	conf, err := reg.config(rawConf)
	if err != nil {
		return nil, err
	}

	return reg.construct(conf)
}
