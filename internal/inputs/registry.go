package inputs

import (
	"fmt"
	"sort"
	"strings"
)

type inputterConstructor = func(conf interface{}) (Inputter, error)
type configConstructor = func(rawConf map[string]string) (interface{}, error)

// registration pairs the config parser of an input type with the constructor that consumes its result
type registration struct {
	config    configConstructor
	construct inputterConstructor
}

var inputsRegistry = make(inputterRegistry)

type inputterRegistry map[string]registration

func (r inputterRegistry) Register(name string, configGen configConstructor, constructor inputterConstructor) {
	r[name] = registration{
		config:    configGen,
		construct: constructor,
	}
}

// Names returns the registered input types, sorted
func Names() []string {
	names := make([]string, 0, len(inputsRegistry))
	for name := range inputsRegistry {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

func HasConstructorFor(name string) bool {
	_, ok := inputsRegistry[strings.ToLower(name)]
	return ok
}

// Construct builds the named input from its raw config
func Construct(name string, rawConf map[string]string) (Inputter, error) {
	reg, ok := inputsRegistry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("no input type called `%s` (known types: %s)", name, strings.Join(Names(), ", "))
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
