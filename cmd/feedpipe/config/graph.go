package config

import (
	"fmt"
	"strconv"
	"strings"
)

type node struct {
	name  string
	attrs map[string]string
}

type edge struct {
	from string
	to   string
}

// ConfigGraph collects a DOT pipeline description as gographviz analyses it.
// gographviz ignores the errors returned here, so the first one is kept in err
type ConfigGraph struct {
	name  string
	attrs map[string]string
	nodes map[string]*node
	order []string
	edges []edge
	err   error
}

func newConfigGraph() ConfigGraph {
	return ConfigGraph{
		attrs: make(map[string]string),
		nodes: make(map[string]*node),
		order: make([]string, 0, 4),
		edges: make([]edge, 0, 4),
	}
}

// unquote strips DOT quoting from an ID or attribute value
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if unquoted, err := strconv.Unquote(s); err == nil {
			return unquoted
		}

		return s[1 : len(s)-1]
	}

	return s
}

func (c *ConfigGraph) fail(err error) error {
	if c.err == nil {
		c.err = err
	}

	return err
}

func (c *ConfigGraph) SetStrict(strict bool) error {
	return nil
}

func (c *ConfigGraph) SetDir(directed bool) error {
	if !directed {
		return c.fail(fmt.Errorf("the pipeline config must be a digraph"))
	}

	return nil
}

func (c *ConfigGraph) SetName(name string) error {
	c.name = name
	return nil
}

func (c *ConfigGraph) AddPortEdge(src, srcPort, dst, dstPort string, directed bool, attrs map[string]string) error {
	return c.AddEdge(src, dst, directed, attrs)
}

func (c *ConfigGraph) AddEdge(src, dst string, directed bool, attrs map[string]string) error {
	if !directed {
		return c.fail(fmt.Errorf("edges in the pipeline config must be directed"))
	}

	c.edges = append(c.edges, edge{
		from: unquote(src),
		to:   unquote(dst),
	})

	return nil
}

// AddNode adds a node, or merges attrs into it if it already exists. Nodes used
// in an edge before they're declared are added once for the edge and again for the declaration
func (c *ConfigGraph) AddNode(parentGraph string, name string, attrs map[string]string) error {
	if parentGraph != c.name {
		return c.fail(fmt.Errorf("node `%s` is in a subgraph, which pipeline configs don't support", name))
	}

	name = unquote(name)
	n, ok := c.nodes[name]
	if !ok {
		n = &node{
			name:  name,
			attrs: make(map[string]string, len(attrs)),
		}

		c.nodes[name] = n
		c.order = append(c.order, name)
	}

	for key, value := range attrs {
		n.attrs[unquote(key)] = unquote(value)
	}

	return nil
}

func (c *ConfigGraph) AddAttr(parentGraph string, field, value string) error {
	if parentGraph != c.name {
		return c.fail(fmt.Errorf("attribute `%s` is in a subgraph, which pipeline configs don't support", field))
	}

	field = unquote(field)
	if _, ok := c.attrs[field]; ok {
		return c.fail(fmt.Errorf("graph already has an attribute `%s`", field))
	}

	c.attrs[field] = unquote(value)
	return nil
}

func (c *ConfigGraph) AddSubGraph(parentGraph string, name string, attrs map[string]string) error {
	return c.fail(fmt.Errorf("subgraph `%s` isn't supported in pipeline configs", name))
}

func (c *ConfigGraph) String() string {
	chain, err := c.chain()
	if err != nil {
		return ""
	}

	return strings.Join(chain, " -> ")
}

// chain orders the nodes from the input to the output. The graph must be a single
// path that visits every node exactly once
func (c *ConfigGraph) chain() ([]string, error) {
	if len(c.nodes) < 2 {
		return nil, fmt.Errorf("the pipeline config needs at least an input and an output, got %d nodes", len(c.nodes))
	}

	next := make(map[string]string, len(c.edges))
	incoming := make(map[string]string, len(c.edges))
	for _, e := range c.edges {
		if e.from == e.to {
			return nil, fmt.Errorf("node `%s` can't send to itself", e.from)
		}

		if to, ok := next[e.from]; ok {
			return nil, fmt.Errorf("node `%s` sends to both `%s` and `%s`, but a pipeline must be a single chain", e.from, to, e.to)
		}

		if from, ok := incoming[e.to]; ok {
			return nil, fmt.Errorf("node `%s` receives from both `%s` and `%s`, but a pipeline must be a single chain", e.to, from, e.from)
		}

		next[e.from] = e.to
		incoming[e.to] = e.from
	}

	start := ""
	for _, name := range c.order {
		if _, ok := incoming[name]; ok {
			continue
		}

		if start != "" {
			return nil, fmt.Errorf("both `%s` and `%s` have nothing sending to them, but a pipeline has exactly one input", start, name)
		}

		start = name
	}

	if start == "" {
		return nil, fmt.Errorf("the pipeline config is a cycle")
	}

	chain := make([]string, 0, len(c.nodes))
	for name, ok := start, true; ok; name, ok = next[name] {
		chain = append(chain, name)
	}

	if len(chain) != len(c.nodes) {
		return nil, fmt.Errorf("the pipeline config has nodes that aren't connected to the input")
	}

	return chain, nil
}
