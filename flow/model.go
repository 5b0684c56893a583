// Package flow loads and queries the interaction model: a directed graph over
// dialogue-act labels where an edge A->B means act B may legally follow act A.
package flow

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Model is an immutable adjacency structure over act labels. A label absent
// from the model has no edges, so every transition through it is illegal; the
// detectors report that as a breakdown rather than an error.
type Model struct {
	adj map[string]map[string]struct{}
}

// FromEdges builds a model from a label -> successors mapping. Labels that
// appear only as successors become nodes without outgoing edges.
func FromEdges(edges map[string][]string) *Model {
	m := &Model{adj: make(map[string]map[string]struct{}, len(edges))}
	for from, tos := range edges {
		for _, to := range tos {
			m.addEdge(from, to)
		}
	}
	return m
}

func (m *Model) addEdge(from, to string) {
	if m.adj[from] == nil {
		m.adj[from] = make(map[string]struct{})
	}
	m.adj[from][to] = struct{}{}
	if m.adj[to] == nil {
		m.adj[to] = make(map[string]struct{})
	}
}

// Contains reports whether the label is a node of the model.
func (m *Model) Contains(label string) bool {
	_, ok := m.adj[label]
	return ok
}

// IsLegal reports whether act "to" may directly follow act "from".
func (m *Model) IsLegal(from, to string) bool {
	_, ok := m.adj[from][to]
	return ok
}

// Successors returns the legal next acts after the given label, sorted.
func (m *Model) Successors(from string) []string {
	out := make([]string, 0, len(m.adj[from]))
	for to := range m.adj[from] {
		out = append(out, to)
	}
	sort.Strings(out)
	return out
}

// Labels returns all node labels, sorted.
func (m *Model) Labels() []string {
	out := make([]string, 0, len(m.adj))
	for l := range m.adj {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Load reads a model specification, dispatching on the file extension:
// .json is parsed as a networkx node-link export, .yaml/.yml as a nodes/edges
// document.
func Load(path string) (*Model, error) {
	switch filepath.Ext(path) {
	case ".json":
		return LoadNodeLink(path)
	case ".yaml", ".yml":
		return LoadYAML(path)
	}
	return nil, fmt.Errorf("unsupported interaction model format %q", filepath.Ext(path))
}

// nodeLink mirrors the networkx node_link_data JSON layout.
type nodeLink struct {
	Directed bool `json:"directed"`
	Nodes    []struct {
		ID string `json:"id"`
	} `json:"nodes"`
	Links []struct {
		Source string `json:"source"`
		Target string `json:"target"`
	} `json:"links"`
}

// LoadNodeLink parses a node-link JSON graph export.
func LoadNodeLink(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var nl nodeLink
	if err := json.Unmarshal(data, &nl); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if !nl.Directed {
		return nil, fmt.Errorf("%s: interaction model must be a directed graph", path)
	}

	m := &Model{adj: make(map[string]map[string]struct{}, len(nl.Nodes))}
	for _, n := range nl.Nodes {
		if m.adj[n.ID] == nil {
			m.adj[n.ID] = make(map[string]struct{})
		}
	}
	for _, l := range nl.Links {
		m.addEdge(l.Source, l.Target)
	}
	return m, nil
}

type yamlSpec struct {
	Nodes []string `yaml:"nodes"`
	Edges []struct {
		From string `yaml:"from"`
		To   string `yaml:"to"`
	} `yaml:"edges"`
}

// LoadYAML parses a YAML nodes/edges model specification.
func LoadYAML(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var spec yamlSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	m := &Model{adj: make(map[string]map[string]struct{}, len(spec.Nodes))}
	for _, n := range spec.Nodes {
		if m.adj[n] == nil {
			m.adj[n] = make(map[string]struct{})
		}
	}
	for _, e := range spec.Edges {
		m.addEdge(e.From, e.To)
	}
	return m, nil
}

// WriteDOT renders the model as a Graphviz digraph for inspection.
func (m *Model) WriteDOT(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "digraph interaction_model {"); err != nil {
		return err
	}
	for _, from := range m.Labels() {
		if len(m.adj[from]) == 0 {
			if _, err := fmt.Fprintf(w, "  %q;\n", from); err != nil {
				return err
			}
			continue
		}
		for _, to := range m.Successors(from) {
			if _, err := fmt.Fprintf(w, "  %q -> %q;\n", from, to); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}
