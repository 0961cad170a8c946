package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/arthur-debert/dodot-firefox/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultsDirective updates per-directive defaults instead of running.
const DefaultsDirective = "defaults"

// Directive is one entry of a task: a directive name and its data.
type Directive struct {
	Name string
	Data any
}

// Task is an ordered list of directives.
type Task []Directive

// LoadInstallFile reads an install file, picking the parser by extension.
func LoadInstallFile(path string) ([]Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrNotFound, "install file %s not found", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read install file %s", path).
			WithDetail("path", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ParseTOML(data)
	case ".yaml", ".yml", ".json", "":
		return ParseYAML(data)
	default:
		return nil, errors.Newf(errors.ErrConfigLoad, "unsupported install file type %q", filepath.Ext(path)).
			WithDetail("path", path)
	}
}

// ParseYAML parses a YAML (or JSON) install file: a sequence of mappings.
// Directive order within each mapping is preserved.
func ParseYAML(data []byte) ([]Task, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse install file")
	}
	if root.Kind == 0 {
		return nil, nil
	}

	doc := &root
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil, nil
		}
		doc = doc.Content[0]
	}
	if doc.Kind == yaml.ScalarNode && doc.Tag == "!!null" {
		return nil, nil
	}
	if doc.Kind != yaml.SequenceNode {
		return nil, errors.New(errors.ErrConfigValid, "install file must be a list of tasks")
	}

	tasks := make([]Task, 0, len(doc.Content))
	for i, item := range doc.Content {
		if item.Kind != yaml.MappingNode {
			return nil, errors.Newf(errors.ErrConfigValid, "task %d must be a mapping", i).
				WithDetail("task", i)
		}
		task := make(Task, 0, len(item.Content)/2)
		for j := 0; j+1 < len(item.Content); j += 2 {
			var value any
			if err := item.Content[j+1].Decode(&value); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to decode directive %q", item.Content[j].Value)
			}
			task = append(task, Directive{Name: item.Content[j].Value, Data: value})
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

type tomlInstall struct {
	Tasks []map[string]any `toml:"tasks"`
}

// ParseTOML parses a TOML install file holding [[tasks]] tables. TOML tables
// are unordered, so defaults run first and the rest in name order.
func ParseTOML(data []byte) ([]Task, error) {
	var doc tomlInstall
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse install file")
	}

	tasks := make([]Task, 0, len(doc.Tasks))
	for _, table := range doc.Tasks {
		names := make([]string, 0, len(table))
		for name := range table {
			names = append(names, name)
		}
		slices.SortFunc(names, func(a, b string) int {
			switch {
			case a == b:
				return 0
			case a == DefaultsDirective:
				return -1
			case b == DefaultsDirective:
				return 1
			}
			return strings.Compare(a, b)
		})

		task := make(Task, 0, len(names))
		for _, name := range names {
			task = append(task, Directive{Name: name, Data: table[name]})
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
