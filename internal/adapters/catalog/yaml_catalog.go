package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/research-queue/internal/domain/research"
)

// catalogFile is the on-disk layout of a research catalog.
// Depth is precomputed by whatever built the dependency tree.
type catalogFile struct {
	Trees    []treeEntry    `yaml:"trees" validate:"dive"`
	Projects []projectEntry `yaml:"projects" validate:"required,min=1,dive"`
}

type treeEntry struct {
	Name        string `yaml:"name" validate:"required"`
	MediumColor string `yaml:"medium_color"`
	GreyedColor string `yaml:"greyed_color"`
}

type projectEntry struct {
	ID          string  `yaml:"id" validate:"required"`
	Label       string  `yaml:"label"`
	Description string  `yaml:"description"`
	Cost        float64 `yaml:"cost" validate:"gte=0"`
	Depth       int     `yaml:"depth" validate:"gte=0"`
	Tree        string  `yaml:"tree"`
}

// NewYAMLCatalog creates a catalog that reads path on every initialization
func NewYAMLCatalog(path string) *StaticCatalog {
	return NewStaticCatalog(func(ctx context.Context) ([]*research.Node, error) {
		return LoadYAMLCatalog(path)
	})
}

// LoadYAMLCatalog reads and parses a catalog file
func LoadYAMLCatalog(path string) ([]*research.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, research.NewCatalogError(path, "failed to read catalog file", err)
	}
	return ParseYAMLCatalog(path, data)
}

// ParseYAMLCatalog builds nodes from catalog YAML. source names the input in errors.
func ParseYAMLCatalog(source string, data []byte) ([]*research.Node, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, research.NewCatalogError(source, "invalid YAML", err)
	}

	if err := validator.New().Struct(&file); err != nil {
		return nil, research.NewCatalogError(source, "validation failed", err)
	}

	trees := make(map[string]*research.Tree, len(file.Trees))
	for _, entry := range file.Trees {
		if _, exists := trees[entry.Name]; exists {
			return nil, research.NewCatalogError(source, fmt.Sprintf("duplicate tree %q", entry.Name), nil)
		}
		trees[entry.Name] = &research.Tree{
			Name:        entry.Name,
			MediumColor: entry.MediumColor,
			GreyedColor: entry.GreyedColor,
		}
	}

	seen := make(map[string]bool, len(file.Projects))
	nodes := make([]*research.Node, 0, len(file.Projects))
	for _, entry := range file.Projects {
		if seen[entry.ID] {
			return nil, research.NewCatalogError(source, fmt.Sprintf("duplicate project %q", entry.ID), nil)
		}
		seen[entry.ID] = true

		var tree *research.Tree
		if entry.Tree != "" {
			t, ok := trees[entry.Tree]
			if !ok {
				return nil, research.NewCatalogError(source, fmt.Sprintf("project %q references unknown tree %q", entry.ID, entry.Tree), nil)
			}
			tree = t
		}

		project, err := research.NewProjectDef(entry.ID, entry.Label, entry.Description, entry.Cost)
		if err != nil {
			return nil, research.NewCatalogError(source, "invalid project", err)
		}
		node, err := research.NewNode(project, entry.Depth, tree)
		if err != nil {
			return nil, research.NewCatalogError(source, "invalid node", err)
		}
		nodes = append(nodes, node)
	}

	return nodes, nil
}
