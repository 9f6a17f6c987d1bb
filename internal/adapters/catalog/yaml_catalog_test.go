package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/research-queue/internal/adapters/catalog"
	"github.com/andrescamacho/research-queue/internal/domain/research"
)

const sampleCatalog = `
trees:
  - name: Main
    medium_color: "#4a7ab5"
    greyed_color: "#2b3a4d"
projects:
  - id: stonecutting
    label: stonecutting
    description: Cut rock chunks into blocks.
    cost: 300
    depth: 0
    tree: Main
  - id: smithing
    cost: 700
    depth: 1
    tree: Main
  - id: loose
    cost: 10
    depth: 0
`

func TestParseYAMLCatalog(t *testing.T) {
	nodes, err := catalog.ParseYAMLCatalog("sample", []byte(sampleCatalog))
	require.NoError(t, err)
	require.Len(t, nodes, 3)

	stone := nodes[0]
	assert.Equal(t, "stonecutting", stone.Research().ID())
	assert.Equal(t, "Stonecutting", stone.Research().LabelCap())
	assert.Equal(t, "Cut rock chunks into blocks.", stone.Research().Description())
	assert.Equal(t, 300.0, stone.Research().Cost())
	assert.Equal(t, 0, stone.Depth())
	require.NotNil(t, stone.Tree())
	assert.Equal(t, "Main", stone.Tree().Name)
	assert.Equal(t, "#4a7ab5", stone.Tree().MediumColor)

	assert.Same(t, stone.Tree(), nodes[1].Tree(), "projects share their tree")
	assert.Equal(t, "Smithing", nodes[1].Research().LabelCap(), "label falls back to the id")
	assert.Nil(t, nodes[2].Tree())
}

func TestParseYAMLCatalog_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"invalid yaml", "projects: [\n"},
		{"no projects", "trees: []\n"},
		{"missing id", "projects:\n  - cost: 5\n"},
		{"negative cost", "projects:\n  - id: a\n    cost: -1\n"},
		{"negative depth", "projects:\n  - id: a\n    depth: -2\n"},
		{"duplicate project", "projects:\n  - id: a\n  - id: a\n"},
		{"duplicate tree", "trees:\n  - name: Main\n  - name: Main\nprojects:\n  - id: a\n"},
		{"unknown tree", "projects:\n  - id: a\n    tree: Ghost\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.ParseYAMLCatalog("test", []byte(tt.yaml))

			var catalogErr *research.CatalogError
			require.ErrorAs(t, err, &catalogErr)
			assert.Equal(t, "test", catalogErr.Source)
		})
	}
}

func TestYAMLCatalog_InitializeIsLazyAndIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o644))

	cat := catalog.NewYAMLCatalog(path)
	assert.False(t, cat.Initialized())
	assert.Empty(t, cat.Forest())
	assert.Nil(t, cat.FindByProjectID("smithing"))

	require.NoError(t, cat.Initialize(context.Background()))
	require.NoError(t, cat.Initialize(context.Background()))

	assert.True(t, cat.Initialized())
	assert.Equal(t, 1, cat.InitializeCount())
	assert.Len(t, cat.Forest(), 3)
	require.NotNil(t, cat.FindByProjectID("smithing"))
	assert.Equal(t, 1, cat.FindByProjectID("smithing").Depth())
}

func TestYAMLCatalog_ResetRebuildsFreshNodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o644))

	cat := catalog.NewYAMLCatalog(path)
	require.NoError(t, cat.Initialize(context.Background()))
	before := cat.FindByProjectID("stonecutting")

	cat.Reset()
	assert.False(t, cat.Initialized())
	require.NoError(t, cat.Initialize(context.Background()))

	after := cat.FindByProjectID("stonecutting")
	assert.NotSame(t, before, after)
	assert.Equal(t, 2, cat.InitializeCount())
}

func TestYAMLCatalog_MissingFile(t *testing.T) {
	cat := catalog.NewYAMLCatalog(filepath.Join(t.TempDir(), "missing.yaml"))

	err := cat.Initialize(context.Background())

	var catalogErr *research.CatalogError
	require.ErrorAs(t, err, &catalogErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.False(t, cat.Initialized())
}

func TestStaticCatalog_FirstMatchWins(t *testing.T) {
	projectA, err := research.NewProjectDef("a", "A", "", 1)
	require.NoError(t, err)
	first, err := research.NewNode(projectA, 0, nil)
	require.NoError(t, err)
	second, err := research.NewNode(projectA, 3, nil)
	require.NoError(t, err)

	cat := catalog.NewStaticCatalogFromNodes(first, nil, second)
	require.NoError(t, cat.Initialize(context.Background()))

	assert.Same(t, first, cat.FindByProjectID("a"))
	assert.Len(t, cat.Forest(), 2)
}

func TestStaticCatalog_NoLoader(t *testing.T) {
	err := catalog.NewStaticCatalog(nil).Initialize(context.Background())

	var catalogErr *research.CatalogError
	assert.ErrorAs(t, err, &catalogErr)
}
