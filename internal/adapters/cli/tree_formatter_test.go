package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	researchQueries "github.com/andrescamacho/research-queue/internal/application/research/queries"
)

func sampleEntries() []researchQueries.CatalogEntryDTO {
	return []researchQueries.CatalogEntryDTO{
		{ProjectID: "stonecutting", Label: "Stonecutting", Depth: 0, Cost: 300, Progress: 300, Finished: true, Tree: "Main"},
		{ProjectID: "electricity", Label: "Electricity", Depth: 0, Cost: 1600, Progress: 400, Position: 1, Tree: "Main"},
		{ProjectID: "batteries", Label: "Batteries", Depth: 1, Cost: 400, Position: 2, Tree: "Main"},
		{ProjectID: "loose", Label: "Loose", Depth: 0, Cost: 10},
		{ProjectID: "machining", Label: "Machining", Depth: 2, Cost: 1000, Tree: "Industry"},
	}
}

func TestTreeFormatter_FormatCatalog(t *testing.T) {
	output := NewTreeFormatter(false).FormatCatalog(sampleEntries())

	expected := strings.Join([]string{
		"Industry",
		"└── depth 2",
		"    └── [ ] Machining (0/1000)",
		"Main",
		"├── depth 0",
		"│   ├── [✓] Stonecutting (300/300)",
		"│   └── [▶] Electricity (400/1600) #1",
		"└── depth 1",
		"    └── [ ] Batteries (0/400) #2",
		"(no tree)",
		"└── depth 0",
		"    └── [ ] Loose (0/10)",
		"",
	}, "\n")
	assert.Equal(t, expected, output)
}

func TestTreeFormatter_Colors(t *testing.T) {
	plain := NewTreeFormatter(false).FormatCatalog(sampleEntries())
	colored := NewTreeFormatter(true).FormatCatalog(sampleEntries())

	assert.NotContains(t, plain, "\033[")
	assert.Contains(t, colored, "\033[32m[✓]\033[0m")
}

func TestTreeFormatter_Empty(t *testing.T) {
	assert.Equal(t, "(empty catalog)\n", NewTreeFormatter(false).FormatCatalog(nil))
}

func TestTreeFormatter_FormatSummary(t *testing.T) {
	summary := NewTreeFormatter(false).FormatSummary(sampleEntries())

	assert.Equal(t, "Catalog: 5 projects, 1 finished, 2 queued, progress=20%", summary)
}
