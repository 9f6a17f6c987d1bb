package cli

import (
	"fmt"
	"sort"
	"strings"

	researchQueries "github.com/andrescamacho/research-queue/internal/application/research/queries"
)

// TreeFormatter renders catalog entries grouped by tree, then depth
type TreeFormatter struct {
	useColors bool
}

// NewTreeFormatter creates a new tree formatter
func NewTreeFormatter(useColors bool) *TreeFormatter {
	return &TreeFormatter{useColors: useColors}
}

type depthGroup struct {
	depth   int
	entries []researchQueries.CatalogEntryDTO
}

type treeGroup struct {
	name   string
	depths []*depthGroup
}

// FormatCatalog renders every tree as a root with one branch per depth
func (f *TreeFormatter) FormatCatalog(entries []researchQueries.CatalogEntryDTO) string {
	if len(entries) == 0 {
		return "(empty catalog)\n"
	}

	var builder strings.Builder
	for _, tree := range groupByTree(entries) {
		builder.WriteString(tree.name)
		builder.WriteString("\n")

		for i, group := range tree.depths {
			lastDepth := i == len(tree.depths)-1
			builder.WriteString(branch("", lastDepth))
			builder.WriteString(fmt.Sprintf("depth %d\n", group.depth))

			childPrefix := "│   "
			if lastDepth {
				childPrefix = "    "
			}
			for j, entry := range group.entries {
				builder.WriteString(branch(childPrefix, j == len(group.entries)-1))
				builder.WriteString(f.formatEntry(entry))
				builder.WriteString("\n")
			}
		}
	}
	return builder.String()
}

// formatEntry renders one project line with its status icon
func (f *TreeFormatter) formatEntry(entry researchQueries.CatalogEntryDTO) string {
	queue := ""
	if entry.Position > 0 {
		queue = fmt.Sprintf(" %s#%d%s", f.color("\033[33m"), entry.Position, f.colorReset())
	}
	return fmt.Sprintf("%s %s (%.0f/%.0f)%s",
		f.getStatusIcon(entry),
		entry.Label,
		entry.Progress,
		entry.Cost,
		queue,
	)
}

// getStatusIcon returns a visual indicator for project status
func (f *TreeFormatter) getStatusIcon(entry researchQueries.CatalogEntryDTO) string {
	switch {
	case entry.Finished:
		return f.color("\033[32m") + "[✓]" + f.colorReset()
	case entry.Position == 1:
		return f.color("\033[36m") + "[▶]" + f.colorReset()
	default:
		return "[ ]"
	}
}

// FormatSummary creates a compact summary of the catalog
func (f *TreeFormatter) FormatSummary(entries []researchQueries.CatalogEntryDTO) string {
	finished, queued := 0, 0
	for _, entry := range entries {
		if entry.Finished {
			finished++
		}
		if entry.Position > 0 {
			queued++
		}
	}

	progress := 0
	if len(entries) > 0 {
		progress = finished * 100 / len(entries)
	}

	return fmt.Sprintf("Catalog: %d projects, %d finished, %d queued, progress=%d%%",
		len(entries), finished, queued, progress)
}

func (f *TreeFormatter) color(code string) string {
	if !f.useColors {
		return ""
	}
	return code
}

// colorReset returns ANSI reset code
func (f *TreeFormatter) colorReset() string {
	return f.color("\033[0m")
}

func branch(prefix string, isLast bool) string {
	if isLast {
		return prefix + "└── "
	}
	return prefix + "├── "
}

// groupByTree keeps the entry order within a depth; trees are sorted by name
// with projects outside any tree listed last.
func groupByTree(entries []researchQueries.CatalogEntryDTO) []*treeGroup {
	byName := make(map[string]*treeGroup)
	var trees []*treeGroup

	for _, entry := range entries {
		name := entry.Tree
		if name == "" {
			name = "(no tree)"
		}
		tree, ok := byName[name]
		if !ok {
			tree = &treeGroup{name: name}
			byName[name] = tree
			trees = append(trees, tree)
		}

		var group *depthGroup
		for _, candidate := range tree.depths {
			if candidate.depth == entry.Depth {
				group = candidate
				break
			}
		}
		if group == nil {
			group = &depthGroup{depth: entry.Depth}
			tree.depths = append(tree.depths, group)
		}
		group.entries = append(group.entries, entry)
	}

	sort.SliceStable(trees, func(i, j int) bool {
		if (trees[i].name == "(no tree)") != (trees[j].name == "(no tree)") {
			return trees[j].name == "(no tree)"
		}
		return trees[i].name < trees[j].name
	})
	for _, tree := range trees {
		sort.SliceStable(tree.depths, func(i, j int) bool {
			return tree.depths[i].depth < tree.depths[j].depth
		})
	}
	return trees
}
