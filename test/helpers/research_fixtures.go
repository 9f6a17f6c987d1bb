package helpers

import (
	"testing"

	"github.com/andrescamacho/research-queue/internal/domain/research"
)

// DefaultTree is the tree fixture nodes are attached to
var DefaultTree = &research.Tree{Name: "Main", MediumColor: "#4a7ab5", GreyedColor: "#2b3a4d"}

// NewTestProject builds a project definition or fails the test
func NewTestProject(t testing.TB, id string, cost float64) *research.ProjectDef {
	t.Helper()
	project, err := research.NewProjectDef(id, id, "", cost)
	if err != nil {
		t.Fatalf("failed to create project %s: %v", id, err)
	}
	return project
}

// NewTestNode builds a node for a new project or fails the test
func NewTestNode(t testing.TB, id string, depth int, cost float64) *research.Node {
	t.Helper()
	node, err := research.NewNode(NewTestProject(t, id, cost), depth, DefaultTree)
	if err != nil {
		t.Fatalf("failed to create node %s: %v", id, err)
	}
	return node
}

// NodeIDs returns the project identifiers of nodes in order
func NodeIDs(nodes []*research.Node) []string {
	ids := make([]string, 0, len(nodes))
	for _, node := range nodes {
		ids = append(ids, node.Research().ID())
	}
	return ids
}
