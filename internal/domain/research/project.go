package research

import (
	"fmt"
	"strings"
	"unicode"
)

// ProjectDef is an immutable catalog entry describing one research project.
// It is owned by the catalog; the queue only ever holds references to it.
type ProjectDef struct {
	id          string
	label       string
	description string
	cost        float64
}

// NewProjectDef creates a project definition
func NewProjectDef(id, label, description string, cost float64) (*ProjectDef, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("project id must not be empty")
	}
	if cost < 0 {
		return nil, fmt.Errorf("project %s: cost must be non-negative, got %.2f", id, cost)
	}
	return &ProjectDef{
		id:          id,
		label:       label,
		description: description,
		cost:        cost,
	}, nil
}

// ID returns the stable catalog identifier
func (p *ProjectDef) ID() string { return p.id }

// Label returns the raw label
func (p *ProjectDef) Label() string { return p.label }

// Description returns the text shown once the project is discovered
func (p *ProjectDef) Description() string { return p.description }

// Cost returns the total amount of progress needed to finish the project
func (p *ProjectDef) Cost() float64 { return p.cost }

// LabelCap returns the label with its first letter upper-cased, falling back
// to the identifier for unlabeled projects.
func (p *ProjectDef) LabelCap() string {
	label := p.label
	if label == "" {
		label = p.id
	}
	runes := []rune(label)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func (p *ProjectDef) String() string {
	return p.id
}

// Tree groups nodes for display purposes only. The queue never reads it.
type Tree struct {
	Name        string
	MediumColor string
	GreyedColor string
}

// Node is the queue-visible wrapper around one project. Nodes are created
// once by the catalog and compared by pointer identity.
type Node struct {
	research *ProjectDef
	depth    int
	tree     *Tree
}

// NewNode wraps a project definition at the given topological depth
func NewNode(project *ProjectDef, depth int, tree *Tree) (*Node, error) {
	if project == nil {
		return nil, fmt.Errorf("node requires a project")
	}
	if depth < 0 {
		return nil, fmt.Errorf("project %s: depth must be non-negative, got %d", project.ID(), depth)
	}
	return &Node{research: project, depth: depth, tree: tree}, nil
}

// Research returns the wrapped project
func (n *Node) Research() *ProjectDef { return n.research }

// Depth returns the topological distance from prerequisite-free roots
func (n *Node) Depth() int { return n.depth }

// Tree returns the display grouping, possibly nil
func (n *Node) Tree() *Tree { return n.tree }

func (n *Node) String() string {
	return fmt.Sprintf("%s(d=%d)", n.research.ID(), n.depth)
}
