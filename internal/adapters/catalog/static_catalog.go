package catalog

import (
	"context"
	"fmt"

	"github.com/andrescamacho/research-queue/internal/domain/research"
)

// Loader builds the research forest. It is called once per initialization.
type Loader func(ctx context.Context) ([]*research.Node, error)

// StaticCatalog is an in-memory catalog built lazily from a Loader.
// Reset drops the forest so the next Initialize rebuilds it with fresh
// nodes, the way a reloaded game rebuilds its tree.
type StaticCatalog struct {
	loader      Loader
	forest      []*research.Node
	byID        map[string]*research.Node
	initialized bool
	initCount   int
}

// Compile-time interface check
var _ research.Catalog = (*StaticCatalog)(nil)

// NewStaticCatalog creates an uninitialized catalog backed by loader
func NewStaticCatalog(loader Loader) *StaticCatalog {
	return &StaticCatalog{loader: loader}
}

// NewStaticCatalogFromNodes creates a catalog whose loader always returns nodes
func NewStaticCatalogFromNodes(nodes ...*research.Node) *StaticCatalog {
	return NewStaticCatalog(func(ctx context.Context) ([]*research.Node, error) {
		return nodes, nil
	})
}

// Initialize builds the forest. Calling it on an initialized catalog is a no-op.
func (c *StaticCatalog) Initialize(ctx context.Context) error {
	if c.initialized {
		return nil
	}
	if c.loader == nil {
		return research.NewCatalogError("static", "no loader configured", nil)
	}

	nodes, err := c.loader(ctx)
	if err != nil {
		return err
	}

	forest := make([]*research.Node, 0, len(nodes))
	byID := make(map[string]*research.Node, len(nodes))
	for _, node := range nodes {
		if node == nil {
			continue
		}
		forest = append(forest, node)
		// First match wins, mirroring a linear scan of the forest
		if _, exists := byID[node.Research().ID()]; !exists {
			byID[node.Research().ID()] = node
		}
	}

	c.forest = forest
	c.byID = byID
	c.initialized = true
	c.initCount++
	return nil
}

// Initialized reports whether the forest has been built
func (c *StaticCatalog) Initialized() bool {
	return c.initialized
}

// Forest returns the catalog nodes. Empty until initialized.
func (c *StaticCatalog) Forest() []*research.Node {
	out := make([]*research.Node, len(c.forest))
	copy(out, c.forest)
	return out
}

// FindByProjectID returns the first node wrapping projectID, or nil
func (c *StaticCatalog) FindByProjectID(projectID string) *research.Node {
	if c.byID == nil {
		return nil
	}
	return c.byID[projectID]
}

// Reset discards the forest; the next Initialize calls the loader again
func (c *StaticCatalog) Reset() {
	c.forest = nil
	c.byID = nil
	c.initialized = false
}

// InitializeCount returns how many times the loader has been run
func (c *StaticCatalog) InitializeCount() int {
	return c.initCount
}

func (c *StaticCatalog) String() string {
	return fmt.Sprintf("StaticCatalog{nodes=%d, initialized=%t}", len(c.forest), c.initialized)
}
