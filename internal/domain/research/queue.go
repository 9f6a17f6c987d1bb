package research

import "sort"

// ResearchQueue is an ordered, duplicate-free sequence of nodes. After every
// Enqueue, EnqueueRange, Remove or Clear the host's current project equals
// the research of the head node, or nil when the queue is empty.
//
// The queue is owned by one session and driven from a single simulation
// thread, so it carries no locks.
type ResearchQueue struct {
	host  Host
	nodes []*Node
}

// NewResearchQueue creates an empty queue bound to a host
func NewResearchQueue(host Host) *ResearchQueue {
	return &ResearchQueue{
		host:  host,
		nodes: make([]*Node, 0),
	}
}

// Enqueue appends node to the tail if it is not queued yet. When add is
// false the queue and the current project are reset first.
func (q *ResearchQueue) Enqueue(node *Node, add bool) {
	if !add {
		q.reset()
	}

	q.appendUnique(node)
	q.SyncCurrentProject()
}

// EnqueueRange inserts a batch of nodes ordered by ascending depth, then
// ascending cost. Lower depth first keeps prerequisites ahead of their
// dependents; cost only breaks ties. Already-queued nodes are skipped one
// by one.
func (q *ResearchQueue) EnqueueRange(nodes []*Node, add bool) {
	if !add {
		q.reset()
	}

	batch := make([]*Node, 0, len(nodes))
	for _, node := range nodes {
		if node != nil {
			batch = append(batch, node)
		}
	}
	sort.SliceStable(batch, func(i, j int) bool {
		if batch[i].Depth() != batch[j].Depth() {
			return batch[i].Depth() < batch[j].Depth()
		}
		return batch[i].Research().Cost() < batch[j].Research().Cost()
	})

	for _, node := range batch {
		q.appendUnique(node)
	}
	q.SyncCurrentProject()
}

// Dequeue removes and returns the head node, or nil when the queue is empty.
// It does not touch the host's current project; callers resynchronize.
func (q *ResearchQueue) Dequeue() *Node {
	if len(q.nodes) == 0 {
		return nil
	}
	node := q.nodes[0]
	q.nodes[0] = nil
	q.nodes = q.nodes[1:]
	return node
}

// Remove takes a node out of the queue wherever it sits and resynchronizes
// the current project. Returns false if the node was not queued.
func (q *ResearchQueue) Remove(node *Node) bool {
	idx := q.indexOf(node)
	if idx < 0 {
		return false
	}
	q.nodes = append(q.nodes[:idx], q.nodes[idx+1:]...)
	q.SyncCurrentProject()
	return true
}

// Clear empties the queue and unsets the current project
func (q *ResearchQueue) Clear() {
	q.reset()
}

// IsQueued reports whether node is in the queue (by identity)
func (q *ResearchQueue) IsQueued(node *Node) bool {
	return q.indexOf(node) >= 0
}

// Head returns the first node without removing it
func (q *ResearchQueue) Head() *Node {
	if len(q.nodes) == 0 {
		return nil
	}
	return q.nodes[0]
}

// Len returns the number of queued nodes
func (q *ResearchQueue) Len() int {
	return len(q.nodes)
}

// Nodes returns the queued nodes in order. The slice is a copy.
func (q *ResearchQueue) Nodes() []*Node {
	out := make([]*Node, len(q.nodes))
	copy(out, q.nodes)
	return out
}

// Position returns the 1-based queue position of node, or 0 if absent
func (q *ResearchQueue) Position(node *Node) int {
	return q.indexOf(node) + 1
}

// ProjectIDs returns the identifiers of the queued projects in order
func (q *ResearchQueue) ProjectIDs() []string {
	ids := make([]string, 0, len(q.nodes))
	for _, node := range q.nodes {
		ids = append(ids, node.Research().ID())
	}
	return ids
}

// SyncCurrentProject points the host's current project at the head
func (q *ResearchQueue) SyncCurrentProject() {
	head := q.Head()
	if head == nil {
		q.host.SetCurrentProject(nil)
		return
	}
	q.host.SetCurrentProject(head.Research())
}

func (q *ResearchQueue) reset() {
	q.nodes = q.nodes[:0]
	q.host.SetCurrentProject(nil)
}

func (q *ResearchQueue) appendUnique(node *Node) {
	if node == nil || q.IsQueued(node) {
		return
	}
	q.nodes = append(q.nodes, node)
}

func (q *ResearchQueue) indexOf(node *Node) int {
	if node == nil {
		return -1
	}
	for i, queued := range q.nodes {
		if queued == node {
			return i
		}
	}
	return -1
}
