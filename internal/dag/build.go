package dag

import (
	"context"
	"fmt"

	"github.com/vk/dagjobs/internal/config"
	"github.com/vk/dagjobs/internal/ctxlog"
)

// Build constructs the adjacency structure and entry set from a collection of
// job descriptors. Duplicate ids and prerequisites that reference undeclared
// ids are rejected with errors matching config.ErrInvalid. Build does not check
// for cycles; call CheckCycles before using the graph.
func Build(ctx context.Context, descriptors []config.JobDescriptor) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.", "descriptor_count", len(descriptors))

	g := &Graph{
		adjacency: make(map[uint64][]uint64, len(descriptors)),
		ids:       make([]uint64, 0, len(descriptors)),
		slots:     make(map[uint64]int, len(descriptors)),
	}

	// First pass: register every id and its prerequisite list.
	for _, d := range descriptors {
		if _, exists := g.slots[d.ID]; exists {
			return nil, fmt.Errorf("job %d: %w", d.ID, ErrDuplicateJob)
		}
		g.slots[d.ID] = len(g.ids)
		g.ids = append(g.ids, d.ID)
		g.adjacency[d.ID] = d.Clone().Requires
	}

	// Second pass: every id that some job requires is not an entry.
	isEntry := make([]bool, len(g.ids))
	for i := range isEntry {
		isEntry[i] = true
	}
	for _, id := range g.ids {
		for _, req := range g.adjacency[id] {
			slot, ok := g.slots[req]
			if !ok {
				return nil, fmt.Errorf("job %d requires job %d: %w", id, req, ErrUnknownJob)
			}
			isEntry[slot] = false
		}
	}

	for slot, entry := range isEntry {
		if entry {
			g.entryIDs = append(g.entryIDs, g.ids[slot])
		}
	}

	logger.Debug("Build: Graph construction complete.", "job_count", len(g.ids), "entry_count", len(g.entryIDs))
	return g, nil
}

// JobCount returns the number of distinct job ids.
func (g *Graph) JobCount() int {
	return len(g.ids)
}

// IDs returns every job id in declaration order.
func (g *Graph) IDs() []uint64 {
	return append([]uint64(nil), g.ids...)
}

// EntryIDs returns the ids that no other job requires, in declaration order.
func (g *Graph) EntryIDs() []uint64 {
	return append([]uint64(nil), g.entryIDs...)
}

// Prerequisites returns the prerequisite ids of a job in declaration order.
func (g *Graph) Prerequisites(id uint64) ([]uint64, bool) {
	reqs, ok := g.adjacency[id]
	if !ok {
		return nil, false
	}
	return append([]uint64(nil), reqs...), true
}

// Slot returns the dense index assigned to id.
func (g *Graph) Slot(id uint64) (int, bool) {
	slot, ok := g.slots[id]
	return slot, ok
}
