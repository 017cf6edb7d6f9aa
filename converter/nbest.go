package converter

import (
	"container/heap"

	"kanaconv/lattice"
)

// NBest runs a backward A*-style search from EOS to BOS, using each
// node's already-computed forward cost as an admissible lower bound
// on the cost still needed to complete a path back to BOS. It
// reapplies the locked-boundary set Viterbi last computed (see
// Viterbi's doc comment), deduplicates paths by their concatenated
// (key, value), and stops at n accepted paths, an empty queue, or the
// expansion budget from config, whichever comes first.
//
// No priority-queue library appears anywhere in the example pack, so
// container/heap (the standard library's own priority queue
// primitive, purpose-built for exactly this shape of problem) is the
// grounded choice here rather than a third-party dependency (see
// DESIGN.md).
func (c *ImmutableConverter) NBest(lat *lattice.Lattice, n int) [][]lattice.NodeIndex {
	if n <= 0 {
		return nil
	}
	locked := c.lastLocked
	if locked == nil {
		locked = map[int]bool{}
	}

	budget := n * c.cfg.NBestExpansionBudgetMultiplier
	if budget <= 0 || budget > c.cfg.NBestExpansionBudgetMax {
		budget = c.cfg.NBestExpansionBudgetMax
	}

	pq := &nbestQueue{}
	heap.Init(pq)
	heap.Push(pq, &nbestItem{
		node:     lat.EOS(),
		gcost:    0,
		priority: lat.Node(lat.EOS()).FwdCost,
		path:     []lattice.NodeIndex{lat.EOS()},
	})

	var results [][]lattice.NodeIndex
	seen := map[string]bool{}
	pops := 0

	for pq.Len() > 0 && len(results) < n && pops < budget {
		item := heap.Pop(pq).(*nbestItem)
		pops++

		if item.node == lat.BOS() {
			path := reversePath(item.path)
			sig := pathSignature(lat, path)
			if seen[sig] {
				continue
			}
			seen[sig] = true
			results = append(results, path)
			continue
		}

		node := lat.Node(item.node)
		for _, lIdx := range lat.EndNodes(node.Begin) {
			if lIdx == lat.EOS() {
				// EOS sits in its own end bucket; it is never a predecessor.
				continue
			}
			left := lat.Node(lIdx)
			if left.FwdCost >= lattice.Unreached {
				continue
			}
			if crossesLocked(left.Begin, node.End(), node.Begin, locked) {
				continue
			}
			edgeCost := c.conn.Cost(left.RightID, node.LeftID) + c.segmenter.BoundaryPenalty(left, node) + node.WordCost
			newPath := make([]lattice.NodeIndex, len(item.path)+1)
			copy(newPath, item.path)
			newPath[len(item.path)] = lIdx
			heap.Push(pq, &nbestItem{
				node:     lIdx,
				gcost:    item.gcost + edgeCost,
				priority: item.gcost + edgeCost + left.FwdCost,
				path:     newPath,
			})
		}
	}

	return results
}

func reversePath(path []lattice.NodeIndex) []lattice.NodeIndex {
	out := make([]lattice.NodeIndex, len(path))
	for i, idx := range path {
		out[len(path)-1-i] = idx
	}
	return out
}

// pathSignature is the dedup key: the concatenated key and value of
// every non-sentinel node along the path, in order.
func pathSignature(lat *lattice.Lattice, path []lattice.NodeIndex) string {
	var key, value []byte
	for _, idx := range path {
		n := lat.Node(idx)
		if n.Type == lattice.BOS || n.Type == lattice.EOS {
			continue
		}
		key = append(key, n.Key...)
		value = append(value, n.Value...)
	}
	return string(key) + "\x00" + string(value)
}

type nbestItem struct {
	node     lattice.NodeIndex
	gcost    int32
	priority int32
	path     []lattice.NodeIndex
}

// nbestQueue is a container/heap min-priority queue ordered by
// nbestItem.priority.
type nbestQueue []*nbestItem

func (q nbestQueue) Len() int            { return len(q) }
func (q nbestQueue) Less(i, j int) bool  { return q[i].priority < q[j].priority }
func (q nbestQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *nbestQueue) Push(x interface{}) { *q = append(*q, x.(*nbestItem)) }
func (q *nbestQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
