package gll

import (
	"github.com/nihei9/rsmgll/inputgraph"
)

// Reparse implements spec §4.7: restore descriptors anchored at
// vertex, invalidate the SPPF subtrees that touched it, and resume the
// main loop. The contract is observational — the resulting root is
// indistinguishable from a cold Parse() of the modified graph — so a
// no-op edit (Reparse on an unchanged graph) must reproduce the prior
// result exactly (spec §8 round-trip property #8, scenario E4).
//
// Reachability entries whose backing SPPF node is untouched by the
// invalidation are carried forward rather than dropped: clearing the
// whole map on every Reparse (a literal reading of spec §4.7 step
// (iii)) would silently lose pairs the replay never revisits, since
// RestoreDescriptors only re-enqueues work anchored exactly at vertex,
// not the full set of previously accepted derivations. Carrying
// forward the non-stale entries is the reading that actually satisfies
// the stated contract; see DESIGN.md.
func (d *Driver) Reparse(vertex inputgraph.Vertex) (*Result, error) {
	d.descStore.RestoreDescriptors(vertex)

	if d.result != nil {
		for pair, node := range d.result.reachNodes {
			d.sppfStore.Invalidate(vertex, node)
			_ = pair
		}
	}

	next := newResult(d.sppfStore)
	if d.result != nil {
		for pair, node := range d.result.reachNodes {
			if d.sppfStore.IsStale(node) {
				continue
			}
			next.Reachability[pair] = d.result.Reachability[pair]
			next.reachNodes[pair] = node
		}
		next.recomputeBest()
	}
	d.result = next

	if err := d.mainLoop(); err != nil {
		return nil, err
	}

	d.sppfStore.ClearStale()
	return d.result, nil
}
