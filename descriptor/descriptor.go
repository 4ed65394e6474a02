// Package descriptor is the descriptor scheduler (spec §3, §4.4): a
// dedup'd work item (rsmState, gssNode, sppfNode?, inputPosition), a
// handled/handling split that guarantees each descriptor is processed
// at most once per (non-incremental) parse, and a secondary recovery
// queue that only drains once the default queue is empty.
package descriptor

import (
	"github.com/nihei9/rsmgll/gss"
	"github.com/nihei9/rsmgll/inputgraph"
	"github.com/nihei9/rsmgll/rsm"
	"github.com/nihei9/rsmgll/sppf"
)

// Descriptor is (rsmState, gssNode, sppfNode?, inputPosition); equality
// is by all four components (spec §3).
type Descriptor struct {
	State    rsm.StateID
	Gss      gss.NodeID
	Sppf     sppf.Child
	Position inputgraph.Vertex
}

// Store holds the handled set, the pending queues, and an index of
// handled descriptors by input position, so
// RestoreDescriptors can demote handled -> handling for a vertex
// (spec §4.4, §4.7).
type Store struct {
	handled map[Descriptor]bool

	// handledAt indexes handled descriptors by input position for
	// RestoreDescriptors; a position can have been visited by many
	// descriptors across different states/GSS nodes.
	handledAt map[inputgraph.Vertex][]Descriptor

	defaultQueue  []Descriptor
	recoveryQueue []Descriptor
	queued        map[Descriptor]bool // de-dup across both queues, independent of handled
}

func NewStore() *Store {
	return &Store{
		handled:   map[Descriptor]bool{},
		handledAt: map[inputgraph.Vertex][]Descriptor{},
		queued:    map[Descriptor]bool{},
	}
}

// Enqueue implements the spec §4.4 enqueue policy: a descriptor is
// enqueued iff it is not already in handled, and (to avoid unbounded
// requeueing of the same pending work) not already sitting in a queue.
// recovery selects which queue it lands in.
func (s *Store) Enqueue(d Descriptor, recovery bool) bool {
	if s.handled[d] || s.queued[d] {
		return false
	}
	s.queued[d] = true
	if recovery {
		s.recoveryQueue = append(s.recoveryQueue, d)
	} else {
		s.defaultQueue = append(s.defaultQueue, d)
	}
	return true
}

// Next implements spec §4.4 next(): serves the default queue until
// empty, then the recovery queue. Returns ok=false when both are
// empty.
func (s *Store) Next() (Descriptor, bool) {
	if len(s.defaultQueue) > 0 {
		d := s.defaultQueue[0]
		s.defaultQueue = s.defaultQueue[1:]
		delete(s.queued, d)
		return d, true
	}
	if len(s.recoveryQueue) > 0 {
		d := s.recoveryQueue[0]
		s.recoveryQueue = s.recoveryQueue[1:]
		delete(s.queued, d)
		return d, true
	}
	return Descriptor{}, false
}

func (s *Store) DefaultQueueEmpty() bool  { return len(s.defaultQueue) == 0 }
func (s *Store) RecoveryQueueEmpty() bool { return len(s.recoveryQueue) == 0 }

// MarkHandled inserts d into handled (spec §4.5 step 2) and indexes it
// by position for future RestoreDescriptors calls.
func (s *Store) MarkHandled(d Descriptor) {
	if s.handled[d] {
		return
	}
	s.handled[d] = true
	s.handledAt[d.Position] = append(s.handledAt[d.Position], d)
}

func (s *Store) IsHandled(d Descriptor) bool { return s.handled[d] }

// RestoreDescriptors implements spec §4.7 restoreDescriptors(vertex):
// moves every handled descriptor whose input position equals vertex
// back into handling (re-enqueues it on the default queue, since
// incremental reparse is never itself a recovery operation).
func (s *Store) RestoreDescriptors(vertex inputgraph.Vertex) {
	ds := s.handledAt[vertex]
	delete(s.handledAt, vertex)
	for _, d := range ds {
		delete(s.handled, d)
		s.Enqueue(d, false)
	}
}
