package descriptor

import "testing"

func TestEnqueueDedupsWithinAQueue(t *testing.T) {
	s := NewStore()
	d := Descriptor{Position: 1}

	if !s.Enqueue(d, false) {
		t.Fatal("first Enqueue should succeed")
	}
	if s.Enqueue(d, false) {
		t.Error("re-enqueuing an already-queued descriptor should be a no-op")
	}
}

func TestEnqueueRefusesHandled(t *testing.T) {
	s := NewStore()
	d := Descriptor{Position: 1}
	s.MarkHandled(d)

	if s.Enqueue(d, false) {
		t.Error("a handled descriptor must never be re-enqueued")
	}
}

func TestNextServesDefaultBeforeRecovery(t *testing.T) {
	s := NewStore()
	rec := Descriptor{Position: 1}
	def := Descriptor{Position: 2}

	s.Enqueue(rec, true)
	s.Enqueue(def, false)

	got, ok := s.Next()
	if !ok || got != def {
		t.Fatalf("Next() = (%v, %v), want the default-queue descriptor first", got, ok)
	}
	got, ok = s.Next()
	if !ok || got != rec {
		t.Fatalf("Next() = (%v, %v), want the recovery-queue descriptor second", got, ok)
	}
	if _, ok := s.Next(); ok {
		t.Error("Next() on two empty queues should report ok=false")
	}
}

func TestRestoreDescriptorsReopensHandledAtVertex(t *testing.T) {
	s := NewStore()
	d1 := Descriptor{Position: 5, State: 1}
	d2 := Descriptor{Position: 5, State: 2}
	d3 := Descriptor{Position: 6, State: 3}
	s.MarkHandled(d1)
	s.MarkHandled(d2)
	s.MarkHandled(d3)

	s.RestoreDescriptors(5)

	if s.IsHandled(d1) || s.IsHandled(d2) {
		t.Error("descriptors at the restored vertex should no longer be handled")
	}
	if !s.IsHandled(d3) {
		t.Error("a descriptor at a different vertex must remain handled")
	}

	seen := map[Descriptor]bool{}
	for {
		d, ok := s.Next()
		if !ok {
			break
		}
		seen[d] = true
	}
	if !seen[d1] || !seen[d2] {
		t.Errorf("restored descriptors should be re-enqueued, got %v", seen)
	}
	if seen[d3] {
		t.Error("the untouched descriptor should not have been enqueued")
	}
}
