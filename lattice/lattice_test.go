package lattice

import "testing"

func TestSetKeySeedsSentinels(t *testing.T) {
	l := New()
	l.SetKey("abc")
	if l.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", l.Len())
	}
	bos := l.Node(l.BOS())
	if bos.Type != BOS || bos.Begin != 0 {
		t.Errorf("BOS node wrong: %+v", bos)
	}
	eos := l.Node(l.EOS())
	if eos.Type != EOS || eos.Begin != 3 {
		t.Errorf("EOS node wrong: %+v", eos)
	}
	if len(l.BeginNodes(0)) != 1 || len(l.EndNodes(3)) != 1 {
		t.Errorf("sentinels not filed into buckets correctly")
	}
}

func TestInsertFilesIntoBuckets(t *testing.T) {
	l := New()
	l.SetKey("abcd")
	n := NewNode()
	n.Begin, n.Length = 1, 2
	idx := l.Insert(n)
	if len(l.BeginNodes(1)) != 1 || l.BeginNodes(1)[0] != idx {
		t.Errorf("node not filed in begin bucket")
	}
	if len(l.EndNodes(3)) != 1 || l.EndNodes(3)[0] != idx {
		t.Errorf("node not filed in end bucket")
	}
	got := l.Node(idx)
	if got.FwdCost != Unreached || got.Prev != None {
		t.Errorf("NewNode defaults not preserved through Insert: %+v", got)
	}
}

func TestInsertAtClampsEndBucket(t *testing.T) {
	l := New()
	l.SetKey("ab")
	n := NewNode()
	n.Begin, n.Length = 0, 5 // extends past the lattice's key length
	idx := l.InsertAt(n, l.Len())
	// end[2] already holds EOS (see TestSetKeySeedsSentinels), so the
	// predictive node is the second entry there.
	if len(l.EndNodes(2)) != 2 || l.EndNodes(2)[1] != idx {
		t.Errorf("predictive node not filed at clamped end position")
	}
	if len(l.EndNodes(5)) != 0 {
		t.Errorf("predictive node should not be filed at its arithmetic End()")
	}
}

func TestClearResetsState(t *testing.T) {
	l := New()
	l.SetKey("abc")
	l.Insert(NewNode())
	l.Clear()
	if l.NumNodes() != 0 || l.Len() != 0 {
		t.Errorf("Clear did not reset lattice state")
	}
}
