package lexical

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestEmptyMapIsIdentity(t *testing.T) {
	m := NewMap()
	for _, x := range []int{0, 1, 7, 100, 12345} {
		if m.InternalFromExternal(x) != x {
			t.Errorf("InternalFromExternal(%d) = %d", x, m.InternalFromExternal(x))
		}
		if m.ExternalFromInternal(x) != x {
			t.Errorf("ExternalFromInternal(%d) = %d", x, m.ExternalFromInternal(x))
		}
	}
	c := NoBreakChunk()
	if !c.IsNoBreak() || c.InternalFromExternal(42) != 42 || c.ExternalFromInternal(42) != 42 {
		t.Errorf("expected no-break chunk to map 1:1")
	}
}

func TestMapWithHiddenRun(t *testing.T) {
	// "ab" + 3 hidden characters + "cd": the hidden run occupies 1 internal position
	m := NewMap()
	m.Append(2, 0, 2)
	m.Append(3, 2, 1)
	m.Append(2, 3, 2)
	ext := map[int]int{0: 0, 1: 1, 2: 2, 3: 5, 4: 6, 5: 7, 6: 8}
	for lsdcp, ich := range ext {
		if got := m.ExternalFromInternal(lsdcp); got != ich {
			t.Errorf("ExternalFromInternal(%d) = %d, expected %d", lsdcp, got, ich)
		}
	}
	in := map[int]int{0: 0, 1: 1, 2: 2, 5: 3, 6: 4, 7: 5, 9: 7}
	for ich, lsdcp := range in {
		if got := m.InternalFromExternal(ich); got != lsdcp {
			t.Errorf("InternalFromExternal(%d) = %d, expected %d", ich, got, lsdcp)
		}
	}
}

func TestMapRejectsUnorderedPositions(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected out-of-order internal position to panic")
		}
	}()
	m := NewMap()
	m.Append(2, 5, 2)
	m.Append(2, 3, 2)
}

func TestAnalyzeFindsSpaces(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textformat")
	defer teardown()
	//
	chars := []rune("Hello world, this is")
	b := Analyze(chars)
	if b.Length() != len(chars) {
		t.Fatalf("expected length %d, is %d", len(chars), b.Length())
	}
	if !b.IsBreakBefore(6) { // before "world"
		t.Errorf("expected break opportunity before 'world', have %v", b.Positions())
	}
	if b.IsBreakBefore(3) {
		t.Errorf("did not expect break opportunity within 'Hello'")
	}
	if !b.IsBreakBefore(len(chars)) {
		t.Errorf("expected end of chunk to be a break opportunity")
	}
	pp := b.Positions()
	for i := 1; i < len(pp); i++ {
		if pp[i] <= pp[i-1] {
			t.Errorf("positions not increasing: %v", pp)
		}
	}
}

func TestAnalyzeMandatoryBreak(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textformat")
	defer teardown()
	//
	b := Analyze([]rune("one\ntwo"))
	if !b.IsMandatory(4) {
		t.Errorf("expected mandatory break after newline, penalty is %d", b.Penalty(4))
	}
}
