package apriori

import (
	"testing"
)

func TestItemsetKeyRoundTrip(t *testing.T) {
	s := Itemset{"bacon", "eggs", "soup"}
	got := parseKey(s.Key())
	if !got.Equal(s) {
		t.Errorf("expected %v after round trip, got %v", s, got)
	}
}

func TestItemsetEqual(t *testing.T) {
	a := Itemset{"a", "b"}
	b := Itemset{"a", "b"}
	c := Itemset{"a", "c"}
	if !a.Equal(b) {
		t.Errorf("expected %v == %v", a, b)
	}
	if a.Equal(c) {
		t.Errorf("expected %v != %v", a, c)
	}
	if a.Equal(Itemset{"a"}) {
		t.Error("expected itemsets of different lengths to differ")
	}
}

func TestItemsetWithout(t *testing.T) {
	s := Itemset{"a", "b", "c"}
	got := s.without(1)
	want := Itemset{"a", "c"}
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	// Original must be untouched.
	if !s.Equal(Itemset{"a", "b", "c"}) {
		t.Errorf("without modified its receiver: %v", s)
	}
}

func TestItemsetDifference(t *testing.T) {
	s := Itemset{"a", "b", "c", "d"}
	got := s.difference(Itemset{"b", "d"})
	want := Itemset{"a", "c"}
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestItemOrderRanksByFrequencyThenName(t *testing.T) {
	order := newItemOrder(map[string]int{
		"rare":   1,
		"common": 5,
		"tied-b": 3,
		"tied-a": 3,
	})

	items := []string{"rare", "tied-b", "common", "tied-a"}
	order.sortItems(items)

	want := []string{"common", "tied-a", "tied-b", "rare"}
	for i := range want {
		if items[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, items)
		}
	}
}

func TestItemOrderLessItemsets(t *testing.T) {
	order := newItemOrder(map[string]int{"a": 3, "b": 2, "c": 1})

	if !order.lessItemsets(Itemset{"a", "b"}, Itemset{"a", "c"}) {
		t.Error("expected {a,b} < {a,c}")
	}
	if !order.lessItemsets(Itemset{"a"}, Itemset{"a", "b"}) {
		t.Error("expected {a} < {a,b} (prefix orders first)")
	}
	if order.lessItemsets(Itemset{"b"}, Itemset{"a"}) {
		t.Error("expected {a} < {b} under frequency rank")
	}
}

func TestTableCanonicalizeCollapsesDuplicates(t *testing.T) {
	table, err := Mine(SliceSource{
		{"a", "b"},
		{"a"},
	}, Options{MinSupport: 0.5})
	if err != nil {
		t.Fatalf("Mine failed: %v", err)
	}

	got := table.Canonicalize([]string{"b", "a", "b", "a"})
	want := Itemset{"a", "b"} // a is more frequent, so it ranks first
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
