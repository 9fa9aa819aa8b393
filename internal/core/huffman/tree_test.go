package huffman

import (
	"testing"

	refhuffman "github.com/icza/huffman"
)

func weightsOf(text string) WeightTable {
	var w WeightTable
	for i := 0; i < len(text); i++ {
		s, _ := SymbolOf(text[i])
		w[s]++
	}
	return w
}

// fibonacci weights force every merge to take the running subtree plus the
// next leaf, giving the deepest possible tree.
func fibonacciWeights() WeightTable {
	var w WeightTable
	a, b := uint64(1), uint64(1)
	for i := range w {
		w[i] = a
		a, b = b, a+b
	}
	return w
}

func TestAlphabet(t *testing.T) {
	if len(Alphabet) != AlphabetSize {
		t.Fatalf("expected %d symbols, got %d", AlphabetSize, len(Alphabet))
	}
	for i := 0; i < AlphabetSize; i++ {
		s, ok := SymbolOf(Alphabet[i])
		if !ok || int(s) != i {
			t.Errorf("expected %q at %d, got %d (%v)", Alphabet[i], i, s, ok)
		}
		if s.Char() != Alphabet[i] {
			t.Errorf("expected %q, got %q", Alphabet[i], s.Char())
		}
	}
	for _, c := range []byte{'\n', '-', '_', ' ', 0, 0xff} {
		if _, ok := SymbolOf(c); ok {
			t.Errorf("expected %q to be rejected", c)
		}
	}
}

func TestCountWeights(t *testing.T) {
	w := weightsOf("TWFu")
	for i := range w {
		want := uint64(0)
		switch Alphabet[i] {
		case 'T', 'W', 'F', 'u':
			want = 1
		}
		if w[i] != want {
			t.Errorf("expected weight %d for %q, got %d", want, Alphabet[i], w[i])
		}
	}

	var c Counter
	if _, err := c.Write([]byte("AB\nC")); err == nil {
		t.Errorf("expected error for non-alphabet character")
	}
}

func checkStructure(t *testing.T, tree *Tree, weights *WeightTable) {
	t.Helper()

	if tree.Len() != NodeCount {
		t.Fatalf("expected %d nodes, got %d", NodeCount, tree.Len())
	}
	if _, ok := tree.Parent(tree.Root()); ok {
		t.Errorf("expected root without parent")
	}
	if tree.Weight(tree.Root()) != weights.Total() {
		t.Errorf("expected root weight %d, got %d", weights.Total(), tree.Weight(tree.Root()))
	}

	leaves, internal, roots := 0, 0, 0
	for i := 0; i < tree.Len(); i++ {
		id := NodeID(i)
		if _, ok := tree.Parent(id); !ok {
			roots++
		}
		l, r, ok := tree.Children(id)
		if !ok {
			leaves++
			continue
		}
		internal++
		if tree.Weight(id) != tree.Weight(l)+tree.Weight(r) {
			t.Errorf("node %d: expected weight %d, got %d", id, tree.Weight(l)+tree.Weight(r), tree.Weight(id))
		}
		if p, _ := tree.Parent(l); p != id {
			t.Errorf("node %d: left child %d has parent %d", id, l, p)
		}
		if p, _ := tree.Parent(r); p != id {
			t.Errorf("node %d: right child %d has parent %d", id, r, p)
		}
	}
	if leaves != AlphabetSize || internal != internalNodes || roots != 1 {
		t.Errorf("expected 65/64/1 leaves/internal/roots, got %d/%d/%d", leaves, internal, roots)
	}
}

func TestBuildTreeStructure(t *testing.T) {
	cases := map[string]WeightTable{
		"empty":     {},
		"man":       weightsOf("TWFu"),
		"text":      weightsOf("SGVsbG8sIHdvcmxkIQ=="),
		"fibonacci": fibonacciWeights(),
	}
	for name, w := range cases {
		w := w
		t.Run(name, func(t *testing.T) {
			checkStructure(t, BuildTree(&w), &w)
		})
	}
}

func TestBuildTreeTieBreak(t *testing.T) {
	// all zero: the first round merges A and B, with A on the left
	var w WeightTable
	tree := BuildTree(&w)

	first := NodeID(AlphabetSize)
	l, r, _ := tree.Children(first)
	if l != 0 || r != 1 {
		t.Errorf("expected first merge (A, B), got (%d, %d)", l, r)
	}

	// the new node is preferred over older nodes of the same weight
	second := NodeID(AlphabetSize + 1)
	l, r, _ = tree.Children(second)
	if l != first || r != 2 {
		t.Errorf("expected second merge (%d, C), got (%d, %d)", first, l, r)
	}
}

func TestBuildTreeDeterministic(t *testing.T) {
	w := weightsOf("SGVsbG8sIHdvcmxkIQ==")
	a, err := BuildCodebook(&w)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		b, err := BuildCodebook(&w)
		if err != nil {
			t.Fatal(err)
		}
		if a != b {
			t.Fatalf("expected identical codebooks across runs")
		}
	}
}

func TestTeardown(t *testing.T) {
	w := fibonacciWeights()
	tree := BuildTree(&w)
	if n := tree.Teardown(); n != NodeCount {
		t.Errorf("expected %d nodes released, got %d", NodeCount, n)
	}
	if tree.Len() != 0 {
		t.Errorf("expected empty arena, got %d nodes", tree.Len())
	}
	if n := tree.Teardown(); n != 0 {
		t.Errorf("expected second teardown to release nothing, got %d", n)
	}
}

// Any Huffman tree minimises the weighted code length, so ours must match
// the reference builder even where tie-breaking differs.
func TestWeightedLengthMatchesReference(t *testing.T) {
	cases := []WeightTable{
		weightsOf("TWFu"),
		weightsOf("SGVsbG8sIHdvcmxkIQ=="),
		weightsOf("TG9yZW0gaXBzdW0gZG9sb3Igc2l0IGFtZXQsIGNvbnNlY3RldHVyIGFkaXBpc2NpbmcgZWxpdC4="),
		fibonacciWeights(),
	}
	for i, w := range cases {
		cb, err := BuildCodebook(&w)
		if err != nil {
			t.Fatal(err)
		}

		leaves := make([]*refhuffman.Node, AlphabetSize)
		for s := range leaves {
			leaves[s] = &refhuffman.Node{Value: refhuffman.ValueType(s), Count: int(w[s])}
		}
		ref := make([]*refhuffman.Node, AlphabetSize)
		copy(ref, leaves)
		refhuffman.Build(ref)

		var want uint64
		for s, n := range leaves {
			_, bits := n.Code()
			want += w[s] * uint64(bits)
		}
		if got := cb.PayloadBits(&w); got != want {
			t.Errorf("case %d: expected %d payload bits, got %d", i, want, got)
		}
	}
}
