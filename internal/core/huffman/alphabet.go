package huffman

// AlphabetSize is the number of symbols the engine codes: the 64 Base64
// digits plus the '=' padding symbol.
const AlphabetSize = 65

// internalNodes is the number of merges needed to join AlphabetSize leaves.
const internalNodes = AlphabetSize - 1

// MaxCodeLength is the deepest a leaf can sit in a strict binary tree with
// AlphabetSize leaves.
const MaxCodeLength = AlphabetSize - 1

// Symbol is the stable index of an alphabet character, 0..64.
type Symbol uint8

// Alphabet lists the characters in index order.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/="

// padSymbol is '='.
const padSymbol Symbol = AlphabetSize - 1

type lookupEntry struct {
	sym Symbol
	ok  bool
}

var lookup = func() (t [256]lookupEntry) {
	for i := 0; i < AlphabetSize; i++ {
		t[Alphabet[i]] = lookupEntry{sym: Symbol(i), ok: true}
	}
	return t
}()

// SymbolOf maps a character to its alphabet index.
func SymbolOf(c byte) (Symbol, bool) {
	e := lookup[c]
	return e.sym, e.ok
}

// Char returns the character the symbol stands for.
func (s Symbol) Char() byte {
	return Alphabet[s]
}

func (s Symbol) String() string {
	return string(Alphabet[s])
}
