package trie

// Match reports whether a single query-k-mer byte (a DNA base or an IUPAC
// ambiguity code) matches a single stored-k-mer byte (always a plain DNA
// base: a, c, g or t). This is the one-byte primitive both inner_consistent
// and leaf_consistent use to evaluate a Contains scan key (spec §2
// "IUPAC ambiguity codes", §4.6).
//
// 'n' matches anything; a plain base matches only itself; 'u' never
// matches, since stored k-mers are DNA and never carry a 'u' byte to match
// against.
func Match(pattern, nucleotide byte) bool {
	if pattern == nucleotide || pattern == 'n' {
		return true
	}
	switch pattern {
	case 'r':
		return nucleotide == 'a' || nucleotide == 'g'
	case 'y':
		return nucleotide == 'c' || nucleotide == 't'
	case 'k':
		return nucleotide == 'g' || nucleotide == 't'
	case 'm':
		return nucleotide == 'a' || nucleotide == 'c'
	case 's':
		return nucleotide == 'g' || nucleotide == 'c'
	case 'w':
		return nucleotide == 'a' || nucleotide == 't'
	case 'b':
		return nucleotide == 'c' || nucleotide == 'g' || nucleotide == 't'
	case 'd':
		return nucleotide == 'a' || nucleotide == 'g' || nucleotide == 't'
	case 'h':
		return nucleotide == 'a' || nucleotide == 'c' || nucleotide == 't'
	case 'v':
		return nucleotide == 'a' || nucleotide == 'c' || nucleotide == 'g'
	default:
		return false
	}
}
