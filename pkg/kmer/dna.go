package kmer

// DNA is a raw, unbounded nucleotide sequence: the source material
// GenerateKMers slides a window across. Unlike KMer it carries no length
// cap — a whole chromosome fits as happily as a single read (ground truth:
// kmer.c's generate_kmers takes a plain `text` DNA argument with no
// MAX_KMER_LENGTH check of its own; the cap only applies to the k-mers
// sliced out of it).
type DNA []byte

// ParseDNA lowercases and validates s as a DNA sequence: same {a,c,g,t}
// alphabet as KMer, but no length ceiling.
func ParseDNA(s string) (DNA, error) {
	if len(s) == 0 {
		return nil, ErrEmpty
	}
	out := make(DNA, len(s))
	for i := 0; i < len(s); i++ {
		c := lower(s[i])
		switch c {
		case 'a', 'c', 'g', 't':
			out[i] = c
		default:
			return nil, &InvalidBaseError{Offset: i, Byte: s[i]}
		}
	}
	return out, nil
}

// String renders the sequence back as lowercase text.
func (d DNA) String() string {
	return string(d)
}

// Len returns the number of bases in d.
func (d DNA) Len() int {
	return len(d)
}
