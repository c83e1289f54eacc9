package trie

// ConfigOut is the static, data-independent description of the opclass
// returned by Config (spec §4.1).
type ConfigOut struct {
	PrefixType    string
	LabelType     string
	LeafType      string
	CanReturnData bool
	LongValuesOK  bool
}

// Config reports the fixed shape of this index: prefixes and leaves are
// k-mer byte strings, labels are Label (int16), the indexed value can be
// reconstructed losslessly from the tree so index-only scans are possible,
// and k-mers are capped at 32 bytes so the "long value" TOAST-style path
// never applies (spec §4.1, §2 "k-mer").
func Config() ConfigOut {
	return ConfigOut{
		PrefixType:    "kmer",
		LabelType:     "int16",
		LeafType:      "kmer",
		CanReturnData: true,
		LongValuesOK:  false,
	}
}
