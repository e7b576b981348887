package normalize

// Czech closed-class words and discourse fillers, kept out of the token
// stream entirely. Stored folded; matched against both the folded surface
// and the normalized form so inflected function words do not leak through
// as stems.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		// pronouns, determiners
		"ja", "ty", "on", "ona", "ono", "my", "vy", "oni", "ony",
		"ten", "ta", "to", "ti", "te", "tech", "tom", "tomu", "tim",
		"tento", "tato", "toto", "tenhle", "tahle", "tohle",
		"ktery", "ktera", "ktere", "kteri", "kdo", "co", "nic", "neco",
		"nejaky", "kazdy", "vsechno", "vsichni", "sam", "svuj", "muj", "tvuj",
		"nas", "vas", "jeho", "jeji", "jejich", "se", "si", "mi", "mne", "me",
		// prepositions
		"v", "ve", "na", "za", "z", "ze", "s", "se", "k", "ke", "ku",
		"o", "u", "do", "od", "po", "pro", "pri", "pred", "nad", "pod",
		"mezi", "bez", "podle", "kolem", "okolo", "krome", "behem",
		// conjunctions, particles
		"a", "i", "ale", "nebo", "ani", "az", "ze", "aby", "kdyz", "kdyby",
		"protoze", "jestli", "pokud", "tedy", "totiz", "vsak", "prece",
		"jen", "jenom", "uz", "jeste", "take", "taky", "tak", "takze",
		"ano", "ne", "jo", "no", "asi", "treba", "proste", "vlastne",
		// fillers
		"ehm", "hm", "eh", "aha", "mhm",
		// auxiliary / copula forms that the stemmer cannot collapse
		"je", "jsou", "jsem", "jsi", "jsme", "jste", "byl", "byla", "bylo",
		"byli", "byly", "bude", "budou", "budeme", "byt", "neni", "nejsou",
		"by", "bych", "bys", "bychom", "byste",
	} {
		stopwords[w] = struct{}{}
	}
}

func isStopword(folded string) bool {
	_, ok := stopwords[folded]
	return ok
}
