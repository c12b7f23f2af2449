package compound

// Decomposition is the expanded compound structure of a word list.
type Decomposition struct {
	// Singles lists, in input order, words that do not decompose.
	Singles []string
	// Compounds maps each compound word to its fully expanded components.
	Compounds map[string][]string
}

// Components returns the expanded components of word, or [word]. A word is
// a compound exactly when it has more than one component.
func (d Decomposition) Components(word string) []string {
	if parts, ok := d.Compounds[word]; ok {
		return parts
	}
	return []string{word}
}

// Expand applies split to every word and substitutes decomposable parts
// with their own expansion. Words are nodes of an index-keyed graph; a
// depth-first walk keeps the current path in an explicit visited set, so a
// word met again on its own path expands to itself and cycles terminate.
func Expand(words []string, split func(string) []string) Decomposition {
	e := &expander{
		index:  make(map[string]int, len(words)),
		direct: make([][]string, len(words)),
		memo:   make([][]string, len(words)),
		onPath: make([]bool, len(words)),
		words:  words,
	}
	for i, w := range words {
		if _, dup := e.index[w]; !dup {
			e.index[w] = i
		}
	}
	for i, w := range words {
		e.direct[i] = split(w)
	}

	d := Decomposition{Compounds: make(map[string][]string)}
	for i, w := range words {
		if e.index[w] != i {
			continue
		}
		parts := e.expand(i)
		if len(parts) > 1 {
			d.Compounds[w] = parts
		} else {
			d.Singles = append(d.Singles, w)
		}
	}
	return d
}

type expander struct {
	words  []string
	index  map[string]int
	direct [][]string
	memo   [][]string
	onPath []bool
}

func (e *expander) expand(i int) []string {
	if e.onPath[i] {
		return []string{e.words[i]}
	}
	if e.memo[i] != nil {
		return e.memo[i]
	}

	parts := e.direct[i]
	if len(parts) <= 1 {
		e.memo[i] = []string{e.words[i]}
		return e.memo[i]
	}

	e.onPath[i] = true
	var out []string
	for _, part := range parts {
		j, ok := e.index[part]
		if !ok {
			out = append(out, part)
			continue
		}
		out = append(out, e.expand(j)...)
	}
	e.onPath[i] = false

	e.memo[i] = out
	return out
}
