package align

// Probe names the phoneme pair a strategy searches for: a grapheme of End
// must be immediately followed by a grapheme of Start. Unit is the index of
// Start inside the next syllable.
type Probe struct {
	End   string
	Start string
	Unit  int
}

// Strategy picks the phoneme pair to search for at one boundary.
type Strategy struct {
	Name  string
	Probe func(cur, next []string) (Probe, bool)
}

// DefaultStrategies returns the boundary strategies in the order they are
// tried: the exact pair, then a silent last phoneme of the current
// syllable, then a silent first phoneme of the next one.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: "exact", Probe: exact},
		{Name: "trailing-implied", Probe: trailingImplied},
		{Name: "leading-implied", Probe: leadingImplied},
	}
}

func exact(cur, next []string) (Probe, bool) {
	return Probe{End: cur[len(cur)-1], Start: next[0]}, true
}

func trailingImplied(cur, next []string) (Probe, bool) {
	if len(cur) < 2 {
		return Probe{}, false
	}
	return Probe{End: cur[len(cur)-2], Start: next[0]}, true
}

func leadingImplied(cur, next []string) (Probe, bool) {
	if len(next) < 2 {
		return Probe{}, false
	}
	return Probe{End: cur[len(cur)-1], Start: next[1], Unit: 1}, true
}
