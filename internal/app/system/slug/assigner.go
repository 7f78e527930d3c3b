package slug

import (
	"fmt"
	"strconv"
	"time"
)

// Taken reports whether a candidate slug is already in use in the target
// collection. Implementations must exclude the entity being updated so its
// own current slug does not count as a collision, and must surface lookup
// failures as errors rather than guessing either way.
type Taken func(candidate string) (bool, error)

// Assign produces a unique slug for title within one collection.
//
// The base slug comes from Make. If that is empty (no transliterable
// characters), the fallback is "<kind>-<unix millis>", which is effectively
// unique. If the base is taken, numeric suffixes -2, -3, ... are probed
// until a free slug is found. A failing lookup aborts the probe and returns
// the error; the unique index remains the final arbiter for the slot.
func Assign(kind, title string, taken Taken) (string, error) {
	return assign(kind, Make(title), taken)
}

// AssignJapanese is Assign for secondary (Japanese) titles, preferring a
// romaji transliteration over plain folding.
func AssignJapanese(kind, title string, taken Taken) (string, error) {
	return assign(kind, MakeJapanese(title), taken)
}

func assign(kind, base string, taken Taken) (string, error) {
	if base == "" {
		base = fmt.Sprintf("%s-%d", kind, time.Now().UnixMilli())
	}
	if taken == nil {
		return base, nil
	}
	used, err := taken(base)
	if err != nil {
		return "", err
	}
	if !used {
		return base, nil
	}
	for n := 2; ; n++ {
		candidate := base + "-" + strconv.Itoa(n)
		used, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !used {
			return candidate, nil
		}
	}
}
