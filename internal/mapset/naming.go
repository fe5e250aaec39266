package mapset

import (
	"strconv"
	"strings"
	"unicode"
)

const (
	// AllLocationsGroup labels the single group used when no group column is set
	AllLocationsGroup = "All Locations"

	documentSuffix = "_map"
	documentExt    = ".html"
	allLocations   = "all_locations"
)

// SafeName replaces every rune that is not a letter or a digit with '_'
func SafeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// DocumentName returns the archive entry name for a group value
func DocumentName(groupValue string) string {
	return SafeName(groupValue) + documentSuffix + documentExt
}

// nameAllocator hands out unique document names. Distinct group values that
// sanitise to the same name get a numeric suffix: A_B_map.html, A_B_2_map.html.
type nameAllocator struct {
	taken map[string]bool
}

func newNameAllocator() *nameAllocator {
	return &nameAllocator{taken: make(map[string]bool)}
}

func (a *nameAllocator) allocate(base string) string {
	name := base + documentSuffix + documentExt
	for n := 2; a.taken[name]; n++ {
		name = base + "_" + strconv.Itoa(n) + documentSuffix + documentExt
	}
	a.taken[name] = true
	return name
}
