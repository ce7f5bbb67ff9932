package techniques

import (
	"strconv"
	"strings"

	llmprovider "github.com/haowjy/meridian-playbook"
)

// Selector picks either every technique or a single id.
type Selector struct {
	all bool
	id  int
}

// SelectAll selects every technique.
func SelectAll() Selector { return Selector{all: true} }

// SelectID selects a single technique. The id is checked when the selector
// is resolved.
func SelectID(id int) Selector { return Selector{id: id} }

// All reports whether the selector covers the whole catalog.
func (s Selector) All() bool { return s.all }

// ID returns the selected id, or 0 for SelectAll.
func (s Selector) ID() int { return s.id }

// String renders the selector the way ParseSelector accepts it.
func (s Selector) String() string {
	if s.all {
		return "all"
	}
	return strconv.Itoa(s.id)
}

// Entries resolves the selector to catalog entries in ascending id order.
func (s Selector) Entries() ([]Entry, error) {
	if s.all {
		return All(), nil
	}
	e, err := Lookup(s.id)
	if err != nil {
		return nil, err
	}
	return []Entry{e}, nil
}

// ParseSelector accepts "all" (any case) or an integer 1..MaxID.
func ParseSelector(s string) (Selector, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "all") {
		return SelectAll(), nil
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return Selector{}, unknownTechnique(0, s)
	}
	if id < 1 || id > MaxID {
		return Selector{}, unknownTechnique(id, s)
	}
	return SelectID(id), nil
}

func unknownTechnique(id int, input string) error {
	return &llmprovider.UnknownTechniqueError{ID: id, Input: input, Max: MaxID}
}
