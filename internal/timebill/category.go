package timebill

import (
	"fmt"
	"strings"
)

// Categories is the ordered, fixed set of labels every aggregate carries.
type Categories struct {
	names []string
	index map[string]int
}

// NewCategories builds a category set. Labels must be non-blank and unique.
func NewCategories(names ...string) (Categories, error) {
	if len(names) == 0 {
		return Categories{}, fmt.Errorf("%w: no categories", ErrInvalidCategories)
	}
	c := Categories{
		names: make([]string, 0, len(names)),
		index: make(map[string]int, len(names)),
	}
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			return Categories{}, fmt.Errorf("%w: blank category", ErrInvalidCategories)
		}
		if _, dup := c.index[n]; dup {
			return Categories{}, fmt.Errorf("%w: duplicate category %q", ErrInvalidCategories, n)
		}
		c.index[n] = len(c.names)
		c.names = append(c.names, n)
	}
	return c, nil
}

// MustCategories is NewCategories for fixed lists known to be valid.
func MustCategories(names ...string) Categories {
	c, err := NewCategories(names...)
	if err != nil {
		panic(err)
	}
	return c
}

// Names returns a copy of the labels in configured order.
func (c Categories) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

func (c Categories) Len() int { return len(c.names) }

func (c Categories) Contains(name string) bool {
	_, ok := c.index[name]
	return ok
}

func (c Categories) position(name string) (int, bool) {
	i, ok := c.index[name]
	return i, ok
}
