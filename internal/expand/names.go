package expand

import "strconv"

// Names allocates collision-free synthetic identifiers. It is owned by the
// caller and threaded through every expander invocation of one generation
// run, so concurrent runs with separate allocators cannot collide.
type Names struct {
	counters map[string]int
}

func NewNames() *Names {
	return &Names{counters: map[string]int{}}
}

// Next returns prefix followed by a per-prefix counter. Counters start at
// zero and the first allocation yields prefix1; they are never reset.
func (n *Names) Next(prefix string) string {
	n.counters[prefix]++
	return prefix + strconv.Itoa(n.counters[prefix])
}
