package event

// Attributes is an ordered, qname-keyed attribute list: insertion order is
// preserved, a name is unique, and new keys append at the tail.
type Attributes struct {
	order  []QName
	values map[QName]string
}

// NewAttributes builds an empty attribute list.
func NewAttributes() *Attributes {
	return &Attributes{values: make(map[QName]string)}
}

// AttributesOf builds an attribute list from name/value pairs, in order.
func AttributesOf(pairs ...[2]string) *Attributes {
	a := NewAttributes()
	for _, p := range pairs {
		a.Set(Name(p[0]), p[1])
	}
	return a
}

// Len reports the number of attributes.
func (a *Attributes) Len() int {
	if a == nil {
		return 0
	}
	return len(a.order)
}

// Get returns the value for name and whether it was present.
func (a *Attributes) Get(name QName) (string, bool) {
	if a == nil {
		return "", false
	}
	v, ok := a.values[name]
	return v, ok
}

// Set inserts or updates name's value. New names append at the tail;
// existing names keep their position.
func (a *Attributes) Set(name QName, value string) {
	if _, exists := a.values[name]; !exists {
		a.order = append(a.order, name)
	}
	a.values[name] = value
}

// Remove deletes name, preserving the order of the rest.
func (a *Attributes) Remove(name QName) {
	if a == nil {
		return
	}
	if _, exists := a.values[name]; !exists {
		return
	}
	delete(a.values, name)
	for i, n := range a.order {
		if n == name {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

// Each calls fn for every attribute in insertion order; fn returning false
// stops iteration early.
func (a *Attributes) Each(fn func(name QName, value string) bool) {
	if a == nil {
		return
	}
	for _, n := range a.order {
		if !fn(n, a.values[n]) {
			return
		}
	}
}

// Clone returns an independent copy.
func (a *Attributes) Clone() *Attributes {
	out := NewAttributes()
	a.Each(func(n QName, v string) bool {
		out.Set(n, v)
		return true
	})
	return out
}

// Names returns the attribute names in insertion order.
func (a *Attributes) Names() []QName {
	if a == nil {
		return nil
	}
	out := make([]QName, len(a.order))
	copy(out, a.order)
	return out
}
