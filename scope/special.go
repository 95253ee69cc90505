package scope

// The match-template list and the active choose-block state are stored
// under reserved keys as ordinary frame entries; the render and directive
// packages reach them through these exported accessors. The accessors do
// not hide the entries: Get (and so expression name lookup) still finds
// them under their key names. The stored value is left as `any` so this package does
// not need to depend on the directive package's concrete types (which in
// turn depends on scope), avoiding an import cycle.

// MatchTemplates returns the active match-template list, or nil if none
// has been registered yet in any enclosing frame.
func (c *Context) MatchTemplates() []any {
	v, ok := c.Get(matchTemplatesKey)
	if !ok {
		return nil
	}
	list, _ := v.([]any)
	return list
}

// SetMatchTemplates replaces the match-template list on the top frame.
func (c *Context) SetMatchTemplates(list []any) {
	c.Set(matchTemplatesKey, list)
}

// AppendMatchTemplate appends one match template record to the list
// visible from the top frame, writing the (possibly new) list back to the
// top frame.
func (c *Context) AppendMatchTemplate(mt any) {
	c.SetMatchTemplates(append(append([]any(nil), c.MatchTemplates()...), mt))
}

// Choose returns the active choose-block state, or nil if not inside one.
func (c *Context) Choose() any {
	v, _ := c.Get(chooseKey)
	return v
}

// SetChoose installs the active choose-block state on the top frame.
func (c *Context) SetChoose(state any) {
	c.Set(chooseKey, state)
}
