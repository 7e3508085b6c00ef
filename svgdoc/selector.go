package svgdoc

import (
	"strings"
)

// compound is one step of a selector: tag, #id and any number of .class.
type compound struct {
	tag     string
	id      string
	classes []string
}

// Selector is a descendant-combinator chain of compound selectors, e.g.
// "svg#stage g.shapes path". Comma lists are alternatives.
type Selector struct {
	alternatives [][]compound
}

// Compile parses sel. An empty or unparsable selector matches nothing.
func Compile(sel string) Selector {
	var s Selector
	for _, alt := range strings.Split(sel, ",") {
		fields := strings.Fields(alt)
		if len(fields) == 0 {
			continue
		}
		chain := make([]compound, 0, len(fields))
		ok := true
		for _, f := range fields {
			c, valid := parseCompound(f)
			if !valid {
				ok = false
				break
			}
			chain = append(chain, c)
		}
		if ok {
			s.alternatives = append(s.alternatives, chain)
		}
	}
	return s
}

func parseCompound(s string) (compound, bool) {
	var c compound
	i := 0
	for i < len(s) && s[i] != '#' && s[i] != '.' {
		i++
	}
	c.tag = strings.ToLower(s[:i])
	if c.tag == "*" {
		c.tag = ""
	}
	for i < len(s) {
		kind := s[i]
		i++
		start := i
		for i < len(s) && s[i] != '#' && s[i] != '.' {
			i++
		}
		name := s[start:i]
		if name == "" {
			return compound{}, false
		}
		switch kind {
		case '#':
			c.id = name
		case '.':
			c.classes = append(c.classes, name)
		}
	}
	return c, true
}

func (c compound) matches(e *Element) bool {
	if c.tag != "" && e.Name != c.tag {
		return false
	}
	if c.id != "" && e.ID() != c.id {
		return false
	}
	if len(c.classes) > 0 {
		have := e.Classes()
		for _, want := range c.classes {
			found := false
			for _, h := range have {
				if h == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

// Matches reports whether e matches any alternative. Ancestors of e are
// consulted for descendant steps.
func (s Selector) Matches(e *Element) bool {
	for _, chain := range s.alternatives {
		if matchChain(chain, e) {
			return true
		}
	}
	return false
}

func matchChain(chain []compound, e *Element) bool {
	last := len(chain) - 1
	if !chain[last].matches(e) {
		return false
	}
	i := last - 1
	for p := e.Parent; p != nil && i >= 0; p = p.Parent {
		if chain[i].matches(p) {
			i--
		}
	}
	return i < 0
}

// Query returns the first element in document order matching sel, or nil.
func (d *Document) Query(sel string) *Element {
	if d == nil {
		return nil
	}
	return d.Root.Query(sel)
}

// Query returns the first element at or below e matching sel, or nil.
func (e *Element) Query(sel string) *Element {
	s := Compile(sel)
	var found *Element
	e.Walk(func(el *Element) bool {
		if s.Matches(el) {
			found = el
			return false
		}
		return true
	})
	return found
}

// QueryAll returns every element strictly below e matching sel, in document
// order.
func (e *Element) QueryAll(sel string) []*Element {
	if e == nil {
		return nil
	}
	s := Compile(sel)
	var out []*Element
	for _, c := range e.Children {
		c.Walk(func(el *Element) bool {
			if s.Matches(el) {
				out = append(out, el)
			}
			return true
		})
	}
	return out
}
