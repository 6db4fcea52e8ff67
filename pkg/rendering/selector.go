package rendering

import (
	"fmt"
	"strings"
)

// Selector is a parsed class selector list.
//
// Supported syntax is a comma-separated list of groups. Each group is a
// whitespace-separated chain of compounds (descendant combinator) and each
// compound is "*" or one or more ".class" parts, e.g. ".clock .hour-hand".
type Selector struct {
	groups [][]compound
}

type compound []string

// ParseSelector parses s.
func ParseSelector(s string) (Selector, error) {
	var sel Selector
	for _, group := range strings.Split(s, ",") {
		fields := strings.Fields(group)
		if len(fields) == 0 {
			return Selector{}, fmt.Errorf("empty selector group in %q", s)
		}
		chain := make([]compound, 0, len(fields))
		for _, f := range fields {
			c, err := parseCompound(f)
			if err != nil {
				return Selector{}, err
			}
			chain = append(chain, c)
		}
		sel.groups = append(sel.groups, chain)
	}
	return sel, nil
}

func parseCompound(s string) (compound, error) {
	if s == "*" {
		return compound{}, nil
	}
	if !strings.HasPrefix(s, ".") {
		return nil, fmt.Errorf("unsupported selector %q", s)
	}
	var c compound
	for _, part := range strings.Split(s[1:], ".") {
		if part == "" {
			return nil, fmt.Errorf("empty class in selector %q", s)
		}
		c = append(c, part)
	}
	return c, nil
}

func (c compound) matches(e *Element) bool {
	for _, class := range c {
		if !e.HasClass(class) {
			return false
		}
	}
	return true
}

// Matches reports whether e matches any group of the selector.
func (s Selector) Matches(e *Element) bool {
	for _, chain := range s.groups {
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
	for n := e.parent; n != nil && i >= 0; n = n.parent {
		if chain[i].matches(n) {
			i--
		}
	}
	return i < 0
}
