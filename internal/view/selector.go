package view

import "strings"

// Matcher reports whether an element satisfies a condition.
type Matcher func(*Node) bool

// HasTag matches elements with one of the given tag names.
func HasTag(tags ...string) Matcher {
	return func(n *Node) bool {
		for _, t := range tags {
			if n.Tag == strings.ToLower(t) {
				return true
			}
		}
		return false
	}
}

// HasClass matches elements carrying class.
func HasClass(class string) Matcher {
	return func(n *Node) bool { return n.HasClass(class) }
}

// HasID matches the element whose id is id.
func HasID(id string) Matcher {
	return func(n *Node) bool { return n.ID() == id }
}

// HasAttr matches elements carrying the attribute, whatever its value.
func HasAttr(name string) Matcher {
	return func(n *Node) bool {
		_, ok := n.LookupAttr(name)
		return ok
	}
}

// AttrEquals matches elements whose attribute equals value.
func AttrEquals(name, value string) Matcher {
	return func(n *Node) bool {
		v, ok := n.LookupAttr(name)
		return ok && v == value
	}
}

// All matches elements satisfying every matcher.
func All(ms ...Matcher) Matcher {
	return func(n *Node) bool {
		for _, m := range ms {
			if !m(n) {
				return false
			}
		}
		return true
	}
}

// Any matches elements satisfying at least one matcher.
func Any(ms ...Matcher) Matcher {
	return func(n *Node) bool {
		for _, m := range ms {
			if m(n) {
				return true
			}
		}
		return false
	}
}
