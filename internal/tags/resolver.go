// Package tags tracks section headers and assigns category tags to records.
package tags

import (
	"fmt"
	"strings"
)

// Policy selects how a record identifier is mapped to a tag.
type Policy string

const (
	// PolicySingle tags every record with the most recently registered
	// label, ignoring its identifier.
	PolicySingle Policy = "single"

	// PolicyPrefix looks the leading part of the identifier up in the
	// registered headers, so several sections stay addressable at once.
	PolicyPrefix Policy = "prefix"
)

// ParsePolicy converts a configuration value into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicySingle, PolicyPrefix:
		return p, nil
	case "":
		return PolicySingle, nil
	default:
		return "", fmt.Errorf("unknown tag policy %q", s)
	}
}

// Resolver holds the prefix → label mapping. Entries are never deleted and a
// later header with the same prefix overwrites the earlier label.
type Resolver struct {
	policy    Policy
	prefixLen int
	labels    map[string]string
	latest    string
}

// NewResolver creates a Resolver. prefixLen is used by PolicyPrefix: a
// positive value looks up that many leading bytes of the identifier, zero
// selects the longest registered prefix the identifier starts with.
func NewResolver(policy Policy, prefixLen int) *Resolver {
	return &Resolver{
		policy:    policy,
		prefixLen: prefixLen,
		labels:    make(map[string]string),
	}
}

// Register records a section header.
func (r *Resolver) Register(prefix, label string) {
	r.labels[prefix] = label
	r.latest = label
}

// Resolve returns the tags for a record identifier. It reports false when
// no header applies; the tag set is then empty.
func (r *Resolver) Resolve(id string) ([]string, bool) {
	var label string
	switch r.policy {
	case PolicyPrefix:
		label = r.lookup(id)
	default:
		label = r.latest
	}
	if label == "" {
		return []string{}, false
	}
	return []string{label}, true
}

func (r *Resolver) lookup(id string) string {
	if r.prefixLen > 0 {
		if len(id) < r.prefixLen {
			return ""
		}
		return r.labels[id[:r.prefixLen]]
	}
	best := -1
	label := ""
	for prefix, l := range r.labels {
		if prefix != "" && strings.HasPrefix(id, prefix) && len(prefix) > best {
			best = len(prefix)
			label = l
		}
	}
	return label
}

// Len returns the number of registered prefixes.
func (r *Resolver) Len() int {
	return len(r.labels)
}
