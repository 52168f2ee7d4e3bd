// Package roster resolves abbreviated in-table player labels to stable
// player identities.
package roster

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fortuna/statline/internal/store"
)

// Identity is the outcome of resolving one player label. Rostered is true
// only when the label uniquely matched a roster entry; otherwise ID is a
// deterministic synthesized id that never collides with roster ids.
type Identity struct {
	ID       string
	Name     string
	Jersey   string
	Rostered bool
}

var (
	// "#23 J. Smith" or "23 J. Smith"
	hashNumberName = regexp.MustCompile(`^#?(\d+)\s+(.+)$`)
	// "J. Smith (23)"
	nameParenNumber = regexp.MustCompile(`^(.+?)\s*\((\d+)\)$`)
)

// SplitLabel separates the jersey-number token from the bare player name.
// Labels without a recognizable number keep the full text as the name.
func SplitLabel(label string) (jersey, name string) {
	label = strings.TrimSpace(label)
	if m := hashNumberName.FindStringSubmatch(label); m != nil {
		return m[1], strings.TrimSpace(m[2])
	}
	if m := nameParenNumber.FindStringSubmatch(label); m != nil {
		return m[2], strings.TrimSpace(m[1])
	}
	return "", label
}

// Resolver matches bare names against a roster. A nil or empty roster makes
// every resolution fall through to a synthesized identity.
type Resolver struct {
	entries []store.RosterEntry
}

// NewResolver builds a resolver over the given roster entries.
func NewResolver(entries []store.RosterEntry) *Resolver {
	return &Resolver{entries: entries}
}

// Resolve maps a raw label to an identity using a strict precedence order:
// exact full-name match, then first-initial + last-name, then unique last
// name. Each tier must match exactly one roster entry; an ambiguous tier
// falls through rather than guessing, because a false-positive merge is
// worse than an unresolved player. When nothing matches, the identity is
// synthesized from the normalized number+name so the same unmatched player
// gets the same id on every run.
func (r *Resolver) Resolve(label string) Identity {
	jersey, name := SplitLabel(label)

	if r != nil {
		if entry, ok := r.exactMatch(name); ok {
			return Identity{ID: entry.PlayerID, Name: entry.FullName, Jersey: jersey, Rostered: true}
		}
		if entry, ok := r.initialLastMatch(name); ok {
			return Identity{ID: entry.PlayerID, Name: entry.FullName, Jersey: jersey, Rostered: true}
		}
		if entry, ok := r.uniqueLastNameMatch(name); ok {
			return Identity{ID: entry.PlayerID, Name: entry.FullName, Jersey: jersey, Rostered: true}
		}
	}

	return Identity{
		ID:     SynthesizeID(jersey, name),
		Name:   name,
		Jersey: jersey,
	}
}

// SynthesizeID builds the deterministic fallback id for an unmatched label.
func SynthesizeID(jersey, name string) string {
	return store.Slug(fmt.Sprintf("%s-%s", jersey, name))
}

func (r *Resolver) exactMatch(name string) (store.RosterEntry, bool) {
	for _, e := range r.entries {
		if strings.EqualFold(strings.TrimSpace(e.FullName), name) {
			return e, true
		}
	}
	return store.RosterEntry{}, false
}

// initialLastMatch handles abbreviated forms like "J. Todd": the first
// token's leading letter plus the last token must match exactly one entry.
func (r *Resolver) initialLastMatch(name string) (store.RosterEntry, bool) {
	initial, last := nameParts(name)
	if initial == "" || last == "" {
		return store.RosterEntry{}, false
	}

	var found store.RosterEntry
	count := 0
	for _, e := range r.entries {
		ei, el := nameParts(e.FullName)
		if ei == initial && el == last {
			found = e
			count++
		}
	}
	if count == 1 {
		return found, true
	}
	return store.RosterEntry{}, false
}

// uniqueLastNameMatch matches on last name alone, but only when exactly one
// roster entry carries it.
func (r *Resolver) uniqueLastNameMatch(name string) (store.RosterEntry, bool) {
	_, last := nameParts(name)
	if last == "" {
		return store.RosterEntry{}, false
	}

	var found store.RosterEntry
	count := 0
	for _, e := range r.entries {
		_, el := nameParts(e.FullName)
		if el == last {
			found = e
			count++
		}
	}
	if count == 1 {
		return found, true
	}
	return store.RosterEntry{}, false
}

// nameParts returns the lowercase first initial and last token of a name.
func nameParts(name string) (initial, last string) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	if len(fields) == 0 {
		return "", ""
	}
	first := strings.TrimRight(fields[0], ".")
	if first != "" {
		initial = first[:1]
	}
	last = strings.TrimRight(fields[len(fields)-1], ".")
	return initial, last
}
