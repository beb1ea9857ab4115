package popio

import (
	"fmt"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Pair links an external (human-facing) identifier to its internal
// (compact) identifier.
type Pair struct {
	External string
	Internal string
}

// Bijection is an immutable one-to-one mapping between external and internal
// identifiers. It remembers the order its pairs were given in.
type Bijection struct {
	externals  []string
	toInternal map[string]string
	toExternal map[string]string
}

// NewBijection builds a Bijection, rejecting an identifier repeated on either
// side.
func NewBijection(pairs []Pair) (*Bijection, error) {
	b := &Bijection{
		externals:  make([]string, 0, len(pairs)),
		toInternal: make(map[string]string, len(pairs)),
		toExternal: make(map[string]string, len(pairs)),
	}
	seenExt, seenInt := sets.New[string](), sets.New[string]()
	for _, p := range pairs {
		if seenExt.Has(p.External) {
			return nil, fmt.Errorf("external id %q mapped more than once", p.External)
		}
		if seenInt.Has(p.Internal) {
			return nil, fmt.Errorf("internal id %q mapped more than once", p.Internal)
		}
		seenExt.Insert(p.External)
		seenInt.Insert(p.Internal)

		b.externals = append(b.externals, p.External)
		b.toInternal[p.External] = p.Internal
		b.toExternal[p.Internal] = p.External
	}
	return b, nil
}

// Internal returns the internal id for ext.
func (b *Bijection) Internal(ext string) (string, bool) {
	id, ok := b.toInternal[ext]
	return id, ok
}

// External returns the external id for internal.
func (b *Bijection) External(internal string) (string, bool) {
	id, ok := b.toExternal[internal]
	return id, ok
}

// Externals returns the external ids in their original order.
func (b *Bijection) Externals() []string {
	out := make([]string, len(b.externals))
	copy(out, b.externals)
	return out
}

func (b *Bijection) Len() int { return len(b.externals) }

// IdentifierMap holds the model and reaction bijections of one problem.
type IdentifierMap struct {
	Models    *Bijection
	Reactions *Bijection
}

func (m *IdentifierMap) modelExternal(line int, id string) (string, error) {
	ext, ok := m.Models.External(id)
	if !ok {
		return "", formatErrorf(line, "unknown model id %q", id)
	}
	return ext, nil
}

func (m *IdentifierMap) reactionExternal(line int, id string) (string, error) {
	ext, ok := m.Reactions.External(id)
	if !ok {
		return "", formatErrorf(line, "unknown reaction id %q", id)
	}
	return ext, nil
}

func (m *IdentifierMap) modelInternal(id string) (string, error) {
	in, ok := m.Models.Internal(id)
	if !ok {
		return "", formatErrorf(0, "unknown model %q", id)
	}
	return in, nil
}

func (m *IdentifierMap) reactionInternal(id string) (string, error) {
	in, ok := m.Reactions.Internal(id)
	if !ok {
		return "", formatErrorf(0, "unknown reaction %q", id)
	}
	return in, nil
}
