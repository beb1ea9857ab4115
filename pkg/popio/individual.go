package popio

import (
	"sort"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Individual is one candidate design: a set of reaction deletions plus, for
// every model, its module reactions and objective value. All identifiers are
// external ids.
type Individual struct {
	// Index is the zero-based solution index assigned after filtering.
	Index int

	Deletions []string
	// Modules maps a model to its module reactions. Decode fills in an empty
	// slice for every model without a module line.
	Modules map[string][]string
	// Objectives is nil until an objective value has been recorded.
	Objectives map[string]float64
}

// Key identifies an individual for deduplication. It covers the deletions as
// a set and the modules in order, and ignores objectives. A model without
// module reactions is the same as a model that is absent from Modules.
func (ind *Individual) Key() string {
	var b strings.Builder
	writeList(&b, sets.List(sets.New(ind.Deletions...)))

	models := make([]string, 0, len(ind.Modules))
	for m, rxns := range ind.Modules {
		if len(rxns) > 0 {
			models = append(models, m)
		}
	}
	sort.Strings(models)
	for _, m := range models {
		writeField(&b, m)
		writeList(&b, ind.Modules[m])
	}
	return b.String()
}

// writeList and writeField length-prefix every list and id.
func writeList(b *strings.Builder, ids []string) {
	b.WriteString(strconv.Itoa(len(ids)))
	b.WriteByte(';')
	for _, id := range ids {
		writeField(b, id)
	}
}

func writeField(b *strings.Builder, id string) {
	b.WriteString(strconv.Itoa(len(id)))
	b.WriteByte(':')
	b.WriteString(id)
}

// Equal reports whether two individuals have the same deletions and modules.
func (ind *Individual) Equal(other *Individual) bool {
	return ind.Key() == other.Key()
}

// KeyValue is a metadata entry.
type KeyValue struct {
	Key   string
	Value string
}

// Metadata is carried through a conversion without interpretation.
type Metadata struct {
	PopulationSize string
	Alpha          string
	Beta           string
	// Extra holds any other entries in file order.
	Extra []KeyValue
}

// Population is an ordered set of individuals over a fixed list of models.
type Population struct {
	Metadata Metadata
	// Models is the external model order used for modules, objectives and
	// table columns.
	Models      []string
	Individuals []Individual

	// DroppedEmpty counts individuals discarded by Decode because they had
	// no deletions.
	DroppedEmpty int
}
