package popio

import (
	"bytes"
	"fmt"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Encode writes pop in the population file format, translating external ids
// to internal ids through ids. The objectives section of every individual is
// left empty. The output is built in memory and nothing is returned on error.
func Encode(pop *Population, ids *IdentifierMap) ([]byte, error) {
	var buf bytes.Buffer

	md := pop.Metadata
	buf.WriteString(MarkerMetadata + "\n")
	fmt.Fprintf(&buf, "%s=%s\n", KeyPopulationSize, orZero(md.PopulationSize))
	fmt.Fprintf(&buf, "%s=%s\n", KeyAlpha, orZero(md.Alpha))
	fmt.Fprintf(&buf, "%s=%s\n", KeyBeta, orZero(md.Beta))
	for _, kv := range md.Extra {
		fmt.Fprintf(&buf, "%s=%s\n", kv.Key, kv.Value)
	}

	models := pop.Models
	if len(models) == 0 {
		models = ids.Models.Externals()
	}
	for i := range pop.Individuals {
		if err := encodeIndividual(&buf, &pop.Individuals[i], models, ids); err != nil {
			return nil, fmt.Errorf("individual %d: %w", i, err)
		}
	}
	return buf.Bytes(), nil
}

func encodeIndividual(buf *bytes.Buffer, ind *Individual, models []string, ids *IdentifierMap) error {
	known := sets.New(models...)
	for m := range ind.Modules {
		if !known.Has(m) {
			return formatErrorf(0, "module for unknown model %q", m)
		}
	}

	buf.WriteString(MarkerIndividual + "\n")
	buf.WriteString(MarkerDeletions + "\n")
	seen := sets.New[string]()
	for _, rxn := range ind.Deletions {
		if seen.Has(rxn) {
			return formatErrorf(0, "reaction %q deleted twice", rxn)
		}
		seen.Insert(rxn)
		in, err := ids.reactionInternal(rxn)
		if err != nil {
			return err
		}
		buf.WriteString(in + "\n")
	}

	buf.WriteString(MarkerModules + "\n")
	for _, model := range models {
		in, err := ids.modelInternal(model)
		if err != nil {
			return err
		}
		buf.WriteString(in)
		for _, rxn := range ind.Modules[model] {
			rin, err := ids.reactionInternal(rxn)
			if err != nil {
				return err
			}
			buf.WriteString("," + rin)
		}
		buf.WriteString("\n")
	}

	// The objectives section is always written empty.
	buf.WriteString(MarkerObjectives + "\n")
	return nil
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
