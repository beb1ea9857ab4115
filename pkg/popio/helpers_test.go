package popio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// testIDs maps two models and five reactions. External ids are the readable
// names, internal ids the compact ones written to population files.
func testIDs(t *testing.T) *IdentifierMap {
	t.Helper()
	models, err := NewBijection([]Pair{
		{External: "ecoli_a", Internal: "0"},
		{External: "ecoli_b", Internal: "1"},
	})
	require.NoError(t, err)
	reactions, err := NewBijection([]Pair{
		{External: "PGI", Internal: "r0"},
		{External: "PFK", Internal: "r1"},
		{External: "FBA", Internal: "r2"},
		{External: "TPI", Internal: "r3"},
		{External: "GAPD", Internal: "r4"},
	})
	require.NoError(t, err)
	return &IdentifierMap{Models: models, Reactions: reactions}
}
