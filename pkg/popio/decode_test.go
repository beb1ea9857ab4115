package popio

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePopulation = `#METADATA
population_size=3
alpha=4
beta=1
#INDIVIDUAL
#DELETIONS
r0
r1
#MODULES
0,r2
1
#OBJECTIVES
0,0.5
1,0.25
#INDIVIDUAL
#DELETIONS
#MODULES
0
1
#OBJECTIVES
#INDIVIDUAL
#DELETIONS
r3
#MODULES
0
1,r4,r2
#OBJECTIVES
#ENDFILE
not part of the population
`

func TestDecode(t *testing.T) {
	pop, err := Decode(strings.NewReader(samplePopulation), testIDs(t))
	require.NoError(t, err)

	want := &Population{
		Metadata: Metadata{PopulationSize: "3", Alpha: "4", Beta: "1"},
		Models:   []string{"ecoli_a", "ecoli_b"},
		Individuals: []Individual{
			{
				Deletions:  []string{"PGI", "PFK"},
				Modules:    map[string][]string{"ecoli_a": {"FBA"}, "ecoli_b": {}},
				Objectives: map[string]float64{"ecoli_a": 0.5, "ecoli_b": 0.25},
			},
			{
				Deletions: []string{"TPI"},
				Modules:   map[string][]string{"ecoli_a": {}, "ecoli_b": {"GAPD", "FBA"}},
			},
		},
		DroppedEmpty: 1,
	}
	if diff := cmp.Diff(want, pop); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeWithoutEndMarker(t *testing.T) {
	in := "#METADATA\n#INDIVIDUAL\n#DELETIONS\nr0\n#MODULES\n#OBJECTIVES\n0,1.5\n"
	pop, err := Decode(strings.NewReader(in), testIDs(t))
	require.NoError(t, err)
	require.Len(t, pop.Individuals, 1)
	assert.Equal(t, []string{"PGI"}, pop.Individuals[0].Deletions)
	assert.Equal(t, map[string][]string{"ecoli_a": {}, "ecoli_b": {}}, pop.Individuals[0].Modules)
	assert.Equal(t, map[string]float64{"ecoli_a": 1.5}, pop.Individuals[0].Objectives)
}

func TestDecodeTrimsWhitespaceAndBlankLines(t *testing.T) {
	in := "  #METADATA\r\n\n extra = yes \n\t#INDIVIDUAL\n#DELETIONS\n  r4  \n\n#MODULES\n 1 , r0 ,r1\n#OBJECTIVES\n 1 , -2e-3 \n"
	pop, err := Decode(strings.NewReader(in), testIDs(t))
	require.NoError(t, err)

	assert.Equal(t, []KeyValue{{Key: "extra", Value: "yes"}}, pop.Metadata.Extra)
	require.Len(t, pop.Individuals, 1)
	ind := pop.Individuals[0]
	assert.Equal(t, []string{"GAPD"}, ind.Deletions)
	assert.Equal(t, map[string][]string{"ecoli_a": {}, "ecoli_b": {"PGI", "PFK"}}, ind.Modules)
	assert.Equal(t, map[string]float64{"ecoli_b": -0.002}, ind.Objectives)
}

func TestDecodeMissingModuleLine(t *testing.T) {
	in := `#METADATA
#INDIVIDUAL
#DELETIONS
r0
#MODULES
0,r2
#OBJECTIVES
0,1
1,1
#INDIVIDUAL
#DELETIONS
r0
#MODULES
0,r2
1
#OBJECTIVES
0,1
1,1
`
	ids := testIDs(t)
	pop, err := Decode(strings.NewReader(in), ids)
	require.NoError(t, err)
	require.Len(t, pop.Individuals, 2)
	want := map[string][]string{"ecoli_a": {"FBA"}, "ecoli_b": {}}
	assert.Equal(t, want, pop.Individuals[0].Modules)
	assert.Equal(t, want, pop.Individuals[1].Modules)

	deduped, removed := Deduplicate(pop.Individuals)
	assert.Equal(t, 1, removed)
	assert.Len(t, deduped, 1)

	text, err := Encode(pop, ids)
	require.NoError(t, err)
	again, err := Decode(bytes.NewReader(text), ids)
	require.NoError(t, err)
	if diff := cmp.Diff(pop.Individuals[0].Modules, again.Individuals[0].Modules); diff != "" {
		t.Errorf("modules changed by round trip (-want +got):\n%s", diff)
	}
}

func TestDecodeOnlyMetadata(t *testing.T) {
	pop, err := Decode(strings.NewReader("#METADATA\npopulation_size=0\n#ENDFILE\n"), testIDs(t))
	require.NoError(t, err)
	assert.Empty(t, pop.Individuals)
	assert.Equal(t, "0", pop.Metadata.PopulationSize)
}

func TestDecodeFormatErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		line int
		msg  string
	}{
		{
			name: "unknown deletion",
			in:   "#METADATA\n#INDIVIDUAL\n#DELETIONS\nr0\nr99\n#MODULES\n#OBJECTIVES\n",
			line: 5,
			msg:  `unknown reaction id "r99"`,
		},
		{
			name: "unknown model in module line",
			in:   "#METADATA\n#INDIVIDUAL\n#DELETIONS\nr0\n#MODULES\n7,r1\n#OBJECTIVES\n",
			line: 6,
			msg:  `unknown model id "7"`,
		},
		{
			name: "unknown module reaction",
			in:   "#METADATA\n#INDIVIDUAL\n#DELETIONS\nr0\n#MODULES\n0,r1,x\n#OBJECTIVES\n",
			line: 6,
			msg:  `unknown reaction id "x"`,
		},
		{
			name: "empty module reaction",
			in:   "#METADATA\n#INDIVIDUAL\n#DELETIONS\nr0\n#MODULES\n0,r1,\n#OBJECTIVES\n",
			line: 6,
			msg:  `empty reaction id in module line "0,r1,"`,
		},
		{
			name: "duplicate module",
			in:   "#METADATA\n#INDIVIDUAL\n#DELETIONS\nr0\n#MODULES\n0\n0,r1\n#OBJECTIVES\n",
			line: 7,
			msg:  `duplicate module for model "ecoli_a"`,
		},
		{
			name: "duplicate deletion",
			in:   "#METADATA\n#INDIVIDUAL\n#DELETIONS\nr0\nr0\n",
			line: 5,
			msg:  `reaction "PGI" deleted twice`,
		},
		{
			name: "malformed objective value",
			in:   "#METADATA\n#INDIVIDUAL\n#DELETIONS\nr0\n#MODULES\n#OBJECTIVES\n0,high\n",
			line: 7,
			msg:  `malformed objective value "high"`,
		},
		{
			name: "objective line without value",
			in:   "#METADATA\n#INDIVIDUAL\n#DELETIONS\nr0\n#MODULES\n#OBJECTIVES\n0\n",
			line: 7,
			msg:  `malformed objective line "0"`,
		},
		{
			name: "duplicate objective",
			in:   "#METADATA\n#INDIVIDUAL\n#DELETIONS\nr0\n#MODULES\n#OBJECTIVES\n0,1\n0,2\n",
			line: 8,
			msg:  `duplicate objective for model "ecoli_a"`,
		},
		{
			name: "metadata without separator",
			in:   "#METADATA\npopulation_size\n",
			line: 2,
			msg:  `malformed metadata entry "population_size"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pop, err := Decode(strings.NewReader(tt.in), testIDs(t))
			assert.Nil(t, pop)
			var fe *FormatError
			require.True(t, errors.As(err, &fe), "got %v", err)
			assert.Equal(t, tt.line, fe.Line)
			assert.Equal(t, tt.msg, fe.Msg)
		})
	}
}

func TestDecodeStructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		line int
		msg  string
	}{
		{
			name: "objectives before any individual",
			in:   "#METADATA\n#OBJECTIVES\n0,1\n",
			line: 2,
			msg:  "#OBJECTIVES not allowed in #METADATA section",
		},
		{
			name: "content before metadata",
			in:   "r0\n#METADATA\n",
			line: 1,
			msg:  `content "r0" before #METADATA`,
		},
		{
			name: "individual before metadata",
			in:   "#INDIVIDUAL\n",
			line: 1,
			msg:  "#INDIVIDUAL not allowed in start section",
		},
		{
			name: "modules before deletions",
			in:   "#METADATA\n#INDIVIDUAL\n#MODULES\n",
			line: 3,
			msg:  "#MODULES not allowed in #INDIVIDUAL section",
		},
		{
			name: "content right after individual marker",
			in:   "#METADATA\n#INDIVIDUAL\nr0\n",
			line: 3,
			msg:  `content "r0" not allowed in #INDIVIDUAL section`,
		},
		{
			name: "individual nested in deletions",
			in:   "#METADATA\n#INDIVIDUAL\n#DELETIONS\nr0\n#INDIVIDUAL\n",
			line: 5,
			msg:  "#INDIVIDUAL not allowed in #DELETIONS section",
		},
		{
			name: "end marker inside modules",
			in:   "#METADATA\n#INDIVIDUAL\n#DELETIONS\nr0\n#MODULES\n#ENDFILE\n",
			line: 6,
			msg:  "#ENDFILE not allowed in #MODULES section",
		},
		{
			name: "repeated metadata",
			in:   "#METADATA\n#METADATA\n",
			line: 2,
			msg:  "#METADATA not allowed in #METADATA section",
		},
		{
			name: "unknown marker",
			in:   "#METADATA\n#GENES\n",
			line: 2,
			msg:  `unknown section marker "#GENES"`,
		},
		{
			name: "input ends inside modules",
			in:   "#METADATA\n#INDIVIDUAL\n#DELETIONS\nr0\n#MODULES\n0\n",
			line: 6,
			msg:  "input ends inside #MODULES section",
		},
		{
			name: "empty input",
			in:   "",
			line: 0,
			msg:  "missing #METADATA section",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pop, err := Decode(strings.NewReader(tt.in), testIDs(t))
			assert.Nil(t, pop)
			var se *StructuralError
			require.True(t, errors.As(err, &se), "got %v", err)
			assert.Equal(t, tt.line, se.Line)
			assert.Equal(t, tt.msg, se.Msg)
		})
	}
}
