package popio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
)

const (
	MarkerMetadata   = "#METADATA"
	MarkerIndividual = "#INDIVIDUAL"
	MarkerDeletions  = "#DELETIONS"
	MarkerModules    = "#MODULES"
	MarkerObjectives = "#OBJECTIVES"
	MarkerEndFile    = "#ENDFILE"

	KeyPopulationSize = "population_size"
	KeyAlpha          = "alpha"
	KeyBeta           = "beta"

	maxLineSize = 16 * 1024 * 1024
)

type section int

const (
	sectionStart section = iota
	sectionMetadata
	sectionIndividual
	sectionDeletions
	sectionModules
	sectionObjectives
	sectionDone
)

func (s section) String() string {
	switch s {
	case sectionStart:
		return "start"
	case sectionMetadata:
		return MarkerMetadata
	case sectionIndividual:
		return MarkerIndividual
	case sectionDeletions:
		return MarkerDeletions
	case sectionModules:
		return MarkerModules
	case sectionObjectives:
		return MarkerObjectives
	case sectionDone:
		return MarkerEndFile
	}
	return fmt.Sprintf("section(%d)", int(s))
}

// transitions lists, per section, the markers that may follow it.
var transitions = map[section]map[string]section{
	sectionStart: {
		MarkerMetadata: sectionMetadata,
	},
	sectionMetadata: {
		MarkerIndividual: sectionIndividual,
		MarkerEndFile:    sectionDone,
	},
	sectionIndividual: {
		MarkerDeletions: sectionDeletions,
	},
	sectionDeletions: {
		MarkerModules: sectionModules,
	},
	sectionModules: {
		MarkerObjectives: sectionObjectives,
	},
	sectionObjectives: {
		MarkerIndividual: sectionIndividual,
		MarkerEndFile:    sectionDone,
	},
}

var knownMarkers = sets.New(
	MarkerMetadata, MarkerIndividual, MarkerDeletions,
	MarkerModules, MarkerObjectives, MarkerEndFile,
)

type decoder struct {
	ids   *IdentifierMap
	pop   *Population
	state section
	line  int

	cur       *Individual
	deletions sets.Set[string]
}

// Decode parses a population file. Identifiers in the file are internal ids
// and are translated to external ids through ids. Individuals without
// deletions are dropped and counted in Population.DroppedEmpty.
//
// Decode returns a *FormatError for unknown identifiers or malformed lines and
// a *StructuralError for misplaced section markers. No population is returned
// on error.
func Decode(r io.Reader, ids *IdentifierMap) (*Population, error) {
	d := &decoder{
		ids: ids,
		pop: &Population{Models: ids.Models.Externals()},
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		d.line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if err := d.consume(text); err != nil {
			return nil, err
		}
		if d.state == sectionDone {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read population: %w", err)
	}
	if err := d.finish(); err != nil {
		return nil, err
	}
	return d.pop, nil
}

func (d *decoder) consume(text string) error {
	if strings.HasPrefix(text, "#") {
		return d.transition(text)
	}

	switch d.state {
	case sectionMetadata:
		return d.metadata(text)
	case sectionDeletions:
		return d.deletion(text)
	case sectionModules:
		return d.module(text)
	case sectionObjectives:
		return d.objective(text)
	case sectionStart:
		return structuralErrorf(d.line, "content %q before %s", text, MarkerMetadata)
	default:
		return structuralErrorf(d.line, "content %q not allowed in %s section", text, d.state)
	}
}

func (d *decoder) transition(marker string) error {
	if !knownMarkers.Has(marker) {
		return structuralErrorf(d.line, "unknown section marker %q", marker)
	}
	next, ok := transitions[d.state][marker]
	if !ok {
		return structuralErrorf(d.line, "%s not allowed in %s section", marker, d.state)
	}

	switch next {
	case sectionIndividual:
		d.emit()
		d.cur = &Individual{Modules: map[string][]string{}}
		d.deletions = sets.New[string]()
	case sectionDone:
		d.emit()
	}
	d.state = next
	return nil
}

func (d *decoder) finish() error {
	switch d.state {
	case sectionStart:
		return structuralErrorf(d.line, "missing %s section", MarkerMetadata)
	case sectionIndividual, sectionDeletions, sectionModules:
		return structuralErrorf(d.line, "input ends inside %s section", d.state)
	case sectionObjectives:
		d.emit()
	}
	return nil
}

// emit closes the open individual, keeping it only if it has deletions.
// Models without a module line get an empty module.
func (d *decoder) emit() {
	if d.cur == nil {
		return
	}
	if len(d.cur.Deletions) == 0 {
		d.pop.DroppedEmpty++
		d.cur = nil
		return
	}
	for _, m := range d.pop.Models {
		if _, ok := d.cur.Modules[m]; !ok {
			d.cur.Modules[m] = []string{}
		}
	}
	d.pop.Individuals = append(d.pop.Individuals, *d.cur)
	d.cur = nil
}

func (d *decoder) metadata(text string) error {
	key, value, ok := strings.Cut(text, "=")
	if !ok {
		return formatErrorf(d.line, "malformed metadata entry %q", text)
	}
	key, value = strings.TrimSpace(key), strings.TrimSpace(value)

	md := &d.pop.Metadata
	switch key {
	case KeyPopulationSize:
		md.PopulationSize = value
	case KeyAlpha:
		md.Alpha = value
	case KeyBeta:
		md.Beta = value
	default:
		md.Extra = append(md.Extra, KeyValue{Key: key, Value: value})
	}
	return nil
}

func (d *decoder) deletion(text string) error {
	rxn, err := d.ids.reactionExternal(d.line, text)
	if err != nil {
		return err
	}
	if d.deletions.Has(rxn) {
		return formatErrorf(d.line, "reaction %q deleted twice", rxn)
	}
	d.deletions.Insert(rxn)
	d.cur.Deletions = append(d.cur.Deletions, rxn)
	return nil
}

func (d *decoder) module(text string) error {
	fields := strings.Split(text, ",")
	model, err := d.ids.modelExternal(d.line, strings.TrimSpace(fields[0]))
	if err != nil {
		return err
	}
	if _, dup := d.cur.Modules[model]; dup {
		return formatErrorf(d.line, "duplicate module for model %q", model)
	}

	rxns := make([]string, 0, len(fields)-1)
	for _, f := range fields[1:] {
		f = strings.TrimSpace(f)
		if f == "" {
			return formatErrorf(d.line, "empty reaction id in module line %q", text)
		}
		rxn, err := d.ids.reactionExternal(d.line, f)
		if err != nil {
			return err
		}
		rxns = append(rxns, rxn)
	}
	d.cur.Modules[model] = rxns
	return nil
}

func (d *decoder) objective(text string) error {
	fields := strings.Split(text, ",")
	if len(fields) != 2 {
		return formatErrorf(d.line, "malformed objective line %q", text)
	}
	model, err := d.ids.modelExternal(d.line, strings.TrimSpace(fields[0]))
	if err != nil {
		return err
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return formatErrorf(d.line, "malformed objective value %q", fields[1])
	}

	if d.cur.Objectives == nil {
		d.cur.Objectives = map[string]float64{}
	}
	if _, dup := d.cur.Objectives[model]; dup {
		return formatErrorf(d.line, "duplicate objective for model %q", model)
	}
	d.cur.Objectives[model] = value
	return nil
}
