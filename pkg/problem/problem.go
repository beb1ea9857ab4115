// Package problem loads the identifier maps of a ModCell problem directory.
package problem

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"modcell.io/popio/pkg/popio"
)

const (
	ModelMapFile    = "modelidmap.csv"
	ReactionMapFile = "rxnidmap.csv"

	modelExternalColumn    = "og_model_ids"
	modelInternalColumn    = "new_model_ids"
	reactionExternalColumn = "all_ids"
	reactionInternalColumn = "new_ids"
)

// Load reads the model and reaction identifier maps from dir. Model order
// follows the rows of the model map file.
func Load(dir string) (*popio.IdentifierMap, error) {
	modelPairs, err := readPairs(filepath.Join(dir, ModelMapFile), modelExternalColumn, modelInternalColumn)
	if err != nil {
		return nil, err
	}
	models, err := popio.NewBijection(modelPairs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Join(dir, ModelMapFile), err)
	}

	rxnPairs, err := readPairs(filepath.Join(dir, ReactionMapFile), reactionExternalColumn, reactionInternalColumn)
	if err != nil {
		return nil, err
	}
	reactions, err := popio.NewBijection(rxnPairs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Join(dir, ReactionMapFile), err)
	}

	return &popio.IdentifierMap{Models: models, Reactions: reactions}, nil
}

func readPairs(path, externalCol, internalCol string) ([]popio.Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pairs, err := ReadPairs(f, externalCol, internalCol)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pairs, nil
}

// ReadPairs reads a two-column identifier table with a header row naming
// externalCol and internalCol. Other columns are ignored.
func ReadPairs(r io.Reader, externalCol, internalCol string) ([]popio.Pair, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty identifier table")
	}
	if err != nil {
		return nil, err
	}

	ext, in := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case externalCol:
			ext = i
		case internalCol:
			in = i
		}
	}
	if ext < 0 || in < 0 {
		return nil, fmt.Errorf("header %v lacks columns %q and %q", header, externalCol, internalCol)
	}

	var pairs []popio.Pair
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, popio.Pair{
			External: strings.TrimSpace(rec[ext]),
			Internal: strings.TrimSpace(rec[in]),
		})
	}
	return pairs, nil
}
