package framework

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ObjectiveSpacePoint represents an N-dimensional point in the objective space.
// As an example, for a problem with 2 models m1 and m2, a point in the
// objective space could be [f_m1(x'), f_m2(x')] for the design x'.
// All objectives are minimized.
type ObjectiveSpacePoint []float64

// ObjectiveMatrix is an immutable snapshot of M objective vectors of the same
// length N. The zero-row and zero-column cases are valid.
type ObjectiveMatrix struct {
	rows, cols int
	data       *mat.Dense
}

// DimensionError reports a row whose length differs from the first row.
type DimensionError struct {
	Row  int
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("objective matrix row %d has %d columns, want %d", e.Row, e.Got, e.Want)
}

// NewObjectiveMatrix copies rows into a new matrix. Rows of unequal length
// produce a *DimensionError and no matrix.
func NewObjectiveMatrix(rows [][]float64) (*ObjectiveMatrix, error) {
	m := &ObjectiveMatrix{rows: len(rows)}
	if len(rows) == 0 {
		return m, nil
	}
	m.cols = len(rows[0])
	for i, row := range rows {
		if len(row) != m.cols {
			return nil, &DimensionError{Row: i, Want: m.cols, Got: len(row)}
		}
	}
	if m.cols == 0 {
		return m, nil
	}

	// gonum refuses zero-sized dense matrices, hence the guards above.
	m.data = mat.NewDense(m.rows, m.cols, nil)
	for i, row := range rows {
		m.data.SetRow(i, row)
	}
	return m, nil
}

// Dims returns the number of rows and columns.
func (m *ObjectiveMatrix) Dims() (int, int) { return m.rows, m.cols }

// At returns the objective value of row i in column j.
func (m *ObjectiveMatrix) At(i, j int) float64 { return m.data.At(i, j) }

// Row returns a copy of row i.
func (m *ObjectiveMatrix) Row(i int) ObjectiveSpacePoint {
	if i < 0 || i >= m.rows {
		panic(fmt.Sprintf("objective matrix: row %d out of range [0,%d)", i, m.rows))
	}
	if m.data == nil {
		return ObjectiveSpacePoint{}
	}
	return mat.Row(nil, i, m.data)
}

// rowViews exposes the backing rows without copying. Callers must not write
// through the returned slices.
func (m *ObjectiveMatrix) rowViews() [][]float64 {
	views := make([][]float64, m.rows)
	if m.data == nil {
		return views
	}
	for i := range views {
		views[i] = m.data.RawRowView(i)
	}
	return views
}
