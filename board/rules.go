package board

import "errors"

// ErrClearanceIndexOutOfRange is returned by ClearanceMatrix.SetValue and
// GetValue when a class or layer index is outside the matrix's bounds.
var ErrClearanceIndexOutOfRange = errors.New("board: clearance index out of range")

// ClearanceMatrix is an N_class x N_class x N_layer table of minimum
// spacing values. Every stored value is even and non-negative; odd inputs
// are rounded up to the next even value on write (property 9).
type ClearanceMatrix struct {
	numClasses int
	numLayers  int
	values     []int32 // flattened [classA][classB][layer]
}

// NewClearanceMatrix returns a zero-valued matrix for numClasses clearance
// classes and numLayers layers.
func NewClearanceMatrix(numClasses, numLayers int) *ClearanceMatrix {
	return &ClearanceMatrix{
		numClasses: numClasses,
		numLayers:  numLayers,
		values:     make([]int32, numClasses*numClasses*numLayers),
	}
}

func (m *ClearanceMatrix) index(classA, classB, layer int) (int, error) {
	if classA < 0 || classA >= m.numClasses || classB < 0 || classB >= m.numClasses ||
		layer < 0 || layer >= m.numLayers {
		return 0, ErrClearanceIndexOutOfRange
	}

	return (classA*m.numClasses+classB)*m.numLayers + layer, nil
}

// SetValue stores the clearance between classA and classB on layer,
// rounding odd values up to the next even value, and mirrors it into
// (classB, classA, layer) since the matrix is symmetric by construction.
func (m *ClearanceMatrix) SetValue(classA, classB, layer int, value int32) error {
	if value < 0 {
		value = 0
	}
	if value%2 != 0 {
		value++
	}
	i, err := m.index(classA, classB, layer)
	if err != nil {
		return err
	}
	m.values[i] = value
	j, err := m.index(classB, classA, layer)
	if err != nil {
		return err
	}
	m.values[j] = value

	return nil
}

// GetValue returns the stored (already-evened) clearance value.
func (m *ClearanceMatrix) GetValue(classA, classB, layer int) (int32, error) {
	i, err := m.index(classA, classB, layer)
	if err != nil {
		return 0, err
	}

	return m.values[i], nil
}

// CompensationOffset returns the shape-compensation offset for a single
// class against itself: ceil(selfClearance/2). Since self-clearance is
// always even (SetValue enforces it), this is an exact division.
func (m *ClearanceMatrix) CompensationOffset(class, layer int) (int32, error) {
	v, err := m.GetValue(class, class, layer)
	if err != nil {
		return 0, err
	}

	return v / 2, nil
}

// RequiredClearance returns the clearance value for (classA, classB,
// layer), increased by margin when conservative checking is requested
// (the configurable safety margin mentioned in the data model).
func (m *ClearanceMatrix) RequiredClearance(classA, classB, layer int, margin int32) (int32, error) {
	v, err := m.GetValue(classA, classB, layer)
	if err != nil {
		return 0, err
	}

	return v + margin, nil
}
