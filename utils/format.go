package utils

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// FormatMatrix formats a matrix as a named, row-per-line table with the given
// number of decimals
func FormatMatrix(name string, m mat.Matrix, precision int) string {
	rows, cols := m.Dims()
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s [%d x %d] = [\n", name, rows, cols))

	for i := 0; i < rows; i++ {
		sb.WriteString("    [")
		for j := 0; j < cols; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			val := m.At(i, j)
			if val == 0 {
				// avoid printing -0
				val = 0
			}
			sb.WriteString(fmt.Sprintf("%.*f", precision, val))
		}
		sb.WriteString("]")
		if i < rows-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("]\n")

	return sb.String()
}

// FormatVector formats a slice on one line, marking entries with mask[i] false
// as prescribed with a trailing '*'
func FormatVector(name string, v []float64, mask []bool, precision int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s [%d] = [", name, len(v)))
	for i, val := range v {
		if i > 0 {
			sb.WriteString(", ")
		}
		if val == 0 {
			val = 0
		}
		sb.WriteString(fmt.Sprintf("%.*f", precision, val))
		if mask != nil && i < len(mask) && !mask[i] {
			sb.WriteString("*")
		}
	}
	sb.WriteString("]\n")
	return sb.String()
}
