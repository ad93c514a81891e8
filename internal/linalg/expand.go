package linalg

import (
	"fmt"
	"sort"
)

// ExpandOperator embeds a k-qubit operator into an n-qubit register acting
// on the given target qubits. The order of targets is significant: the
// i-th target qubit supplies the i-th most significant bit of the compact
// operator's index.
func ExpandOperator(u Matrix, n int, targets []int) (Matrix, error) {
	k, err := validateSquare(u)
	if err != nil {
		return nil, err
	}
	if k != len(targets) {
		return nil, fmt.Errorf("operator acts on %d qubits but %d targets given", k, len(targets))
	}
	seen := make(map[int]bool, len(targets))
	for _, q := range targets {
		if q < 0 || q >= n {
			return nil, fmt.Errorf("target qubit %d out of range for %d-qubit register", q, n)
		}
		if seen[q] {
			return nil, fmt.Errorf("duplicate target qubit %d", q)
		}
		seen[q] = true
	}

	others := make([]int, 0, n-k)
	for q := 0; q < n; q++ {
		if !seen[q] {
			others = append(others, q)
		}
	}

	dim := 1 << n
	out := Zeros(dim, dim)
	for r := 0; r < 1<<len(others); r++ {
		base := 0
		for i, q := range others {
			if r>>(len(others)-1-i)&1 == 1 {
				base |= 1 << (n - 1 - q)
			}
		}
		for a := 0; a < 1<<k; a++ {
			ja := base
			for i, q := range targets {
				if a>>(k-1-i)&1 == 1 {
					ja |= 1 << (n - 1 - q)
				}
			}
			for b := 0; b < 1<<k; b++ {
				if u[a][b] == 0 {
					continue
				}
				jb := base
				for i, q := range targets {
					if b>>(k-1-i)&1 == 1 {
						jb |= 1 << (n - 1 - q)
					}
				}
				out[ja][jb] = u[a][b]
			}
		}
	}
	return out, nil
}

// SequenceProduct multiplies an ordered list of compact operators into one
// compact operator over the union of their target qubits. Operators are
// applied in list order, i.e. the result is us[len-1] * ... * us[0] after
// each operator is expanded to the union. An operator with an empty target
// set must be 1x1 and contributes a scalar factor.
//
// The returned index slice holds the union targets in ascending order; the
// product acts on them in that order.
func SequenceProduct(us []Matrix, targetSets [][]int) (Matrix, []int, error) {
	if len(us) != len(targetSets) {
		return nil, nil, fmt.Errorf("got %d operators but %d target sets", len(us), len(targetSets))
	}

	inUnion := make(map[int]bool)
	for _, set := range targetSets {
		for _, q := range set {
			inUnion[q] = true
		}
	}
	union := make([]int, 0, len(inUnion))
	for q := range inUnion {
		union = append(union, q)
	}
	sort.Ints(union)
	pos := make(map[int]int, len(union))
	for i, q := range union {
		pos[q] = i
	}

	k := len(union)
	product := Identity(1 << k)
	for i, u := range us {
		set := targetSets[i]
		if len(set) == 0 {
			if u.Rows() != 1 || u.Cols() != 1 {
				return nil, nil, fmt.Errorf("operator %d has no targets but is %dx%d", i, u.Rows(), u.Cols())
			}
			product = product.Scale(u[0][0])
			continue
		}
		local := make([]int, len(set))
		for j, q := range set {
			local[j] = pos[q]
		}
		expanded, err := ExpandOperator(u, k, local)
		if err != nil {
			return nil, nil, fmt.Errorf("expanding operator %d: %w", i, err)
		}
		product = expanded.Mul(product)
	}
	return product, union, nil
}
