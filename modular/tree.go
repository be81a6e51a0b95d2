// Copyright 2020 ConsenSys AG
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package modular

import (
	"math/big"

	"github.com/nume-crypto/flintgo/xerr"
)

// modNode is one node of the remainder tree: product of the moduli in
// its subtree range, with left/right children (both nil at a leaf).
type modNode struct {
	product     *big.Int
	left, right *modNode
	leafIdx     int // valid only at a leaf
}

// MultiModTree is a precomputed remainder tree over r pairwise-coprime,
// nonzero word-size moduli: given an arbitrary integer it emits that
// integer's residue mod each modulus in O(M(r) log r) via repeated
// halving, instead of r independent O(r)-cost reductions.
type MultiModTree struct {
	moduli []uint64
	root   *modNode
}

// NewMultiModTree builds the tree from moduli. Returns
// ErrNonCoprimeOrZeroModuli if any modulus is zero or any pair shares a
// common factor.
func NewMultiModTree(moduli []uint64) (*MultiModTree, error) {
	if len(moduli) == 0 {
		return &MultiModTree{}, nil
	}
	for _, m := range moduli {
		if m == 0 {
			return nil, xerr.ErrNonCoprimeOrZeroModuli
		}
	}
	for i := 0; i < len(moduli); i++ {
		for j := i + 1; j < len(moduli); j++ {
			var g big.Int
			g.GCD(nil, nil, new(big.Int).SetUint64(moduli[i]), new(big.Int).SetUint64(moduli[j]))
			if g.Cmp(big.NewInt(1)) != 0 {
				return nil, xerr.ErrNonCoprimeOrZeroModuli
			}
		}
	}

	root := buildModNode(moduli, 0, len(moduli))
	return &MultiModTree{moduli: moduli, root: root}, nil
}

func buildModNode(moduli []uint64, lo, hi int) *modNode {
	if hi-lo == 1 {
		return &modNode{product: new(big.Int).SetUint64(moduli[lo]), leafIdx: lo}
	}
	mid := lo + (hi-lo)/2
	left := buildModNode(moduli, lo, mid)
	right := buildModNode(moduli, mid, hi)
	return &modNode{
		product: new(big.Int).Mul(left.product, right.product),
		left:    left,
		right:   right,
	}
}

// Residues returns x mod moduli[i] for each i, computed by descending the
// product tree (reduce against the root, then each half, down to the
// leaves) rather than r independent reductions.
func (t *MultiModTree) Residues(x *big.Int) []uint64 {
	if len(t.moduli) == 0 {
		return nil
	}
	out := make([]uint64, len(t.moduli))
	descendResidues(t.root, x, out)
	return out
}

func descendResidues(node *modNode, val *big.Int, out []uint64) {
	r := new(big.Int).Mod(val, node.product)
	if node.left == nil && node.right == nil {
		out[node.leafIdx] = r.Uint64()
		return
	}
	descendResidues(node.left, r, out)
	descendResidues(node.right, r, out)
}

// Moduli returns the moduli the tree was built from.
func (t *MultiModTree) Moduli() []uint64 { return t.moduli }
