package nodepath

import (
	"fmt"
	"math/big"

	"lukechampine.com/uint128"
)

// maxSmallDepth is the deepest path whose address still fits in 128 bits
// together with its sentinel bit.
const maxSmallDepth = 127

// Address is the integer form of a Path: a leading sentinel 1 bit followed by
// one bit per step (0 for Left, 1 for Right), shallowest step first.
// The zero value is the root address 1.
type Address struct {
	small uint128.Uint128
	big   *big.Int
}

var one = uint128.From64(1)

// RootAddress returns the address of the whole environment.
func RootAddress() Address {
	return Address{small: one}
}

// Encode packs p into its address.
func Encode(p Path) Address {
	if len(p.dirs) <= maxSmallDepth {
		acc := one
		for _, d := range p.dirs {
			acc = acc.Lsh(1).Or64(d.bit())
		}

		return Address{small: acc}
	}

	acc := big.NewInt(1)
	for _, d := range p.dirs {
		acc.Lsh(acc, 1)
		acc.SetBit(acc, 0, uint(d.bit()))
	}

	return Address{big: acc}
}

// Decode unpacks an address back into its path.
func Decode(a Address) Path {
	a = a.norm()
	depth := a.Depth()
	dirs := make([]Direction, depth)

	for i := 0; i < depth; i++ {
		if a.bit(depth-1-i) == 1 {
			dirs[i] = Right
		} else {
			dirs[i] = Left
		}
	}

	return Path{dirs: dirs}
}

func fromBig(v *big.Int) Address {
	if v.BitLen() <= 128 {
		return Address{small: uint128.FromBig(v)}
	}

	return Address{big: new(big.Int).Set(v)}
}

func (a Address) norm() Address {
	if a.big == nil && a.small.IsZero() {
		return RootAddress()
	}

	return a
}

func (a Address) bitLen() int {
	if a.big != nil {
		return a.big.BitLen()
	}

	return a.small.Len()
}

func (a Address) bit(i int) uint {
	if a.big != nil {
		return a.big.Bit(i)
	}

	return uint(a.small.Rsh(uint(i)).And64(1).Lo)
}

// Decode is the method form of Decode.
func (a Address) Decode() Path {
	return Decode(a)
}

// Depth returns how many steps the address encodes.
func (a Address) Depth() int {
	return a.norm().bitLen() - 1
}

// Compose returns the address reached by following child starting from a,
// without going back through the path of a.
func (a Address) Compose(child Address) Address {
	a = a.norm()
	child = child.norm()
	depth := child.Depth()

	if a.big == nil && child.big == nil && a.Depth()+depth <= maxSmallDepth {
		steps := child.small.Xor(one.Lsh(uint(depth)))
		return Address{small: a.small.Lsh(uint(depth)).Or(steps)}
	}

	steps := child.BigInt()
	steps.SetBit(steps, depth, 0)

	acc := a.BigInt()
	acc.Lsh(acc, uint(depth))
	acc.Or(acc, steps)

	return fromBig(acc)
}

// Equal reports whether both addresses denote the same node.
func (a Address) Equal(other Address) bool {
	return a.BigInt().Cmp(other.BigInt()) == 0
}

// BigInt returns a copy of the address value.
func (a Address) BigInt() *big.Int {
	a = a.norm()
	if a.big != nil {
		return new(big.Int).Set(a.big)
	}

	return a.small.Big()
}

// Uint64 returns the address when it fits in 64 bits.
func (a Address) Uint64() (uint64, bool) {
	a = a.norm()
	if a.big != nil || a.small.Hi != 0 {
		return 0, false
	}

	return a.small.Lo, true
}

// Literal renders the address as a base-10 integer token.
func (a Address) Literal() string {
	a = a.norm()
	if a.big != nil {
		return a.big.String()
	}

	return a.small.String()
}

// Hex renders the address as a 0x-prefixed hexadecimal token.
func (a Address) Hex() string {
	return fmt.Sprintf("0x%x", a.BigInt())
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return a.Literal()
}
