// Package ccparent holds the parent-coin record that coloured-coin programs
// receive as a curried argument.
package ccparent

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/shibukawa/puzzlegen"
	"github.com/shibukawa/puzzlegen/sexp"
)

// Sentinel errors
var (
	ErrInvalidHash     = fmt.Errorf("%w: 32-byte hash", puzzlegen.ErrInvalidArgument)
	ErrInvalidEncoding = errors.New("invalid CCParent encoding")
)

// Bytes32 is a fixed-width hash such as a coin name or a puzzle hash.
type Bytes32 [32]byte

// ParseBytes32 reads 64 hex digits, with or without a 0x prefix.
func ParseBytes32(s string) (Bytes32, error) {
	var h Bytes32

	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(digits) != hex.EncodedLen(len(h)) {
		return h, fmt.Errorf("%w: expected 64 hex digits, got %d", ErrInvalidHash, len(digits))
	}

	if _, err := hex.Decode(h[:], []byte(digits)); err != nil {
		return h, fmt.Errorf("%w: %w", ErrInvalidHash, err)
	}

	return h, nil
}

// String returns the lower-case hex digits without prefix.
func (h Bytes32) String() string {
	return hex.EncodeToString(h[:])
}

// MarshalText implements encoding.TextMarshaler.
func (h Bytes32) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Bytes32) UnmarshalText(text []byte) error {
	v, err := ParseBytes32(string(text))
	if err != nil {
		return err
	}

	*h = v

	return nil
}

// CCParent describes the parent of a coloured coin.
type CCParent struct {
	ParentName      Bytes32  `yaml:"parent_name" json:"parent_name"`
	InnerPuzzleHash *Bytes32 `yaml:"inner_puzzle_hash,omitempty" json:"inner_puzzle_hash,omitempty"`
	Amount          uint64   `yaml:"amount" json:"amount"`
}

// New returns a record that does not share innerPuzzleHash with the caller.
func New(parentName Bytes32, innerPuzzleHash *Bytes32, amount uint64) CCParent {
	p := CCParent{ParentName: parentName, Amount: amount}

	if innerPuzzleHash != nil {
		h := *innerPuzzleHash
		p.InnerPuzzleHash = &h
	}

	return p
}

// AsList returns the fields in their fixed order: parent name, inner puzzle
// hash (nil when absent) and amount.
func (p CCParent) AsList() []any {
	var inner any
	if p.InnerPuzzleHash != nil {
		inner = *p.InnerPuzzleHash
	}

	return []any{p.ParentName, inner, p.Amount}
}

// Program returns the record as a quoted cons list literal.
func (p CCParent) Program() sexp.Node {
	var inner sexp.Node = sexp.Nil()
	if p.InnerPuzzleHash != nil {
		inner = sexp.Bytes(p.InnerPuzzleHash[:])
	}

	return sexp.MakeList(sexp.Bytes(p.ParentName[:]), inner, sexp.Quote(sexp.Uint(p.Amount)))
}

// Equal reports whether both records hold the same values.
func (p CCParent) Equal(other CCParent) bool {
	if p.ParentName != other.ParentName || p.Amount != other.Amount {
		return false
	}

	if p.InnerPuzzleHash == nil || other.InnerPuzzleHash == nil {
		return p.InnerPuzzleHash == nil && other.InnerPuzzleHash == nil
	}

	return *p.InnerPuzzleHash == *other.InnerPuzzleHash
}

// MarshalBinary writes the streamable form: the 32-byte parent name, a
// presence byte followed by the 32-byte inner puzzle hash when present, and
// the amount as a big-endian uint64.
func (p CCParent) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer

	buf.Write(p.ParentName[:])

	if p.InnerPuzzleHash != nil {
		buf.WriteByte(1)
		buf.Write(p.InnerPuzzleHash[:])
	} else {
		buf.WriteByte(0)
	}

	var amount [8]byte
	binary.BigEndian.PutUint64(amount[:], p.Amount)
	buf.Write(amount[:])

	return buf.Bytes(), nil
}

// UnmarshalBinary reads the form written by MarshalBinary. The input must be
// consumed exactly.
func (p *CCParent) UnmarshalBinary(data []byte) error {
	var v CCParent
	if len(data) < len(v.ParentName) {
		return fmt.Errorf("%w: truncated parent name", ErrInvalidEncoding)
	}

	r := bytes.NewReader(data)
	_, _ = r.Read(v.ParentName[:])

	flag, err := r.ReadByte()
	if err != nil {
		return fmt.Errorf("%w: missing inner puzzle hash flag", ErrInvalidEncoding)
	}

	switch flag {
	case 0:
	case 1:
		var h Bytes32
		if r.Len() < len(h) {
			return fmt.Errorf("%w: truncated inner puzzle hash", ErrInvalidEncoding)
		}

		_, _ = r.Read(h[:])
		v.InnerPuzzleHash = &h
	default:
		return fmt.Errorf("%w: inner puzzle hash flag %d", ErrInvalidEncoding, flag)
	}

	if err := binary.Read(r, binary.BigEndian, &v.Amount); err != nil {
		return fmt.Errorf("%w: truncated amount", ErrInvalidEncoding)
	}

	if r.Len() != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrInvalidEncoding, r.Len())
	}

	*p = v

	return nil
}
