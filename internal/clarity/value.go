// Package clarity implements the consensus serialization of the Clarity values
// that appear in structured-data (SIP-018) messages.
package clarity

import (
	"bytes"
	"encoding/binary"
	"sort"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Type prefixes of the consensus serialization.
const (
	TypeUInt        byte = 0x01
	TypeBuffer      byte = 0x02
	TypeTuple       byte = 0x0c
	TypeStringASCII byte = 0x0d
)

const maxTupleNameLength = 128

// Value 可序列化的 Clarity 值
type Value interface {
	// Type returns the consensus type prefix.
	Type() byte
	serialize(buf *bytes.Buffer) error
}

// UIntValue is an unsigned 128-bit integer.
type UIntValue struct {
	v *uint256.Int
}

// UInt wraps a uint64.
func UInt(v uint64) UIntValue {
	return UIntValue{v: uint256.NewInt(v)}
}

// UIntFromBig wraps an arbitrary value; it must fit in 128 bits to serialize.
func UIntFromBig(v *uint256.Int) UIntValue {
	return UIntValue{v: new(uint256.Int).Set(v)}
}

func (u UIntValue) Type() byte { return TypeUInt }

func (u UIntValue) serialize(buf *bytes.Buffer) error {
	if u.v == nil {
		return errors.New("uint value is nil")
	}
	if u.v.BitLen() > 128 {
		return errors.Errorf("uint value %s overflows u128", u.v.Dec())
	}
	word := u.v.Bytes32()
	buf.WriteByte(TypeUInt)
	buf.Write(word[16:])
	return nil
}

// BufferValue is a length-prefixed byte buffer.
type BufferValue []byte

// Buffer copies b into a buffer value.
func Buffer(b []byte) BufferValue {
	return append(BufferValue(nil), b...)
}

func (b BufferValue) Type() byte { return TypeBuffer }

func (b BufferValue) serialize(buf *bytes.Buffer) error {
	buf.WriteByte(TypeBuffer)
	writeLength(buf, len(b))
	buf.Write(b)
	return nil
}

// StringASCIIValue is a string-ascii value.
type StringASCIIValue string

// StringASCII returns a string-ascii value.
func StringASCII(s string) StringASCIIValue {
	return StringASCIIValue(s)
}

func (s StringASCIIValue) Type() byte { return TypeStringASCII }

func (s StringASCIIValue) serialize(buf *bytes.Buffer) error {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7e || (s[i] < 0x20 && s[i] != '\t' && s[i] != '\n' && s[i] != '\r') {
			return errors.Errorf("string-ascii contains non-ascii byte 0x%02x at %d", s[i], i)
		}
	}
	buf.WriteByte(TypeStringASCII)
	writeLength(buf, len(s))
	buf.WriteString(string(s))
	return nil
}

// TupleValue is a named tuple. Entries are serialized in lexicographic name order.
type TupleValue map[string]Value

// Tuple returns a tuple value of the given entries.
func Tuple(entries map[string]Value) TupleValue {
	return TupleValue(entries)
}

func (t TupleValue) Type() byte { return TypeTuple }

func (t TupleValue) serialize(buf *bytes.Buffer) error {
	names := make([]string, 0, len(t))
	for name := range t {
		if len(name) == 0 || len(name) > maxTupleNameLength {
			return errors.Errorf("invalid tuple entry name %q", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	buf.WriteByte(TypeTuple)
	writeLength(buf, len(names))
	for _, name := range names {
		buf.WriteByte(byte(len(name)))
		buf.WriteString(name)

		value := t[name]
		if value == nil {
			return errors.Errorf("tuple entry %q is nil", name)
		}
		if err := value.serialize(buf); err != nil {
			return errors.Wrapf(err, "failed to serialize tuple entry %q", name)
		}
	}
	return nil
}

// Serialize returns the consensus serialization of v.
func Serialize(v Value) ([]byte, error) {
	if v == nil {
		return nil, errors.New("value is nil")
	}
	var buf bytes.Buffer
	if err := v.serialize(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeLength(buf *bytes.Buffer, n int) {
	var l [4]byte
	binary.BigEndian.PutUint32(l[:], uint32(n))
	buf.Write(l[:])
}
