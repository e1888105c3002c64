package scalar

import (
	"encoding/binary"

	"github.com/dchest/siphash"

	"github.com/arrowplan/arrowplan/types"
)

// nullSentinel is mixed into the hash of every null payload so that typed
// nulls of different Kinds still hash deterministically and non-zero
// (spec.md §4.1 "a stable, non-zero sentinel is mixed in for Null").
const nullSentinel = 0x9e3779b97f4a7c15 // golden-ratio constant, as siphash callers elsewhere in the lineage use

// Hash returns a siphash-2-4 digest of v's canonical encoding, using the
// same total-order/NaN-canonicalization rules Equal uses, so that
// a.Equal(b) implies a.Hash(key) == b.Hash(key) (I8). key is supplied by the
// caller (e.g. a hash-table probe) rather than fixed globally, matching how
// the teacher lineage's vm package threads an explicit siphash key instead
// of a package-level one.
func (v Value) Hash(key [2]uint64) uint64 {
	buf := make([]byte, 0, 32)
	buf = appendCanonical(buf, v)
	return siphash.Hash(key[0], key[1], buf)
}

func appendCanonical(buf []byte, v Value) []byte {
	buf = append(buf, byte(v.typ.Kind))
	if v.null {
		var sentinel [8]byte
		binary.LittleEndian.PutUint64(sentinel[:], nullSentinel)
		return append(buf, sentinel[:]...)
	}
	var tmp [8]byte
	switch v.typ.Kind {
	case types.KindNull:
		return buf
	case types.KindBool,
		types.KindInt8, types.KindInt16, types.KindInt32, types.KindInt64,
		types.KindDate32, types.KindDate64, types.KindTimestamp:
		binary.LittleEndian.PutUint64(tmp[:], uint64(v.i))
		return append(buf, tmp[:]...)
	case types.KindUint8, types.KindUint16, types.KindUint32, types.KindUint64:
		binary.LittleEndian.PutUint64(tmp[:], v.u)
		return append(buf, tmp[:]...)
	case types.KindFloat32, types.KindFloat64:
		binary.LittleEndian.PutUint64(tmp[:], floatOrderKey(v.f))
		return append(buf, tmp[:]...)
	case types.KindDecimal128:
		return append(buf, v.dec.Bytes()...)
	case types.KindUtf8, types.KindLargeUtf8:
		return append(buf, []byte(v.s)...)
	case types.KindBinary, types.KindLargeBinary:
		return append(buf, v.bin...)
	case types.KindInterval:
		binary.LittleEndian.PutUint64(tmp[:], uint64(uint32(v.iv.Months))|uint64(uint32(v.iv.Days))<<32)
		buf = append(buf, tmp[:]...)
		binary.LittleEndian.PutUint64(tmp[:], uint64(uint32(v.iv.Millis)))
		buf = append(buf, tmp[:]...)
		binary.LittleEndian.PutUint64(tmp[:], uint64(v.iv.Nanos))
		return append(buf, tmp[:]...)
	case types.KindList:
		for _, e := range v.list {
			buf = appendCanonical(buf, e)
		}
		return buf
	case types.KindStruct:
		for _, e := range v.strc {
			buf = appendCanonical(buf, e)
		}
		return buf
	default:
		return buf
	}
}
