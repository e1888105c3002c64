package scalar

import (
	"github.com/shopspring/decimal"

	"github.com/arrowplan/arrowplan/types"
)

// ScaledString renders a Decimal128 scalar's unscaled coefficient at its
// declared scale, e.g. the coefficient 12345 with scale 2 renders "123.45".
// This is distinct from String(), which per spec.md §6 always shows the raw
// "coefficient,precision,scale" triple; ScaledString is for callers (CSV/JSON
// output, user-facing reports) that want the conventional decimal rendering.
// Only valid on non-null Decimal128 scalars.
func (v Value) ScaledString() (string, bool) {
	if v.typ.Kind != types.KindDecimal128 || v.null {
		return "", false
	}
	return decimal.NewFromBigInt(v.dec, -v.typ.Scale).String(), true
}
