// Package entityid generates human-readable entity numbers of the form
// <PREFIX><10 random decimal digits>, e.g. "INV0481653377". Numbers are not
// guaranteed globally unique; at the expected traffic volume the collision
// probability (~1e-10 per call) is acceptable, and the unique index on the
// column catches the remainder.
package entityid

import (
	"fmt"
	"math/rand/v2"
)

const (
	PrefixInventory     = "INV"
	PrefixAsset         = "AST"
	PrefixContract      = "SCT"
	PrefixPurchaseOrder = "PUO"
	PrefixGoodsReceipt  = "GRN"
)

func New(prefix string) string {
	return fmt.Sprintf("%s%010d", prefix, rand.Int64N(10_000_000_000))
}
