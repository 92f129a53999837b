package entityid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := New(PrefixInventory)
		assert.Len(t, id, 13)
		assert.Equal(t, "INV", id[:3])
		for _, r := range id[3:] {
			assert.True(t, r >= '0' && r <= '9', "digit expected, got %q in %s", r, id)
		}
	}
}

func TestNewPrefixes(t *testing.T) {
	assert.Equal(t, "AST", New(PrefixAsset)[:3])
	assert.Equal(t, "SCT", New(PrefixContract)[:3])
	assert.Equal(t, "PUO", New(PrefixPurchaseOrder)[:3])
	assert.Equal(t, "GRN", New(PrefixGoodsReceipt)[:3])
}
