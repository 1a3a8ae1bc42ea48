package checkout

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func consumedQty(productID uuid.UUID, qty int) ConsumedItem {
	return ConsumedItem{ProductID: productID, ProductName: "x", Quantity: qty}
}

func TestApplyConsumption_SubtractsOnlyConsumedEntries(t *testing.T) {
	water := uuid.New()
	cola := uuid.New()
	stock := map[string]int{water.String(): 4, cola.String(): 3}

	newStock, err := ApplyConsumption(stock, []ConsumedItem{consumedQty(water, 2)})

	require.NoError(t, err)
	assert.Equal(t, 2, newStock[water.String()])
	assert.Equal(t, 3, newStock[cola.String()])
}

func TestApplyConsumption_DoesNotMutateInput(t *testing.T) {
	water := uuid.New()
	stock := map[string]int{water.String(): 4}

	_, err := ApplyConsumption(stock, []ConsumedItem{consumedQty(water, 4)})

	require.NoError(t, err)
	assert.Equal(t, 4, stock[water.String()])
}

func TestApplyConsumption_Underflow(t *testing.T) {
	water := uuid.New()
	stock := map[string]int{water.String(): 1}

	_, err := ApplyConsumption(stock, []ConsumedItem{consumedQty(water, 2)})

	assert.ErrorIs(t, err, ErrStockUnderflow)
}

func TestApplyConsumption_MissingEntryIsZero(t *testing.T) {
	ghost := uuid.New()

	_, err := ApplyConsumption(map[string]int{}, []ConsumedItem{consumedQty(ghost, 1)})

	assert.ErrorIs(t, err, ErrStockUnderflow)
}

func TestApplyConsumption_ExactDepletion(t *testing.T) {
	water := uuid.New()
	stock := map[string]int{water.String(): 3}

	newStock, err := ApplyConsumption(stock, []ConsumedItem{consumedQty(water, 3)})

	require.NoError(t, err)
	assert.Equal(t, 0, newStock[water.String()])
	for _, qty := range newStock {
		assert.GreaterOrEqual(t, qty, 0)
	}
}
