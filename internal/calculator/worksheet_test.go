package calculator

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kitchen() RoomType {
	return RoomType{ID: "kitchen", Name: "Kitchen", Appliances: []ApplianceItem{
		{ID: "1", Name: "Bulb", Wattage: 10, Quantity: 2},
		{ID: "2", Name: "Fridge", Wattage: 150, Quantity: 1},
	}}
}

func TestSelectRoomReplacesItems(t *testing.T) {
	room := kitchen()
	ws := NewWorksheet(ModeInverter, RoomType{ID: "big", Appliances: []ApplianceItem{
		{ID: "1", Wattage: 1, Quantity: 1}, {ID: "2"}, {ID: "3"}, {ID: "9"},
	}})

	ws.SelectRoom(room)

	want := []ApplianceItem{
		{ID: "1", Name: "Bulb", Wattage: 10, Quantity: 2, TotalWattage: 20},
		{ID: "2", Name: "Fridge", Wattage: 150, Quantity: 1, TotalWattage: 150},
	}
	if diff := cmp.Diff(want, ws.Items); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "kitchen", ws.RoomID)

	require.NoError(t, ws.Increment("1"))
	assert.Equal(t, 2, room.Appliances[0].Quantity, "preset must not alias worksheet")
}

func TestIncrementDecrement(t *testing.T) {
	ws := NewWorksheet(ModeInverter, kitchen())

	require.NoError(t, ws.Increment("2"))
	assert.Equal(t, 2, ws.Items[1].Quantity)
	assert.Equal(t, 300, ws.Items[1].TotalWattage)
	assert.Equal(t, 20, ws.Items[0].TotalWattage, "other rows untouched")

	for i := 0; i < 5; i++ {
		require.NoError(t, ws.Decrement("2"))
	}
	assert.Equal(t, 0, ws.Items[1].Quantity)
	assert.Equal(t, 0, ws.Items[1].TotalWattage)

	assert.ErrorIs(t, ws.Increment("42"), ErrItemNotFound)
	assert.ErrorIs(t, ws.Decrement("42"), ErrItemNotFound)
}

func TestSetWattage(t *testing.T) {
	ws := NewWorksheet(ModeSolar, kitchen())

	require.NoError(t, ws.SetWattage("1", 25))
	assert.Equal(t, 50, ws.Items[0].TotalWattage)

	require.NoError(t, ws.SetWattage("1", 0))
	assert.Equal(t, 0, ws.Items[0].TotalWattage)

	assert.ErrorIs(t, ws.SetWattage("1", -5), ErrInvalidWattage)
	assert.Equal(t, 0, ws.Items[0].Wattage)
	assert.ErrorIs(t, ws.SetWattage("nope", 5), ErrItemNotFound)
}

func TestTotalsAndRating(t *testing.T) {
	ws := NewWorksheet(ModeSolar, kitchen())
	assert.Equal(t, 170, ws.TotalLoad())
	assert.Equal(t, Summary{TotalLoad: 170, InverterRating: 204}, ws.Summary())

	assert.Equal(t, 0, InverterRating(0))
	assert.Equal(t, 1, InverterRating(1))
	assert.Equal(t, 2, InverterRating(2))
	assert.Equal(t, 4, InverterRating(3))
	assert.Equal(t, 6, InverterRating(5))
	assert.Equal(t, 1800, InverterRating(1500))
}

func TestSummarizeNormalizes(t *testing.T) {
	items := []ApplianceItem{
		{ID: "1", Wattage: 100, Quantity: 3, TotalWattage: 9999},
		{ID: "2", Wattage: -40, Quantity: 2},
		{ID: "3", Wattage: 60, Quantity: -1},
	}
	assert.Equal(t, Summary{TotalLoad: 300, InverterRating: 360}, Summarize(items))
	assert.Equal(t, 9999, items[0].TotalWattage, "input is not modified")
}

func TestEditsStayWithinBounds(t *testing.T) {
	ws := NewWorksheet(ModeSolar, kitchen())

	assert.ErrorIs(t, ws.SetWattage("1", math.MaxInt64/2+1), ErrInvalidWattage)
	assert.ErrorIs(t, ws.SetWattage("1", MaxWattage+1), ErrInvalidWattage)
	assert.Equal(t, 20, ws.Items[0].TotalWattage, "rejected edit leaves the row alone")
	require.NoError(t, ws.SetWattage("1", MaxWattage))

	assert.ErrorIs(t, ws.SetQuantity("1", MaxQuantity+1), ErrInvalidQuantity)
	assert.ErrorIs(t, ws.SetQuantity("1", -1), ErrInvalidQuantity)
	assert.ErrorIs(t, ws.SetQuantity("nope", 1), ErrItemNotFound)
	require.NoError(t, ws.SetQuantity("1", MaxQuantity))
	assert.Equal(t, MaxWattage*MaxQuantity, ws.Items[0].TotalWattage)

	require.NoError(t, ws.Increment("1"))
	assert.Equal(t, MaxQuantity, ws.Items[0].Quantity, "increment stops at the cap")

	sum := ws.Summary()
	assert.Equal(t, MaxWattage*MaxQuantity+150, sum.TotalLoad)
	assert.Positive(t, sum.InverterRating)
}

func TestSummarizeClampsOversizedRows(t *testing.T) {
	items := []ApplianceItem{
		{ID: "1", Wattage: math.MaxInt64/2 + 1, Quantity: 2},
		{ID: "2", Wattage: 10, Quantity: math.MaxInt64},
	}
	want := Summary{TotalLoad: MaxWattage*2 + 10*MaxQuantity}
	want.InverterRating = InverterRating(want.TotalLoad)
	assert.Equal(t, want, Summarize(items))
}

func TestRandomEditsKeepTotalsConsistent(t *testing.T) {
	for _, seed := range []uint64{1, 7, 42, 2024} {
		rng := rand.New(rand.NewPCG(seed, seed))
		ws := NewWorksheet(ModeInverter, kitchen())
		ids := []string{"1", "2"}

		for step := 0; step < 500; step++ {
			id := ids[rng.IntN(len(ids))]
			switch rng.IntN(4) {
			case 0:
				require.NoError(t, ws.Increment(id))
			case 1:
				require.NoError(t, ws.Decrement(id))
			case 2:
				watts := rng.IntN(MaxWattage+200) - 100
				err := ws.SetWattage(id, watts)
				if watts < 0 || watts > MaxWattage {
					require.ErrorIs(t, err, ErrInvalidWattage)
				} else {
					require.NoError(t, err)
				}
			case 3:
				qty := rng.IntN(MaxQuantity+20) - 10
				err := ws.SetQuantity(id, qty)
				if qty < 0 || qty > MaxQuantity {
					require.ErrorIs(t, err, ErrInvalidQuantity)
				} else {
					require.NoError(t, err)
				}
			}

			expected := 0
			for _, item := range ws.Items {
				require.GreaterOrEqual(t, item.Quantity, 0, "seed %d step %d", seed, step)
				require.LessOrEqual(t, item.Quantity, MaxQuantity, "seed %d step %d", seed, step)
				require.Equal(t, item.Wattage*item.Quantity, item.TotalWattage, "seed %d step %d", seed, step)
				expected += item.Wattage * item.Quantity
			}
			require.Equal(t, expected, ws.TotalLoad(), "seed %d step %d", seed, step)
			require.Equal(t, Summary{TotalLoad: expected, InverterRating: InverterRating(expected)}, ws.Summary())
		}
	}
}
