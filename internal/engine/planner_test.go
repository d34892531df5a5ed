package engine

import (
	"sort"
	"testing"

	"github.com/piwi3910/LoadDeck/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cargo(index int, client string, order int, length, width float64) model.CargoItem {
	return model.CargoItem{
		Index:       index,
		Client:      client,
		UnloadOrder: order,
		Length:      length,
		Width:       width,
		Height:      1.5,
		Kind:        model.KindDimensions,
	}
}

func eurPallets(n int) []model.CargoItem {
	items := make([]model.CargoItem, n)
	for i := range items {
		items[i] = cargo(i, "Client", model.UnorderedPriority, 1.2, 0.8)
		items[i].Kind = model.KindEUR
	}
	return items
}

// assertPartition checks every input index appears exactly once across the
// placed and not-placed lists.
func assertPartition(t *testing.T, items []model.CargoItem, r model.PlanResult) {
	t.Helper()
	var got []int
	for _, p := range r.Placed {
		got = append(got, p.Item.Index)
	}
	for _, c := range r.NotPlaced {
		got = append(got, c.Index)
	}
	sort.Ints(got)

	want := make([]int, 0, len(items))
	for _, it := range items {
		want = append(want, it.Index)
	}
	sort.Ints(want)

	assert.Equal(t, want, got)
}

func assertValidLayout(t *testing.T, r model.PlanResult) {
	t.Helper()
	for i, p := range r.Placed {
		assert.True(t, r.Trailer.Contains(p, eps), "item %d out of bounds: %+v", p.Item.Index, p)
		for _, o := range r.Placed[i+1:] {
			assert.False(t, p.Overlaps(o, eps), "items %d and %d overlap", p.Item.Index, o.Item.Index)
		}
	}
}

func TestPlan_SingleItem(t *testing.T) {
	items := []model.CargoItem{cargo(0, "Client1", 2, 3.0, 2.0)}

	r := New(model.DefaultSettings()).Plan(items)

	require.Len(t, r.Placed, 1)
	assert.Empty(t, r.NotPlaced)
	assert.Equal(t, 0.0, r.Placed[0].X)
	assert.Equal(t, 0.0, r.Placed[0].Y)
	assert.Equal(t, "Client1", r.Placed[0].Item.Client)
	assert.Equal(t, DefaultStrategy, r.Strategy)
	assert.NotEmpty(t, r.ID)
}

func TestPlan_OversizedGoesToNotPlaced(t *testing.T) {
	items := []model.CargoItem{
		cargo(0, "Big", 1, 14.0, 3.0),
		cargo(1, "Small", 2, 1.2, 0.8),
	}

	r := New(model.DefaultSettings()).Plan(items)

	require.Len(t, r.NotPlaced, 1)
	assert.Equal(t, 0, r.NotPlaced[0].Index)
	require.Len(t, r.Placed, 1)
	assert.Equal(t, 1, r.Placed[0].Item.Index)
}

func TestPlan_FullLengthPairSideBySide(t *testing.T) {
	items := []model.CargoItem{
		cargo(0, "A", 1, 13.6, 1.2),
		cargo(1, "B", 1, 13.6, 1.2),
	}

	r := New(model.DefaultSettings()).Plan(items)

	require.Len(t, r.Placed, 2)
	assert.Empty(t, r.NotPlaced)
	assertValidLayout(t, r)
	assert.InDelta(t, 13.6, r.LoadingMeters(), 1e-9)
}

func TestPlan_RotatedFootprint(t *testing.T) {
	items := []model.CargoItem{cargo(0, "A", 1, 2.0, 3.0)}

	r := New(model.DefaultSettings()).Plan(items)

	require.Len(t, r.Placed, 1)
	p := r.Placed[0]
	assert.True(t, p.Rotated)
	assert.Equal(t, 3.0, p.Length)
	assert.Equal(t, 2.0, p.Width)
	assert.Equal(t, 2.0, p.Item.Length, "source item keeps its own dimensions")
}

func TestPlan_PartitionAndLayout(t *testing.T) {
	items := eurPallets(40)

	r := New(model.DefaultSettings()).Plan(items)

	assertPartition(t, items, r)
	assertValidLayout(t, r)
	assert.Len(t, r.Placed, 33, "11 rows of three pallets")
	assert.Len(t, r.NotPlaced, 7)
	assert.InDelta(t, 13.2, r.LoadingMeters(), 1e-9)
}

func TestPlan_SameClientItemsKeepIdentity(t *testing.T) {
	// Identical clients and sizes must still map back to distinct items.
	items := []model.CargoItem{
		cargo(0, "Acme", 1, 6.0, 2.45),
		cargo(1, "Acme", 1, 6.0, 2.45),
		cargo(2, "Acme", 1, 6.0, 2.45),
	}

	r := New(model.DefaultSettings()).Plan(items)

	assertPartition(t, items, r)
	require.Len(t, r.Placed, 2)
	assert.Equal(t, 0, r.Placed[0].Item.Index)
	assert.Equal(t, 1, r.Placed[1].Item.Index)
	require.Len(t, r.NotPlaced, 1)
	assert.Equal(t, 2, r.NotPlaced[0].Index)
}

func TestPlan_UnloadOrderIsStable(t *testing.T) {
	items := []model.CargoItem{
		cargo(0, "A", 2, 1.2, 0.8),
		cargo(1, "B", model.UnorderedPriority, 1.2, 0.8),
		cargo(2, "C", 1, 1.2, 0.8),
		cargo(3, "D", 2, 1.2, 0.8),
	}

	r := New(model.DefaultSettings()).Plan(items)

	require.Len(t, r.Placed, 4)
	var order []string
	for _, p := range r.Placed {
		order = append(order, p.Item.Client)
	}
	assert.Equal(t, []string{"C", "A", "D", "B"}, order)
}

func TestPlan_DoesNotMutateInput(t *testing.T) {
	items := []model.CargoItem{
		cargo(0, "A", 3, 1.2, 0.8),
		cargo(1, "B", 1, 1.2, 0.8),
	}
	orig := append([]model.CargoItem(nil), items...)

	New(model.DefaultSettings()).Plan(items)

	assert.Equal(t, orig, items)
}

func TestPlan_Deterministic(t *testing.T) {
	items := append(eurPallets(20), cargo(20, "X", 1, 2.0, 3.0), cargo(21, "Y", 5, 4.0, 1.0))
	planner := New(model.DefaultSettings())

	first := planner.Plan(items)
	second := planner.Plan(items)

	assert.Equal(t, first.Placed, second.Placed)
	assert.Equal(t, first.NotPlaced, second.NotPlaced)
}

func TestPlan_AlternateTrailer(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Trailer = model.Trailer{Name: "Tiny", Length: 1.2, Width: 0.8}

	r := New(settings).Plan(eurPallets(2))

	assert.Len(t, r.Placed, 1)
	assert.Len(t, r.NotPlaced, 1)
	assert.InDelta(t, 100.0, r.Efficiency(), 1e-9)
}

func TestPlan_DegenerateInputs(t *testing.T) {
	settings := model.DefaultSettings()

	r := New(settings).Plan(nil)
	assert.Empty(t, r.Placed)
	assert.Empty(t, r.NotPlaced)

	r = New(settings).Plan([]model.CargoItem{cargo(0, "Flat", 1, 0, 1)})
	assert.Empty(t, r.Placed)
	assert.Len(t, r.NotPlaced, 1)

	settings.Trailer = model.Trailer{}
	r = New(settings).Plan(eurPallets(2))
	assert.Empty(t, r.Placed)
	assert.Len(t, r.NotPlaced, 2)
}

func TestNewWithStrategy(t *testing.T) {
	p, err := NewWithStrategy(model.DefaultSettings(), "pak-bottom-left")
	require.NoError(t, err)
	assert.Equal(t, "pak-bottom-left", p.Strategy())

	_, err = NewWithStrategy(model.DefaultSettings(), "tetris")
	assert.Error(t, err)
}

func TestNew_UnknownStrategyFallsBack(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Strategy = "tetris"

	assert.Equal(t, DefaultStrategy, New(settings).Strategy())
}

func TestStrategies(t *testing.T) {
	names := Strategies()

	require.Len(t, names, 6)
	assert.Equal(t, DefaultStrategy, names[0])
	assert.True(t, sort.StringsAreSorted(names[1:]))
}

func TestPakStrategies_KeepInvariants(t *testing.T) {
	items := append(eurPallets(30), cargo(30, "Big", 1, 14.0, 3.0), cargo(31, "Tall", 2, 2.0, 3.0))

	for _, name := range Strategies() {
		t.Run(name, func(t *testing.T) {
			p, err := NewWithStrategy(model.DefaultSettings(), name)
			require.NoError(t, err)

			r := p.Plan(items)

			assertPartition(t, items, r)
			assertValidLayout(t, r)
			for _, c := range r.Placed {
				assert.NotEqual(t, 30, c.Item.Index, "oversized item placed")
			}
		})
	}
}

func TestRun(t *testing.T) {
	items, r, err := Run("Client1 #2 300x200x150\nClient2 EUR", model.DefaultSettings())

	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Len(t, r.Placed, 2)
	assert.Equal(t, "Client2", r.Placed[1].Item.Client, "unordered block goes last")
}

func TestRun_NoItems(t *testing.T) {
	_, _, err := Run("nothing useful here", model.DefaultSettings())

	assert.ErrorIs(t, err, ErrNoItems)
}
