package world

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/life-engine/pkg/state"
)

func TestDefaultWorldIsValid(t *testing.T) {
	w := Default()
	require.NoError(t, w.Validate())

	for _, loc := range state.Locations {
		assert.NotEmpty(t, w.Zones(loc), "location %s has no zones", loc)
		_, ok := w.Route(loc)
		assert.True(t, ok, "location %s has no travel route", loc)
	}
}

func TestTravelRoutes(t *testing.T) {
	w := Default()

	cases := []struct {
		dest  state.Location
		cost  int
		hours int
	}{
		{state.LocationRumah, 0, 0},
		{state.LocationGunung, 100, 24},
		{state.LocationPantai, 50, 5},
		{state.LocationDanau, 150, 8},
		{state.LocationBilliard, 400, 24},
	}
	for _, tc := range cases {
		route, ok := w.Route(tc.dest)
		require.True(t, ok, "missing route to %s", tc.dest)
		assert.Equal(t, tc.cost, route.Cost, "cost to %s", tc.dest)
		assert.Equal(t, tc.hours, route.Hours, "hours to %s", tc.dest)
	}
}

func TestRectOverlaps(t *testing.T) {
	zone := Rect{X: 100, Y: 100, Width: 50, Height: 50}

	inside := Rect{X: 120, Y: 120, Width: 10, Height: 10}
	assert.True(t, zone.Overlaps(inside))
	assert.True(t, inside.Overlaps(zone))

	partial := Rect{X: 140, Y: 90, Width: 30, Height: 30}
	assert.True(t, zone.Overlaps(partial))

	outside := Rect{X: 200, Y: 200, Width: 20, Height: 20}
	assert.False(t, zone.Overlaps(outside))

	// Touching edges do not overlap.
	touching := Rect{X: 150, Y: 100, Width: 20, Height: 20}
	assert.False(t, zone.Overlaps(touching))
}

func TestZoneValidate(t *testing.T) {
	good := Zone{
		ID:            "bar",
		Rect:          Rect{X: 0, Y: 0, Width: 10, Height: 10},
		LocationLabel: "di Bar",
		Actions:       []Action{{Label: "Beli Minuman", Effects: []state.Effect{state.StatDelta(state.StatHunger, 5)}}},
	}
	assert.NoError(t, good.Validate())

	bad := []Zone{
		{Rect: Rect{Width: 1, Height: 1}, Actions: good.Actions},                       // no id
		{ID: "z", Rect: Rect{Width: 0, Height: 1}, Actions: good.Actions},              // flat rect
		{ID: "z", Rect: Rect{Width: 1, Height: 1}},                                     // no actions
		{ID: "z", Rect: Rect{Width: 1, Height: 1}, Actions: []Action{{Label: ""}}},     // unlabeled action
		{ID: "z", Rect: Rect{Width: 1, Height: 1}, Actions: []Action{{Label: "x", Activity: &ActivityConfig{DurationMs: 0}}}}, // zero duration
	}
	for i, z := range bad {
		assert.Error(t, z.Validate(), "case %d", i)
	}
}

func TestValidateRejectsUnknownGrant(t *testing.T) {
	w := Default()
	w.Locations[state.LocationPantai].Zones[0].Actions[0].Effects = append(
		w.Locations[state.LocationPantai].Zones[0].Actions[0].Effects,
		state.GrantItem(state.Item{Name: "Harta Karun"}),
	)
	assert.Error(t, w.Validate())
}

func TestLoadRoundTrip(t *testing.T) {
	data, err := json.Marshal(Default())
	require.NoError(t, err)

	w, err := Load(data)
	require.NoError(t, err)

	require.NotNil(t, w.Locations[state.LocationGunung])
	zone, ok := w.Zone(state.LocationGunung, "cafe")
	require.True(t, ok)
	assert.True(t, zone.DaytimeOnly)
	assert.Len(t, zone.Actions, 2)

	mancing, ok := w.Zone(state.LocationDanau, "mancing")
	require.True(t, ok)
	require.NotNil(t, mancing.Actions[0].Activity)
	assert.Equal(t, -200, mancing.Actions[0].Cost)
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	_, err := Load([]byte(`{not json`))
	assert.Error(t, err)

	_, err = Load([]byte(`{"locations":{}}`))
	assert.Error(t, err)
}
