package layout

import (
	"testing"

	"github.com/rileyhilliard/tilemon/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metric(label, value string) telemetry.Metric {
	return telemetry.Metric{Label: label, Value: value}
}

func labels(views []TileView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.Metric.Label)
	}
	return out
}

func TestReconcile_PlacesNewMetricsOnSuccessiveRows(t *testing.T) {
	res := Reconcile([]telemetry.Metric{metric("CPU", "40"), metric("GPU", "50")}, nil)

	require.True(t, res.Changed)
	require.Len(t, res.Entries, 2)
	assert.Equal(t, NewEntry("CPU", 0, 0), res.Entries[0])
	assert.Equal(t, NewEntry("GPU", 0, 1), res.Entries[1])
	assert.Equal(t, []string{"CPU", "GPU"}, labels(res.Visible))
	assert.Empty(t, res.Hidden)
}

func TestReconcile_AppendsBelowLowestTile(t *testing.T) {
	existing := []Entry{NewEntry("CPU", 3, 4), NewEntry("GPU", 0, 1)}
	res := Reconcile([]telemetry.Metric{metric("GPU", "1"), metric("Fan", "900"), metric("CPU", "2")}, existing)

	require.True(t, res.Changed)
	require.Len(t, res.Entries, 3)
	assert.Equal(t, NewEntry("Fan", 0, 5), res.Entries[2])
	assert.Equal(t, existing[0], res.Entries[0], "existing entries keep their placement")
	assert.Equal(t, []string{"CPU", "GPU", "Fan"}, labels(res.Visible), "views follow entry order")
}

func TestReconcile_Idempotent(t *testing.T) {
	readings := []telemetry.Metric{metric("CPU", "40"), metric("GPU", "50")}
	first := Reconcile(readings, nil)
	second := Reconcile(readings, first.Entries)

	assert.False(t, second.Changed)
	assert.Equal(t, first.Entries, second.Entries)
	assert.Equal(t, first.Visible, second.Visible)
}

func TestReconcile_EmptyReadings(t *testing.T) {
	existing := []Entry{NewEntry("CPU", 0, 0)}
	res := Reconcile(nil, existing)

	assert.False(t, res.Changed)
	assert.Equal(t, existing, res.Entries)
	assert.Empty(t, res.Visible)
	assert.Empty(t, res.Hidden)
}

func TestReconcile_SkipsUnlabelledReadings(t *testing.T) {
	res := Reconcile([]telemetry.Metric{metric("", "1"), metric("CPU", "2")}, nil)

	require.Len(t, res.Entries, 1)
	assert.Equal(t, "CPU", res.Entries[0].OriginalLabel)
}

func TestReconcile_DuplicateLabelsInOneBatch(t *testing.T) {
	res := Reconcile([]telemetry.Metric{metric("CPU", "first"), metric("CPU", "second")}, nil)

	require.Len(t, res.Entries, 1, "one entry per label")
	require.Len(t, res.Visible, 1)
	assert.Equal(t, "first", res.Visible[0].Metric.Value, "first reading in the batch wins")
}

func TestReconcile_UnmatchedEntriesDroppedFromViewOnly(t *testing.T) {
	existing := []Entry{NewEntry("Offline", 0, 0), NewEntry("CPU", 0, 1)}
	res := Reconcile([]telemetry.Metric{metric("CPU", "1")}, existing)

	assert.False(t, res.Changed)
	assert.Len(t, res.Entries, 2, "entries are never deleted")
	assert.Equal(t, []string{"CPU"}, labels(res.Visible))
}

func TestReconcile_PartitionsHidden(t *testing.T) {
	hidden := NewEntry("GPU", 0, 1)
	hidden.Hidden = true
	existing := []Entry{NewEntry("CPU", 0, 0), hidden}

	res := Reconcile([]telemetry.Metric{metric("CPU", "1"), metric("GPU", "2")}, existing)
	assert.Equal(t, []string{"CPU"}, labels(res.Visible))
	assert.Equal(t, []string{"GPU"}, labels(res.Hidden))
}

func TestReconcile_DoesNotMutateInputs(t *testing.T) {
	existing := make([]Entry, 1, 8)
	existing[0] = NewEntry("CPU", 0, 0)
	readings := []telemetry.Metric{metric("GPU", "1")}

	res := Reconcile(readings, existing)
	require.True(t, res.Changed)

	assert.Len(t, existing, 1)
	assert.Equal(t, "", existing[:2][1].OriginalLabel, "spare capacity of the input must stay untouched")
	assert.Equal(t, []telemetry.Metric{metric("GPU", "1")}, readings)
}

func TestReconcile_MatchesByLabelNotID(t *testing.T) {
	existing := []Entry{NewEntry("CPU", 0, 0)}
	res := Reconcile([]telemetry.Metric{{ID: 7, Label: "CPU", Value: "1"}}, existing)

	assert.False(t, res.Changed)
	require.Len(t, res.Visible, 1)
	assert.Equal(t, 7, res.Visible[0].Metric.ID)
}

func TestTileView_Title(t *testing.T) {
	e := NewEntry("CPU Temp", 0, 0)
	v := TileView{Metric: metric("CPU Temp", "40"), Entry: e}
	assert.Equal(t, "CPU Temp", v.Title())

	v.Entry = Chain(Rename("Core"))(e)
	assert.Equal(t, "Core", v.Title())
}
