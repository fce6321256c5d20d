package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRangeDefaultsToFullBounds(t *testing.T) {
	snap := snapshotOf(rec("a", "2017-01-01", 10), rec("b", "2018-06-30", 20))

	r, err := ParseRange("", "", snap)
	require.NoError(t, err)
	assert.Equal(t, day("2017-01-01"), r.Start)
	assert.Equal(t, day("2018-06-30"), r.End)
}

func TestParseRangeRejectsReversed(t *testing.T) {
	snap := snapshotOf(rec("a", "2017-01-01", 10), rec("b", "2018-06-30", 20))

	_, err := ParseRange("2018-01-01", "2017-01-01", snap)
	require.Error(t, err)
}

func TestParseRangeRejectsGarbage(t *testing.T) {
	snap := snapshotOf(rec("a", "2017-01-01", 10))

	_, err := ParseRange("not-a-date", "", snap)
	require.Error(t, err)
	_, err = ParseRange("", "2017-13-45", snap)
	require.Error(t, err)
}

func TestClampClipsToBounds(t *testing.T) {
	snap := snapshotOf(rec("a", "2017-03-01", 10), rec("b", "2017-09-01", 20))

	r := Range{Start: day("2016-01-01"), End: day("2020-01-01")}.Clamp(snap)
	assert.Equal(t, day("2017-03-01"), r.Start)
	assert.Equal(t, day("2017-09-01"), r.End)
}

func TestFilterInclusiveBounds(t *testing.T) {
	snap := snapshotOf(
		rec("a", "2017-01-01", 10),
		rec("b", "2017-01-02", 10),
		rec("c", "2017-01-03", 10),
	)

	filtered := Filter(snap.Records, Range{Start: day("2017-01-01"), End: day("2017-01-02")})
	require.Len(t, filtered, 2)
	assert.Equal(t, "a", filtered[0].OrderID)
	assert.Equal(t, "b", filtered[1].OrderID)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	snap := snapshotOf(rec("a", "2017-01-01", 10), rec("b", "2017-06-01", 10))
	before := len(snap.Records)

	Filter(snap.Records, Range{Start: day("2017-06-01"), End: day("2017-06-01")})
	assert.Len(t, snap.Records, before)
}
