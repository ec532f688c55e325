package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger() *Ledger {
	return New(WithIDGenerator(NewFixedGenerator("d1", "d2", "d3", "d4", "d5", "d6", "d7", "d8", "d9", "d10")))
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestLedger_Append_AssignsPositionsFromLegalCount(t *testing.T) {
	l := newTestLedger()

	steps := []struct {
		d        Delivery
		wantOver int
		wantBall int
	}{
		{Delivery{Runs: 1}, 0, 0},
		{Delivery{Runs: 1, Wide: true}, 0, 1},
		{Delivery{Runs: 0}, 0, 1},
		{Delivery{Runs: 2, NoBall: true}, 0, 2},
		{Delivery{Runs: 4}, 0, 2},
		{Delivery{Runs: 0}, 0, 3},
		{Delivery{Runs: 0}, 0, 4},
		{Delivery{Runs: 6}, 0, 5},
		{Delivery{Runs: 0}, 1, 0},
	}

	for i, step := range steps {
		got, err := l.Append(step.d)
		require.NoError(t, err)
		assert.Equal(t, step.wantOver, got.Over, "delivery %d over", i)
		assert.Equal(t, step.wantBall, got.BallInOver, "delivery %d ball", i)
		assert.Equal(t, int64(i+1), got.Seq)
	}
	assert.Equal(t, 9, l.Len())
	assert.Equal(t, 7, l.LegalCount())
}

func TestLedger_Append_GeneratesIDOnlyWhenEmpty(t *testing.T) {
	l := newTestLedger()

	a, err := l.Append(Delivery{})
	require.NoError(t, err)
	b, err := l.Append(Delivery{ID: "custom"})
	require.NoError(t, err)

	assert.Equal(t, "d1", a.ID)
	assert.Equal(t, "custom", b.ID)
}

func TestLedger_Append_UUIDv7ByDefault(t *testing.T) {
	l := New()
	d, err := l.Append(Delivery{})
	require.NoError(t, err)
	assert.Len(t, d.ID, 36)
}

func TestLedger_Amend(t *testing.T) {
	l := newTestLedger()
	_, _ = l.Append(Delivery{Runs: 1})
	_, _ = l.Append(Delivery{Runs: 2})

	got, err := l.Amend("d1", Patch{Runs: intPtr(4), Wicket: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, 4, got.Runs)
	assert.True(t, got.Wicket)

	other, ok := l.Get("d2")
	require.True(t, ok)
	assert.Equal(t, 2, other.Runs)
}

func TestLedger_Amend_DoesNotRestampPositions(t *testing.T) {
	l := newTestLedger()
	_, _ = l.Append(Delivery{Runs: 1})
	_, _ = l.Append(Delivery{Runs: 0})

	_, err := l.Amend("d1", Patch{Wide: boolPtr(true)})
	require.NoError(t, err)

	second, _ := l.Get("d2")
	assert.Equal(t, 1, second.BallInOver, "stored position is left alone")
	assert.Equal(t, Position{Over: 0, BallInOver: 0}, l.Positions()[1], "derived position follows the new log")
}

func TestLedger_Amend_UnknownIDIsNoOp(t *testing.T) {
	l := newTestLedger()
	_, _ = l.Append(Delivery{Runs: 3})
	before := l.Deliveries()

	_, err := l.Amend("missing", Patch{Runs: intPtr(6)})

	assert.True(t, IsNotFound(err))
	assert.Equal(t, before, l.Deliveries())
}

func TestLedger_DeleteLast(t *testing.T) {
	l := newTestLedger()
	_, _ = l.Append(Delivery{Runs: 1})
	_, _ = l.Append(Delivery{Runs: 2})

	removed, ok, err := l.DeleteLast()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "d2", removed.ID)
	assert.Equal(t, 1, l.Len())
}

func TestLedger_DeleteLast_EmptyIsNoOp(t *testing.T) {
	l := newTestLedger()

	_, ok, err := l.DeleteLast()

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, l.Len())
}

func TestLedger_Delete_FromMiddle(t *testing.T) {
	l := newTestLedger()
	_, _ = l.Append(Delivery{Runs: 1})
	_, _ = l.Append(Delivery{Runs: 0, Wicket: true, WicketKind: WicketCaught})
	_, _ = l.Append(Delivery{Runs: 4})
	third, _ := l.Get("d3")

	removed, err := l.Delete("d2")
	require.NoError(t, err)
	assert.True(t, removed.Wicket)

	got := l.Deliveries()
	require.Len(t, got, 2)
	assert.Equal(t, "d1", got[0].ID)
	assert.Equal(t, third, got[1], "remaining delivery is unchanged")
}

func TestLedger_Delete_UnknownID(t *testing.T) {
	l := newTestLedger()
	_, _ = l.Append(Delivery{Runs: 1})

	_, err := l.Delete("nope")

	assert.True(t, IsNotFound(err))
	assert.Equal(t, 1, l.Len())
}

func TestLedger_Lock_RejectsEveryMutation(t *testing.T) {
	l := newTestLedger()
	_, _ = l.Append(Delivery{Runs: 1})
	l.Lock()
	require.True(t, l.Locked())

	_, err := l.Append(Delivery{Runs: 4})
	assert.True(t, IsLocked(err))

	_, err = l.Amend("d1", Patch{Runs: intPtr(2)})
	assert.True(t, IsLocked(err))

	_, _, err = l.DeleteLast()
	assert.True(t, IsLocked(err))

	_, err = l.Delete("d1")
	assert.True(t, IsLocked(err))

	got := l.Deliveries()
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Runs)
}

func TestLedger_Deliveries_ReturnsCopy(t *testing.T) {
	l := newTestLedger()
	_, _ = l.Append(Delivery{Runs: 1})

	got := l.Deliveries()
	got[0].Runs = 99

	d, _ := l.Get("d1")
	assert.Equal(t, 1, d.Runs)
	assert.NotNil(t, New().Deliveries())
}

func TestLedger_Seq_NotReusedAfterDelete(t *testing.T) {
	l := newTestLedger()
	_, _ = l.Append(Delivery{})
	_, _, _ = l.DeleteLast()

	d, err := l.Append(Delivery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), d.Seq)
}

func TestDelivery_PenaltyAndRunsOffBat(t *testing.T) {
	tests := []struct {
		name    string
		d       Delivery
		legal   bool
		penalty int
		offBat  int
	}{
		{"dot", Delivery{Runs: 0}, true, 0, 0},
		{"four", Delivery{Runs: 4}, true, 0, 4},
		{"wide", Delivery{Runs: 1, Wide: true}, false, 1, 0},
		{"no-ball with three", Delivery{Runs: 4, NoBall: true}, false, 1, 3},
		{"amended wide without penalty", Delivery{Runs: 0, Wide: true}, false, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.legal, tt.d.Legal())
			assert.Equal(t, tt.penalty, tt.d.Penalty())
			assert.Equal(t, tt.offBat, tt.d.RunsOffBat())
		})
	}
}

func TestPatch_ClearingWicketClearsKind(t *testing.T) {
	d := Delivery{Wicket: true, WicketKind: WicketLBW}
	got := Patch{Wicket: boolPtr(false)}.Apply(d)
	assert.False(t, got.Wicket)
	assert.Empty(t, got.WicketKind)
	assert.True(t, Patch{}.Empty())
}

func TestWicketKind_Valid(t *testing.T) {
	assert.True(t, WicketStumped.Valid())
	assert.False(t, WicketKind("Hit wicket").Valid())
}

func TestFixedGenerator_PanicsWhenExhausted(t *testing.T) {
	g := NewFixedGenerator("only")
	assert.Equal(t, "only", g.Generate())
	assert.Panics(t, func() { g.Generate() })
}

func TestClock_NextAndResume(t *testing.T) {
	c := NewClockAt(41)
	assert.Equal(t, int64(42), c.Next())
	assert.Equal(t, int64(42), c.Current())
}
