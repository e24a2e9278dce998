package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// [a(1000ms) -t1(500ms)- b(2000ms) -t2(300ms)- c(1500ms)]
func chainFixture(t *testing.T) (*Timeline, *Clip, *Clip, *Clip) {
	t.Helper()
	tl := New()
	a := clip("a", 1000*time.Millisecond)
	b := clip("b", 2000*time.Millisecond)
	c := clip("c", 1500*time.Millisecond)
	tl.Add(a)
	tl.Add(b)
	tl.Add(c)
	require.NoError(t, tl.AddTransition(crossfade("t1", 500*time.Millisecond), "a"))
	require.NoError(t, tl.AddTransition(crossfade("t2", 300*time.Millisecond), "b"))
	return tl, a, b, c
}

func TestNavigationByID(t *testing.T) {
	tl, a, b, c := chainFixture(t)

	assert.Same(t, a, tl.First())
	assert.Same(t, c, tl.Last())
	assert.True(t, tl.IsFirst("a"))
	assert.False(t, tl.IsFirst("b"))
	assert.True(t, tl.IsLast("c"))
	assert.False(t, tl.IsLast("b"))

	assert.Nil(t, tl.Previous("a"))
	assert.Same(t, a, tl.Previous("b"))
	assert.Same(t, b, tl.Previous("c"))

	assert.Same(t, b, tl.Next("a"))
	assert.Same(t, c, tl.Next("b"))
	assert.Nil(t, tl.Next("c"))

	assert.Nil(t, tl.Next("missing"))
	assert.Nil(t, tl.Previous("missing"))
}

func TestNavigationOnEmptyTimeline(t *testing.T) {
	tl := New()

	assert.Nil(t, tl.First())
	assert.Nil(t, tl.Last())
	assert.False(t, tl.IsFirst("a"))
	assert.False(t, tl.IsLast("a"))
	assert.Zero(t, tl.Duration())
	assert.Nil(t, tl.PreviousAt(0))
	assert.Nil(t, tl.NextAt(0))
	assert.Nil(t, tl.InsertAfterAt(0))
}

func TestBeginTimeAccountsForOverlap(t *testing.T) {
	tl, _, _, _ := chainFixture(t)

	assert.Equal(t, time.Duration(0), tl.BeginTime("a"))
	assert.Equal(t, 500*time.Millisecond, tl.BeginTime("b"))
	assert.Equal(t, 2200*time.Millisecond, tl.BeginTime("c"))
}

func TestDuration(t *testing.T) {
	tl, _, _, _ := chainFixture(t)
	assert.Equal(t, 3700*time.Millisecond, tl.Duration())
}

func TestDurationIgnoresClosingTransition(t *testing.T) {
	tl, _, _, _ := chainFixture(t)
	require.NoError(t, tl.AddTransition(crossfade("closing", 400*time.Millisecond), "c"))

	assert.Equal(t, 3700*time.Millisecond, tl.Duration(),
		"a closing transition has nothing to overlap with")
}

func TestDurationWithoutTransitionsIsPlainSum(t *testing.T) {
	tl := New()
	var want time.Duration
	for _, d := range []time.Duration{
		800 * time.Millisecond,
		1200 * time.Millisecond,
		3 * time.Second,
		450 * time.Millisecond,
	} {
		tl.Add(clip(d.String(), d))
		want += d
	}

	assert.Equal(t, want, tl.Duration())
}

func TestPreviousAtPosition(t *testing.T) {
	tl, a, b, c := chainFixture(t)

	assert.Nil(t, tl.PreviousAt(0), "nothing precedes the head")
	assert.Same(t, a, tl.PreviousAt(250*time.Millisecond))
	assert.Same(t, b, tl.PreviousAt(2200*time.Millisecond))
	assert.Same(t, c, tl.PreviousAt(3600*time.Millisecond))
	assert.Same(t, c, tl.PreviousAt(5*time.Second),
		"past the end the last clip wins")
}

func TestNextAtPosition(t *testing.T) {
	tl, _, b, c := chainFixture(t)

	assert.Same(t, b, tl.NextAt(0))
	assert.Same(t, c, tl.NextAt(600*time.Millisecond))
	assert.Nil(t, tl.NextAt(2600*time.Millisecond), "inside the last clip")
	assert.Nil(t, tl.NextAt(10*time.Second))
}

func TestNextAtSkipsAheadInsideTransitionTail(t *testing.T) {
	tl, _, _, c := chainFixture(t)

	// 700ms is inside a's outgoing 500ms transition ([500ms, 1000ms)),
	// where playback is already blending into b
	assert.Same(t, c, tl.NextAt(700*time.Millisecond))

	// b's outgoing tail is [2200ms, 2500ms); nothing follows c
	assert.Nil(t, tl.NextAt(2300*time.Millisecond))
}

func TestPositionAndIDNavigationAgreeAtBoundaries(t *testing.T) {
	tl, _, _, _ := chainFixture(t)

	for _, id := range []string{"b", "c"} {
		begin := tl.BeginTime(id)
		assert.Same(t, tl.Previous(id), tl.PreviousAt(begin),
			"position-based previous at %s's start", id)
	}
}

func TestInsertAfterAtProximity(t *testing.T) {
	tl, a, b, _ := chainFixture(t)

	// effective spans: a [0,500], b [500,2200], c [2200,3700]
	tests := []struct {
		name string
		at   time.Duration
		want *Clip
	}{
		{"closer to a's beginning inserts at head", 100 * time.Millisecond, nil},
		{"closer to a's end inserts after a", 400 * time.Millisecond, a},
		{"tie resolves to the end", 250 * time.Millisecond, a},
		{"closer to b's beginning inserts after a", 600 * time.Millisecond, a},
		{"closer to b's end inserts after b", 2 * time.Second, b},
		{"past the end resolves nowhere", 10 * time.Second, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tl.InsertAfterAt(tt.at)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				assert.Same(t, tt.want, got)
			}
		})
	}
}

func TestBeforeTransition(t *testing.T) {
	tl, a, b, _ := chainFixture(t)
	opening := crossfade("opening", time.Millisecond)
	require.NoError(t, tl.AddTransition(opening, ""))

	assert.Same(t, a, tl.BeforeTransition(a.End))
	assert.Same(t, b, tl.BeforeTransition(b.End))
	assert.Nil(t, tl.BeforeTransition(opening), "the opening transition has no predecessor")
}

func TestAspectRatioQueries(t *testing.T) {
	tl := New()
	assert.False(t, tl.HasMultipleAspectRatios())

	unknown := clip("unknown", time.Second)
	tl.Add(unknown)

	wide := clip("wide", time.Second)
	wide.AspectRatio = AspectRatio16x9
	tl.Add(wide)

	assert.False(t, tl.HasMultipleAspectRatios(),
		"leading undefined seeds the comparison instead of counting as distinct")

	tall := clip("tall", time.Second)
	tall.AspectRatio = AspectRatio4x3
	tl.Add(tall)

	assert.True(t, tl.HasMultipleAspectRatios())
	assert.Equal(t,
		[]AspectRatio{AspectRatioUndefined, AspectRatio16x9, AspectRatio4x3},
		tl.UniqueAspectRatios())
}

func TestHasMultipleAspectRatiosSeededByUndefined(t *testing.T) {
	tl := New()
	u := clip("u", time.Second)
	tl.Add(u)
	wide := clip("wide", time.Second)
	wide.AspectRatio = AspectRatio16x9
	tl.Add(wide)
	wide2 := clip("wide2", time.Second)
	wide2.AspectRatio = AspectRatio16x9
	tl.Add(wide2)

	assert.False(t, tl.HasMultipleAspectRatios())
}
