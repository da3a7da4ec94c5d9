package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscretize(t *testing.T) {
	t.Run("exact division", func(t *testing.T) {
		// 09:00 - 11:00, шаг 60 минут
		spans := Discretize(540, 660, 60)

		require.Len(t, spans, 2)
		assert.Equal(t, Span{Start: 540, End: 600}, spans[0])
		assert.Equal(t, Span{Start: 600, End: 660}, spans[1])
	})

	t.Run("trailing partial slot is dropped", func(t *testing.T) {
		// 09:00 - 10:30, шаг 60 минут: неполный хвост 10:00-10:30 отбрасывается
		spans := Discretize(540, 630, 60)

		require.Len(t, spans, 1)
		assert.Equal(t, Span{Start: 540, End: 600}, spans[0])
	})

	t.Run("window shorter than step yields nothing", func(t *testing.T) {
		spans := Discretize(540, 570, 60)

		assert.Empty(t, spans)
	})

	t.Run("empty window yields nothing", func(t *testing.T) {
		assert.Empty(t, Discretize(540, 540, 60))
		assert.Empty(t, Discretize(600, 540, 60))
	})

	t.Run("uneven step", func(t *testing.T) {
		// 10:00 - 11:30, шаг 45 минут: 10:00-10:45, 10:45-11:30
		spans := Discretize(600, 690, 45)

		require.Len(t, spans, 2)
		assert.Equal(t, Span{Start: 600, End: 645}, spans[0])
		assert.Equal(t, Span{Start: 645, End: 690}, spans[1])
	})
}

func TestOverlaps(t *testing.T) {
	t.Run("partial overlap", func(t *testing.T) {
		assert.True(t, Overlaps(540, 600, 570, 630))
	})

	t.Run("containment", func(t *testing.T) {
		assert.True(t, Overlaps(540, 660, 570, 600))
		assert.True(t, Overlaps(570, 600, 540, 660))
	})

	t.Run("touching intervals do not overlap", func(t *testing.T) {
		// Конец одного равен началу другого - пересечения нет
		assert.False(t, Overlaps(540, 600, 600, 660))
		assert.False(t, Overlaps(600, 660, 540, 600))
	})

	t.Run("disjoint", func(t *testing.T) {
		assert.False(t, Overlaps(540, 600, 700, 760))
	})

	t.Run("symmetry", func(t *testing.T) {
		cases := [][4]int{
			{540, 600, 570, 630},
			{540, 600, 600, 660},
			{540, 660, 570, 600},
			{540, 600, 700, 760},
		}
		for _, c := range cases {
			assert.Equal(t,
				Overlaps(c[0], c[1], c[2], c[3]),
				Overlaps(c[2], c[3], c[0], c[1]),
			)
		}
	})
}

func TestMarkBusy(t *testing.T) {
	t.Run("overlapping busy interval marks whole slot", func(t *testing.T) {
		// Слот 10:00-11:00, занятость 10:30-10:45: слот занят целиком,
		// частичных слотов не бывает
		spans := Discretize(600, 720, 60)
		marked := MarkBusy(spans, []Span{{Start: 630, End: 645}})

		require.Len(t, marked, 2)
		assert.False(t, marked[0].Available)
		assert.True(t, marked[1].Available)
	})

	t.Run("touching busy interval does not mark", func(t *testing.T) {
		// Занятость 11:00-12:00 не задевает слот 10:00-11:00
		spans := Discretize(600, 660, 60)
		marked := MarkBusy(spans, []Span{{Start: 660, End: 720}})

		require.Len(t, marked, 1)
		assert.True(t, marked[0].Available)
	})

	t.Run("no busy intervals leaves all available", func(t *testing.T) {
		spans := Discretize(540, 720, 60)
		marked := MarkBusy(spans, nil)

		require.Len(t, marked, 3)
		for _, m := range marked {
			assert.True(t, m.Available)
		}
	})

	t.Run("busy spanning multiple slots marks each", func(t *testing.T) {
		spans := Discretize(540, 720, 60)
		marked := MarkBusy(spans, []Span{{Start: 570, End: 630}})

		require.Len(t, marked, 3)
		assert.False(t, marked[0].Available)
		assert.False(t, marked[1].Available)
		assert.True(t, marked[2].Available)
	})
}
