package timeline

import (
	"testing"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBar_OffsetAndInclusiveWidth(t *testing.T) {
	l := New(date(2025, 11, 4), date(2025, 11, 30), 40, 48)
	task := &domain.Task{StartDate: date(2025, 11, 6), EndDate: date(2025, 11, 8)}

	bar := l.Bar(task)

	assert.Equal(t, 80, bar.Left)
	assert.Equal(t, 120, bar.Width)
	assert.False(t, bar.Thin)
}

func TestBar_ThinForParents(t *testing.T) {
	l := New(date(2025, 1, 1), date(2025, 1, 31), 10, 20)
	parent := &domain.Task{
		StartDate: date(2025, 1, 1),
		EndDate:   date(2025, 1, 1),
		Children:  []*domain.Task{{}},
	}
	assert.True(t, l.Bar(parent).Thin)
}

func TestClip(t *testing.T) {
	l := New(date(2025, 1, 10), date(2025, 1, 19), 10, 20)
	require.Equal(t, 100, l.Width())

	b, ok := l.Clip(Bar{Left: -30, Width: 50})
	require.True(t, ok)
	assert.Equal(t, Bar{Left: 0, Width: 20}, b)

	b, ok = l.Clip(Bar{Left: 90, Width: 50})
	require.True(t, ok)
	assert.Equal(t, 10, b.Width)

	_, ok = l.Clip(Bar{Left: 150, Width: 10})
	assert.False(t, ok)
}

func TestProgressWidth(t *testing.T) {
	b := Bar{Width: 200}
	assert.Equal(t, 0, ProgressWidth(b, 0))
	assert.Equal(t, 0, ProgressWidth(b, -5))
	assert.Equal(t, 100, ProgressWidth(b, 50))
	assert.Equal(t, 200, ProgressWidth(b, 140))
}

func TestMonths_ClippedToWindow(t *testing.T) {
	l := New(date(2025, 1, 30), date(2025, 3, 2), 2, 10)

	months := l.Months()

	require.Len(t, months, 3)
	assert.Equal(t, 2, months[0].Days)
	assert.Equal(t, 0, months[0].Left)
	assert.Equal(t, 28, months[1].Days)
	assert.Equal(t, 4, months[1].Left)
	assert.Equal(t, 2, months[2].Days)
	assert.Equal(t, l.DayCount(), months[0].Days+months[1].Days+months[2].Days)
	assert.Len(t, l.Days(), 32)
}

func TestRange(t *testing.T) {
	now := date(2025, 2, 14)

	start, end := Range(nil, nil, now)
	assert.Equal(t, date(2025, 2, 1), start)
	assert.Equal(t, date(2025, 2, 28), end)

	roots := []*domain.Task{
		{StartDate: date(2025, 3, 3), EndDate: date(2025, 3, 9)},
		{StartDate: date(2025, 3, 1), EndDate: date(2025, 3, 4)},
	}
	start, end = Range(roots, nil, now)
	assert.Equal(t, date(2025, 3, 1), start)
	assert.Equal(t, date(2025, 3, 9), end)

	ps, pe := date(2025, 1, 1), date(2025, 6, 30)
	start, end = Range(roots, &domain.ProjectSettings{StartDate: &ps, EndDate: &pe}, now)
	assert.Equal(t, ps, start)
	assert.Equal(t, pe, end)
}

func TestNew_Defaults(t *testing.T) {
	l := New(date(2025, 5, 5), date(2025, 5, 1), 0, 0)
	assert.Equal(t, DefaultDayWidth, l.DayWidth)
	assert.Equal(t, DefaultRowHeight, l.RowHeight)
	assert.Equal(t, 1, l.DayCount(), "end before start collapses to one day")
}
