package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.March, 15, 13, 45, 30, 0, time.Local)

func TestTimeWindow(t *testing.T) {
	t.Parallel()

	midnight := func(daysAgo int) time.Time {
		return time.Date(2024, time.March, 15-daysAgo, 0, 0, 0, 0, time.Local)
	}

	t.Run("today", func(t *testing.T) {
		from, to := timeWindow("today", testNow)
		require.NotNil(t, from)
		assert.Equal(t, midnight(0), *from)
		assert.Nil(t, to, "today is open-ended above")
	})

	t.Run("yesterday has both bounds", func(t *testing.T) {
		from, to := timeWindow("yesterday", testNow)
		require.NotNil(t, from)
		require.NotNil(t, to)
		assert.Equal(t, midnight(1), *from)
		assert.Equal(t, midnight(0), *to)
	})

	t.Run("last7days", func(t *testing.T) {
		from, to := timeWindow("last7days", testNow)
		require.NotNil(t, from)
		assert.Equal(t, midnight(7), *from)
		assert.Nil(t, to)

		assert.False(t, testNow.AddDate(0, 0, -6).Before(*from), "now-6d is inside the window")
		assert.True(t, testNow.AddDate(0, 0, -8).Before(*from), "now-8d is outside the window")
	})

	t.Run("last30days and last90days", func(t *testing.T) {
		from, _ := timeWindow("last30days", testNow)
		require.NotNil(t, from)
		assert.Equal(t, time.Date(2024, time.March, 15-30, 0, 0, 0, 0, time.Local), *from)

		from, _ = timeWindow("last90days", testNow)
		require.NotNil(t, from)
		assert.Equal(t, time.Date(2024, time.March, 15-90, 0, 0, 0, 0, time.Local), *from)
	})

	t.Run("unknown period is unconstrained", func(t *testing.T) {
		from, to := timeWindow("lastfortnight", testNow)
		assert.Nil(t, from)
		assert.Nil(t, to)

		from, to = timeWindow("", testNow)
		assert.Nil(t, from)
		assert.Nil(t, to)
	})
}

func TestOneMonthAgo(t *testing.T) {
	t.Parallel()

	boundary := oneMonthAgo(testNow)
	assert.Equal(t, time.Date(2024, time.February, 15, 0, 0, 0, 0, time.Local), boundary)

	// Month arithmetic, not a 30-day window: March 31 minus a month
	// normalizes past February's end.
	boundary = oneMonthAgo(time.Date(2024, time.March, 31, 10, 0, 0, 0, time.Local))
	assert.Equal(t, time.Date(2024, time.March, 2, 0, 0, 0, 0, time.Local), boundary)
}

func TestResolveSort(t *testing.T) {
	t.Parallel()

	t.Run("allow-listed fields pass", func(t *testing.T) {
		spec := resolveSort("numberOfLikes", "desc")
		assert.Equal(t, "numberOfLikes", spec.Field)
		assert.True(t, spec.Descending)

		spec = resolveSort("createdAt", "asc")
		assert.Equal(t, "createdAt", spec.Field)
		assert.False(t, spec.Descending)
	})

	t.Run("unknown field falls back to createdAt", func(t *testing.T) {
		spec := resolveSort("likes", "desc")
		assert.Equal(t, "createdAt", spec.Field)

		spec = resolveSort("", "desc")
		assert.Equal(t, "createdAt", spec.Field)
	})

	t.Run("any direction but asc is descending", func(t *testing.T) {
		assert.False(t, resolveSort("createdAt", "asc").Descending)
		assert.True(t, resolveSort("createdAt", "desc").Descending)
		assert.True(t, resolveSort("createdAt", "ascending").Descending)
		assert.True(t, resolveSort("createdAt", "").Descending)
	})
}

func TestResolvePage(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		page := resolvePage("", "")
		assert.EqualValues(t, 0, page.Skip)
		assert.EqualValues(t, 9, page.Limit)
	})

	t.Run("numeric values pass through", func(t *testing.T) {
		page := resolvePage("18", "6")
		assert.EqualValues(t, 18, page.Skip)
		assert.EqualValues(t, 6, page.Limit)
	})

	t.Run("non-numeric values fall back", func(t *testing.T) {
		page := resolvePage("abc", "xyz")
		assert.EqualValues(t, 0, page.Skip)
		assert.EqualValues(t, 9, page.Limit)
	})

	t.Run("negative startIndex clamps to zero", func(t *testing.T) {
		page := resolvePage("-5", "9")
		assert.EqualValues(t, 0, page.Skip)
	})
}
