package services

import (
	"strconv"
	"time"

	"inkwell/models"
	"inkwell/store"
)

// ListParams carries every query option the listing endpoints recognize,
// raw as received. Normalization and defaulting happen in the resolvers
// below; unknown values never fail a request.
type ListParams struct {
	StartIndex string
	Limit      string
	SortBy     string
	Order      string
	TimePeriod string
	Category   string
	AuthorID   string
	Slug       string
	PostID     string
	SearchTerm string
}

const (
	defaultLimit = 9

	sortByCreatedAt = "createdAt"
	sortByLikes     = "numberOfLikes"
	sortByUpdatedAt = "updatedAt"
)

// timeWindow translates a named period into a [from, to) creation-time
// window at local calendar-day granularity. Only "yesterday" is bounded
// above; an unknown or empty period yields no constraint.
func timeWindow(period string, now time.Time) (from, to *time.Time) {
	startOfDay := func(daysAgo int) *time.Time {
		t := time.Date(now.Year(), now.Month(), now.Day()-daysAgo, 0, 0, 0, 0, now.Location())
		return &t
	}

	switch period {
	case "today":
		return startOfDay(0), nil
	case "yesterday":
		return startOfDay(1), startOfDay(0)
	case "last7days":
		return startOfDay(7), nil
	case "last30days":
		return startOfDay(30), nil
	case "last90days":
		return startOfDay(90), nil
	default:
		return nil, nil
	}
}

// oneMonthAgo is the boundary for the trailing-month post count: the same
// day of the previous month at local midnight (month arithmetic, not a
// fixed 30-day window).
func oneMonthAgo(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month()-1, now.Day(), 0, 0, 0, 0, now.Location())
}

// resolveSort validates sortBy against the allow-list and maps the
// direction. Unknown fields fall back to createdAt; any direction other
// than "asc" sorts descending.
func resolveSort(sortBy, order string) store.SortSpec {
	field := sortByCreatedAt
	if sortBy == sortByLikes || sortBy == sortByCreatedAt {
		field = sortBy
	}
	return store.SortSpec{Field: field, Descending: order != "asc"}
}

// resolvePage coerces the raw pagination values, defaulting startIndex to
// 0 and limit to 9 on anything non-numeric. A negative startIndex clamps
// to 0.
func resolvePage(startIndex, limit string) store.Page {
	skip, err := strconv.ParseInt(startIndex, 10, 64)
	if err != nil || skip < 0 {
		skip = 0
	}

	lim, err := strconv.ParseInt(limit, 10, 64)
	if err != nil {
		lim = defaultLimit
	}

	return store.Page{Skip: skip, Limit: lim}
}

// publicFilter is the effective predicate for the public listing:
// approved posts only, narrowed by time, category, search and any
// identity filters supplied.
func publicFilter(p ListParams, now time.Time) store.PostFilter {
	from, to := timeWindow(p.TimePeriod, now)
	return store.PostFilter{
		Status:      models.StatusApproved,
		CreatedFrom: from,
		CreatedTo:   to,
		Category:    p.Category,
		SearchTerm:  p.SearchTerm,
		AuthorID:    p.AuthorID,
		Slug:        p.Slug,
		PostID:      p.PostID,
	}
}

// ownFilter is the predicate for a user's own listing: no status
// constraint (owners see pending and rejected posts too) and the category
// matched verbatim.
func ownFilter(p ListParams) store.PostFilter {
	return store.PostFilter{
		CategoryExact: p.Category,
		SearchTerm:    p.SearchTerm,
		AuthorID:      p.AuthorID,
		Slug:          p.Slug,
		PostID:        p.PostID,
	}
}
