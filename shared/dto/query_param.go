package dto

import (
	"math"
	"net/http"
	"strconv"

	"studio/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// Sort is one ORDER BY term. Field must be a column of the queried table.
type Sort struct {
	Field string
	Dir   string
}

type QueryParams struct {
	Page  int
	Limit int
	Sort  []Sort
}

// FromRequest reads page and limit. A missing, non-numeric or non-positive page becomes 1.
// The limit falls back to defaultLimit and is capped at constant.MaxValueLimit.
func (q *QueryParams) FromRequest(r *http.Request, defaultLimit int) {
	query := r.URL.Query()

	q.Page = constant.DefaultValuePage
	if page, err := strconv.Atoi(query.Get(constant.RequestParamPage)); err == nil && page > 0 {
		q.Page = page
	}

	q.Limit = defaultLimit
	if limit, err := strconv.Atoi(query.Get(constant.RequestParamLimit)); err == nil && limit > 0 {
		q.Limit = min(limit, constant.MaxValueLimit)
	}
}

// maxOffset keeps (Page-1)*Limit from overflowing on absurd page numbers.
const maxOffset = math.MaxInt32

// Offset is the row offset of the current page, capped at maxOffset.
// Pages past the cap read as the last reachable page, which is empty in practice.
func (q *QueryParams) Offset() int {
	if q.Page < 1 || q.Limit < 1 {
		return 0
	}

	return min(q.Page-1, maxOffset/q.Limit) * q.Limit
}
