// AngelaMos | 2026
// query.go

package core

import (
	"net/http"
	"strconv"
)

func QueryInt(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

// PageFromRequest reads page and pageSize (or page_size) query params.
func PageFromRequest(r *http.Request) PageParams {
	size := QueryInt(r, "pageSize", 0)
	if size == 0 {
		size = QueryInt(r, "page_size", 20)
	}

	p := PageParams{
		Page:     QueryInt(r, "page", 1),
		PageSize: size,
	}
	p.Normalize()
	return p
}
