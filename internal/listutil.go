package internal

import (
	"net/http"
	"strconv"
	"strings"
)

const maxListLimit = 100

// listParams holds the query parameters accepted by project list endpoints
type listParams struct {
	category string
	limit    int
}

// parseListParams parses category and limit from the request.
// Defaults: category="" (all), limit=0 (no cap). Limits above 100 are capped;
// non-numeric or non-positive limits are ignored.
func parseListParams(r *http.Request) listParams {
	values := r.URL.Query()

	limit := 0
	if s := strings.TrimSpace(values.Get("limit")); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			if v > maxListLimit {
				v = maxListLimit
			}
			limit = v
		}
	}

	return listParams{
		category: strings.TrimSpace(values.Get("category")),
		limit:    limit,
	}
}
