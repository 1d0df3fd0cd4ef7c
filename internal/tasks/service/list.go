package service

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/tasktrack/internal/tasks/domain"
	"github.com/aussiebroadwan/tasktrack/internal/tasks/validation"
)

// ParseListQuery turns the GET /tasks query string into a normalised
// TaskQuery for userID. Only an invalid status filter is an error; every
// other malformed value falls back to a default.
func ParseListQuery(userID int64, v url.Values) (domain.TaskQuery, error) {
	status, err := validation.StatusFilter(v["status"])
	if err != nil {
		return domain.TaskQuery{}, err
	}

	return domain.TaskQuery{
		UserID: userID,
		Status: status,
		SortBy: domain.ParseSortField(v.Get("sort")),
		Order:  domain.ParseSortOrder(v.Get("order")),
		Page:   positiveInt(v.Get("page"), domain.DefaultPage),
		Limit:  positiveInt(v.Get("limit"), domain.DefaultLimit),
	}, nil
}

// positiveInt parses s as a number and floors it. An absent value yields
// def; anything that is not at least 1 after flooring yields 1.
func positiveInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 1
	}
	f = math.Floor(f)
	switch {
	case f < 1:
		return 1
	case f > math.MaxInt32:
		return math.MaxInt32
	}
	return int(f)
}
