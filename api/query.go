package api

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gobuffalo/buffalo"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// filter keys recognized by the list endpoints
const (
	FilterOwner         = "owner"
	FilterAssessor      = "assessor"
	FilterRiskType      = "risk_type"
	FilterEffectiveness = "effectiveness"
	FilterStatus        = "status"
)

// QueryParams contains criteria to limit the results of List endpoints
type QueryParams struct {
	// filterKeys is a map of field name to filter text
	filterKeys map[string]string

	// searchText is text to search across one or more fields
	searchText string

	// pageSize sets the number of records returned in a single page. Minimum is 1, maximum is 50.
	pageSize int

	// page sets the pagination slice for the query
	page int
}

func (q QueryParams) PageSize() int {
	s := q.pageSize
	if s < 1 {
		s = defaultPageSize
	}
	if s > maxPageSize {
		s = maxPageSize
	}
	return s
}

func (q QueryParams) Page() int {
	p := q.page
	if p < 1 {
		p = 1
	}
	return p
}

func (q QueryParams) Filter(key string) string {
	return q.filterKeys[key]
}

func (q QueryParams) Search() string {
	return q.searchText
}

// NewQueryParams parses query string parameter values into valid query criteria.
//
// Example:
//   "search=fire&owner=<uuid>&page=2&page_size=20"
func NewQueryParams(values buffalo.ParamValues) QueryParams {
	q := QueryParams{pageSize: defaultPageSize, filterKeys: map[string]string{}}

	q.searchText = strings.TrimSpace(values.Get("search"))

	for _, key := range []string{FilterOwner, FilterAssessor, FilterRiskType, FilterEffectiveness, FilterStatus} {
		if v := strings.TrimSpace(values.Get(key)); v != "" {
			q.filterKeys[key] = v
		}
	}

	if size := values.Get("page_size"); size != "" {
		i, err := strconv.Atoi(strings.TrimSpace(size))
		if err == nil {
			q.pageSize = i
		}
	}

	if page := values.Get("page"); page != "" {
		i, err := strconv.Atoi(strings.TrimSpace(page))
		if err == nil {
			q.page = i
		}
	}

	return q
}

// ListQuery is the common part of a paginated list response body
type ListQuery struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// NewListQuery assembles the pagination envelope for a list response. The
// path is used to build next/previous page URLs.
func NewListQuery(path string, q QueryParams, totalEntries, totalPages int) ListQuery {
	l := ListQuery{Count: totalEntries}

	page := q.Page()
	if page < totalPages {
		l.Next = pageURL(path, q, page+1)
	}
	if page > 1 {
		l.Previous = pageURL(path, q, page-1)
	}
	return l
}

func pageURL(path string, q QueryParams, page int) *string {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(q.PageSize()))
	if q.searchText != "" {
		params.Set("search", q.searchText)
	}
	for k, v := range q.filterKeys {
		params.Set(k, v)
	}
	u := path + "?" + params.Encode()
	return &u
}
