package delivery_http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"yatube-api/internal/model"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100

	pageSizeParam   = "limit"
	pageNumberParam = "offset"
)

// pageParams describes the paging state of a list request. Paging only
// activates when the client sends the limit or offset query parameter;
// a bare request returns the full result set with no envelope.
//
// offset is a 1-based page number, not a row offset, and limit is the
// page size, clamped to maxPageSize.
type pageParams struct {
	paged bool
	size  int
	page  int
}

func parsePageParams(r *http.Request) (pageParams, error) {
	q := r.URL.Query()

	p := pageParams{size: defaultPageSize, page: 1}

	if raw := q.Get(pageSizeParam); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			return pageParams{}, fmt.Errorf("invalid %s parameter %q", pageSizeParam, raw)
		}
		if size > maxPageSize {
			size = maxPageSize
		}
		p.paged = true
		p.size = size
	}

	if raw := q.Get(pageNumberParam); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return pageParams{}, fmt.Errorf("invalid %s parameter %q", pageNumberParam, raw)
		}
		p.paged = true
		p.page = page
	}

	return p, nil
}

// filters converts the page window to row-level limit/offset. An
// unpaged request places no bounds on the listing.
func (p pageParams) filters() *model.ListFilters {
	if !p.paged {
		return &model.ListFilters{}
	}
	limit := p.size
	offset := (p.page - 1) * p.size
	return &model.ListFilters{Limit: &limit, Offset: &offset}
}

// pageEnvelope is the paginated list body: the unfiltered total, links
// to the neighbouring pages, and the current window.
type pageEnvelope struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

func newPageEnvelope(r *http.Request, p pageParams, count int, results interface{}) pageEnvelope {
	env := pageEnvelope{Count: count, Results: results}

	if p.page*p.size < count {
		next := pageURL(r, p, p.page+1)
		env.Next = &next
	}
	if p.page > 1 {
		prev := pageURL(r, p, p.page-1)
		env.Previous = &prev
	}
	return env
}

func pageURL(r *http.Request, p pageParams, page int) string {
	u := *r.URL
	q := u.Query()
	q.Set(pageNumberParam, strconv.Itoa(page))
	if p.size != defaultPageSize || q.Get(pageSizeParam) != "" {
		q.Set(pageSizeParam, strconv.Itoa(p.size))
	}
	u.RawQuery = q.Encode()
	return absoluteURL(r, &u)
}

func absoluteURL(r *http.Request, u *url.URL) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if u.Host == "" {
		u.Host = r.Host
	}
	u.Scheme = scheme
	return u.String()
}
