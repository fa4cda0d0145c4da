package app

import (
	"net/url"
	"strconv"
	"strings"

	"rssmerge/domain"
)

const DefaultPageParam = "paged"

// QueryPaginator matches sources by host and selects a page with a query
// parameter, as in WordPress' "?paged=N".
type QueryPaginator struct {
	// Hosts are matched exactly or as a parent domain: "wordpress.com"
	// matches "blog.wordpress.com".
	Hosts []string
	Param string
}

func NewQueryPaginator(hosts []string, param string) *QueryPaginator {
	if param == "" {
		param = DefaultPageParam
	}
	normalized := make([]string, 0, len(hosts))
	for _, h := range hosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			normalized = append(normalized, h)
		}
	}
	return &QueryPaginator{Hosts: normalized, Param: param}
}

func (p *QueryPaginator) Match(source domain.Source) bool {
	u, err := url.Parse(string(source))
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range p.Hosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

func (p *QueryPaginator) PageURL(source domain.Source, page int) string {
	u, err := url.Parse(string(source))
	if err != nil {
		return string(source)
	}
	q := u.Query()
	q.Set(p.Param, strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}
