package helper

import (
	"html/template"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Options membatasi ukuran halaman per daftar.
type Options struct {
	DefaultPerPage int
	MaxPerPage     int
}

var (
	DefaultOpts = Options{DefaultPerPage: 25, MaxPerPage: 200}
	AdminOpts   = Options{DefaultPerPage: 50, MaxPerPage: 500}
)

// Params hasil ParseFiber. SortOrder selalu "asc" atau "desc".
type Params struct {
	Page      int
	PerPage   int
	SortBy    string
	SortOrder string
}

func atoiDefault(s string, def int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return n
	}
	return def
}

func normOrder(s string) (string, bool) {
	switch o := strings.ToLower(strings.TrimSpace(s)); o {
	case "asc", "desc":
		return o, true
	}
	return "", false
}

// ParseFiber membaca ?page, ?per_page (atau ?limit), ?sort_by, ?order (atau ?sort).
func ParseFiber(c *fiber.Ctx, defaultSortBy, defaultSortOrder string, opt Options) Params {
	p := Params{
		Page:    max(atoiDefault(c.Query("page"), 1), 1),
		PerPage: atoiDefault(c.Query("per_page", c.Query("limit")), opt.DefaultPerPage),
		SortBy:  strings.TrimSpace(c.Query("sort_by", defaultSortBy)),
	}
	if p.PerPage < 1 {
		p.PerPage = opt.DefaultPerPage
	}
	if opt.MaxPerPage > 0 {
		p.PerPage = min(p.PerPage, opt.MaxPerPage)
	}

	var ok bool
	if p.SortOrder, ok = normOrder(c.Query("order", c.Query("sort"))); !ok {
		if p.SortOrder, ok = normOrder(defaultSortOrder); !ok {
			p.SortOrder = "desc"
		}
	}
	return p
}

func (p Params) Limit() int  { return p.PerPage }
func (p Params) Offset() int { return (p.Page - 1) * p.PerPage }

// OrderClause: kolom dari whitelist, aman dipakai di .Order().
func (p Params) OrderClause(allowed map[string]string, defaultKey string) string {
	col, ok := allowed[p.SortBy]
	if !ok {
		col = allowed[defaultKey]
	}
	dir := "DESC"
	if p.SortOrder == "asc" {
		dir = "ASC"
	}
	return col + " " + dir
}

// Meta dipakai partial pager dan respons /api.
type Meta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
	NextPage   int   `json:"next_page,omitempty"`
	PrevPage   int   `json:"prev_page,omitempty"`

	BaseQuery string `json:"-"` // query tanpa page
}

func BuildMeta(total int64, p Params) Meta {
	m := Meta{Page: p.Page, PerPage: p.PerPage, Total: total}
	if total > 0 && p.PerPage > 0 {
		m.TotalPages = int(math.Ceil(float64(total) / float64(p.PerPage)))
	}
	if m.HasPrev = p.Page > 1; m.HasPrev {
		m.PrevPage = p.Page - 1
	}
	if m.HasNext = p.Page < m.TotalPages; m.HasNext {
		m.NextPage = p.Page + 1
	}
	return m
}

// BuildMetaFor = BuildMeta + BaseQuery dari request (tanpa "page").
func BuildMetaFor(c *fiber.Ctx, total int64, p Params) Meta {
	m := BuildMeta(total, p)
	q := url.Values{}
	c.Request().URI().QueryArgs().VisitAll(func(k, v []byte) {
		if string(k) != "page" {
			q.Add(string(k), string(v))
		}
	})
	m.BaseQuery = q.Encode()
	return m
}

// Link URL pager untuk halaman n, filter lain dipertahankan.
func (m Meta) Link(n int) template.URL {
	q := "page=" + strconv.Itoa(n)
	if m.BaseQuery != "" {
		q = m.BaseQuery + "&" + q
	}
	return template.URL("?" + q)
}
