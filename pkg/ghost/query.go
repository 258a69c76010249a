package ghost

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// QueryParams represents the filter and pagination options of a list
// request. The zero value requests the API defaults.
type QueryParams struct {
	// Limit is the page size. LimitAllPages takes precedence when set.
	Limit int
	// LimitAllPages requests the literal limit=all, i.e. everything in one
	// response.
	LimitAllPages bool
	Page          int
	Order         string
	// Filter maps field name to accepted values. Multiple values for one
	// field render as a bracketed group (tag:[a,b]); multiple fields are
	// joined with "+" (AND), the way the Ghost filter syntax expects.
	Filter  map[string][]string
	Include []string
	Fields  []string
	Formats []string
}

// NewQueryParams creates empty query parameters.
func NewQueryParams() *QueryParams {
	return &QueryParams{}
}

// WithLimit sets the page size.
func (q *QueryParams) WithLimit(limit int) *QueryParams {
	q.Limit = limit

	return q
}

// WithLimitAll requests every record in one response (limit=all).
func (q *QueryParams) WithLimitAll() *QueryParams {
	q.LimitAllPages = true

	return q
}

// WithPage sets the page number.
func (q *QueryParams) WithPage(page int) *QueryParams {
	q.Page = page

	return q
}

// WithOrder sets the ordering expression, e.g. "published_at desc".
func (q *QueryParams) WithOrder(order string) *QueryParams {
	q.Order = order

	return q
}

// WithFilter adds accepted values for one field.
func (q *QueryParams) WithFilter(field string, values ...string) *QueryParams {
	if q.Filter == nil {
		q.Filter = make(map[string][]string)
	}

	q.Filter[field] = append(q.Filter[field], values...)

	return q
}

// WithInclude adds related collections to embed in the response.
func (q *QueryParams) WithInclude(includes ...string) *QueryParams {
	q.Include = append(q.Include, includes...)

	return q
}

// WithFields restricts the returned columns.
func (q *QueryParams) WithFields(fields ...string) *QueryParams {
	q.Fields = append(q.Fields, fields...)

	return q
}

// WithFormats selects the body formats to return, e.g. "html", "mobiledoc".
func (q *QueryParams) WithFormats(formats ...string) *QueryParams {
	q.Formats = append(q.Formats, formats...)

	return q
}

// Clone returns a deep copy, used to re-issue a request with a different
// page cursor.
func (q *QueryParams) Clone() *QueryParams {
	if q == nil {
		return NewQueryParams()
	}

	out := &QueryParams{
		Limit:         q.Limit,
		LimitAllPages: q.LimitAllPages,
		Page:          q.Page,
		Order:         q.Order,
		Include:       append([]string(nil), q.Include...),
		Fields:        append([]string(nil), q.Fields...),
		Formats:       append([]string(nil), q.Formats...),
	}

	if q.Filter != nil {
		out.Filter = make(map[string][]string, len(q.Filter))
		for k, v := range q.Filter {
			out.Filter[k] = append([]string(nil), v...)
		}
	}

	return out
}

// ToValues renders the parameters as URL query values.
func (q *QueryParams) ToValues() url.Values {
	values := url.Values{}

	if q == nil {
		return values
	}

	switch {
	case q.LimitAllPages:
		values.Set("limit", "all")
	case q.Limit > 0:
		values.Set("limit", strconv.Itoa(q.Limit))
	}

	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}

	if q.Order != "" {
		values.Set("order", q.Order)
	}

	if expr := q.filterExpression(); expr != "" {
		values.Set("filter", expr)
	}

	if len(q.Include) > 0 {
		values.Set("include", strings.Join(q.Include, ","))
	}

	if len(q.Fields) > 0 {
		values.Set("fields", strings.Join(q.Fields, ","))
	}

	if len(q.Formats) > 0 {
		values.Set("formats", strings.Join(q.Formats, ","))
	}

	return values
}

// filterExpression renders the Filter map in Ghost's filter syntax:
// field:value, field:[v1,v2], terms joined with "+".
func (q *QueryParams) filterExpression() string {
	if len(q.Filter) == 0 {
		return ""
	}

	fields := make([]string, 0, len(q.Filter))
	for field := range q.Filter {
		fields = append(fields, field)
	}

	sort.Strings(fields)

	terms := make([]string, 0, len(fields))

	for _, field := range fields {
		values := q.Filter[field]

		switch len(values) {
		case 0:
			continue
		case 1:
			terms = append(terms, field+":"+values[0])
		default:
			terms = append(terms, field+":["+strings.Join(values, ",")+"]")
		}
	}

	return strings.Join(terms, "+")
}
