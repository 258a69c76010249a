package ghost

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Result wraps one record together with the Resource it came from, so the
// record can be updated or deleted through the Result itself.
type Result struct {
	record   Record
	resource Resource
	stale    bool
}

// NewResult binds a record to its originating resource.
func NewResult(record Record, resource Resource) *Result {
	return &Result{record: record, resource: resource}
}

// ID returns the record's identifier.
func (r *Result) ID() string { return r.record.ID() }

// Slug returns the record's URL slug.
func (r *Result) Slug() string { return r.record.Slug() }

// Record returns the raw field mapping.
func (r *Result) Record() Record { return r.record }

// Get returns one raw field value.
func (r *Result) Get(key string) any { return r.record[key] }

// Decode unmarshals the record into a typed view.
func (r *Result) Decode(into any) error { return r.record.Decode(into) }

// Resource returns the resource this result belongs to.
func (r *Result) Resource() Resource { return r.resource }

// Update applies the field changes to the server copy through the owning
// resource and refreshes the wrapped record with the response.
func (r *Result) Update(ctx context.Context, fields Record) (Record, error) {
	if r.stale {
		return nil, fmt.Errorf("updating %q: %w", r.ID(), ErrStaleResult)
	}

	updated, err := r.resource.Update(ctx, r.ID(), fields)
	if err != nil {
		return nil, err
	}

	r.record = updated

	return updated, nil
}

// Delete removes the server copy. The Result is stale afterwards: further
// operations fail with ErrStaleResult without network I/O.
func (r *Result) Delete(ctx context.Context) error {
	if r.stale {
		return fmt.Errorf("deleting %q: %w", r.ID(), ErrStaleResult)
	}

	err := r.resource.Delete(ctx, r.ID())
	if err != nil {
		return err
	}

	r.stale = true

	return nil
}

// Outcome is the per-member result of a bulk operation over a ResultSet.
type Outcome struct {
	ID     string
	Record Record
	Err    error
}

// OK reports whether the member's operation succeeded.
func (o Outcome) OK() bool { return o.Err == nil }

// Outcomes collects per-member outcomes of a bulk operation. Bulk
// operations never abort on an individual failure; callers inspect the
// aggregate through Err.
type Outcomes []Outcome

// Err aggregates the per-member failures, or nil when all succeeded.
func (os Outcomes) Err() error {
	var result *multierror.Error

	for _, o := range os {
		if o.Err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", o.ID, o.Err))
		}
	}

	return result.ErrorOrNil()
}

// AllOK reports whether every member succeeded.
func (os Outcomes) AllOK() bool {
	for _, o := range os {
		if o.Err != nil {
			return false
		}
	}

	return true
}

// ResultSet is one page of results plus its pagination cursor and a
// back-reference to the Resource that produced it.
type ResultSet struct {
	results    []*Result
	resource   Resource
	pagination Pagination
	params     *QueryParams
}

// NewResultSet wraps a page of records. params is the request that produced
// the page; Next re-issues it with the following page cursor.
func NewResultSet(records []Record, resource Resource, pagination Pagination, params *QueryParams) *ResultSet {
	results := make([]*Result, 0, len(records))
	for _, record := range records {
		results = append(results, NewResult(record, resource))
	}

	return &ResultSet{
		results:    results,
		resource:   resource,
		pagination: pagination,
		params:     params.Clone(),
	}
}

// Len returns the number of results in this page.
func (rs *ResultSet) Len() int { return len(rs.results) }

// At returns the result at the given position.
func (rs *ResultSet) At(i int) *Result { return rs.results[i] }

// Results returns the ordered results of this page.
func (rs *ResultSet) Results() []*Result {
	return append([]*Result(nil), rs.results...)
}

// Records returns the raw records of this page.
func (rs *ResultSet) Records() []Record {
	out := make([]Record, 0, len(rs.results))
	for _, r := range rs.results {
		out = append(out, r.record)
	}

	return out
}

// IDs returns the identifiers of this page, in order.
func (rs *ResultSet) IDs() []string {
	out := make([]string, 0, len(rs.results))
	for _, r := range rs.results {
		out = append(out, r.ID())
	}

	return out
}

// Resource returns the resource this set belongs to.
func (rs *ResultSet) Resource() Resource { return rs.resource }

// Pagination returns the cursor state of this page.
func (rs *ResultSet) Pagination() Pagination { return rs.pagination }

// Next fetches the subsequent page with the same parameters. When the
// server reported no further pages, it returns an empty terminal set
// without issuing a request.
func (rs *ResultSet) Next(ctx context.Context) (*ResultSet, error) {
	if rs.pagination.Next == nil {
		return &ResultSet{resource: rs.resource, params: rs.params.Clone()}, nil
	}

	params := rs.params.Clone()
	params.Page = *rs.pagination.Next

	// Pin the page size the server echoed so the cursor stays consistent.
	if rs.pagination.Limit > 0 {
		params.Limit = int(rs.pagination.Limit)
		params.LimitAllPages = false
	}

	return rs.resource.Get(ctx, params)
}

// Union combines two result sets of the same resource into a new set whose
// members are the deduplicated (by identifier) concatenation, preserving
// first-seen order. Sets of different resources are incompatible. When the
// two sets' resources differ in capability, the union adopts the more
// restrictive one so bulk mutations cannot widen permissions.
func (rs *ResultSet) Union(other *ResultSet) (*ResultSet, error) {
	a, b := rs.resource.Descriptor(), other.resource.Descriptor()
	if a.Name != b.Name {
		return nil, fmt.Errorf("%w: %q and %q", ErrResourceMismatch, a.Name, b.Name)
	}

	resource := rs.resource
	if other.resource.ReadOnly() && !rs.resource.ReadOnly() {
		resource = other.resource
	}

	seen := make(map[string]struct{}, len(rs.results)+len(other.results))
	combined := make([]*Result, 0, len(rs.results)+len(other.results))

	for _, r := range append(rs.Results(), other.Results()...) {
		id := r.ID()
		if _, dup := seen[id]; dup {
			continue
		}

		seen[id] = struct{}{}
		combined = append(combined, NewResult(r.record, resource))
	}

	// The combined set has no pagination cursor; Next on it is terminal.
	return &ResultSet{
		results:  combined,
		resource: resource,
		params:   rs.params.Clone(),
	}, nil
}

// Update applies the same field changes to every member, one request per
// member, collecting a per-member outcome instead of aborting on failure.
func (rs *ResultSet) Update(ctx context.Context, fields Record) Outcomes {
	outcomes := make(Outcomes, 0, len(rs.results))

	for _, r := range rs.results {
		updated, err := r.Update(ctx, fields.Clone())
		outcomes = append(outcomes, Outcome{ID: r.ID(), Record: updated, Err: err})
	}

	return outcomes
}

// Delete removes every member, collecting a per-member outcome instead of
// aborting on failure.
func (rs *ResultSet) Delete(ctx context.Context) Outcomes {
	outcomes := make(Outcomes, 0, len(rs.results))

	for _, r := range rs.results {
		err := r.Delete(ctx)
		outcomes = append(outcomes, Outcome{ID: r.ID(), Err: err})
	}

	return outcomes
}
