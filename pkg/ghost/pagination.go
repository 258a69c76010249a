package ghost

import "context"

// defaultPageSize is used by Paginate when the caller sets no limit.
const defaultPageSize = 25

// Iterator walks every record of a resource page by page. The next page is
// fetched only when the current one is exhausted; nothing is prefetched.
// An Iterator is not restartable mid-iteration; call Paginate again to
// start over from page 1.
type Iterator struct {
	ctx      context.Context
	resource Resource
	params   *QueryParams

	page int
	buf  []*Result
	idx  int
	done bool
}

// NewIterator creates an iterator over the resource, beginning at page 1.
func NewIterator(ctx context.Context, resource Resource, params *QueryParams) *Iterator {
	params = params.Clone()
	if params.Limit <= 0 {
		params.Limit = defaultPageSize
	}

	// Unlimited iteration is the iterator's job, not the server's.
	params.LimitAllPages = false

	return &Iterator{
		ctx:      ctx,
		resource: resource,
		params:   params,
		page:     1,
	}
}

// HasNext reports whether another record may be available. Before the first
// fetch it is optimistic; after a fetch it reflects the server's cursor.
func (it *Iterator) HasNext() bool {
	if it.idx < len(it.buf) {
		return true
	}

	return !it.done
}

// Next returns the next record, fetching the following page if the current
// one is exhausted. It returns ErrNoMoreItems when iteration is complete.
func (it *Iterator) Next() (*Result, error) {
	for it.idx >= len(it.buf) {
		if it.done {
			return nil, ErrNoMoreItems
		}

		err := it.fetch()
		if err != nil {
			return nil, err
		}
	}

	result := it.buf[it.idx]
	it.idx++

	return result, nil
}

// All drains the iterator into a slice.
func (it *Iterator) All() ([]*Result, error) {
	var out []*Result

	for {
		result, err := it.Next()
		if err == ErrNoMoreItems {
			return out, nil
		}

		if err != nil {
			return out, err
		}

		out = append(out, result)
	}
}

func (it *Iterator) fetch() error {
	params := it.params.Clone()
	params.Page = it.page

	set, err := it.resource.Get(it.ctx, params)
	if err != nil {
		return err
	}

	it.buf = set.results
	it.idx = 0
	it.page++

	if set.pagination.Next == nil || set.Len() == 0 {
		it.done = true
	}

	return nil
}
