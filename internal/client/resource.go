package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/ghost-client/internal/http"
	"github.com/fivetwenty-io/ghost-client/pkg/ghost"
)

// ResourceClient implements ghost.Resource for one named collection. The
// descriptor and the client's credential set decide which operations are
// permitted; everything else is the same GET/POST/PUT/DELETE plumbing.
type ResourceClient struct {
	client     *Client
	descriptor ghost.Descriptor
}

// NewResourceClient creates a resource accessor for one descriptor.
func NewResourceClient(client *Client, descriptor ghost.Descriptor) *ResourceClient {
	return &ResourceClient{
		client:     client,
		descriptor: descriptor,
	}
}

// Descriptor implements ghost.Resource.Descriptor.
func (r *ResourceClient) Descriptor() ghost.Descriptor {
	return r.descriptor
}

// ReadOnly implements ghost.Resource.ReadOnly.
func (r *ResourceClient) ReadOnly() bool {
	if !r.client.hasAdminKey {
		return true
	}

	for _, op := range []ghost.Operation{ghost.OpCreate, ghost.OpUpdate, ghost.OpDelete} {
		if r.descriptor.Allows(op) {
			return false
		}
	}

	return true
}

// Get implements ghost.Resource.Get.
func (r *ResourceClient) Get(ctx context.Context, params *ghost.QueryParams) (*ghost.ResultSet, error) {
	mode, err := r.checkOp(ghost.OpRead)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.httpClient.Get(ctx, r.collectionPath(mode), r.listValues(params), mode)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", r.descriptor.Name, err)
	}

	records, meta, err := r.decodeEnvelope(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s list response: %w", r.descriptor.Name, err)
	}

	return ghost.NewResultSet(records, r, meta.Pagination, params), nil
}

// GetByID implements ghost.Resource.GetByID.
func (r *ResourceClient) GetByID(ctx context.Context, id string) (*ghost.Result, error) {
	mode, err := r.checkOp(ghost.OpRead)
	if err != nil {
		return nil, err
	}

	path := r.collectionPath(mode) + id + "/"

	resp, err := r.client.httpClient.Get(ctx, path, nil, mode)
	if err != nil {
		return nil, fmt.Errorf("getting %s %q: %w", r.descriptor.Name, id, err)
	}

	record, err := r.decodeOne(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", r.descriptor.Name, err)
	}

	return ghost.NewResult(record, r), nil
}

// GetBySlug implements ghost.Resource.GetBySlug.
func (r *ResourceClient) GetBySlug(ctx context.Context, slug string) (*ghost.Result, error) {
	mode, err := r.checkOp(ghost.OpRead)
	if err != nil {
		return nil, err
	}

	path := r.collectionPath(mode) + "slug/" + slug + "/"

	resp, err := r.client.httpClient.Get(ctx, path, nil, mode)
	if err != nil {
		return nil, fmt.Errorf("getting %s by slug %q: %w", r.descriptor.Name, slug, err)
	}

	record, err := r.decodeOne(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", r.descriptor.Name, err)
	}

	return ghost.NewResult(record, r), nil
}

// Create implements ghost.Resource.Create. Records are created one request
// each, in order; a failure aborts the remainder but the records created so
// far are still returned alongside the error.
func (r *ResourceClient) Create(ctx context.Context, records ...ghost.Record) ([]ghost.Record, error) {
	mode, err := r.checkOp(ghost.OpCreate)
	if err != nil {
		return nil, err
	}

	created := make([]ghost.Record, 0, len(records))

	for _, record := range records {
		var query url.Values

		// Ghost stores mobiledoc natively; an html body must be declared so
		// the server converts it instead of dropping it.
		if record.Has("html") {
			query = url.Values{"source": []string{"html"}}
		}

		body := map[string][]ghost.Record{r.descriptor.Name: {record}}

		resp, err := r.client.httpClient.Post(ctx, r.collectionPath(mode), body, query, mode)
		if err != nil {
			return created, fmt.Errorf("creating %s: %w", r.descriptor.Name, err)
		}

		stored, err := r.decodeOne(resp.Body)
		if err != nil {
			return created, fmt.Errorf("parsing %s response: %w", r.descriptor.Name, err)
		}

		created = append(created, stored)
	}

	return created, nil
}

// Update implements ghost.Resource.Update. The API rejects updates without
// the record's current updated_at, so it is fetched first when the caller
// did not supply one.
func (r *ResourceClient) Update(ctx context.Context, id string, fields ghost.Record) (ghost.Record, error) {
	mode, err := r.checkOp(ghost.OpUpdate)
	if err != nil {
		return nil, err
	}

	fields = fields.Clone()

	if !fields.Has("updated_at") {
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if v := current.Record()["updated_at"]; v != nil {
			fields["updated_at"] = v
		}
	}

	path := r.collectionPath(mode) + id + "/"
	body := map[string][]ghost.Record{r.descriptor.Name: {fields}}

	resp, err := r.client.httpClient.Put(ctx, path, body, nil, mode)
	if err != nil {
		return nil, fmt.Errorf("updating %s %q: %w", r.descriptor.Name, id, err)
	}

	record, err := r.decodeOne(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", r.descriptor.Name, err)
	}

	return record, nil
}

// Delete implements ghost.Resource.Delete.
func (r *ResourceClient) Delete(ctx context.Context, id string) error {
	mode, err := r.checkOp(ghost.OpDelete)
	if err != nil {
		return err
	}

	path := r.collectionPath(mode) + id + "/"

	_, err = r.client.httpClient.Delete(ctx, path, mode)
	if err != nil {
		return fmt.Errorf("deleting %s %q: %w", r.descriptor.Name, id, err)
	}

	return nil
}

// Paginate implements ghost.Resource.Paginate.
func (r *ResourceClient) Paginate(ctx context.Context, params *ghost.QueryParams) *ghost.Iterator {
	return ghost.NewIterator(ctx, r, params)
}

// listValues renders the list query. Posts and pages return both body
// formats unless the caller chose their own, and a narrowed field set must
// still carry the keys later updates depend on.
func (r *ResourceClient) listValues(params *ghost.QueryParams) url.Values {
	params = params.Clone()

	if len(params.Formats) == 0 && (r.descriptor.Name == "posts" || r.descriptor.Name == "pages") {
		params.Formats = []string{"html", "mobiledoc"}
	}

	if len(params.Fields) > 0 {
		params.Fields = ensureFields(params.Fields, "id", "updated_at")
	}

	return params.ToValues()
}

func ensureFields(fields []string, required ...string) []string {
	for _, want := range required {
		found := false

		for _, f := range fields {
			if f == want {
				found = true

				break
			}
		}

		if !found {
			fields = append(fields, want)
		}
	}

	return fields
}

// checkOp gates an operation before any network I/O and resolves the API
// surface it will use.
func (r *ResourceClient) checkOp(op ghost.Operation) (http.AuthMode, error) {
	if !r.descriptor.Allows(op) {
		return http.AuthNone, &ghost.CapabilityError{
			Resource: r.descriptor.Name,
			Op:       op,
			Reason:   "the resource does not support it",
		}
	}

	mode := r.authMode()

	if mode == http.AuthNone {
		reason := "the client holds no admin key"
		if r.descriptor.Surface == ghost.SurfaceContent {
			reason = "the client holds no content key"
		}

		return http.AuthNone, &ghost.CapabilityError{
			Resource: r.descriptor.Name,
			Op:       op,
			Reason:   reason,
		}
	}

	if op != ghost.OpRead && mode != http.AuthAdmin {
		return http.AuthNone, &ghost.CapabilityError{
			Resource: r.descriptor.Name,
			Op:       op,
			Reason:   "the client holds no admin key",
		}
	}

	return mode, nil
}

// authMode resolves which API surface serves this resource for this client.
// Resources reachable through both surfaces prefer admin when an admin key
// is held.
func (r *ResourceClient) authMode() http.AuthMode {
	switch r.descriptor.Surface {
	case ghost.SurfaceAdmin:
		if r.client.hasAdminKey {
			return http.AuthAdmin
		}

		return http.AuthNone
	case ghost.SurfaceContent:
		if r.client.hasContentKey {
			return http.AuthContent
		}

		return http.AuthNone
	default:
		if r.client.hasAdminKey {
			return http.AuthAdmin
		}

		if r.client.hasContentKey {
			return http.AuthContent
		}

		return http.AuthNone
	}
}

// collectionPath builds the versioned collection path with the trailing
// slash the Ghost router requires.
func (r *ResourceClient) collectionPath(mode http.AuthMode) string {
	surface := "content"
	if mode == http.AuthAdmin {
		surface = "admin"
	}

	return fmt.Sprintf("%s/%s/%s/", r.client.version.BasePath(), surface, r.descriptor.Path)
}

// decodeEnvelope unpacks the collection envelope, e.g.
// {"posts": [...], "meta": {"pagination": {...}}}.
func (r *ResourceClient) decodeEnvelope(body []byte) ([]ghost.Record, ghost.Meta, error) {
	var envelope map[string]json.RawMessage

	err := json.Unmarshal(body, &envelope)
	if err != nil {
		return nil, ghost.Meta{}, fmt.Errorf("decoding envelope: %w", err)
	}

	var records []ghost.Record

	if raw, ok := envelope[r.descriptor.Name]; ok {
		err = json.Unmarshal(raw, &records)
		if err != nil {
			return nil, ghost.Meta{}, fmt.Errorf("decoding %s entries: %w", r.descriptor.Name, err)
		}
	}

	var meta ghost.Meta

	if raw, ok := envelope["meta"]; ok {
		err = json.Unmarshal(raw, &meta)
		if err != nil {
			return nil, ghost.Meta{}, fmt.Errorf("decoding meta: %w", err)
		}
	}

	return records, meta, nil
}

// decodeOne unpacks a single-record envelope.
func (r *ResourceClient) decodeOne(body []byte) (ghost.Record, error) {
	records, _, err := r.decodeEnvelope(body)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, ghost.ErrEmptyResponse
	}

	return records[0], nil
}
