// Package ghost defines the public surface of the Ghost API client: the
// Client and Resource interfaces, the resource descriptor catalog, query
// parameters, the Result/ResultSet collection types, pagination, and the
// error taxonomy.
//
// Construct a client with the ghostclient package, then work through
// resource accessors:
//
//	cli, err := ghostclient.New(&ghost.Config{
//	    SiteURL:    "https://blog.example.com",
//	    AdminKey:   "64f1...:a1b2c3...",
//	    ContentKey: "d4e5f6...",
//	})
//	if err != nil { log.Fatal(err) }
//
//	posts, err := cli.Posts().Get(ctx, ghost.NewQueryParams().WithLimit(10))
//	if err != nil { log.Fatal(err) }
//
//	for _, p := range posts.Results() {
//	    fmt.Println(p.Slug())
//	}
//
// # Results and result sets
//
// A Result wraps one record with enough context to mutate it:
// Result.Update and Result.Delete go back through the originating
// Resource. A ResultSet is one page of results plus its pagination cursor;
// ResultSet.Next fetches the following page, and two sets of the same
// resource combine with Union (deduplicated by identifier, first-seen
// order). Bulk Update/Delete over a set collect per-member Outcomes and
// never abort on an individual failure.
//
// # Errors
//
// Operations that a resource or client does not permit fail with a
// CapabilityError before any network I/O. Remote errors surface as
// *APIError (or the NotFoundError/ValidationError refinements), rejected
// credentials as *AuthenticationError after exactly one silent
// re-sign-and-retry, and network-level failures as *TransportError. The
// Is* predicate helpers classify errors without type assertions.
package ghost
