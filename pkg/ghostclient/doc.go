// Package ghostclient provides the primary entry point for constructing a
// Ghost API client that implements the ghost.Client interface.
//
// It layers configuration validation, HTTP transport, and admin token
// signing on top of the resource interfaces and types defined in the ghost
// package. Most applications should import ghostclient to build a client,
// then use the returned ghost.Client to access resource-specific clients,
// for example Posts(), Tags(), Members(), etc.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/ghost-client/pkg/ghost"
//	  "github.com/fivetwenty-io/ghost-client/pkg/ghostclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Admin API access: the key is "id:secret" from the Ghost admin UI.
//	  cli, err := ghostclient.New(&ghost.Config{
//	    SiteURL:  "https://blog.example.com",
//	    AdminKey: "64f1a...:7b22...",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Or read-only access through the content API:
//	  cli, err = ghostclient.New(&ghost.Config{
//	    SiteURL:    "https://blog.example.com",
//	    ContentKey: "22444f78447824223cefc48062",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Use resource clients via the ghost.Client interface
//	  posts, err := cli.Posts().Get(ctx, ghost.NewQueryParams().WithLimit(10))
//	  if err != nil { log.Fatal(err) }
//	  _ = posts
//	}
//
// # Versions
//
// Config.Version selects the Ghost API version ("v3", "v4", "v5"); the
// latest supported version is used when it is left empty. The version
// drives both the request paths and the audience claim of signed admin
// tokens.
//
// # Helpers
//
// The package also provides convenience constructors NewAdmin and
// NewContent that wrap New with the appropriate configuration.
package ghostclient
