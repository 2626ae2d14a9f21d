// Package domain defines the core types shared by the fff client.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - InitOptions, SearchOptions, GrepOptions: host-facing engine options
//   - InitRequest, SearchRequest, GrepRequest: their wire records
//   - SearchResult, GrepResult, HealthCheck: decoded engine replies
//   - GrepCursor: opaque resume position for paged grep
//   - Payload: the tagged data of a successful native reply
//   - Target: the platform triple used to pick a prebuilt library
//
// # Field Naming
//
// The native engine speaks snake_case; host types use camelCase.
// RewriteKeys with SnakeToCamel converts reply trees, and each option type
// has a ToWire method producing its snake_case record.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
