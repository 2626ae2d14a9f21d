// Package cgo provides CGO bindings for native libraries.
// This package isolates all CGO code from the pure Go core.
//
// Sub-packages:
//   - fff: runtime-loaded bindings for the fff_c search engine
package cgo
