// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Engine: Typed access to the native fff engine (the FFI bridge)
//   - NativeLibrary: A loaded fff_c module (raw C entry points)
//   - PlatformResolver: Target triple and library naming for this host
//   - BinaryLocator: Finds the prebuilt library on disk
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - CursorStore: Grep cursor persistence. Without it, paged grep is only
//     available in-process through GrepResult.NextCursor.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or cgo package
package driven
