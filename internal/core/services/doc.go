// Package services implements the driving port interfaces.
// Services contain the core logic and orchestrate calls to driven ports
// (adapters):
//
//   - FileFinder: engine lifecycle, state guards and reply decoding
//   - Session: prompt completion on top of a FileFinder
//   - SettingsService: defaults, config file and environment
//   - PlatformService: native library resolution report
//   - GrepPager: live grep paging with stored cursor tokens
//
// Services are pure Go with no CGO or external dependencies.
package services
