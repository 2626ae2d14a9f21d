package domain

// Canonical architecture names used in target triples.
const (
	ArchX86_64  = "x86_64"
	ArchAarch64 = "aarch64"
	ArchARM     = "arm"
)

// Canonical OS variants used in target triples.
const (
	OSDarwin    = "apple-darwin"
	OSLinuxGNU  = "unknown-linux-gnu"
	OSLinuxMusl = "unknown-linux-musl"
	OSWindows   = "pc-windows-msvc"
)

// Target identifies which prebuilt native library matches the running process.
type Target struct {
	// Arch is the canonical CPU architecture (x86_64, aarch64, arm).
	Arch string

	// OSVariant encodes the OS and, on Linux, the libc flavour.
	OSVariant string
}

// String renders the target as a triple, e.g. "x86_64-unknown-linux-gnu".
func (t Target) String() string {
	return t.Arch + "-" + t.OSVariant
}

// PlatformReport summarises how the native library resolves on this host.
type PlatformReport struct {
	Target          string `json:"target"`
	TargetError     string `json:"targetError,omitempty"`
	PackageName     string `json:"packageName,omitempty"`
	LibraryFilename string `json:"libraryFilename"`
	BinaryPath      string `json:"binaryPath,omitempty"`
	Available       bool   `json:"available"`
}
