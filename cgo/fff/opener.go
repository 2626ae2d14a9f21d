package fff

import "github.com/ff-labs/fff-go/internal/core/ports/driven"

// Verify interface compliance.
var (
	_ driven.NativeLibrary = (*Library)(nil)
	_ driven.LibraryOpener = Opener
)

// Opener adapts Open to driven.LibraryOpener.
func Opener(path string) (driven.NativeLibrary, error) {
	lib, err := Open(path)
	if err != nil {
		return nil, err
	}
	return lib, nil
}
