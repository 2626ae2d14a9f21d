//go:build cgo

package fff

/*
#cgo linux LDFLAGS: -ldl

#include <stdbool.h>
#include <stdint.h>
#include <stdlib.h>

#ifdef _WIN32
#include <windows.h>
static void* fff_dlopen(const char* path) { return (void*)LoadLibraryA(path); }
static void* fff_dlsym(void* h, const char* name) { return (void*)GetProcAddress((HMODULE)h, name); }
static const char* fff_dlerror(void) { return "LoadLibraryA failed"; }
#else
#include <dlfcn.h>
static void* fff_dlopen(const char* path) { return dlopen(path, RTLD_NOW | RTLD_LOCAL); }
static void* fff_dlsym(void* h, const char* name) { return dlsym(h, name); }
static const char* fff_dlerror(void) {
	const char* e = dlerror();
	return e ? e : "unknown dlopen error";
}
#endif

typedef struct FffResult {
	bool success;
	char* data;
	char* error;
} FffResult;

typedef FffResult* (*fff_fn_void)(void);
typedef FffResult* (*fff_fn_str)(const char*);
typedef FffResult* (*fff_fn_str2)(const char*, const char*);
typedef FffResult* (*fff_fn_u64)(uint64_t);
typedef bool (*fff_fn_bool)(void);
typedef void (*fff_fn_free)(FffResult*);

static FffResult* call_void(void* fn) { return ((fff_fn_void)fn)(); }
static FffResult* call_str(void* fn, const char* a) { return ((fff_fn_str)fn)(a); }
static FffResult* call_str2(void* fn, const char* a, const char* b) { return ((fff_fn_str2)fn)(a, b); }
static FffResult* call_u64(void* fn, uint64_t n) { return ((fff_fn_u64)fn)(n); }
static bool call_bool(void* fn) { return ((fff_fn_bool)fn)(); }
static void call_free(void* fn, FffResult* r) { ((fff_fn_free)fn)(r); }
*/
import "C"

import (
	"fmt"
	"unicode/utf8"
	"unsafe"

	"github.com/ff-labs/fff-go/internal/core/domain"
	"github.com/ff-labs/fff-go/internal/core/ports/driven"
)

// Library is an fff_c module opened at runtime.
// The module is never unloaded.
type Library struct {
	path   string
	handle unsafe.Pointer

	init             unsafe.Pointer
	destroy          unsafe.Pointer
	search           unsafe.Pointer
	liveGrep         unsafe.Pointer
	scanFiles        unsafe.Pointer
	isScanning       unsafe.Pointer
	scanProgress     unsafe.Pointer
	waitForScan      unsafe.Pointer
	restartIndex     unsafe.Pointer
	trackAccess      unsafe.Pointer
	refreshGitStatus unsafe.Pointer
	trackQuery       unsafe.Pointer
	historicalQuery  unsafe.Pointer
	healthCheck      unsafe.Pointer
	freeResult       unsafe.Pointer
}

// Open loads the library at path and binds its entry points.
// fff_live_grep is optional; every other entry point is required.
func Open(path string) (*Library, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	handle := C.fff_dlopen(cpath)
	if handle == nil {
		return nil, fmt.Errorf("%w: %s: %s", domain.ErrLoadFailure, path, C.GoString(C.fff_dlerror()))
	}

	lib := &Library{path: path, handle: handle}

	required := []struct {
		name string
		dst  *unsafe.Pointer
	}{
		{"fff_init", &lib.init},
		{"fff_destroy", &lib.destroy},
		{"fff_search", &lib.search},
		{"fff_scan_files", &lib.scanFiles},
		{"fff_is_scanning", &lib.isScanning},
		{"fff_get_scan_progress", &lib.scanProgress},
		{"fff_wait_for_scan", &lib.waitForScan},
		{"fff_restart_index", &lib.restartIndex},
		{"fff_track_access", &lib.trackAccess},
		{"fff_refresh_git_status", &lib.refreshGitStatus},
		{"fff_track_query", &lib.trackQuery},
		{"fff_get_historical_query", &lib.historicalQuery},
		{"fff_health_check", &lib.healthCheck},
		{"fff_free_result", &lib.freeResult},
	}
	for _, sym := range required {
		p := lookup(handle, sym.name)
		if p == nil {
			return nil, fmt.Errorf("%w: %s: missing symbol %s", domain.ErrLoadFailure, path, sym.name)
		}
		*sym.dst = p
	}

	lib.liveGrep = lookup(handle, "fff_live_grep")

	return lib, nil
}

func lookup(handle unsafe.Pointer, name string) unsafe.Pointer {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return C.fff_dlsym(handle, cname)
}

// Path returns the file the library was loaded from.
func (l *Library) Path() string {
	return l.path
}

// HasLiveGrep reports whether fff_live_grep was exported.
func (l *Library) HasLiveGrep() bool {
	return l.liveGrep != nil
}

func (l *Library) Init(optsJSON string) driven.ResultHandle {
	return l.callStr(l.init, optsJSON)
}

func (l *Library) Destroy() driven.ResultHandle {
	return toHandle(C.call_void(l.destroy))
}

func (l *Library) Search(query, optsJSON string) driven.ResultHandle {
	return l.callStr2(l.search, query, optsJSON)
}

func (l *Library) LiveGrep(query, optsJSON string) driven.ResultHandle {
	if l.liveGrep == nil {
		return driven.NilResult
	}
	return l.callStr2(l.liveGrep, query, optsJSON)
}

func (l *Library) ScanFiles() driven.ResultHandle {
	return toHandle(C.call_void(l.scanFiles))
}

func (l *Library) IsScanning() bool {
	return bool(C.call_bool(l.isScanning))
}

func (l *Library) ScanProgress() driven.ResultHandle {
	return toHandle(C.call_void(l.scanProgress))
}

func (l *Library) WaitForScan(timeoutMs uint64) driven.ResultHandle {
	return toHandle(C.call_u64(l.waitForScan, C.uint64_t(timeoutMs)))
}

func (l *Library) RestartIndex(newPath string) driven.ResultHandle {
	return l.callStr(l.restartIndex, newPath)
}

func (l *Library) TrackAccess(path string) driven.ResultHandle {
	return l.callStr(l.trackAccess, path)
}

func (l *Library) RefreshGitStatus() driven.ResultHandle {
	return toHandle(C.call_void(l.refreshGitStatus))
}

func (l *Library) TrackQuery(query, path string) driven.ResultHandle {
	return l.callStr2(l.trackQuery, query, path)
}

func (l *Library) HistoricalQuery(offset uint64) driven.ResultHandle {
	return toHandle(C.call_u64(l.historicalQuery, C.uint64_t(offset)))
}

func (l *Library) HealthCheck(testPath string) driven.ResultHandle {
	return l.callStr(l.healthCheck, testPath)
}

// Decode copies the envelope into Go memory. Strings must be valid UTF-8.
func (l *Library) Decode(h driven.ResultHandle) (domain.RawEnvelope, error) {
	if h == driven.NilResult {
		return domain.RawEnvelope{}, domain.ErrNullResult
	}

	r := fromHandle(h)
	env := domain.RawEnvelope{Success: bool(r.success)}

	var err error
	if env.Data, err = goString(r.data, "data"); err != nil {
		return env, err
	}
	if env.Error, err = goString(r.error, "error"); err != nil {
		return env, err
	}
	return env, nil
}

// Free releases the envelope through fff_free_result.
func (l *Library) Free(h driven.ResultHandle) {
	if h == driven.NilResult {
		return
	}
	C.call_free(l.freeResult, fromHandle(h))
}

func (l *Library) callStr(fn unsafe.Pointer, a string) driven.ResultHandle {
	ca := C.CString(a)
	defer C.free(unsafe.Pointer(ca))
	return toHandle(C.call_str(fn, ca))
}

func (l *Library) callStr2(fn unsafe.Pointer, a, b string) driven.ResultHandle {
	ca := C.CString(a)
	defer C.free(unsafe.Pointer(ca))
	cb := C.CString(b)
	defer C.free(unsafe.Pointer(cb))
	return toHandle(C.call_str2(fn, ca, cb))
}

func toHandle(r *C.FffResult) driven.ResultHandle {
	return driven.ResultHandle(uintptr(unsafe.Pointer(r)))
}

func fromHandle(h driven.ResultHandle) *C.FffResult {
	return (*C.FffResult)(unsafe.Pointer(uintptr(h)))
}

func goString(p *C.char, field string) (*string, error) {
	if p == nil {
		return nil, nil
	}
	s := C.GoString(p)
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", domain.ErrDecodeFailure, field)
	}
	return &s, nil
}
