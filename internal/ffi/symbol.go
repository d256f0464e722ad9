package ffi

/*
#cgo linux LDFLAGS: -ldl
#define _GNU_SOURCE
#include <dlfcn.h>
#include <stdlib.h>

static void* vr_dlsym_default(const char* name, const char** err) {
  dlerror();
  void* p = dlsym(RTLD_DEFAULT, name);
  const char* e = dlerror();
  *err = e;
  return e ? NULL : p;
}
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/wippyai/vips-runtime/errors"
)

var symbols sync.Map // string -> unsafe.Pointer

// Lookup resolves a symbol among the objects already loaded into the process.
func Lookup(name string) (unsafe.Pointer, error) {
	if name == "" {
		return nil, errors.InvalidInput(errors.PhaseLookup, "Lookup", "empty symbol name")
	}
	if p, ok := symbols.Load(name); ok {
		return p.(unsafe.Pointer), nil
	}

	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	var cerr *C.char
	p := C.vr_dlsym_default(cname, &cerr)
	if cerr != nil || p == nil {
		e := errors.NotFound(errors.PhaseLookup, "symbol", name)
		if cerr != nil {
			e.Detail += ": " + C.GoString(cerr)
		}
		return nil, e
	}
	symbols.Store(name, p)
	return p, nil
}
