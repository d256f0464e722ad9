// Package vipsruntime is a safe Go calling layer over libvips.
//
// libvips exposes most operations as C variadic functions that take a few
// required arguments followed by NULL-terminated (name, value) pairs. cgo
// cannot call such functions, so this module describes each call as data,
// lays the arguments out through libffi and checks the result in Go.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	vipsruntime/         Root package (documentation only)
//	├── kwargs/          Call descriptors: kinds, tagged values, signatures
//	├── internal/ffi/    libffi call emitter and symbol lookup
//	├── resource/        Handle tables with borrow counting and observers
//	├── errors/          Structured error types (phase, kind, operation)
//	├── vips/            Image handles, transforms, savers, buffer ownership
//	└── cmd/vipsthumb/   Thumbnail CLI with an interactive TUI
//
// # Quick Start
//
//	if err := vips.Startup(nil); err != nil {
//	    log.Fatal(err)
//	}
//	defer vips.Shutdown()
//
//	img, err := vips.NewFromFile("photo.jpg", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer img.Close()
//
//	thumb, err := img.Thumbnail(234, &vips.ThumbnailOptions{
//	    Height: vips.Of(123),
//	    Size:   vips.Of(vips.SizeForce),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer thumb.Close()
//
//	png, err := thumb.PngsaveBuffer(nil)
//
// # Optional Arguments
//
// Each native operation has a kwargs.Signature listing its positional
// parameters and the options it accepts. Options that are not set contribute
// nothing to the call; set options are emitted in declared order, each as a
// name string followed by its value, and the list ends with a NULL pointer.
//
// # Buffer Ownership
//
// Pixel buffers passed to vips.NewFromMemory are pinned and owned by the
// native image. The image's postclose signal hands back an integer token and
// the buffer is released exactly once. vips.WithBorrowedMemory lends a buffer
// for one callback instead.
//
// # Thread Safety
//
// An *vips.Image is not safe for concurrent use. Independent images may be
// used from different goroutines. Each native call is pinned to one OS
// thread until its error text has been read.
//
// # Build Requirements
//
// cgo with pkg-config entries for libvips (8.10 or newer) and libffi.
package vipsruntime
