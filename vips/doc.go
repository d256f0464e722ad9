// Package vips is a safe calling layer over libvips.
//
// Images are reference handles to native VipsImage objects. Every operation
// either returns a new *Image or an *errors.Error; a failed native call never
// yields a handle. Handles are released explicitly with Close, which drops
// the native reference exactly once:
//
//	if err := vips.Startup(nil); err != nil {
//	    return err
//	}
//	defer vips.Shutdown()
//
//	img, err := vips.NewFromFile("in.jpg", nil)
//	if err != nil {
//	    return err
//	}
//	defer img.Close()
//
//	thumb, err := img.Thumbnail(234, &vips.ThumbnailOptions{
//	    Height: vips.Of(123),
//	    Size:   vips.Of(vips.SizeForce),
//	})
//	if err != nil {
//	    return err
//	}
//	defer thumb.Close()
//
//	return thumb.WriteToFile("out.png")
//
// # Pixel Buffers
//
// NewFromMemory takes ownership of a Go pixel buffer. The buffer is pinned
// and registered under an ownership token; libvips keeps using the memory
// until the image (and every image derived from it) is finalized, at which
// point the image's postclose signal returns the token and the buffer is
// unpinned. The caller must not modify the slice after handing it over.
//
// WithBorrowedMemory lends a buffer for the duration of a callback instead.
// Images created from it, and images derived from those, are invalidated
// when the callback returns; later calls on them fail with errors.ErrExpired.
//
// # Threads
//
// libvips reports failures through a per-thread error buffer. Each native
// call locks the goroutine to its OS thread until the error text, if any,
// has been read. An *Image is not safe for concurrent use.
package vips
