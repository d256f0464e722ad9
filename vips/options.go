package vips

import "github.com/wippyai/vips-runtime/kwargs"

// Of returns a pointer to v, for filling optional fields.
func Of[T any](v T) *T { return &v }

// LoadOptions are the optional arguments of NewFromFile and NewFromBuffer.
type LoadOptions struct {
	Access *Access
	Memory *bool
}

func (o *LoadOptions) apply(b *kwargs.Builder) {
	if o == nil {
		return
	}
	kwargs.Opt(b, "access", o.Access)
	kwargs.Opt(b, "memory", o.Memory)
}

// ThumbnailOptions are the optional arguments of Thumbnail. Nil fields are
// not passed, leaving the libvips default.
type ThumbnailOptions struct {
	Height        *int
	Size          *Size
	AutoRotate    *bool
	Crop          *Interesting
	Linear        *bool
	ImportProfile *string
	ExportProfile *string
	Intent        *Intent
}

func (o *ThumbnailOptions) apply(b *kwargs.Builder) {
	if o == nil {
		return
	}
	kwargs.Opt(b, "height", o.Height)
	kwargs.Opt(b, "size", o.Size)
	kwargs.Opt(b, "auto_rotate", o.AutoRotate)
	kwargs.Opt(b, "crop", o.Crop)
	kwargs.Opt(b, "linear", o.Linear)
	kwargs.Opt(b, "import_profile", o.ImportProfile)
	kwargs.Opt(b, "export_profile", o.ExportProfile)
	kwargs.Opt(b, "intent", o.Intent)
}

// EmbedOptions are the optional arguments of Embed. Background is only used
// with ExtendBackground and holds one value per band.
type EmbedOptions struct {
	Extend     *Extend
	Background []float64
}

// ResizeOptions are the optional arguments of Resize.
type ResizeOptions struct {
	VScale *float64
	Kernel *Kernel
}

func (o *ResizeOptions) apply(b *kwargs.Builder) {
	if o == nil {
		return
	}
	kwargs.Opt(b, "vscale", o.VScale)
	kwargs.Opt(b, "kernel", o.Kernel)
}

// SmartcropOptions are the optional arguments of Smartcrop.
type SmartcropOptions struct {
	Interesting *Interesting
}

func (o *SmartcropOptions) apply(b *kwargs.Builder) {
	if o == nil {
		return
	}
	kwargs.Opt(b, "interesting", o.Interesting)
}

// JpegOptions are the optional arguments of JpegsaveBuffer.
type JpegOptions struct {
	Quality   *int
	Interlace *bool
}

func (o *JpegOptions) apply(b *kwargs.Builder) {
	if o == nil {
		return
	}
	kwargs.Opt(b, "Q", o.Quality)
	kwargs.Opt(b, "interlace", o.Interlace)
}

// PngOptions are the optional arguments of PngsaveBuffer.
type PngOptions struct {
	Compression *int
	Interlace   *bool
}

func (o *PngOptions) apply(b *kwargs.Builder) {
	if o == nil {
		return
	}
	kwargs.Opt(b, "compression", o.Compression)
	kwargs.Opt(b, "interlace", o.Interlace)
}

// WebpOptions are the optional arguments of WebpsaveBuffer.
type WebpOptions struct {
	Quality  *int
	Lossless *bool
}

func (o *WebpOptions) apply(b *kwargs.Builder) {
	if o == nil {
		return
	}
	kwargs.Opt(b, "Q", o.Quality)
	kwargs.Opt(b, "lossless", o.Lossless)
}
