package vips

import (
	"runtime"

	"github.com/wippyai/vips-runtime/errors"
	"github.com/wippyai/vips-runtime/internal/ffi"
	"github.com/wippyai/vips-runtime/kwargs"
)

// Native operation catalogue. Option lists are the subsets this package
// exposes; names are passed to libvips verbatim.
var (
	sigNewFromFile = kwargs.MustSignature("vips_image_new_from_file", kwargs.KindPointer,
		[]kwargs.Param{{Name: "name", Kind: kwargs.KindString}},
		kwargs.Param{Name: "access", Kind: kwargs.KindEnum},
		kwargs.Param{Name: "memory", Kind: kwargs.KindBool},
	)

	sigNewFromBuffer = kwargs.MustSignature("vips_image_new_from_buffer", kwargs.KindPointer,
		[]kwargs.Param{
			{Name: "buf", Kind: kwargs.KindPointer},
			{Name: "len", Kind: kwargs.KindSize},
			{Name: "option_string", Kind: kwargs.KindString},
		},
		kwargs.Param{Name: "access", Kind: kwargs.KindEnum},
		kwargs.Param{Name: "memory", Kind: kwargs.KindBool},
	)

	sigThumbnail = kwargs.MustSignature("vips_thumbnail_image", kwargs.KindInt32,
		[]kwargs.Param{
			{Name: "in", Kind: kwargs.KindPointer},
			{Name: "out", Kind: kwargs.KindOut},
			{Name: "width", Kind: kwargs.KindInt32},
		},
		kwargs.Param{Name: "height", Kind: kwargs.KindInt32},
		kwargs.Param{Name: "size", Kind: kwargs.KindEnum},
		kwargs.Param{Name: "auto_rotate", Kind: kwargs.KindBool},
		kwargs.Param{Name: "crop", Kind: kwargs.KindEnum},
		kwargs.Param{Name: "linear", Kind: kwargs.KindBool},
		kwargs.Param{Name: "import_profile", Kind: kwargs.KindString},
		kwargs.Param{Name: "export_profile", Kind: kwargs.KindString},
		kwargs.Param{Name: "intent", Kind: kwargs.KindEnum},
	)

	sigEmbed = kwargs.MustSignature("vips_embed", kwargs.KindInt32,
		[]kwargs.Param{
			{Name: "in", Kind: kwargs.KindPointer},
			{Name: "out", Kind: kwargs.KindOut},
			{Name: "x", Kind: kwargs.KindInt32},
			{Name: "y", Kind: kwargs.KindInt32},
			{Name: "width", Kind: kwargs.KindInt32},
			{Name: "height", Kind: kwargs.KindInt32},
		},
		kwargs.Param{Name: "extend", Kind: kwargs.KindEnum},
		kwargs.Param{Name: "background", Kind: kwargs.KindPointer},
	)

	sigExtractArea = kwargs.MustSignature("vips_extract_area", kwargs.KindInt32,
		[]kwargs.Param{
			{Name: "input", Kind: kwargs.KindPointer},
			{Name: "out", Kind: kwargs.KindOut},
			{Name: "left", Kind: kwargs.KindInt32},
			{Name: "top", Kind: kwargs.KindInt32},
			{Name: "width", Kind: kwargs.KindInt32},
			{Name: "height", Kind: kwargs.KindInt32},
		},
	)

	sigResize = kwargs.MustSignature("vips_resize", kwargs.KindInt32,
		[]kwargs.Param{
			{Name: "in", Kind: kwargs.KindPointer},
			{Name: "out", Kind: kwargs.KindOut},
			{Name: "scale", Kind: kwargs.KindDouble},
		},
		kwargs.Param{Name: "vscale", Kind: kwargs.KindDouble},
		kwargs.Param{Name: "kernel", Kind: kwargs.KindEnum},
	)

	sigSmartcrop = kwargs.MustSignature("vips_smartcrop", kwargs.KindInt32,
		[]kwargs.Param{
			{Name: "input", Kind: kwargs.KindPointer},
			{Name: "out", Kind: kwargs.KindOut},
			{Name: "width", Kind: kwargs.KindInt32},
			{Name: "height", Kind: kwargs.KindInt32},
		},
		kwargs.Param{Name: "interesting", Kind: kwargs.KindEnum},
	)

	sigCopy = kwargs.MustSignature("vips_copy", kwargs.KindInt32,
		[]kwargs.Param{{Name: "in", Kind: kwargs.KindPointer}, {Name: "out", Kind: kwargs.KindOut}},
	)

	sigHistFind = kwargs.MustSignature("vips_hist_find", kwargs.KindInt32,
		[]kwargs.Param{{Name: "in", Kind: kwargs.KindPointer}, {Name: "out", Kind: kwargs.KindOut}},
		kwargs.Param{Name: "band", Kind: kwargs.KindInt32},
	)

	sigHistEntropy = kwargs.MustSignature("vips_hist_entropy", kwargs.KindInt32,
		[]kwargs.Param{{Name: "in", Kind: kwargs.KindPointer}, {Name: "out", Kind: kwargs.KindOut}},
	)

	sigWriteToFile = kwargs.MustSignature("vips_image_write_to_file", kwargs.KindInt32,
		[]kwargs.Param{{Name: "image", Kind: kwargs.KindPointer}, {Name: "name", Kind: kwargs.KindString}},
	)

	sigWriteToBuffer = kwargs.MustSignature("vips_image_write_to_buffer", kwargs.KindInt32,
		[]kwargs.Param{
			{Name: "in", Kind: kwargs.KindPointer},
			{Name: "suffix", Kind: kwargs.KindString},
			{Name: "buf", Kind: kwargs.KindOut},
			{Name: "size", Kind: kwargs.KindOut},
		},
	)

	sigJpegsaveBuffer = kwargs.MustSignature("vips_jpegsave_buffer", kwargs.KindInt32,
		saveBufferParams,
		kwargs.Param{Name: "Q", Kind: kwargs.KindInt32},
		kwargs.Param{Name: "interlace", Kind: kwargs.KindBool},
	)

	sigPngsaveBuffer = kwargs.MustSignature("vips_pngsave_buffer", kwargs.KindInt32,
		saveBufferParams,
		kwargs.Param{Name: "compression", Kind: kwargs.KindInt32},
		kwargs.Param{Name: "interlace", Kind: kwargs.KindBool},
	)

	sigWebpsaveBuffer = kwargs.MustSignature("vips_webpsave_buffer", kwargs.KindInt32,
		saveBufferParams,
		kwargs.Param{Name: "Q", Kind: kwargs.KindInt32},
		kwargs.Param{Name: "lossless", Kind: kwargs.KindBool},
	)
)

var saveBufferParams = []kwargs.Param{
	{Name: "in", Kind: kwargs.KindPointer},
	{Name: "buf", Kind: kwargs.KindOut},
	{Name: "len", Kind: kwargs.KindOut},
}

// invoke builds the descriptor and runs it on a locked OS thread so that a
// failure's error text is read from the thread that produced it. A non-zero
// status or a NULL pointer return becomes a KindNative error carrying that
// text.
func invoke(phase errors.Phase, b *kwargs.Builder) (*ffi.Result, error) {
	d, err := b.Build()
	if err != nil {
		return nil, err
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	clearError()
	res, err := ffi.Invoke(d)
	if err != nil {
		return nil, err
	}

	failed := res.Status != 0
	if d.Return == kwargs.KindPointer {
		failed = res.Ptr == nil
	}
	if failed {
		return nil, errors.Native(phase, d.Symbol, lastError())
	}
	return res, nil
}
