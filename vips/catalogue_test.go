package vips

import (
	"testing"

	"github.com/wippyai/vips-runtime/internal/ffi"
	"github.com/wippyai/vips-runtime/kwargs"
)

var catalogue = []*kwargs.Signature{
	sigNewFromFile, sigNewFromBuffer,
	sigThumbnail, sigEmbed, sigExtractArea, sigResize, sigSmartcrop,
	sigCopy, sigHistFind, sigHistEntropy,
	sigWriteToFile, sigWriteToBuffer,
	sigJpegsaveBuffer, sigPngsaveBuffer, sigWebpsaveBuffer,
}

func TestCatalogue_SymbolsResolve(t *testing.T) {
	for _, sig := range catalogue {
		if _, err := ffi.Lookup(sig.Symbol); err != nil {
			t.Errorf("%s: %v", sig.Symbol, err)
		}
	}
}

func TestCatalogue_ThumbnailDescriptor(t *testing.T) {
	b := sigThumbnail.NewCall().
		Arg(kwargs.Null()).
		Arg(kwargs.Out()).
		Arg(kwargs.Int32(234))
	(&ThumbnailOptions{Height: Of(123), Size: Of(SizeForce)}).apply(b)
	d, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	if d.Fixed != 3 {
		t.Errorf("Fixed = %d, want 3", d.Fixed)
	}
	if d.Len() != kwargs.ExpectedLen(3, 2) {
		t.Errorf("Len = %d, want %d", d.Len(), kwargs.ExpectedLen(3, 2))
	}
	want := `vips_thumbnail_image(in=pointer(NULL), out=out, width=int32(234), "height", int32(123), "size", enum(3), NULL)`
	if got := d.String(); got != want {
		t.Errorf("descriptor = %s\nwant         %s", got, want)
	}
}

func TestOptions_NilApplyAddsNothing(t *testing.T) {
	b := sigJpegsaveBuffer.NewCall().Arg(kwargs.Null()).Arg(kwargs.Out()).Arg(kwargs.Out())
	var opts *JpegOptions
	opts.apply(b)
	if b.Present() != 0 {
		t.Errorf("Present = %d, want 0", b.Present())
	}

	(&JpegOptions{Quality: Of(80)}).apply(b)
	d, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if names := d.OptionNames(); len(names) != 1 || names[0] != "Q" {
		t.Errorf("OptionNames = %v", names)
	}
}
