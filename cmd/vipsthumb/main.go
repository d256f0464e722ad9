package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/term"

	"github.com/wippyai/vips-runtime/vips"
)

// job is one thumbnail request, shared by the flag and interactive front ends.
type job struct {
	in       string
	out      string
	size     string
	crop     string
	width    int
	height   int
	quality  int
	linear   bool
	noRotate bool
	probe    bool
}

func main() {
	var (
		in          = flag.String("in", "", "Input image path")
		out         = flag.String("out", "", "Output image path (format follows the suffix)")
		width       = flag.Int("width", 0, "Target width in pixels")
		height      = flag.Int("height", 0, "Target height in pixels (optional)")
		size        = flag.String("size", "both", "Size mode: both, up, down, force")
		crop        = flag.String("crop", "none", "Crop: none, centre, entropy, attention, low, high, all")
		linear      = flag.Bool("linear", false, "Shrink in linear light")
		noRotate    = flag.Bool("no-rotate", false, "Do not auto-rotate using EXIF orientation")
		quality     = flag.Int("q", 0, "JPEG/WebP quality 1-100 (0 keeps the default)")
		probe       = flag.Bool("probe", false, "Decode the written file and print its dimensions")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	log := zap.NewNop()
	if *verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			log = l
		}
	}
	defer log.Sync() //nolint:errcheck
	vips.SetLogger(log)

	if err := vips.Startup(nil); err != nil {
		fatalf("%v", err)
	}
	defer vips.Shutdown()

	j := job{
		in: *in, out: *out, width: *width, height: *height,
		size: *size, crop: *crop, linear: *linear, noRotate: *noRotate,
		quality: *quality, probe: *probe,
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fatalf("-i needs a terminal on stdout")
		}
		if err := runInteractive(j); err != nil {
			fatalf("%v", err)
		}
		return
	}

	if j.in == "" || j.out == "" || j.width <= 0 {
		fmt.Fprintln(os.Stderr, "Usage: vipsthumb -in <image> -out <image> -width N [-height N] [-size force] [-crop centre]")
		fmt.Fprintln(os.Stderr, "       vipsthumb -i  (interactive mode)")
		os.Exit(1)
	}

	report, err := run(j)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Println(report)
}

var (
	okStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90"))
	errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

func fatalf(format string, args ...any) {
	msg := fmt.Sprintf("Error: "+format, args...)
	if term.IsTerminal(int(os.Stderr.Fd())) {
		msg = errStyle.Render(msg)
	}
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}

// options turns the textual job fields into thumbnail options.
func (j job) options() (*vips.ThumbnailOptions, error) {
	opts := &vips.ThumbnailOptions{}
	if j.height > 0 {
		opts.Height = vips.Of(j.height)
	}
	if j.size != "" {
		s, err := vips.ParseSize(j.size)
		if err != nil {
			return nil, err
		}
		opts.Size = vips.Of(s)
	}
	if j.crop != "" {
		c, err := vips.ParseInteresting(j.crop)
		if err != nil {
			return nil, err
		}
		opts.Crop = vips.Of(c)
	}
	if j.linear {
		opts.Linear = vips.Of(true)
	}
	if j.noRotate {
		opts.AutoRotate = vips.Of(false)
	}
	return opts, nil
}

// run makes the thumbnail and returns a one-line report.
func run(j job) (string, error) {
	opts, err := j.options()
	if err != nil {
		return "", err
	}

	var report string
	err = vips.WithImage(func() (*vips.Image, error) {
		return vips.NewFromFile(j.in, &vips.LoadOptions{Access: vips.Of(vips.AccessSequential)})
	}, func(img *vips.Image) error {
		thumb, err := img.Thumbnail(j.width, opts)
		if err != nil {
			return err
		}
		defer thumb.Close()

		data, err := encode(thumb, j.out, j.quality)
		if err != nil {
			return err
		}
		if err := os.WriteFile(j.out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", j.out, err)
		}
		report = fmt.Sprintf("%s: %dx%d -> %s: %dx%dx%d (%d bytes)",
			j.in, img.Width(), img.Height(), j.out, thumb.Width(), thumb.Height(), thumb.Bands(), len(data))
		return nil
	})
	if err != nil {
		return "", err
	}

	if j.probe {
		p, err := probe(j.out)
		if err != nil {
			return "", err
		}
		report += "\n" + p
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		report = okStyle.Render(report)
	}
	return report, nil
}

// encode picks the saver from the output suffix so that quality can be set.
func encode(img *vips.Image, path string, quality int) ([]byte, error) {
	var q *int
	if quality > 0 {
		q = vips.Of(quality)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return img.JpegsaveBuffer(&vips.JpegOptions{Quality: q})
	case ".webp":
		return img.WebpsaveBuffer(&vips.WebpOptions{Quality: q})
	case ".png":
		return img.PngsaveBuffer(nil)
	default:
		return img.WriteToBuffer(filepath.Ext(path))
	}
}

// probe decodes the written file with the Go image decoders as an
// independent check of the output.
func probe(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("probe: %w", err)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("probe %s: %w", path, err)
	}
	return fmt.Sprintf("probe: %s %dx%d", format, cfg.Width, cfg.Height), nil
}
