package vips

import (
	"fmt"
	"strings"

	"github.com/wippyai/vips-runtime/errors"
)

// BandFormat is the numeric type of one band element (VipsBandFormat).
type BandFormat int32

const (
	FormatUchar BandFormat = iota
	FormatChar
	FormatUshort
	FormatShort
	FormatUint
	FormatInt
	FormatFloat
	FormatComplex
	FormatDouble
	FormatDpComplex
)

var formatSizes = [...]int{1, 1, 2, 2, 4, 4, 4, 8, 8, 16}

var formatNames = [...]string{
	"uchar", "char", "ushort", "short", "uint", "int", "float", "complex", "double", "dpcomplex",
}

// Sizeof returns the byte size of one band element, or 0 for an unknown format.
func (f BandFormat) Sizeof() int {
	if f < 0 || int(f) >= len(formatSizes) {
		return 0
	}
	return formatSizes[f]
}

func (f BandFormat) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("BandFormat(%d)", int32(f))
	}
	return formatNames[f]
}

// Size controls how Thumbnail treats the target box (VipsSize).
type Size uint32

const (
	SizeBoth Size = iota
	SizeUp
	SizeDown
	SizeForce
)

var sizeNames = []string{"both", "up", "down", "force"}

func (s Size) String() string { return enumName(sizeNames, uint32(s), "Size") }

// ParseSize parses the lower-case name of a Size.
func ParseSize(name string) (Size, error) {
	v, err := parseEnum(sizeNames, name, "size")
	return Size(v), err
}

// Interesting selects the crop strategy (VipsInteresting).
type Interesting uint32

const (
	InterestingNone Interesting = iota
	InterestingCentre
	InterestingEntropy
	InterestingAttention
	InterestingLow
	InterestingHigh
	InterestingAll
)

var interestingNames = []string{"none", "centre", "entropy", "attention", "low", "high", "all"}

func (i Interesting) String() string { return enumName(interestingNames, uint32(i), "Interesting") }

// ParseInteresting parses the lower-case name of an Interesting strategy.
func ParseInteresting(name string) (Interesting, error) {
	if name == "center" {
		return InterestingCentre, nil
	}
	v, err := parseEnum(interestingNames, name, "crop")
	return Interesting(v), err
}

// Intent is the ICC rendering intent (VipsIntent).
type Intent uint32

const (
	IntentPerceptual Intent = iota
	IntentRelative
	IntentSaturation
	IntentAbsolute
)

var intentNames = []string{"perceptual", "relative", "saturation", "absolute"}

func (i Intent) String() string { return enumName(intentNames, uint32(i), "Intent") }

// ParseIntent parses the lower-case name of an Intent.
func ParseIntent(name string) (Intent, error) {
	v, err := parseEnum(intentNames, name, "intent")
	return Intent(v), err
}

// Extend says how Embed fills new pixels (VipsExtend).
type Extend uint32

const (
	ExtendBlack Extend = iota
	ExtendCopy
	ExtendRepeat
	ExtendMirror
	ExtendWhite
	ExtendBackground
)

var extendNames = []string{"black", "copy", "repeat", "mirror", "white", "background"}

func (e Extend) String() string { return enumName(extendNames, uint32(e), "Extend") }

// Kernel is the resampling kernel (VipsKernel).
type Kernel uint32

const (
	KernelNearest Kernel = iota
	KernelLinear
	KernelCubic
	KernelMitchell
	KernelLanczos2
	KernelLanczos3
)

var kernelNames = []string{"nearest", "linear", "cubic", "mitchell", "lanczos2", "lanczos3"}

func (k Kernel) String() string { return enumName(kernelNames, uint32(k), "Kernel") }

// Access is the pixel access pattern a loader should prepare for (VipsAccess).
type Access uint32

const (
	AccessRandom Access = iota
	AccessSequential
	AccessSequentialUnbuffered
)

var accessNames = []string{"random", "sequential", "sequential_unbuffered"}

func (a Access) String() string { return enumName(accessNames, uint32(a), "Access") }

func enumName(names []string, v uint32, typ string) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("%s(%d)", typ, v)
}

func parseEnum(names []string, name, what string) (uint32, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range names {
		if n == name {
			return uint32(i), nil
		}
	}
	return 0, errors.InvalidInput(errors.PhaseMarshal, "parse "+what,
		fmt.Sprintf("unknown %s %q (want one of %s)", what, name, strings.Join(names, ", ")))
}
