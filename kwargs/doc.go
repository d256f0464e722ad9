// Package kwargs builds call descriptors for native operations that take a
// fixed positional prefix followed by a NULL-terminated tail of
// (name, value) optional argument pairs.
//
// A Signature declares the shape of one native entry point: its positional
// parameters, its optional parameters in a fixed declared order, and its
// return kind. A Builder collects the values for one invocation and produces
// a Descriptor:
//
//	sig := kwargs.MustSignature("vips_thumbnail_image", kwargs.KindInt32,
//		[]kwargs.Param{{"in", kwargs.KindPointer}, {"out", kwargs.KindOut}, {"width", kwargs.KindInt32}},
//		kwargs.Param{Name: "height", Kind: kwargs.KindInt32},
//		kwargs.Param{Name: "size", Kind: kwargs.KindEnum},
//	)
//
//	d, err := sig.NewCall().
//		Arg(kwargs.Pointer(in)).
//		Arg(kwargs.Out()).
//		Arg(kwargs.Int32(234)).
//		Set("height", 123).
//		Build()
//
// Present options are emitted in the order the Signature declares them,
// whatever order they were set in. Absent options contribute nothing. Every
// descriptor ends in a pointer-kinded NULL sentinel, so
//
//	d.Len() == len(sig.Params) + 2*present + 1
//
// Descriptors hold only Go values; the internal/ffi package turns them into
// C call frames for exactly one call.
package kwargs
