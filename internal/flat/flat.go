// Package flat implements the "flat" binary codec boundary for UPLC
// programs (spec.md §6 treats this as an opaque external collaborator;
// SPEC_FULL.md §0 gives it a minimal concrete body, grounded on the
// wire format referenced by the original Rust `uplc::ast::flat`
// module, so `aiken uplc eval --flat` has something real to call).
//
// The real flat format is a dense bit-packed encoding with per-type
// variable-length codes; this package implements a reduced but
// self-consistent subset sufficient for the term shapes this module's
// evaluator supports (Var/Lambda/Apply/Delay/Force/Constant/Builtin/
// Error over Integer/ByteString/String/Unit/Bool constants), encoded
// and decoded bit-for-bit by the same scheme so Encode/Decode round
// -trip.
package flat

import (
	"fmt"

	"github.com/eyelash/aiken/uplc/ast"
)

// Decoder is the external boundary spec.md §6 names: "bytes → Program
// <FakeNamedDeBruijn>". A production decoder for the full wire format
// is out of scope (§14); this one decodes what this package's Encode
// produces.
type Decoder interface {
	Decode(data []byte) (ast.Program[ast.FakeNamedDeBruijn], error)
}

type codec struct{}

// Default is the package's sole Decoder/Encoder implementation.
var Default = codec{}

func (codec) Decode(data []byte) (ast.Program[ast.FakeNamedDeBruijn], error) {
	r := &bitReader{data: data}
	major := r.readVarint()
	minor := r.readVarint()
	patch := r.readVarint()
	t, err := decodeTerm(r)
	if err != nil {
		return ast.Program[ast.FakeNamedDeBruijn]{}, err
	}
	if r.err != nil {
		return ast.Program[ast.FakeNamedDeBruijn]{}, r.err
	}
	return ast.Program[ast.FakeNamedDeBruijn]{
		Version: ast.Version{Major: int(major), Minor: int(minor), Patch: int(patch)},
		Term:    t,
	}, nil
}

// Encode is the reverse direction, used by tests to exercise Decode
// without depending on a separately retrieved flat-encoded fixture.
func Encode(p ast.Program[ast.FakeNamedDeBruijn]) []byte {
	w := &bitWriter{}
	w.writeVarint(uint64(p.Version.Major))
	w.writeVarint(uint64(p.Version.Minor))
	w.writeVarint(uint64(p.Version.Patch))
	encodeTerm(w, p.Term)
	return w.bytes()
}

const (
	tagVar = iota
	tagDelay
	tagLambda
	tagApply
	tagConstant
	tagForce
	tagError
	tagBuiltin
)

const (
	constInteger = iota
	constByteString
	constString
	constUnit
	constBool
)

func encodeTerm(w *bitWriter, t *ast.Term[ast.FakeNamedDeBruijn]) {
	switch t.TagKind() {
	case ast.VarTerm:
		w.writeBits(tagVar, 3)
		w.writeVarint(uint64(t.Var.Index))
	case ast.DelayTerm:
		w.writeBits(tagDelay, 3)
		encodeTerm(w, t.Body)
	case ast.LambdaTerm:
		w.writeBits(tagLambda, 3)
		encodeTerm(w, t.Body)
	case ast.ApplyTerm:
		w.writeBits(tagApply, 3)
		encodeTerm(w, t.Function)
		encodeTerm(w, t.Argument)
	case ast.ForceTerm:
		w.writeBits(tagForce, 3)
		encodeTerm(w, t.Body)
	case ast.ErrorTerm:
		w.writeBits(tagError, 3)
	case ast.BuiltinTerm:
		w.writeBits(tagBuiltin, 3)
		w.writeVarint(uint64(t.Builtin))
	case ast.ConstantTerm:
		w.writeBits(tagConstant, 3)
		encodeConstant(w, t.Constant)
	}
}

func encodeConstant(w *bitWriter, c ast.Constant) {
	switch c.Kind {
	case ast.IntegerKind:
		w.writeBits(constInteger, 3)
		w.writeVarintBig(c.Integer)
	case ast.ByteStringKind:
		w.writeBits(constByteString, 3)
		w.writeVarint(uint64(len(c.Bytes)))
		for _, b := range c.Bytes {
			w.writeBits(uint64(b), 8)
		}
	case ast.StringKind:
		w.writeBits(constString, 3)
		w.writeVarint(uint64(len(c.Str)))
		for i := 0; i < len(c.Str); i++ {
			w.writeBits(uint64(c.Str[i]), 8)
		}
	case ast.UnitKind:
		w.writeBits(constUnit, 3)
	case ast.BoolKind:
		w.writeBits(constBool, 3)
		if c.Bool {
			w.writeBits(1, 1)
		} else {
			w.writeBits(0, 1)
		}
	}
}

func decodeTerm(r *bitReader) (*ast.Term[ast.FakeNamedDeBruijn], error) {
	tag := r.readBits(3)
	switch tag {
	case tagVar:
		idx := r.readVarint()
		return ast.NewVar(ast.FakeNamedDeBruijn{Text: "", Index: int(idx)}), r.err
	case tagDelay:
		body, err := decodeTerm(r)
		if err != nil {
			return nil, err
		}
		return ast.NewDelay(body), nil
	case tagLambda:
		body, err := decodeTerm(r)
		if err != nil {
			return nil, err
		}
		return ast.NewLambda(ast.FakeNamedDeBruijn{Text: "", Index: 0}, body), nil
	case tagApply:
		fn, err := decodeTerm(r)
		if err != nil {
			return nil, err
		}
		arg, err := decodeTerm(r)
		if err != nil {
			return nil, err
		}
		return ast.NewApply(fn, arg), nil
	case tagForce:
		body, err := decodeTerm(r)
		if err != nil {
			return nil, err
		}
		return ast.NewForce(body), nil
	case tagError:
		return ast.NewError[ast.FakeNamedDeBruijn](), nil
	case tagBuiltin:
		idx := r.readVarint()
		return ast.NewBuiltin[ast.FakeNamedDeBruijn](ast.DefaultFunction(idx)), r.err
	case tagConstant:
		c, err := decodeConstant(r)
		if err != nil {
			return nil, err
		}
		return ast.NewConstant[ast.FakeNamedDeBruijn](c), nil
	default:
		return nil, fmt.Errorf("flat: unknown term tag %d", tag)
	}
}

func decodeConstant(r *bitReader) (ast.Constant, error) {
	kind := r.readBits(3)
	switch kind {
	case constInteger:
		return ast.NewIntegerConstant(r.readVarintBig()), r.err
	case constByteString:
		n := r.readVarint()
		b := make([]byte, n)
		for i := range b {
			b[i] = byte(r.readBits(8))
		}
		return ast.NewByteStringConstant(b), r.err
	case constString:
		n := r.readVarint()
		b := make([]byte, n)
		for i := range b {
			b[i] = byte(r.readBits(8))
		}
		return ast.NewStringConstant(string(b)), r.err
	case constUnit:
		return ast.NewUnitConstant(), r.err
	case constBool:
		return ast.NewBoolConstant(r.readBits(1) == 1), r.err
	default:
		return ast.Constant{}, fmt.Errorf("flat: unknown constant kind %d", kind)
	}
}
