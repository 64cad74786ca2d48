package machine

import (
	"crypto/ed25519"
	"crypto/sha256"
	"math/big"

	"github.com/eyelash/aiken/uplc/ast"
)

// applyBuiltin runs fn against the fully-accumulated args (forces
// already consumed), returning either a result Value or an EvalError.
// Constant is the evaluator's only concrete value representation
// (spec.md §3.3 lists just Integer/ByteString/String/Unit/Bool), so
// builtins whose real-world semantics require List/Pair/Data constants
// — not members of that closed set — report BuiltinFailure rather
// than silently fabricating a richer value model the spec doesn't
// define.
func applyBuiltin(fn ast.DefaultFunction, args []Value) (Value, EvalError) {
	name := fn.String()
	unsupported := func() (Value, EvalError) {
		return Value{}, &BuiltinFailureError{Name: name, Reason: "constant kind not representable in this evaluator's value model"}
	}

	switch fn {
	case ast.AddInteger:
		return intBinOp(name, args, func(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) })
	case ast.SubtractInteger:
		return intBinOp(name, args, func(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) })
	case ast.MultiplyInteger:
		return intBinOp(name, args, func(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) })
	case ast.DivideInteger:
		return intDivOp(name, args, (*big.Int).Div)
	case ast.QuotientInteger:
		return intDivOp(name, args, (*big.Int).Quo)
	case ast.RemainderInteger:
		return intDivOp(name, args, (*big.Int).Rem)
	case ast.ModInteger:
		return intDivOp(name, args, (*big.Int).Mod)
	case ast.EqualsInteger:
		return intCmpOp(name, args, func(c int) bool { return c == 0 })
	case ast.LessThanInteger:
		return intCmpOp(name, args, func(c int) bool { return c < 0 })
	case ast.LessThanEqualsInteger:
		return intCmpOp(name, args, func(c int) bool { return c <= 0 })

	case ast.AppendByteString:
		a, b, err := bytesArgs(name, args)
		if err != nil {
			return Value{}, err
		}
		return constVal(ast.NewByteStringConstant(append(append([]byte{}, a...), b...))), nil
	case ast.ConsByteString:
		n, b, err := intAndBytesArgs(name, args)
		if err != nil {
			return Value{}, err
		}
		return constVal(ast.NewByteStringConstant(append([]byte{byte(n.Int64())}, b...))), nil
	case ast.SliceByteString:
		return sliceByteString(name, args)
	case ast.LengthOfByteString:
		b, err := bytesArg(name, args, 0)
		if err != nil {
			return Value{}, err
		}
		return constVal(ast.NewIntegerConstant(big.NewInt(int64(len(b))))), nil
	case ast.IndexByteString:
		return indexByteString(name, args)
	case ast.EqualsByteString:
		a, b, err := bytesArgs(name, args)
		if err != nil {
			return Value{}, err
		}
		return constVal(ast.NewBoolConstant(string(a) == string(b))), nil
	case ast.LessThanByteString:
		a, b, err := bytesArgs(name, args)
		if err != nil {
			return Value{}, err
		}
		return constVal(ast.NewBoolConstant(string(a) < string(b))), nil
	case ast.LessThanEqualsByteString:
		a, b, err := bytesArgs(name, args)
		if err != nil {
			return Value{}, err
		}
		return constVal(ast.NewBoolConstant(string(a) <= string(b))), nil

	case ast.Sha2_256:
		b, err := bytesArg(name, args, 0)
		if err != nil {
			return Value{}, err
		}
		sum := sha256.Sum256(b)
		return constVal(ast.NewByteStringConstant(sum[:])), nil
	case ast.Sha3_256, ast.Blake2b_256:
		return Value{}, &BuiltinFailureError{Name: name, Reason: "hash function not implemented in this evaluator"}
	case ast.VerifyEd25519Signature:
		return verifyEd25519(name, args)

	case ast.AppendString:
		a, b, err := stringArgs(name, args)
		if err != nil {
			return Value{}, err
		}
		return constVal(ast.NewStringConstant(a + b)), nil
	case ast.EqualsString:
		a, b, err := stringArgs(name, args)
		if err != nil {
			return Value{}, err
		}
		return constVal(ast.NewBoolConstant(a == b)), nil
	case ast.EncodeUtf8:
		s, err := stringArg(name, args, 0)
		if err != nil {
			return Value{}, err
		}
		return constVal(ast.NewByteStringConstant([]byte(s))), nil
	case ast.DecodeUtf8:
		b, err := bytesArg(name, args, 0)
		if err != nil {
			return Value{}, err
		}
		return constVal(ast.NewStringConstant(string(b))), nil

	case ast.IfThenElse:
		return ifThenElse(name, args)
	case ast.ChooseUnit:
		if args[0].tag != constantValue || args[0].Constant.Kind != ast.UnitKind {
			return Value{}, &BuiltinFailureError{Name: name, Reason: "first argument is not unit"}
		}
		return args[1], nil
	case ast.Trace:
		// caller (the machine loop) handles log emission so it can
		// thread the accumulated log list; this path is unreachable.
		return args[1], nil

	default:
		return unsupported()
	}
}

func intOf(name string, v Value) (*big.Int, EvalError) {
	if v.tag != constantValue || v.Constant.Kind != ast.IntegerKind {
		return nil, &TypeMismatchError{Expected: "integer", Got: v.typeName()}
	}
	return v.Constant.Integer, nil
}

func intBinOp(name string, args []Value, f func(a, b *big.Int) *big.Int) (Value, EvalError) {
	a, err := intOf(name, args[0])
	if err != nil {
		return Value{}, err
	}
	b, err := intOf(name, args[1])
	if err != nil {
		return Value{}, err
	}
	return constVal(ast.NewIntegerConstant(f(a, b))), nil
}

func intDivOp(name string, args []Value, f func(z, a, b *big.Int) *big.Int) (Value, EvalError) {
	a, err := intOf(name, args[0])
	if err != nil {
		return Value{}, err
	}
	b, err := intOf(name, args[1])
	if err != nil {
		return Value{}, err
	}
	if b.Sign() == 0 {
		return Value{}, &BuiltinFailureError{Name: name, Reason: "division by zero"}
	}
	return constVal(ast.NewIntegerConstant(f(new(big.Int), a, b))), nil
}

func intCmpOp(name string, args []Value, pred func(cmp int) bool) (Value, EvalError) {
	a, err := intOf(name, args[0])
	if err != nil {
		return Value{}, err
	}
	b, err := intOf(name, args[1])
	if err != nil {
		return Value{}, err
	}
	return constVal(ast.NewBoolConstant(pred(a.Cmp(b)))), nil
}

func bytesOf(v Value) ([]byte, bool) {
	if v.tag != constantValue || v.Constant.Kind != ast.ByteStringKind {
		return nil, false
	}
	return v.Constant.Bytes, true
}

func bytesArg(name string, args []Value, i int) ([]byte, EvalError) {
	b, ok := bytesOf(args[i])
	if !ok {
		return nil, &TypeMismatchError{Expected: "bytestring", Got: args[i].typeName()}
	}
	return b, nil
}

func bytesArgs(name string, args []Value) ([]byte, []byte, EvalError) {
	a, err := bytesArg(name, args, 0)
	if err != nil {
		return nil, nil, err
	}
	b, err := bytesArg(name, args, 1)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func intAndBytesArgs(name string, args []Value) (*big.Int, []byte, EvalError) {
	n, err := intOf(name, args[0])
	if err != nil {
		return nil, nil, err
	}
	b, err := bytesArg(name, args, 1)
	if err != nil {
		return nil, nil, err
	}
	return n, b, nil
}

func sliceByteString(name string, args []Value) (Value, EvalError) {
	start, err := intOf(name, args[0])
	if err != nil {
		return Value{}, err
	}
	length, err := intOf(name, args[1])
	if err != nil {
		return Value{}, err
	}
	b, err := bytesArg(name, args, 2)
	if err != nil {
		return Value{}, err
	}
	s := clampIndex(start.Int64(), len(b))
	e := clampIndex(start.Int64()+length.Int64(), len(b))
	if e < s {
		e = s
	}
	return constVal(ast.NewByteStringConstant(append([]byte{}, b[s:e]...))), nil
}

func clampIndex(i int64, n int) int {
	if i < 0 {
		return 0
	}
	if i > int64(n) {
		return n
	}
	return int(i)
}

func indexByteString(name string, args []Value) (Value, EvalError) {
	b, err := bytesArg(name, args, 0)
	if err != nil {
		return Value{}, err
	}
	n, err := intOf(name, args[1])
	if err != nil {
		return Value{}, err
	}
	i := n.Int64()
	if i < 0 || i >= int64(len(b)) {
		return Value{}, &BuiltinFailureError{Name: name, Reason: "index out of bounds"}
	}
	return constVal(ast.NewIntegerConstant(big.NewInt(int64(b[i])))), nil
}

func stringOf(v Value) (string, bool) {
	if v.tag != constantValue || v.Constant.Kind != ast.StringKind {
		return "", false
	}
	return v.Constant.Str, true
}

func stringArg(name string, args []Value, i int) (string, EvalError) {
	s, ok := stringOf(args[i])
	if !ok {
		return "", &TypeMismatchError{Expected: "string", Got: args[i].typeName()}
	}
	return s, nil
}

func stringArgs(name string, args []Value) (string, string, EvalError) {
	a, err := stringArg(name, args, 0)
	if err != nil {
		return "", "", err
	}
	b, err := stringArg(name, args, 1)
	if err != nil {
		return "", "", err
	}
	return a, b, nil
}

func verifyEd25519(name string, args []Value) (Value, EvalError) {
	pub, err := bytesArg(name, args, 0)
	if err != nil {
		return Value{}, err
	}
	msg, err := bytesArg(name, args, 1)
	if err != nil {
		return Value{}, err
	}
	sig, err := bytesArg(name, args, 2)
	if err != nil {
		return Value{}, err
	}
	if len(pub) != ed25519.PublicKeySize {
		return Value{}, &BuiltinFailureError{Name: name, Reason: "malformed public key"}
	}
	return constVal(ast.NewBoolConstant(ed25519.Verify(ed25519.PublicKey(pub), msg, sig))), nil
}

func ifThenElse(name string, args []Value) (Value, EvalError) {
	if args[0].tag != constantValue || args[0].Constant.Kind != ast.BoolKind {
		return Value{}, &TypeMismatchError{Expected: "bool", Got: args[0].typeName()}
	}
	if args[0].Constant.Bool {
		return args[1], nil
	}
	return args[2], nil
}
