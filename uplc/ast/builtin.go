package ast

// DefaultFunction is the closed enumeration of UPLC primitives (§3.3).
// Each has a fixed argument arity and a number of required `force`
// applications before it becomes saturated and can run.
type DefaultFunction int

const (
	AddInteger DefaultFunction = iota
	SubtractInteger
	MultiplyInteger
	DivideInteger
	QuotientInteger
	RemainderInteger
	ModInteger
	EqualsInteger
	LessThanInteger
	LessThanEqualsInteger

	AppendByteString
	ConsByteString
	SliceByteString
	LengthOfByteString
	IndexByteString
	EqualsByteString
	LessThanByteString
	LessThanEqualsByteString

	Sha2_256
	Sha3_256
	Blake2b_256
	VerifyEd25519Signature

	AppendString
	EqualsString
	EncodeUtf8
	DecodeUtf8

	IfThenElse
	ChooseUnit
	Trace

	FstPair
	SndPair

	ChooseList
	MkCons
	HeadList
	TailList
	NullList

	ChooseData
	ConstrData
	MapData
	ListData
	IData
	BData
	UnConstrData
	UnMapData
	UnListData
	UnIData
	UnBData
	EqualsData
	MkPairData
	MkNilData
	MkNilPairData

	numDefaultFunctions
)

// builtinInfo describes a DefaultFunction's calling convention: how
// many term arguments it consumes and how many `force` applications
// must precede it before it can run (§4.5 "Fun(Builtin) accumulates
// arguments until the builtin's arity/force count is satisfied").
type builtinInfo struct {
	name      string
	arity     int
	forceUses int
}

var builtinTable = map[DefaultFunction]builtinInfo{
	AddInteger:              {"addInteger", 2, 0},
	SubtractInteger:         {"subtractInteger", 2, 0},
	MultiplyInteger:         {"multiplyInteger", 2, 0},
	DivideInteger:           {"divideInteger", 2, 0},
	QuotientInteger:         {"quotientInteger", 2, 0},
	RemainderInteger:        {"remainderInteger", 2, 0},
	ModInteger:              {"modInteger", 2, 0},
	EqualsInteger:           {"equalsInteger", 2, 0},
	LessThanInteger:         {"lessThanInteger", 2, 0},
	LessThanEqualsInteger:   {"lessThanEqualsInteger", 2, 0},

	AppendByteString:        {"appendByteString", 2, 0},
	ConsByteString:          {"consByteString", 2, 0},
	SliceByteString:         {"sliceByteString", 3, 0},
	LengthOfByteString:      {"lengthOfByteString", 1, 0},
	IndexByteString:         {"indexByteString", 2, 0},
	EqualsByteString:        {"equalsByteString", 2, 0},
	LessThanByteString:      {"lessThanByteString", 2, 0},
	LessThanEqualsByteString: {"lessThanEqualsByteString", 2, 0},

	Sha2_256:                {"sha2_256", 1, 0},
	Sha3_256:                {"sha3_256", 1, 0},
	Blake2b_256:             {"blake2b_256", 1, 0},
	VerifyEd25519Signature:  {"verifyEd25519Signature", 3, 0},

	AppendString:            {"appendString", 2, 0},
	EqualsString:            {"equalsString", 2, 0},
	EncodeUtf8:              {"encodeUtf8", 1, 0},
	DecodeUtf8:              {"decodeUtf8", 1, 0},

	IfThenElse:              {"ifThenElse", 3, 1},
	ChooseUnit:              {"chooseUnit", 2, 1},
	Trace:                   {"trace", 2, 1},

	FstPair:                 {"fstPair", 1, 2},
	SndPair:                 {"sndPair", 1, 2},

	ChooseList:              {"chooseList", 3, 2},
	MkCons:                  {"mkCons", 2, 1},
	HeadList:                {"headList", 1, 1},
	TailList:                {"tailList", 1, 1},
	NullList:                {"nullList", 1, 1},

	ChooseData:              {"chooseData", 6, 1},
	ConstrData:              {"constrData", 2, 0},
	MapData:                 {"mapData", 1, 0},
	ListData:                {"listData", 1, 0},
	IData:                   {"iData", 1, 0},
	BData:                   {"bData", 1, 0},
	UnConstrData:            {"unConstrData", 1, 0},
	UnMapData:               {"unMapData", 1, 0},
	UnListData:              {"unListData", 1, 0},
	UnIData:                 {"unIData", 1, 0},
	UnBData:                 {"unBData", 1, 0},
	EqualsData:              {"equalsData", 2, 0},
	MkPairData:              {"mkPairData", 2, 0},
	MkNilData:               {"mkNilData", 1, 0},
	MkNilPairData:           {"mkNilPairData", 1, 0},
}

var builtinByName map[string]DefaultFunction

func init() {
	builtinByName = make(map[string]DefaultFunction, len(builtinTable))
	for fn, info := range builtinTable {
		builtinByName[info.name] = fn
	}
}

func (f DefaultFunction) String() string {
	if info, ok := builtinTable[f]; ok {
		return info.name
	}
	return "<unknown builtin>"
}

// Arity is the number of term arguments f expects before it runs.
func (f DefaultFunction) Arity() int { return builtinTable[f].arity }

// ForceCount is the number of `force` applications required to make f
// runnable (type-instantiating polymorphic builtins).
func (f DefaultFunction) ForceCount() int { return builtinTable[f].forceUses }

// LookupBuiltin resolves a builtin's textual name to its
// DefaultFunction, as used by uplc/parser's `(builtin name)` term.
func LookupBuiltin(name string) (DefaultFunction, bool) {
	fn, ok := builtinByName[name]
	return fn, ok
}
