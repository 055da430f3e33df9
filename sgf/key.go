// Package sgf holds the property model of game records: typed values attached to
// short uppercase keys, their textual encoding, and a parser for the SGF text format.
package sgf

import "sort"

// ValueType is the type a key's values are read as.
type ValueType byte

const (
	TypeUnknown   ValueType = iota // untyped: kept as text
	TypeVoid                       // DO[], KO[]
	TypeMove                       // B[dd], W[] (a pass)
	TypePointList                  // AB[aa][bb:cc]
	TypeText                       // C[...], PB[...]
	TypeNumber                     // SZ[19], KM[6.5]
	TypeResult                     // RE[B+R]
	TypeLabelList                  // LB[aa:A]
	TypeColour                     // PL[B]
	TypeFigure                     // FG[] or FG[257:title]
)

// Key describes a property code.
//
// Priority orders properties when a node is written: lower first, then by code.
// Inheritable properties apply to the node they are set on and to every descendant
// that does not set the same key itself.
type Key struct {
	Code        string
	Priority    int
	Inheritable bool
	Type        ValueType
}

const unknownPriority = 1000

var keys = map[string]*Key{}

func register(code string, priority int, inheritable bool, typ ValueType) *Key {
	k := &Key{Code: code, Priority: priority, Inheritable: inheritable, Type: typ}
	keys[code] = k
	return k
}

// root and game info
var (
	FF = register("FF", 0, true, TypeNumber)
	GM = register("GM", 1, true, TypeNumber)
	CA = register("CA", 2, true, TypeText)
	AP = register("AP", 3, true, TypeText)
	ST = register("ST", 4, true, TypeNumber)
	SZ = register("SZ", 5, true, TypeNumber)
	GN = register("GN", 10, true, TypeText)
	EV = register("EV", 11, true, TypeText)
	RO = register("RO", 12, true, TypeText)
	DT = register("DT", 13, true, TypeText)
	PC = register("PC", 14, true, TypeText)
	PB = register("PB", 15, true, TypeText)
	BR = register("BR", 16, true, TypeText)
	BT = register("BT", 17, true, TypeText)
	PW = register("PW", 18, true, TypeText)
	WR = register("WR", 19, true, TypeText)
	WT = register("WT", 20, true, TypeText)
	RU = register("RU", 21, true, TypeText)
	KM = register("KM", 22, true, TypeNumber)
	HA = register("HA", 23, true, TypeNumber)
	TM = register("TM", 24, true, TypeNumber)
	OT = register("OT", 25, true, TypeText)
	RE = register("RE", 26, true, TypeResult)
	GC = register("GC", 27, true, TypeText)
	ON = register("ON", 28, true, TypeText)
	AN = register("AN", 29, true, TypeText)
	CP = register("CP", 30, true, TypeText)
	SO = register("SO", 31, true, TypeText)
	US = register("US", 32, true, TypeText)
)

// moves and setup
var (
	B  = register("B", 100, false, TypeMove)
	W  = register("W", 101, false, TypeMove)
	KO = register("KO", 102, false, TypeVoid)
	MN = register("MN", 103, false, TypeNumber)
	AB = register("AB", 110, false, TypePointList)
	AW = register("AW", 111, false, TypePointList)
	AE = register("AE", 112, false, TypePointList)
	PL = register("PL", 113, false, TypeColour)
)

// annotations
var (
	N  = register("N", 200, false, TypeText)
	C  = register("C", 201, false, TypeText)
	GB = register("GB", 202, false, TypeNumber)
	GW = register("GW", 203, false, TypeNumber)
	DM = register("DM", 204, false, TypeNumber)
	UC = register("UC", 205, false, TypeNumber)
	HO = register("HO", 206, false, TypeNumber)
	V  = register("V", 207, false, TypeNumber)
	BM = register("BM", 210, false, TypeNumber)
	TE = register("TE", 211, false, TypeNumber)
	DO = register("DO", 212, false, TypeVoid)
	IT = register("IT", 213, false, TypeVoid)
	BL = register("BL", 220, false, TypeNumber)
	WL = register("WL", 221, false, TypeNumber)
	OB = register("OB", 222, false, TypeNumber)
	OW = register("OW", 223, false, TypeNumber)
)

// markup
var (
	TR = register("TR", 300, false, TypePointList)
	SQ = register("SQ", 301, false, TypePointList)
	CR = register("CR", 302, false, TypePointList)
	MA = register("MA", 303, false, TypePointList)
	SL = register("SL", 304, false, TypePointList)
	TB = register("TB", 305, false, TypePointList)
	TW = register("TW", 306, false, TypePointList)
	LB = register("LB", 307, false, TypeLabelList)
	DD = register("DD", 308, true, TypePointList)
)

// diagrams and display
var (
	FG = register("FG", 400, false, TypeFigure)
	PM = register("PM", 401, true, TypeNumber)
	VW = register("VW", 402, true, TypePointList)
)

// LookupKey returns the registered key for the code. Unregistered codes get a fresh
// untyped key that sorts after every registered one.
func LookupKey(code string) *Key {
	if k, ok := keys[code]; ok {
		return k
	}
	return &Key{Code: code, Priority: unknownPriority, Type: TypeUnknown}
}

// IsRegistered returns true if the code is one the package knows the type of.
func IsRegistered(code string) bool {
	_, ok := keys[code]
	return ok
}

// untyped returns a key with the same code, priority and inheritance as k but no type.
func (k *Key) untyped() *Key {
	return &Key{Code: k.Code, Priority: k.Priority, Inheritable: k.Inheritable, Type: TypeUnknown}
}

func (k *Key) less(other *Key) bool {
	if k.Priority != other.Priority {
		return k.Priority < other.Priority
	}
	return k.Code < other.Code
}

func (k *Key) String() string { return k.Code }

func sortKeys(ks []*Key) { sort.Slice(ks, func(i, j int) bool { return ks[i].less(ks[j]) }) }
