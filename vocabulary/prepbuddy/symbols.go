package prepbuddy

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSymbol is returned when a symbolic name is not part of the
// vocabulary.
var ErrUnknownSymbol = errors.New("unknown namespace symbol")

// Symbol is the symbolic name of a namespace.
type Symbol string

// Symbolic names, one per namespace constant.
const (
	SymbolPrepBuddy       Symbol = "PREP_BUDDY"
	SymbolImputation      Symbol = "IMPUTATION"
	SymbolCluster         Symbol = "CLUSTER"
	SymbolNormalizers     Symbol = "NORMALIZERS"
	SymbolConnector       Symbol = "CONNECTOR"
	SymbolAPIJava         Symbol = "APIJAVA"
	SymbolSmoothers       Symbol = "SMOOTHERS"
	SymbolTransformers    Symbol = "TRANSFORMERS"
	SymbolUtils           Symbol = "UTILS"
	SymbolPythonConnector Symbol = "PYTHON_CONNECTOR"
)

// String returns the symbolic name.
func (s Symbol) String() string {
	return string(s)
}

// Entry pairs a symbolic name with its namespace value.
type Entry struct {
	Symbol Symbol `json:"symbol" yaml:"symbol"`
	Value  string `json:"value" yaml:"value"`
}

// table is the vocabulary in declaration order.
var table = [...]Entry{
	{SymbolPrepBuddy, PrepBuddy},
	{SymbolImputation, Imputation},
	{SymbolCluster, Cluster},
	{SymbolNormalizers, Normalizers},
	{SymbolConnector, Connector},
	{SymbolAPIJava, APIJava},
	{SymbolSmoothers, Smoothers},
	{SymbolTransformers, Transformers},
	{SymbolUtils, Utils},
	{SymbolPythonConnector, PythonConnector},
}

// ValueMap maps symbolic names to namespace values.
// Treat it as read-only.
var ValueMap = map[Symbol]string{
	SymbolPrepBuddy:       PrepBuddy,
	SymbolImputation:      Imputation,
	SymbolCluster:         Cluster,
	SymbolNormalizers:     Normalizers,
	SymbolConnector:       Connector,
	SymbolAPIJava:         APIJava,
	SymbolSmoothers:       Smoothers,
	SymbolTransformers:    Transformers,
	SymbolUtils:           Utils,
	SymbolPythonConnector: PythonConnector,
}

// SymbolMap is the reverse of ValueMap.
// Treat it as read-only.
var SymbolMap = map[string]Symbol{
	PrepBuddy:       SymbolPrepBuddy,
	Imputation:      SymbolImputation,
	Cluster:         SymbolCluster,
	Normalizers:     SymbolNormalizers,
	Connector:       SymbolConnector,
	APIJava:         SymbolAPIJava,
	Smoothers:       SymbolSmoothers,
	Transformers:    SymbolTransformers,
	Utils:           SymbolUtils,
	PythonConnector: SymbolPythonConnector,
}

// Lookup returns the namespace value for a symbolic name.
func Lookup(s Symbol) (string, bool) {
	v, ok := ValueMap[s]
	return v, ok
}

// MustLookup is like Lookup but panics if the symbol is unknown.
func MustLookup(s Symbol) string {
	v, ok := ValueMap[s]
	if !ok {
		panic(fmt.Sprintf("prepbuddy: %v: %q", ErrUnknownSymbol, string(s)))
	}
	return v
}

// ParseSymbol parses a symbolic name. Matching ignores case and surrounding
// whitespace, and accepts '-' in place of '_'.
func ParseSymbol(name string) (Symbol, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	s := Symbol(normalized)
	if _, ok := ValueMap[s]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSymbol, name)
	}
	return s, nil
}

// SymbolOf returns the symbolic name whose value equals value exactly.
func SymbolOf(value string) (Symbol, bool) {
	s, ok := SymbolMap[value]
	return s, ok
}

// Symbols returns every symbolic name in declaration order.
func Symbols() []Symbol {
	out := make([]Symbol, len(table))
	for i, e := range table {
		out[i] = e.Symbol
	}
	return out
}

// Entries returns a copy of the vocabulary in declaration order.
func Entries() []Entry {
	out := make([]Entry, len(table))
	copy(out, table[:])
	return out
}

// Root returns the library root namespace.
func Root() string {
	return PrepBuddy
}

// IsDerived reports whether the symbol's value is built from the library
// root. PREP_BUDDY itself and PYTHON_CONNECTOR are not derived.
func IsDerived(s Symbol) bool {
	v, ok := ValueMap[s]
	if !ok {
		return false
	}
	return strings.HasPrefix(v, PrepBuddy+Separator)
}
