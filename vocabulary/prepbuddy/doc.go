// Package prepbuddy provides the namespace vocabulary of the prepbuddy
// data-preparation library.
//
// The vocabulary is a fixed table of dotted, fully-qualified package names.
// Bindings on the other side of a language bridge resolve classes by exact
// string equality against these values, so every value is reproduced
// byte-for-byte and is never computed at runtime.
//
// # Namespaces
//
// All but one namespace hang off the library root:
//
//	Symbol            → Value
//	PREP_BUDDY        → org.apache.datacommons.prepbuddy
//	IMPUTATION        → org.apache.datacommons.prepbuddy.imputations
//	CLUSTER           → org.apache.datacommons.prepbuddy.clusterers
//	NORMALIZERS       → org.apache.datacommons.prepbuddy.normalizers
//	CONNECTOR         → org.apache.datacommons.prepbuddy.python.connector
//	APIJAVA           → org.apache.datacommons.prepbuddy.api.java
//	SMOOTHERS         → org.apache.datacommons.prepbuddy.smoothers
//	TRANSFORMERS      → org.apache.datacommons.prepbuddy.transformers
//	UTILS             → org.apache.datacommons.prepbuddy.utils
//	PYTHON_CONNECTOR  → org.apache.spark.api.python
//
// PYTHON_CONNECTOR belongs to the Spark namespace and is not derived from
// the library root.
//
// # Usage
//
// Use the constants directly when the name is known at compile time:
//
//	import "github.com/c360studio/prepbuddy/vocabulary/prepbuddy"
//
//	className := prepbuddy.Imputation + ".MeanSubstitution"
//
// Resolve symbolic names at runtime with Lookup or ParseSymbol:
//
//	sym, err := prepbuddy.ParseSymbol("cluster")
//	if err != nil {
//	    return err
//	}
//	value := prepbuddy.MustLookup(sym) // → org.apache.datacommons.prepbuddy.clusterers
//
// Select namespaces with dotted glob patterns:
//
//	entries, err := prepbuddy.Match("org.apache.datacommons.prepbuddy.*")
package prepbuddy
