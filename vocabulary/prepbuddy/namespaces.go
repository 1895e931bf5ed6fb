package prepbuddy

// PrepBuddy is the root namespace of the library. It carries no trailing
// separator.
const PrepBuddy = "org.apache.datacommons.prepbuddy"

// Library namespaces derived from PrepBuddy.
const (
	// Imputation holds the missing-data handlers.
	Imputation = PrepBuddy + ".imputations"

	// Cluster holds the clustering algorithms used for facet grouping.
	Cluster = PrepBuddy + ".clusterers"

	// Normalizers holds the column normalizers.
	Normalizers = PrepBuddy + ".normalizers"

	// Connector holds the Python-facing connector classes.
	Connector = PrepBuddy + ".python.connector"

	// APIJava holds the Java API wrappers.
	APIJava = PrepBuddy + ".api.java"

	// Smoothers holds the series smoothing methods.
	Smoothers = PrepBuddy + ".smoothers"

	// Transformers holds the dataset transformations.
	Transformers = PrepBuddy + ".transformers"

	// Utils holds shared helpers.
	Utils = PrepBuddy + ".utils"
)

// PythonConnector is the Spark Python API namespace. It is independent of
// PrepBuddy.
const PythonConnector = "org.apache.spark.api.python"

// Separator joins namespace segments.
const Separator = "."
