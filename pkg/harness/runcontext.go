package harness

// RunContext is the immutable per-invocation configuration a single test
// run is built from: architecture tag, probability string, conflict size,
// output directory, CSV path, and seed, exactly as the data model specifies.
type RunContext struct {
	ModelPath    string
	ConfigPath   string
	Arch         string
	Probability  string
	ConflictSize int
	SampleDir    string
	CSVPath      string
	Seed         int64
}
