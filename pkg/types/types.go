package types

// Pair is two source image filenames, relative to the source folder.
// First is placed in the upper panel, Second directly beneath it.
type Pair struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

// MergeResult describes a composite written to disk
type MergeResult struct {
	Sources Pair   `json:"sources"`
	Output  string `json:"output"`
	Size    int64  `json:"size"`
}

// BatchOptions controls a random pairing run
type BatchOptions struct {
	Count  int
	Offset int
	// Seed of 0 draws a fresh seed for every run.
	Seed uint64
}

// OutputOptions describes how composites are named and encoded
type OutputOptions struct {
	DirName   string
	Prefix    string
	Extension string
	Quality   int
	Lossless  bool
}
