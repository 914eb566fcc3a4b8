package types

// BundleFileset is a group of files added to an archive. Entry names are
// computed relative to BaseDir.
type BundleFileset struct {
	Files   []string
	BaseDir string
}

// InstallRequest describes one dependency installation guarded by the
// dependency cache.
type InstallRequest struct {
	// Declaration is the serialized dependency declaration that is hashed.
	Declaration []byte
	// WorkDir holds the hash file and receives the installed dependencies.
	WorkDir string
	// Prepare runs before the install command when the cache is stale.
	Prepare func(workDir string) error
	Command string
	Args    []string
	// Dir is the working directory of the install command.
	Dir string
}

// TreeDescriptor is everything needed to write the platform package tree of
// one action.
type TreeDescriptor struct {
	ID               string
	GroupID          string
	ArtifactID       string
	Version          string
	ActionVersion    string
	Description      string
	Runtime          ActionRuntime
	EntryPoint       string
	ResultType       string
	MemoryLimitBytes int64
	TimeoutSec       int
	Inputs           Inputs
	Tags             []string
	CategoryPath     string
}

// RunReport summarises one packaging run.
type RunReport struct {
	ActionType ActionType    `yaml:"action_type"`
	Runtime    ActionRuntime `yaml:"runtime"`
	Workspace  string        `yaml:"workspace"`
	Bundle     string        `yaml:"bundle"`
	TreeDir    string        `yaml:"tree_dir,omitempty"`
	Events     []Event       `yaml:"events"`
}
