package manifest

// FileName is the manifest file written into the project root.
const FileName = "package.json"

// InitialVersion is the version every new project starts at.
const InitialVersion = "0.1.0"

// Manifest is the minimal package.json written for a new project.
type Manifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Private bool   `json:"private"`
}

// Package holds the package.json fields read back from installed
// dependencies.
type Package struct {
	Name    string            `json:"name"`
	Version string            `json:"version"`
	Private bool              `json:"private,omitempty"`
	Scripts map[string]string `json:"scripts,omitempty"`
}

// New returns the manifest for a new project called name.
func New(name string) *Manifest {
	return &Manifest{
		Name:    name,
		Version: InitialVersion,
		Private: true,
	}
}
