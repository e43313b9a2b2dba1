package artifact

// Repository defines the contract for artifact storage operations.
// Paths are relative to the store root and use forward slashes.
type Repository interface {
	Save(dir, name string, data []byte) (*Artifact, error)
	List(dir string) ([]Artifact, error)
	GetFilePath(relativePath string) (string, error)
	Delete(relativePath string) error
	Stats(dir string) (*Stats, error)
}
