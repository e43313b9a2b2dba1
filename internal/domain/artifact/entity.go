package artifact

import "time"

// Artifact is a published export file in the artifact store
type Artifact struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modTime"`
}

// Stats summarises the artifacts under one owner
type Stats struct {
	TotalFiles  int64            `json:"totalFiles"`
	TotalSize   int64            `json:"totalSize"`
	FilesByType map[string]int64 `json:"filesByType"`
	RecentFiles []Artifact       `json:"recentFiles"`
}

// PublishResult lists the files written by a publish
type PublishResult struct {
	JSON Artifact `json:"json"`
	CSV  Artifact `json:"csv"`
}
