package domain

// DBHealth describes an auxiliary database on disk.
type DBHealth struct {
	Path     string `json:"path"`
	DiskSize int64  `json:"diskSize"`
}

// GitHealth reports source-control detection.
type GitHealth struct {
	Available       bool   `json:"available"`
	RepositoryFound bool   `json:"repositoryFound"`
	Workdir         string `json:"workdir,omitempty"`
	Libgit2Version  string `json:"libgit2Version"`
	Error           string `json:"error,omitempty"`
}

// FilePickerHealth reports index readiness.
type FilePickerHealth struct {
	Initialized  bool   `json:"initialized"`
	BasePath     string `json:"basePath,omitempty"`
	IsScanning   *bool  `json:"isScanning,omitempty"`
	IndexedFiles *int   `json:"indexedFiles,omitempty"`
	Error        string `json:"error,omitempty"`
}

// DBComponentHealth reports one ranking database (frecency or query history).
type DBComponentHealth struct {
	Initialized   bool      `json:"initialized"`
	DBHealthcheck *DBHealth `json:"dbHealthcheck,omitempty"`
	Error         string    `json:"error,omitempty"`
}

// HealthCheck is the engine's self-diagnosis.
// Each sub-report may carry its own error independently of the others.
type HealthCheck struct {
	Version      string            `json:"version"`
	Git          GitHealth         `json:"git"`
	FilePicker   FilePickerHealth  `json:"filePicker"`
	Frecency     DBComponentHealth `json:"frecency"`
	QueryTracker DBComponentHealth `json:"queryTracker"`
}
