package build

import "github.com/pagesmith/pagesmith/internal/datasource"

// Request is one build invocation's parameters. Created per call and
// discarded after; all paths are relative to their respective roots.
type Request struct {
	TemplatePath string            `json:"template"`
	DataSources  []datasource.Spec `json:"dataSources"`
	OutputName   string            `json:"output"`
}

// Result is the outcome of a successful build: the artifact's path relative
// to the output root.
type Result struct {
	Path string `json:"path"`
}

// BatchRequest expands into one Request per JSON file found in DataFolder.
type BatchRequest struct {
	TemplatePath string `json:"template"`
	DataFolder   string `json:"dataFolder"`
	OutputBase   string `json:"outputBase"`
}

// ItemStatus is the outcome classification of one batch item.
type ItemStatus string

const (
	StatusSuccess ItemStatus = "success"
	StatusError   ItemStatus = "error"
)

// ItemResult is one outcome per processed data file. A batch report holds
// exactly one ItemResult per discovered file, in directory-listing order.
type ItemResult struct {
	File   string     `json:"file"`
	Status ItemStatus `json:"status"`
	Path   string     `json:"path,omitempty"`
	Error  string     `json:"error,omitempty"`
}
