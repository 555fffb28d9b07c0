package models

// Repository is one upstream source location for a package.
type Repository struct {
	Owner string `json:"owner" yaml:"owner"`
	Name  string `json:"name" yaml:"name"`
}

// Release is the subset of the GitHub release payload the proxy uses.
type Release struct {
	Assets []Asset `json:"assets"`
}

// Asset is one downloadable file attached to an upstream release. The id is
// only meaningful in combination with the repository it was listed from.
type Asset struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}
