package model

// DownloadCount tracks how many times a given release version has been downloaded.
// Counter rows are created implicitly on first increment and are never decremented.
type DownloadCount struct {
	Version       string `json:"version"`
	DownloadCount int64  `json:"download_count"`
}
