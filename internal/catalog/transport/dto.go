package transport

// StatsResponse describes the currently published catalog snapshot.
type StatsResponse struct {
	Source     string `json:"source"`
	Size       int    `json:"size"`
	RowsRead   int    `json:"rowsRead"`
	Skipped    int    `json:"skipped"`
	Duplicates int    `json:"duplicates"`
	LoadedAt   string `json:"loadedAt"`
}

// ProductResponse is a single resolved product.
type ProductResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ReloadResponse reports the outcome of a catalog reload.
type ReloadResponse struct {
	Source     string `json:"source"`
	Size       int    `json:"size"`
	RowsRead   int    `json:"rowsRead"`
	Skipped    int    `json:"skipped"`
	Duplicates int    `json:"duplicates"`
}
