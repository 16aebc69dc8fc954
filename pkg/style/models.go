// Package style loads and indexes the fixed catalog of caption styles.
package style

// Style pairs a base still image with a base looping video under one id.
// The id matches the asset folder name. Styles are immutable after load.
type Style struct {
	ID        string
	Name      string
	Source    string // attribution for the base media
	ImagePath string
	VideoPath string
}

// Info is the enumeration view of a style. Asset paths stay internal.
type Info struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Source string `json:"source"`
}

// metadata is the required per-style JSON sidecar.
type metadata struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}
