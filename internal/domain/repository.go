package domain

// Repository is the subset of repository metadata used by the hex grid.
type Repository struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Stars int    `json:"stars"`
}

// HexCell places a repository on an axial hexagon grid.
type HexCell struct {
	Repository Repository `json:"repository"`
	Q          int        `json:"q"`
	R          int        `json:"r"`
	Level      int        `json:"level"`
}
