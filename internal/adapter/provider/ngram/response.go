package ngram

// apiSeries mirrors one element of the Ngram Viewer JSON array.
type apiSeries struct {
	Ngram      string    `json:"ngram"`
	Parent     string    `json:"parent"`
	Type       string    `json:"type"`
	Timeseries []float64 `json:"timeseries"`
}
