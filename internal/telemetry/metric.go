package telemetry

// Metric is one sensor reading as served at GET /api/data.
//
// Label is the identity used to match readings to tiles. ID is the source's
// slot index and is not stable across polls, so nothing keys on it.
// JSON null and missing fields decode to the empty string. An empty Label,
// including a literal "" sent by the source, means the reading has no label:
// it gets no tile and is skipped by reconciliation.
type Metric struct {
	ID    int    `json:"Id"`
	Label string `json:"Label"`
	Value string `json:"Value"`
	Group string `json:"Sensor"`
}

// HasLabel reports whether the reading carries a label it can be matched by.
func (m Metric) HasLabel() bool {
	return m.Label != ""
}
