package viewer

import "github.com/opendataloader-project/odlsite/internal/samples"

// Status is the lifecycle of one payload load.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// DataState is the load state of one payload for the selected sample.
type DataState struct {
	Status  Status `json:"status"`
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
}

// Busy reports whether a new load would be redundant.
func (d DataState) Busy() bool {
	return d.Status == StatusLoading || d.Status == StatusReady
}

func initialStates() map[samples.DataType]DataState {
	m := make(map[samples.DataType]DataState, len(samples.DataTypes))
	for _, dt := range samples.DataTypes {
		m[dt] = DataState{Status: StatusIdle}
	}
	return m
}
