package transform

import (
	"github.com/grafana/grafana-plugin-sdk-go/data"
)

const (
	TimeFieldName  = "Time"
	ValueFieldName = "Value"

	emptyFrameName = "empty"
)

// EmptyFrame is returned when the backend had nothing for a query. It keeps
// the refId so the host can match it to the panel target.
func EmptyFrame(refID string) *data.Frame {
	frame := data.NewFrame(emptyFrameName)
	frame.RefID = refID
	return frame
}

func IsEmpty(f *data.Frame) bool {
	return f == nil || len(f.Fields) == 0
}
