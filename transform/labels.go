package transform

import (
	"regexp"
	"sort"
	"strings"

	"github.com/grafana/grafana-plugin-sdk-go/data"

	"dns-stats-datasource/models"
)

const (
	LabelZone       = "zone"
	LabelRecordType = "record_type"
	LabelMetric     = "metric"
)

type Labels = data.Labels

var (
	legendPattern = regexp.MustCompile(`\{\{\s*(.+?)\s*\}\}`)
	labelOrder    = []string{LabelZone, LabelRecordType}
)

// RenderTemplate expands {{name}} placeholders from data. Unknown names
// expand to "".
func RenderTemplate(pattern string, data Labels) string {
	return legendPattern.ReplaceAllStringFunc(pattern, func(m string) string {
		return data[legendPattern.FindStringSubmatch(m)[1]]
	})
}

// FormatLabels joins the non-empty labels as key=value pairs, zone and
// record_type first and any others in key order.
func FormatLabels(labels Labels) string {
	parts := make([]string, 0, len(labels))
	for _, k := range orderedKeys(labels) {
		if v := labels[k]; v != "" {
			parts = append(parts, k+"="+v)
		}
	}
	return strings.Join(parts, ",")
}

func orderedKeys(labels Labels) []string {
	keys := make([]string, 0, len(labels))
	for _, k := range labelOrder {
		if _, ok := labels[k]; ok {
			keys = append(keys, k)
		}
	}
	var rest []string
	for k := range labels {
		if k != LabelZone && k != LabelRecordType {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func rawLabels(q models.Query) Labels {
	return Labels{
		LabelZone:       q.Zone.String(),
		LabelRecordType: string(q.RecordType),
	}
}

// labelInfo picks the display name and the label set for one value field.
func labelInfo(labels Labels, q models.Query, vars models.ScopedVars) (string, Labels) {
	if q.LegendFormat != "" {
		return RenderTemplate(Interpolate(q.LegendFormat, vars), labels), labels
	}

	metric := labels[LabelMetric]
	rest := make(Labels, len(labels))
	for k, v := range labels {
		if k != LabelMetric && v != "" {
			rest[k] = v
		}
	}

	name := FormatLabels(rest)
	if metric != "" {
		name = metric + " " + name
	}
	return name, rest
}
