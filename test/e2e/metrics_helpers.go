package e2e

import dto "github.com/prometheus/client_model/go"

// hasCounterSample reports whether a gathered MetricFamily named family has
// a sample labeled effect=value with a positive counter.
func hasCounterSample(families []*dto.MetricFamily, family, value string) bool {
	for _, f := range families {
		if f.GetName() != family {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "effect" && l.GetValue() == value {
					if m.GetCounter().GetValue() > 0 {
						return true
					}
				}
			}
		}
	}
	return false
}
