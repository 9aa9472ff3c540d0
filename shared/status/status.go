// Package status holds the label lookup shared by every view that shows a record status.
package status

import "coating/shared/constant"

// Labels maps a stored status value to its display label.
type Labels map[string]string

// Label falls back to the raw value for unknown statuses and to a fixed label for empty ones.
func (l Labels) Label(value string) string {
	if value == constant.Empty {
		return constant.MessageUnknownStatusLabel
	}

	if label, ok := l[value]; ok {
		return label
	}

	return value
}

func (l Labels) Has(value string) bool {
	_, ok := l[value]

	return ok
}
