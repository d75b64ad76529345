package observability

import (
	"go.opentelemetry.io/otel/attribute"
)

// Attribute keys
const (
	attrSuccess = "success"
	attrState   = "state"
	attrMethod  = "method"
)

func successAttr(success bool) attribute.KeyValue {
	return attribute.Bool(attrSuccess, success)
}

// stateAttr groups poll states to keep cardinality bounded: the pending
// vocabulary is kept as-is, terminal failure states are grouped.
func stateAttr(state string) attribute.KeyValue {
	switch state {
	case "starting", "running", "success":
		return attribute.String(attrState, state)
	default:
		return attribute.String(attrState, "failed")
	}
}

func methodAttr(method string) attribute.KeyValue {
	return attribute.String(attrMethod, method)
}
