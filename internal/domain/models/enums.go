// internal/domain/models/enums.go
package models

// OtherValue is the enumeration member that is paired with free text.
const OtherValue = "other"

// ApplicationDomains is the fixed set of application domains, in display order.
var ApplicationDomains = []string{
	"simulation",
	"medical",
	"molecular",
	"climate",
	"materials",
	"astronomy",
	"geoscience",
	OtherValue,
}

// AttributeTypes is the fixed set of data attribute types, in display order.
var AttributeTypes = []string{
	"scalar-fields",
	"vector-fields",
	"tensor-fields",
	"multivariate",
	OtherValue,
}

// domainLabels are the display labels used in contributor breakdowns.
// Values without a label are displayed verbatim.
var domainLabels = map[string]string{
	"climate":    "Climate",
	"sem":        "SEM",
	"ct-objects": "CT Objects",
	"medical":    "Medical",
	"simulation": "Simulation",
	"molecular":  "Molecular",
	OtherValue:   "Other",
}

// DomainLabel returns the display label for an application domain value.
func DomainLabel(domain string) string {
	if l, ok := domainLabels[domain]; ok {
		return l
	}
	return domain
}

// IsApplicationDomain reports whether v is in the fixed domain set.
func IsApplicationDomain(v string) bool {
	return contains(ApplicationDomains, v)
}

// IsAttributeType reports whether v is in the fixed attribute type set.
func IsAttributeType(v string) bool {
	return contains(AttributeTypes, v)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
