package enum

// CustomerType distinguishes private individuals from legal entities
// for fiscal purposes.
type CustomerType string

const (
	CustomerIndividual CustomerType = "pf"
	CustomerCompany    CustomerType = "pj"
)

func (t CustomerType) Valid() bool {
	return t == CustomerIndividual || t == CustomerCompany
}

// ParseCustomerType parses a customer type string, rejecting unknown
// values. An empty string defaults to a private individual.
func ParseCustomerType(value string) (CustomerType, bool) {
	if value == "" {
		return CustomerIndividual, true
	}
	t := CustomerType(value)
	if !t.Valid() {
		return CustomerIndividual, false
	}
	return t, true
}
