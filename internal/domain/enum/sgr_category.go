package enum

// SGRCategory is the deposit-return packaging category of a product.
// Products outside the scheme carry an empty category.
type SGRCategory string

const (
	SGRNone   SGRCategory = ""
	SGRPet    SGRCategory = "PET"
	SGRGlass  SGRCategory = "Sticla"
	SGRCan    SGRCategory = "Doza"
)

// SGRDepositValue is the per-unit deposit charged by the scheme, in RON.
const SGRDepositValue = 0.5

// SGRCategories lists the scheme categories in synthesis order.
var SGRCategories = []SGRCategory{SGRPet, SGRGlass, SGRCan}

// Code returns the reserved catalog code carried by the synthetic deposit
// line for this category, as expected by the fiscal export.
func (c SGRCategory) Code() string {
	switch c {
	case SGRPet:
		return "1112"
	case SGRGlass:
		return "1113"
	case SGRCan:
		return "1114"
	}
	return ""
}

// LineName returns the printed name of the synthetic deposit line.
func (c SGRCategory) LineName() string {
	switch c {
	case SGRPet:
		return "Garantie SGR PET"
	case SGRGlass:
		return "Garantie SGR Sticla"
	case SGRCan:
		return "Garantie SGR Doza"
	}
	return ""
}

func (c SGRCategory) Valid() bool {
	return c == SGRNone || c == SGRPet || c == SGRGlass || c == SGRCan
}

// ParseSGRCategory parses a category string, rejecting unknown values.
func ParseSGRCategory(value string) (SGRCategory, bool) {
	c := SGRCategory(value)
	if !c.Valid() {
		return SGRNone, false
	}
	return c, true
}
