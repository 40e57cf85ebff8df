package enums

import "fmt"

// ProductType represents the canonical catalog categories.
type ProductType string

const (
	ProductTypeElectronics ProductType = "ELECTRONICS"
	ProductTypeClothes     ProductType = "CLOTHES"
	ProductTypeFood        ProductType = "FOOD"
	ProductTypeBooks       ProductType = "BOOKS"
	ProductTypeToys        ProductType = "TOYS"
	ProductTypeOther       ProductType = "OTHER"
)

var validProductTypes = []ProductType{
	ProductTypeElectronics,
	ProductTypeClothes,
	ProductTypeFood,
	ProductTypeBooks,
	ProductTypeToys,
	ProductTypeOther,
}

// String implements fmt.Stringer.
func (p ProductType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductType.
func (p ProductType) IsValid() bool {
	for _, candidate := range validProductTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductType converts raw input into a ProductType.
func ParseProductType(value string) (ProductType, error) {
	for _, candidate := range validProductTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product type %q", value)
}
