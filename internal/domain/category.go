package domain

import (
	"strings"
)

// Category is a fixed asset-class bucket. The wire name (LargeCap, Bonds, ...)
// is what appears in price frames and in the stored holdings JSON.
type Category string

const (
	CategoryLargeCap    Category = "LargeCap"
	CategoryMidCap      Category = "MidCap"
	CategorySmallCap    Category = "SmallCap"
	CategoryBonds       Category = "Bonds"
	CategoryGold        Category = "Gold"
	CategorySilver      Category = "Silver"
	CategoryCommodities Category = "Commodities"
)

// Categories returns every category in its canonical order.
func Categories() []Category {
	return []Category{
		CategoryLargeCap,
		CategoryMidCap,
		CategorySmallCap,
		CategoryBonds,
		CategoryGold,
		CategorySilver,
		CategoryCommodities,
	}
}

// CategoryFromWire parses a wire name case-insensitively.
func CategoryFromWire(v string) (Category, error) {
	for _, c := range Categories() {
		if strings.EqualFold(string(c), v) {
			return c, nil
		}
	}
	return "", InvalidCategoryError{Value: v}
}

func (c Category) String() string {
	return string(c)
}

// MarshalText lets Category serve as a JSON map key.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := CategoryFromWire(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
