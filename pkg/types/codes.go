package domain

import (
	"fmt"
	"slices"
	"strings"
)

// ProductCodeType identifies a standard product code scheme.
type ProductCodeType string

// Product code types, in preferred SKU fallback order.
const (
	CodeUPC    ProductCodeType = "UPC"
	CodeEAN    ProductCodeType = "EAN"
	CodeGTIN14 ProductCodeType = "GTIN-14"
	CodeISBN13 ProductCodeType = "ISBN-13"
	CodeISBN10 ProductCodeType = "ISBN-10"
)

var codeLengths = map[ProductCodeType]int{
	CodeUPC:    12,
	CodeEAN:    13,
	CodeGTIN14: 14,
	CodeISBN13: 13,
	CodeISBN10: 10,
}

var codeSortOrder = map[ProductCodeType]int{
	CodeUPC:    1,
	CodeEAN:    2,
	CodeGTIN14: 3,
	CodeISBN13: 4,
	CodeISBN10: 5,
}

// ParseProductCodeType matches s case-insensitively.
func ParseProductCodeType(s string) (ProductCodeType, error) {
	for t := range codeLengths {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("standard_product_code_type %q: %w", s, ErrInvalidEnum)
}

// ProductCode is a standard identifier attached to a product.
type ProductCode struct {
	Code string          `json:"standard_product_code"`
	Type ProductCodeType `json:"standard_product_code_type"`
}

// NewProductCode validates code against the digit count its type requires.
func NewProductCode(code string, codeType ProductCodeType) (ProductCode, error) {
	pc := ProductCode{Code: strings.TrimSpace(code), Type: codeType}
	if err := pc.Validate(); err != nil {
		return ProductCode{}, err
	}
	return pc, nil
}

// Validate checks the code length for its type.
func (p ProductCode) Validate() error {
	if p.Code == "" {
		return fmt.Errorf("standard_product_code: %w", ErrMissingField)
	}
	want, ok := codeLengths[p.Type]
	if !ok {
		return fmt.Errorf("standard_product_code_type %q: %w", p.Type, ErrInvalidEnum)
	}
	if len(p.Code) != want {
		return fmt.Errorf("%s code %q must be %d digits: %w",
			p.Type, p.Code, want, ErrInvalidProductCode)
	}
	return nil
}

// SortProductCodes returns a copy of codes ordered by type preference.
func SortProductCodes(codes []ProductCode) []ProductCode {
	out := slices.Clone(codes)
	slices.SortStableFunc(out, func(a, b ProductCode) int {
		return codeSortOrder[a.Type] - codeSortOrder[b.Type]
	})
	return out
}
