package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"
)

const (
	maxBullets = 5
	maxCPSIA   = 7
)

// Product is a merchant SKU record. Fields below the Read-only marker are
// filled by the API and never sent back.
type Product struct {
	Title                   string           `json:"product_title"`
	BrowseNodeID            int              `json:"jet_browse_node_id,omitempty"`
	AmazonItemTypeKeyword   string           `json:"amazon_item_type_keyword,omitempty"`
	CategoryPath            string           `json:"category_path,omitempty"`
	ProductCodes            []ProductCode    `json:"standard_product_codes,omitempty"`
	ASIN                    string           `json:"ASIN,omitempty"`
	MultipackQuantity       int              `json:"multipack_quantity"`
	Brand                   string           `json:"brand,omitempty"`
	Manufacturer            string           `json:"manufacturer,omitempty"`
	MfrPartNumber           string           `json:"mfr_part_number,omitempty"`
	Description             string           `json:"product_description,omitempty"`
	Bullets                 []string         `json:"bullets,omitempty"`
	UnitsForPricePerUnit    float64          `json:"number_units_for_price_per_unit,omitempty"`
	UnitTypeForPricePerUnit string           `json:"type_of_unit_for_price_per_unit,omitempty"`
	ShippingWeightPounds    float64          `json:"shipping_weight_pounds,omitempty"`
	PackageLengthInches     float64          `json:"package_length_inches,omitempty"`
	PackageWidthInches      float64          `json:"package_width_inches,omitempty"`
	PackageHeightInches     float64          `json:"package_height_inches,omitempty"`
	DisplayLengthInches     float64          `json:"display_length_inches,omitempty"`
	DisplayWidthInches      float64          `json:"display_width_inches,omitempty"`
	DisplayHeightInches     float64          `json:"display_height_inches,omitempty"`
	Prop65                  bool             `json:"prop_65"`
	LegalDisclaimer         string           `json:"legal_disclaimer_description,omitempty"`
	CPSIAStatements         []string         `json:"cpsia_cautionary_statements,omitempty"`
	CountryOfOrigin         string           `json:"country_of_origin,omitempty"`
	SafetyWarning           string           `json:"safety_warning,omitempty"`
	StartSellingDate        *Timestamp       `json:"start_selling_date,omitempty"`
	FulfillmentTime         int              `json:"fulfillment_time,omitempty"`
	MSRP                    float64          `json:"msrp,omitempty"`
	MAPPrice                float64          `json:"map_price,omitempty"`
	MAPImplementation       MAPType          `json:"map_implementation"`
	TaxCode                 TaxCode          `json:"product_tax_code,omitempty"`
	NoReturnFeeAdjustment   float64          `json:"no_return_fee_adjustment,omitempty"`
	ExcludeFromFeeAdjust    bool             `json:"exclude_from_fee_adjustments"`
	ShipsAlone              bool             `json:"ships_alone"`
	Attributes              []SKUAttribute   `json:"attributes_node_specific,omitempty"`
	MainImageURL            string           `json:"main_image_url,omitempty"`
	SwatchImageURL          string           `json:"swatch_image_url,omitempty"`
	AlternateImages         []AlternateImage `json:"alternate_images,omitempty"`

	// Read-only
	SKU           string        `json:"merchant_sku,omitempty"`
	MerchantSKUID string        `json:"merchant_sku_id,omitempty"`
	JetRetailSKU  string        `json:"jet_retail_sku,omitempty"`
	ProducerID    string        `json:"producer_id,omitempty"`
	CorrelationID string        `json:"correlation_id,omitempty"`
	Status        ProductStatus `json:"status,omitempty"`
	SubStatus     []string      `json:"sub_status,omitempty"`
	SKULastUpdate *Timestamp    `json:"sku_last_update,omitempty"`
}

// SKUAttribute is a category-specific attribute value.
type SKUAttribute struct {
	ID    int    `json:"attribute_id"`
	Value string `json:"attribute_value"`
	Unit  string `json:"attribute_value_unit,omitempty"`
}

// MarshalJSON produces the request body for a SKU upload: measurements are
// rounded to cents, list fields are capped at the API limits, and
// read-only fields are dropped.
func (p Product) MarshalJSON() ([]byte, error) {
	type alias Product
	a := alias(p)

	a.UnitsForPricePerUnit = Round2(a.UnitsForPricePerUnit)
	a.ShippingWeightPounds = Round2(a.ShippingWeightPounds)
	a.PackageLengthInches = Round2(a.PackageLengthInches)
	a.PackageWidthInches = Round2(a.PackageWidthInches)
	a.PackageHeightInches = Round2(a.PackageHeightInches)
	a.DisplayLengthInches = Round2(a.DisplayLengthInches)
	a.DisplayWidthInches = Round2(a.DisplayWidthInches)
	a.DisplayHeightInches = Round2(a.DisplayHeightInches)
	a.MSRP = Round2(a.MSRP)
	a.MAPPrice = Round2(a.MAPPrice)
	a.NoReturnFeeAdjustment = Round2(a.NoReturnFeeAdjustment)

	if a.FulfillmentTime < 0 {
		a.FulfillmentTime = 0
	}
	if a.MAPImplementation == "" {
		a.MAPImplementation = MAPNoRestrictions
	}
	if len(a.Bullets) > maxBullets {
		a.Bullets = a.Bullets[:maxBullets]
	}
	if len(a.CPSIAStatements) > maxCPSIA {
		a.CPSIAStatements = a.CPSIAStatements[:maxCPSIA]
	}

	a.SKU = ""
	a.MerchantSKUID = ""
	a.JetRetailSKU = ""
	a.ProducerID = ""
	a.CorrelationID = ""
	a.Status = StatusNone
	a.SubStatus = nil
	a.SKULastUpdate = nil

	return json.Marshal(a)
}

// ResolveSKU returns the merchant SKU, falling back to the first product
// code in type preference order.
func (p *Product) ResolveSKU() (string, error) {
	if p.SKU != "" {
		return p.SKU, nil
	}
	for _, code := range SortProductCodes(p.ProductCodes) {
		if code.Code != "" {
			return code.Code, nil
		}
	}
	return "", ErrNoSKUFound
}

// Validate checks field lengths and enum values. All violations are
// reported together.
func (p *Product) Validate() error {
	var errs []error

	if err := checkLength("product_title", p.Title, 5, 500); err != nil {
		errs = append(errs, err)
	}
	errs = appendOptional(errs, "brand", p.Brand, 50)
	errs = appendOptional(errs, "manufacturer", p.Manufacturer, 50)
	errs = appendOptional(errs, "product_description", p.Description, 2000)
	errs = appendOptional(errs, "legal_disclaimer_description", p.LegalDisclaimer, 500)
	errs = appendOptional(errs, "country_of_origin", p.CountryOfOrigin, 500)
	errs = appendOptional(errs, "safety_warning", p.SafetyWarning, 500)

	for i, b := range p.Bullets {
		if err := checkLength(fmt.Sprintf("bullets[%d]", i), b, 1, 500); err != nil {
			errs = append(errs, err)
		}
	}

	for _, code := range p.ProductCodes {
		if err := code.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	if p.MultipackQuantity < 0 {
		errs = append(errs, fmt.Errorf("multipack_quantity %d: %w (must be >= 0)",
			p.MultipackQuantity, ErrOutOfRange))
	}

	if _, err := ParseMAPType(string(p.MAPImplementation)); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseTaxCode(string(p.TaxCode)); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func checkLength(field, v string, minLen, maxLen int) error {
	n := utf8.RuneCountInString(v)
	if n < minLen || n > maxLen {
		return fmt.Errorf("%s: %w (must be %d-%d characters, got %d)",
			field, ErrOutOfRange, minLen, maxLen, n)
	}
	return nil
}

// appendOptional validates v only when it is set.
func appendOptional(errs []error, field, v string, maxLen int) []error {
	if v == "" {
		return errs
	}
	if err := checkLength(field, v, 1, maxLen); err != nil {
		return append(errs, err)
	}
	return errs
}
