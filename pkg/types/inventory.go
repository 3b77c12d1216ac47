package domain

import (
	"encoding/json"
	"fmt"
)

// Price is the body of a merchant SKU price update.
type Price struct {
	Price            float64                `json:"price"`
	FulfillmentNodes []FulfillmentNodePrice `json:"fulfillment_nodes,omitempty"`
}

// FulfillmentNodePrice overrides the price at one fulfillment node.
type FulfillmentNodePrice struct {
	NodeID string  `json:"fulfillment_node_id"`
	Price  float64 `json:"fulfillment_node_price"`
}

// MarshalJSON rounds prices to cents.
func (p Price) MarshalJSON() ([]byte, error) {
	type alias Price
	a := alias(p)
	a.Price = Round2(a.Price)
	if len(p.FulfillmentNodes) > 0 {
		a.FulfillmentNodes = make([]FulfillmentNodePrice, len(p.FulfillmentNodes))
		for i, n := range p.FulfillmentNodes {
			a.FulfillmentNodes[i] = FulfillmentNodePrice{NodeID: n.NodeID, Price: Round2(n.Price)}
		}
	}
	return json.Marshal(a)
}

// Validate rejects negative prices.
func (p Price) Validate() error {
	if p.Price < 0 {
		return fmt.Errorf("price %.2f: %w (must be >= 0)", p.Price, ErrOutOfRange)
	}
	for _, n := range p.FulfillmentNodes {
		if n.NodeID == "" {
			return fmt.Errorf("fulfillment_node_id: %w", ErrMissingField)
		}
		if n.Price < 0 {
			return fmt.Errorf("fulfillment_node_price %.2f: %w (must be >= 0)", n.Price, ErrOutOfRange)
		}
	}
	return nil
}

// Inventory is the body of a merchant SKU inventory update.
type Inventory struct {
	FulfillmentNodes []FulfillmentNodeInventory `json:"fulfillment_nodes"`
}

// FulfillmentNodeInventory is the quantity on hand at one fulfillment node.
type FulfillmentNodeInventory struct {
	NodeID   string `json:"fulfillment_node_id"`
	Quantity int    `json:"quantity"`
}

// Validate requires at least one node and non-negative quantities.
func (inv Inventory) Validate() error {
	if len(inv.FulfillmentNodes) == 0 {
		return fmt.Errorf("fulfillment_nodes: %w", ErrMissingField)
	}
	for _, n := range inv.FulfillmentNodes {
		if n.NodeID == "" {
			return fmt.Errorf("fulfillment_node_id: %w", ErrMissingField)
		}
		if n.Quantity < 0 {
			return fmt.Errorf("quantity %d: %w (must be >= 0)", n.Quantity, ErrOutOfRange)
		}
	}
	return nil
}

// Images is the body of a merchant SKU image update.
type Images struct {
	MainImageURL    string           `json:"main_image_url,omitempty"`
	SwatchImageURL  string           `json:"swatch_image_url,omitempty"`
	AlternateImages []AlternateImage `json:"alternate_images,omitempty"`
}

// AlternateImage is an image in a numbered slot.
type AlternateImage struct {
	SlotID int    `json:"image_slot_id"`
	URL    string `json:"image_url"`
}
