package models

// UnresolvedAssetID is used when an asset name is absent from the asset catalog.
const UnresolvedAssetID = 0

type AssetType struct {
	ID   int    `json:"assetId"`
	Name string `json:"assetName"`
}

type LineItem struct {
	AssetID       int     `json:"assetId,omitempty"`
	AssetName     string  `json:"assetName"`
	Quantity      int     `json:"quantity"`
	RFIDTrackable bool    `json:"rfidTrackable"`
	Category      string  `json:"category,omitempty"`
	CategoryID    int     `json:"categoryId,omitempty"`
	Price         float64 `json:"price,omitempty"`
	UnitOfMeasure string  `json:"unitOfMeasure,omitempty"`
}

// GRN is a goods receipt note, the source of received line items.
type GRN struct {
	ID         int        `json:"grnId"`
	Number     string     `json:"grnNumber"`
	VendorName string     `json:"vendorName,omitempty"`
	LineItems  []LineItem `json:"lineItems"`
}

// AssetCatalog maps asset names to catalog ids.
type AssetCatalog map[string]int

func NewAssetCatalog(types []AssetType) AssetCatalog {
	catalog := make(AssetCatalog, len(types))
	for _, t := range types {
		if t.Name == "" || t.ID == 0 {
			continue
		}
		catalog[t.Name] = t.ID
	}
	return catalog
}

func (c AssetCatalog) Resolve(assetName string) int {
	if id, ok := c[assetName]; ok {
		return id
	}
	return UnresolvedAssetID
}

type LineItems []LineItem

// TotalQuantity sums the received quantity of exactly assetName.
func (l LineItems) TotalQuantity(assetName string) int {
	total := 0
	for _, item := range l {
		if item.AssetName == assetName {
			total += item.Quantity
		}
	}
	return total
}

// AssetNames lists distinct asset names in first seen order.
func (l LineItems) AssetNames() []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, item := range l {
		if item.AssetName == "" {
			continue
		}
		if _, ok := seen[item.AssetName]; ok {
			continue
		}
		seen[item.AssetName] = struct{}{}
		names = append(names, item.AssetName)
	}
	return names
}
