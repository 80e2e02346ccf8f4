package backend

import (
	"context"

	"assetconsole/pkg/models"
)

func (c *Client) ListAssetTypes(ctx context.Context) ([]models.AssetType, error) {
	return getList[models.AssetType](ctx, c, "list asset types", assetListPath)
}

// ListReceivedLineItems flattens the line items of every goods receipt note.
func (c *Client) ListReceivedLineItems(ctx context.Context) (models.LineItems, error) {
	grns, err := getList[models.GRN](ctx, c, "list goods receipts", grnListPath)
	if err != nil {
		return nil, err
	}

	var items models.LineItems
	for _, grn := range grns {
		items = append(items, grn.LineItems...)
	}

	return items, nil
}
