package models

import (
	"encoding/json"
	"testing"

	"assetconsole/pkg/metadata"

	"github.com/stretchr/testify/assert"
)

func TestTagHistoryFilters(t *testing.T) {
	history := TagHistory{
		{AssetName: "Laptop", SerialNumber: "SYS-LAP-0001", Status: metadata.StatusConfirmed},
		{AssetName: "Laptop", SerialNumber: "SYS-LAP-0002", Status: metadata.StatusDraft},
		{AssetName: "laptop", SerialNumber: "SYS-LAP-0009", Status: metadata.StatusConfirmed},
		{AssetName: "Monitor", SerialNumber: "SYS-MON-0001", Status: metadata.StatusConfirmed},
	}

	laptops := history.ForAsset("Laptop")
	assert.Len(t, laptops, 2)
	assert.Equal(t, []string{"SYS-LAP-0001", "SYS-LAP-0002"}, laptops.Serials())
	assert.Len(t, laptops.Confirmed(), 1)
	assert.Empty(t, history.ForAsset("Printer"))
}

func TestConfirmPayload(t *testing.T) {
	draft := Tag{AssetID: 4, AssetName: "Monitor", SerialNumber: "SYS-MON-0003", TagCode: "QR-x"}

	payload := draft.ConfirmPayload()
	assert.Equal(t, metadata.StatusConfirmed, payload.Status)
	assert.Equal(t, metadata.ConditionActive, payload.AssetCondition)
	assert.True(t, draft.IsDraft())

	body, err := json.Marshal(payload)
	assert.NoError(t, err)
	assert.JSONEq(t, `{
		"assetTaggingId": 0,
		"assetId": 4,
		"assetName": "Monitor",
		"serialNo": "SYS-MON-0003",
		"rfidNo": "",
		"qrCode": "QR-x",
		"status": 1,
		"assetStatus": "Active"
	}`, string(body))
}

func TestLineItems(t *testing.T) {
	items := LineItems{
		{AssetName: "Monitor", Quantity: 2},
		{AssetName: "Laptop", Quantity: 5},
		{AssetName: "Monitor", Quantity: 1},
		{AssetName: "", Quantity: 3},
	}

	assert.Equal(t, 3, items.TotalQuantity("Monitor"))
	assert.Equal(t, 0, items.TotalQuantity("monitor"))
	assert.Equal(t, []string{"Monitor", "Laptop"}, items.AssetNames())
}

func TestAssetCatalogResolve(t *testing.T) {
	catalog := NewAssetCatalog([]AssetType{{ID: 7, Name: "Monitor"}, {ID: 0, Name: "Ghost"}})

	assert.Equal(t, 7, catalog.Resolve("Monitor"))
	assert.Equal(t, UnresolvedAssetID, catalog.Resolve("Ghost"))
	assert.Equal(t, UnresolvedAssetID, catalog.Resolve("Printer"))
}
