package models

import (
	"assetconsole/pkg/metadata"
)

// Tag is one physical asset unit bound to a serial, an optional RFID value and a tag code.
// JSON names follow the backend RFIDBinding contract.
type Tag struct {
	ID             int                         `json:"assetTaggingId"`
	AssetID        int                         `json:"assetId"`
	AssetName      string                      `json:"assetName"`
	SerialNumber   string                      `json:"serialNo"`
	RFIDValue      string                      `json:"rfidNo"`
	TagCode        string                      `json:"qrCode"`
	Status         metadata.ConfirmationStatus `json:"status"`
	AssetCondition metadata.AssetCondition     `json:"assetStatus"`
}

// TagDraftPayload is the body of a confirmation request.
type TagDraftPayload Tag

func (t *Tag) IsDraft() bool {
	return !t.Status.IsConfirmed()
}

// ConfirmPayload returns the draft as it is sent to the backend, always Confirmed.
func (t *Tag) ConfirmPayload() TagDraftPayload {
	payload := TagDraftPayload(*t)
	payload.Status = metadata.StatusConfirmed
	payload.AssetCondition = metadata.NewAssetCondition(string(t.AssetCondition))

	return payload
}

func (t *Tag) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   t.ID,
		ResourceType: "asset_tag",
		AssetName:    t.AssetName,
		SerialNumber: t.SerialNumber,
	}
}

func (p *TagDraftPayload) CreateLogView() AuditLog {
	tag := Tag(*p)
	return tag.CreateLogView()
}

// TagHistory is the full tag list returned by the backend, every status included.
type TagHistory []Tag

// ForAsset keeps the tags of exactly assetName. Matching is case sensitive.
func (h TagHistory) ForAsset(assetName string) TagHistory {
	var tags TagHistory
	for _, tag := range h {
		if tag.AssetName == assetName {
			tags = append(tags, tag)
		}
	}
	return tags
}

func (h TagHistory) Confirmed() TagHistory {
	var tags TagHistory
	for _, tag := range h {
		if tag.Status.IsConfirmed() {
			tags = append(tags, tag)
		}
	}
	return tags
}

func (h TagHistory) Serials() []string {
	serials := make([]string, 0, len(h))
	for _, tag := range h {
		serials = append(serials, tag.SerialNumber)
	}
	return serials
}

// ConfirmResult is the backend answer to BindRFID.
type ConfirmResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type ImportResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
