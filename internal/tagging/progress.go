package tagging

import (
	"assetconsole/pkg/metadata"
	"assetconsole/pkg/models"
)

// computeQuantities applies the counting policy: remaining quantity counts
// confirmed tags only, the bound list shows every status.
func computeQuantities(total int, history models.TagHistory) Quantities {
	bound := len(history.Confirmed())
	remaining := total - bound
	if remaining < 0 {
		remaining = 0
	}

	return Quantities{Total: total, Bound: bound, Remaining: remaining}
}

// newDraft builds the next draft from the full history of the asset, drafts included.
func newDraft(assetName string, assetID int, history models.TagHistory) *models.Tag {
	serial := metadata.NextSerial(assetName, history.Serials())

	return &models.Tag{
		AssetID:        assetID,
		AssetName:      assetName,
		SerialNumber:   serial,
		TagCode:        metadata.EncodeTagCode(serial),
		Status:         metadata.StatusDraft,
		AssetCondition: metadata.ConditionActive,
	}
}

// withConfirmed makes sure a just confirmed tag is part of the history even if
// the backend list does not show it yet, so its serial is never issued twice.
func withConfirmed(history models.TagHistory, confirmed models.Tag) models.TagHistory {
	for _, tag := range history {
		if tag.SerialNumber == confirmed.SerialNumber {
			return history
		}
	}

	confirmed.Status = metadata.StatusConfirmed
	return append(history, confirmed)
}
