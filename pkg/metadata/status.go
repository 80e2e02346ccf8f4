package metadata

import (
	"encoding/json"
	"fmt"
	"strings"
)

type ConfirmationStatus int

const (
	StatusDraft     ConfirmationStatus = 0
	StatusConfirmed ConfirmationStatus = 1
)

func NewConfirmationStatus(value int) (ConfirmationStatus, error) {
	status := ConfirmationStatus(value)
	if !status.isValid() {
		return StatusDraft, fmt.Errorf("invalid confirmation status: %d", value)
	}
	return status, nil
}

func (s ConfirmationStatus) isValid() bool {
	switch s {
	case StatusDraft, StatusConfirmed:
		return true
	default:
		return false
	}
}

func (s ConfirmationStatus) IsConfirmed() bool {
	return s == StatusConfirmed
}

// String returns the label operators see in the binding tables.
func (s ConfirmationStatus) String() string {
	if s == StatusConfirmed {
		return "Completed"
	}
	return "Pending"
}

// UnmarshalJSON tolerates unknown codes coming from the backend and treats them as drafts.
func (s *ConfirmationStatus) UnmarshalJSON(data []byte) error {
	var value int
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("confirmation status must be numeric: %w", err)
	}

	status, err := NewConfirmationStatus(value)
	if err != nil {
		status = StatusDraft
	}
	*s = status

	return nil
}

type AssetCondition string

const ConditionActive AssetCondition = "Active"

func NewAssetCondition(value string) AssetCondition {
	normalized := strings.TrimSpace(value)
	if normalized == "" {
		return ConditionActive
	}
	return AssetCondition(normalized)
}

func (c AssetCondition) String() string {
	return string(c)
}
