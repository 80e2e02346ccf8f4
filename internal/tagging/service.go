package tagging

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"assetconsole/pkg/auditlog"
	custom_error "assetconsole/pkg/errors"
	"assetconsole/pkg/metadata"
	"assetconsole/pkg/models"

	"go.uber.org/zap"
)

const MaxRFIDLength = 24

type Backend interface {
	ListTags(ctx context.Context) (models.TagHistory, error)
	ConfirmTag(ctx context.Context, payload models.TagDraftPayload) (*models.ConfirmResult, error)
	ListAssetTypes(ctx context.Context) ([]models.AssetType, error)
	ListReceivedLineItems(ctx context.Context) (models.LineItems, error)
}

type AuditLogger interface {
	Log(action string, operator string, data map[string]interface{}, item auditlog.Auditable)
}

// DraftChanges are operator edits; nil fields stay untouched.
type DraftChanges struct {
	SerialNumber   *string `json:"serialNumber"`
	RFIDValue      *string `json:"rfidValue"`
	TagCode        *string `json:"tagCode"`
	AssetCondition *string `json:"assetCondition"`
}

type BindingService struct {
	backend  Backend
	auditLog AuditLogger
	logger   *zap.Logger
}

func NewBindingService(backend Backend, auditLog AuditLogger, logger *zap.Logger) *BindingService {
	return &BindingService{
		backend:  backend,
		auditLog: auditLog,
		logger:   logger,
	}
}

// SelectableAssets lists the asset names received through goods receipts.
func (s *BindingService) SelectableAssets(ctx context.Context) ([]string, error) {
	items, err := s.backend.ListReceivedLineItems(ctx)
	if err != nil {
		return nil, err
	}
	return items.AssetNames(), nil
}

// Select switches the session to assetName, abandoning any draft. The tag
// history is reloaded from the backend before the next serial is computed.
// An empty name resets the session.
func (s *BindingService) Select(ctx context.Context, session *Session, assetName string) (Snapshot, error) {
	if err := s.ensureNotSubmitting(session); err != nil {
		return session.Snapshot(), err
	}

	if assetName == "" {
		return s.Reset(session)
	}

	items, err := s.backend.ListReceivedLineItems(ctx)
	if err != nil {
		return session.Snapshot(), err
	}

	total := items.TotalQuantity(assetName)
	if total <= 0 {
		return session.Snapshot(), custom_error.NewValidationError("assetName", fmt.Sprintf("asset %q has no received quantity", assetName))
	}

	history, err := s.backend.ListTags(ctx)
	if err != nil {
		return session.Snapshot(), err
	}

	assetTypes, err := s.backend.ListAssetTypes(ctx)
	if err != nil {
		return session.Snapshot(), err
	}
	assetID := models.NewAssetCatalog(assetTypes).Resolve(assetName)
	if assetID == models.UnresolvedAssetID {
		s.logger.Warn("asset name not found in asset catalog", zap.String("asset_name", assetName))
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.state == StateSubmitting {
		return session.snapshotLocked(), custom_error.ErrConfirmInFlight
	}

	session.resetLocked()
	session.lastActive = time.Now()
	session.completed = false
	session.assetName = assetName
	session.assetID = assetID

	s.applyHistoryLocked(session, total, history.ForAsset(assetName))
	if session.draft == nil {
		return session.snapshotLocked(), custom_error.ErrNothingToBind
	}

	s.logger.Debug("draft generated",
		zap.String("session", session.ID),
		zap.String("asset_name", assetName),
		zap.String("serial", session.draft.SerialNumber),
		zap.Int("remaining", session.quantities.Remaining),
	)

	return session.snapshotLocked(), nil
}

func (s *BindingService) Edit(session *Session, changes DraftChanges) (Snapshot, error) {
	session.mu.Lock()
	defer session.mu.Unlock()

	session.lastActive = time.Now()

	switch session.state {
	case StateSubmitting:
		return session.snapshotLocked(), custom_error.ErrConfirmInFlight
	case StateIdle:
		return session.snapshotLocked(), custom_error.ErrInvalidState
	}

	if changes.RFIDValue != nil && utf8.RuneCountInString(strings.TrimSpace(*changes.RFIDValue)) > MaxRFIDLength {
		return session.snapshotLocked(), custom_error.NewValidationError("rfidValue", fmt.Sprintf("must be at most %d characters", MaxRFIDLength))
	}

	draft := session.draft
	if changes.SerialNumber != nil {
		draft.SerialNumber = strings.TrimSpace(*changes.SerialNumber)
		draft.TagCode = metadata.EncodeTagCode(draft.SerialNumber)
	}
	if changes.TagCode != nil {
		draft.TagCode = strings.TrimSpace(*changes.TagCode)
	}
	if changes.RFIDValue != nil {
		draft.RFIDValue = strings.TrimSpace(*changes.RFIDValue)
	}
	if changes.AssetCondition != nil {
		draft.AssetCondition = metadata.NewAssetCondition(*changes.AssetCondition)
	}

	return session.snapshotLocked(), nil
}

// Confirm submits the draft. On failure the draft is kept for a retry. On
// success the tag history is fetched again and either the next draft is
// generated or the session returns to idle.
func (s *BindingService) Confirm(ctx context.Context, session *Session) (Snapshot, error) {
	draft, total, err := beginConfirm(session)
	if err != nil {
		return session.Snapshot(), err
	}
	assetName := draft.AssetName

	payload := draft.ConfirmPayload()
	if _, err = s.backend.ConfirmTag(ctx, payload); err != nil {
		session.mu.Lock()
		defer session.mu.Unlock()
		session.state = StateAwaitingInput
		s.logger.Warn("binding confirmation failed",
			zap.String("session", session.ID),
			zap.String("serial", draft.SerialNumber),
			zap.Error(err),
		)
		return session.snapshotLocked(), err
	}

	go s.auditLog.Log(
		auditlog.ActionConfirm,
		session.Operator,
		map[string]interface{}{
			"serial_no": payload.SerialNumber,
			"rfid_no":   payload.RFIDValue,
			"qr_code":   payload.TagCode,
			"msg":       "RFID binding confirmed",
		},
		&payload,
	)

	history, fetchErr := s.backend.ListTags(ctx)

	session.mu.Lock()
	defer session.mu.Unlock()

	if fetchErr != nil {
		session.state = StateIdle
		session.draft = nil
		s.logger.Warn("tag history reload failed after confirmation",
			zap.String("session", session.ID),
			zap.String("asset_name", assetName),
			zap.Error(fetchErr),
		)
		return session.snapshotLocked(), fmt.Errorf("binding %s confirmed, select the asset again to continue: %w", draft.SerialNumber, fetchErr)
	}

	s.applyHistoryLocked(session, total, withConfirmed(history.ForAsset(assetName), models.Tag(payload)))
	if session.draft == nil {
		session.resetLocked()
		session.completed = true
		s.logger.Info("all bindings completed", zap.String("session", session.ID), zap.String("asset_name", assetName))
	}

	return session.snapshotLocked(), nil
}

func (s *BindingService) Reset(session *Session) (Snapshot, error) {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.state == StateSubmitting {
		return session.snapshotLocked(), custom_error.ErrConfirmInFlight
	}

	session.resetLocked()
	session.completed = false
	session.lastActive = time.Now()

	return session.snapshotLocked(), nil
}

// Verify decodes a scanned tag code back to its serial.
func (s *BindingService) Verify(code string) (string, error) {
	serial, err := metadata.DecodeTagCode(code)
	if err != nil {
		return "", err
	}
	if serial == "" {
		return "", &custom_error.DecodeError{Code: code, Err: errors.New("missing QR- prefix")}
	}
	return serial, nil
}

// beginConfirm validates the draft and moves the session to submitting.
func beginConfirm(session *Session) (models.Tag, int, error) {
	session.mu.Lock()
	defer session.mu.Unlock()

	switch session.state {
	case StateSubmitting:
		return models.Tag{}, 0, custom_error.ErrConfirmInFlight
	case StateIdle:
		return models.Tag{}, 0, custom_error.ErrInvalidState
	}

	if err := validateDraft(session.draft); err != nil {
		return models.Tag{}, 0, err
	}

	session.state = StateSubmitting
	session.lastActive = time.Now()

	return *session.draft, session.quantities.Total, nil
}

func (s *BindingService) applyHistoryLocked(session *Session, total int, history models.TagHistory) {
	session.bound = history
	session.quantities = computeQuantities(total, history)
	session.draft = nil
	session.state = StateIdle

	if session.quantities.Remaining > 0 {
		session.draft = newDraft(session.assetName, session.assetID, history)
		session.state = StateAwaitingInput
	}
}

func (s *BindingService) ensureNotSubmitting(session *Session) error {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.state == StateSubmitting {
		return custom_error.ErrConfirmInFlight
	}
	return nil
}

func validateDraft(draft *models.Tag) error {
	if draft == nil {
		return custom_error.ErrInvalidState
	}
	if draft.SerialNumber == "" {
		return custom_error.NewValidationError("serialNumber", "Please fill in all required fields (Serial No and RFID/QR Code)")
	}
	if draft.RFIDValue == "" && draft.TagCode == "" {
		return custom_error.NewValidationError("rfidValue", "Please fill in all required fields (Serial No and RFID/QR Code)")
	}
	return nil
}
