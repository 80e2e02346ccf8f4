package auditlog

import (
	"assetconsole/pkg/models"

	"go.uber.org/zap"
)

const (
	ActionConfirm   = "confirm"
	ActionImport    = "import"
	ActionDuplicate = "duplicate"
)

// Repository persists entries and reports when a confirmation was stored as a duplicate.
type Repository interface {
	PersistLog(auditLog models.AuditLog, data interface{}) (bool, error)
}

type Auditlog struct {
	r      Repository
	logger *zap.Logger
}

type Auditable interface {
	CreateLogView() models.AuditLog
}

// Log records an action performed by operator. Failures are logged and never
// reach the caller. A serial confirmed twice is stored as a duplicate entry
// so concurrent sessions that issued one serial twice show up.
func (a *Auditlog) Log(action string, operator string, data map[string]interface{}, item Auditable) {
	auditLog := item.CreateLogView()
	auditLog.Action = action
	auditLog.Operator = operator

	duplicated, err := a.r.PersistLog(auditLog, data)
	if err != nil {
		a.logger.Error("unable to create audit log entry",
			zap.String("action", action),
			zap.String("serial", auditLog.SerialNumber),
			zap.Error(err),
		)
		return
	}

	if duplicated {
		a.logger.Warn("serial confirmed more than once",
			zap.String("serial", auditLog.SerialNumber),
			zap.String("asset_name", auditLog.AssetName),
			zap.String("operator", operator),
		)
		return
	}

	a.logger.Debug("created audit log entry",
		zap.String("action", auditLog.Action),
		zap.String("serial", auditLog.SerialNumber),
	)
}

func NewAuditLog(repository Repository, logger *zap.Logger) *Auditlog {
	a := Auditlog{r: repository, logger: logger}

	return &a
}

// Nop is used when no audit database is configured.
type Nop struct{}

func (Nop) Log(string, string, map[string]interface{}, Auditable) {}
