package auditlog

import (
	"encoding/json"
	"errors"
	"fmt"

	"assetconsole/internal/repository"
	"assetconsole/pkg/auditlog"
	custom_error "assetconsole/pkg/errors"
	"assetconsole/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

const auditTable = "binding_audit_log"

type AuditLogRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AuditLogRepository {
	return &AuditLogRepository{repository: r}
}

// PersistLog stores one entry and reports whether it was recorded as a
// duplicate. A second "confirm" of a serial hits the partial unique index,
// is skipped by ON CONFLICT and stored as "duplicate" in the same transaction.
func (r *AuditLogRepository) PersistLog(auditLog models.AuditLog, auditLogData interface{}) (bool, error) {
	dataJSON, err := json.Marshal(auditLogData)
	if err != nil {
		return false, fmt.Errorf("failed to marshal audit log data: %w", err)
	}

	duplicated := false
	err = repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		result, err := tx.Insert(auditTable).
			Rows(auditRecord(auditLog, auditLog.Action, dataJSON)).
			OnConflict(goqu.DoNothing()).
			Executor().Exec()
		if err != nil {
			return err
		}

		inserted, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if inserted > 0 || auditLog.Action != auditlog.ActionConfirm {
			return nil
		}

		duplicated = true
		_, err = tx.Insert(auditTable).
			Rows(auditRecord(auditLog, auditlog.ActionDuplicate, dataJSON)).
			Executor().Exec()
		return err
	})
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return false, custom_error.WrapDBError(fmt.Sprintf("%s (serial %s)", pqErr.Message, auditLog.SerialNumber), string(pqErr.Code))
		}
		return false, fmt.Errorf("failed to insert audit log: %w", err)
	}

	return duplicated, nil
}

func auditRecord(auditLog models.AuditLog, action string, dataJSON []byte) goqu.Record {
	return goqu.Record{
		"resource_id":   auditLog.ResourceID,
		"resource_type": auditLog.ResourceType,
		"action":        action,
		"asset_name":    auditLog.AssetName,
		"serial_no":     auditLog.SerialNumber,
		"operator":      auditLog.Operator,
		"data":          string(dataJSON),
	}
}

// GetSerialLog returns every entry recorded for a serial, oldest first.
func (r *AuditLogRepository) GetSerialLog(serial string) ([]models.AuditLog, error) {
	query := r.repository.GoquDBWrapper.
		From(goqu.T(auditTable).As("a")).
		Select(
			goqu.I("a.id").As("id"),
			goqu.I("a.resource_id").As("resource_id"),
			goqu.I("a.resource_type").As("resource_type"),
			goqu.I("a.action").As("action"),
			goqu.I("a.asset_name").As("asset_name"),
			goqu.I("a.serial_no").As("serial_no"),
			goqu.I("a.operator").As("operator"),
			goqu.COALESCE(goqu.I("a.data"), "{}").As("data"),
			goqu.I("a.created_at").As("created_at"),
		).
		Where(goqu.Ex{"a.serial_no": serial}).
		Order(goqu.I("a.id").Asc())

	var auditLogs []models.AuditLog
	if err := query.Executor().ScanStructs(&auditLogs); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	for i := range auditLogs {
		auditLogs[i].LoadFromDB()
	}

	return auditLogs, nil
}
