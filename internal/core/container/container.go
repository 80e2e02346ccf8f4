package container

import (
	"context"
	"database/sql"
	"fmt"

	auditLogRepo "assetconsole/internal/auditlog"
	"assetconsole/internal/backend"
	"assetconsole/internal/core/config"
	"assetconsole/internal/database"
	"assetconsole/internal/integrations/googlesheets"
	"assetconsole/internal/repository"
	"assetconsole/internal/tagging"
	"assetconsole/internal/tagimport"
	"assetconsole/pkg/auditlog"
	"assetconsole/pkg/security"

	"go.uber.org/zap"
)

type Container struct {
	Config          config.Config
	Logger          *zap.Logger
	DB              *sql.DB
	Backend         *backend.Client
	Registry        *tagging.Registry
	LoginHandler    *security.LoginHandler
	BindingHandler  *tagging.BindingHandler
	ImportHandler   *tagimport.ImportHandler
	AuditLogHandler *auditLogRepo.AuditLogHandler
}

type auditLogger interface {
	tagging.AuditLogger
	tagimport.AuditLogger
}

// NewAppContainer wires the application. The audit database and the Google
// Sheets import are optional and only set up when configured.
func NewAppContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if err := security.Configure(cfg.JWTSecret); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, Logger: logger}

	var audit auditLogger = auditlog.Nop{}
	if cfg.AuditEnabled() {
		db, err := database.NewPostgresConnection(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("audit database: %w", err)
		}
		c.DB = db

		repo := repository.NewRepository(db)
		auditRepository := auditLogRepo.NewRepository(repo)
		audit = auditlog.NewAuditLog(auditRepository, logger)
		c.AuditLogHandler = auditLogRepo.NewAuditLogHandler(auditRepository)
		logger.Info("binding audit log enabled")
	}

	var sheets tagimport.RowSource
	if cfg.SheetsEnabled() {
		reader, err := googlesheets.NewReader(ctx, cfg.GoogleCredentialsJSON, cfg.GoogleCredentialsFile, logger)
		if err != nil {
			c.Close()
			return nil, err
		}
		sheets = reader
	}

	c.Backend = backend.NewClient(backend.Config{BaseURL: cfg.BackendBaseURL, Timeout: cfg.BackendTimeout}, logger)
	c.Registry = tagging.NewRegistry(cfg.SessionTTL, logger)
	c.LoginHandler = security.NewLoginHandler(c.Backend, logger)
	c.BindingHandler = tagging.NewBindingHandler(tagging.NewBindingService(c.Backend, audit, logger), c.Registry)
	c.ImportHandler = tagimport.NewImportHandler(tagimport.NewImporter(c.Backend, audit, logger), sheets)

	return c, nil
}

func (c *Container) Close() {
	if c.DB != nil {
		_ = c.DB.Close()
	}
}
