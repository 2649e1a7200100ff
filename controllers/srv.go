// controllers/srv.go
package controllers

import (
	"errors"
	"net/http"

	"lab_asset_ledger/app"
	"lab_asset_ledger/config"
	"lab_asset_ledger/engine"
	"lab_asset_ledger/notify"
)

type Srv struct {
	Engine   *engine.Engine
	Notifier notify.Generator
	Cfg      config.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{Engine: a.Engine, Notifier: a.Notifier, Cfg: a.Config}
}

// writeEngineError maps engine error kinds to HTTP statuses.
func writeEngineError(c *app.Ctx, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, engine.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, engine.ErrNotFound), errors.Is(err, engine.ErrUnknownStudent):
		status = http.StatusNotFound
	case errors.Is(err, engine.ErrDuplicateIdentifier), errors.Is(err, engine.ErrInvalidState):
		status = http.StatusConflict
	}
	c.JSON(status, app.H{"error": err.Error()})
}
