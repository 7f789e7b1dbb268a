package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/carebridge/scheduler/internal/config"
	"github.com/carebridge/scheduler/pkg/core/matching"
	"github.com/carebridge/scheduler/pkg/events"
	"github.com/carebridge/scheduler/pkg/postgres"
)

// AppContext holds the application dependencies shared by all commands
type AppContext struct {
	Ctx        context.Context
	Cfg        *config.Config
	Logger     *zap.Logger
	Database   *postgres.DB
	Dispatcher events.Dispatcher
	Checker    *matching.Checker
	Detector   *matching.Detector
	Scorer     *matching.Scorer
}
