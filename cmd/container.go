package cmd

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/depwatch/application"
	"github.com/rios0rios0/depwatch/config"
	"github.com/rios0rios0/depwatch/domain"
	"github.com/rios0rios0/depwatch/infrastructure/command"
	"github.com/rios0rios0/depwatch/infrastructure/ecosystem"
	"github.com/rios0rios0/depwatch/infrastructure/ecosystem/gomod"
	"github.com/rios0rios0/depwatch/infrastructure/ecosystem/nodejs"
	"github.com/rios0rios0/depwatch/infrastructure/scanner"
)

// appContext bundles everything a command needs for one run.
type appContext struct {
	Config  *config.Config
	Service *application.UpdateService
}

// injectAppContext wires the full object graph through the DIG container:
// config -> runner -> ecosystems -> registry -> scanner -> service.
func injectAppContext() (*appContext, error) {
	container := dig.New()

	providers := []interface{}{
		config.New,
		func() domain.Runner { return command.NewExecRunner() },
		func(cfg *config.Config, runner domain.Runner) *ecosystem.Registry {
			return ecosystem.NewRegistry(
				gomod.New(cfg.GoLatestVersion, runner),
				nodejs.New(cfg.RegistryURL, runner),
			)
		},
		func(reg *ecosystem.Registry) *scanner.Scanner { return scanner.New(reg) },
		func(s *scanner.Scanner) application.Discoverer { return s },
		application.NewUpdateService,
	}
	for _, provide := range providers {
		if err := container.Provide(provide); err != nil {
			return nil, err
		}
	}

	var appCtx *appContext
	err := container.Invoke(func(cfg *config.Config, svc *application.UpdateService) {
		appCtx = &appContext{Config: cfg, Service: svc}
	})
	if err != nil {
		return nil, err
	}

	return appCtx, nil
}
