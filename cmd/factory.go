package cmd

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/darmiel/homeyctl/internal/athom"
	"github.com/darmiel/homeyctl/internal/cliconfig"
	"github.com/darmiel/homeyctl/internal/config"
	"github.com/darmiel/homeyctl/internal/core"
	"github.com/darmiel/homeyctl/internal/discovery"
	"github.com/darmiel/homeyctl/internal/prompt"
	"github.com/darmiel/homeyctl/internal/service"
)

// Factory wires the per-process service graph: one settings store, one
// cloud session, one hub directory, one active-homey resolver. Commands
// never hold ambient state, they ask the factory.
type Factory struct {
	settings  *cliconfig.Store
	cfg       *config.Config
	sessions  *service.SessionManager
	directory *service.HubDirectory
	resolver  *service.ActiveResolver
}

var f = NewFactory()

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) init() error {
	if f.settings != nil {
		return nil
	}

	settings, err := cliconfig.Open()
	if err != nil {
		return fmt.Errorf("opening settings store: %w", err)
	}

	cfg, err := config.Load(viper.GetString(CloudConfigKey))
	if err != nil {
		return fmt.Errorf("loading cloud config: %w", err)
	}

	prompter := prompt.NewTerminal()
	connect := func() core.CloudSession {
		return athom.New(athom.Config{
			APIRoot:      cfg.Cloud.APIRoot,
			ClientID:     cfg.Cloud.ClientID,
			ClientSecret: cfg.Cloud.ClientSecret,
			Settings:     settings,
		})
	}

	sessions := service.NewSessionManager(settings, prompter, connect)
	prober := discovery.New(cfg.Discovery.Timeout, cfg.Discovery.PingPath)
	directory := service.NewHubDirectory(sessions, prober)
	resolver := service.NewActiveResolver(settings, sessions, directory, prompter)
	sessions.OnLogout = resolver.Reset

	f.settings = settings
	f.cfg = cfg
	f.sessions = sessions
	f.directory = directory
	f.resolver = resolver
	return nil
}

func (f *Factory) Sessions() (*service.SessionManager, error) {
	if err := f.init(); err != nil {
		return nil, err
	}
	return f.sessions, nil
}

func (f *Factory) Directory() (*service.HubDirectory, error) {
	if err := f.init(); err != nil {
		return nil, err
	}
	return f.directory, nil
}

func (f *Factory) Resolver() (*service.ActiveResolver, error) {
	if err := f.init(); err != nil {
		return nil, err
	}
	return f.resolver, nil
}
