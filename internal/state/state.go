package state

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Paintersrp/promptorg/internal/backup"
	"github.com/Paintersrp/promptorg/internal/config"
	"github.com/Paintersrp/promptorg/internal/constants"
	"github.com/Paintersrp/promptorg/internal/search"
	"github.com/Paintersrp/promptorg/internal/store"
	"github.com/Paintersrp/promptorg/internal/store/sqlstore"
	"github.com/Paintersrp/promptorg/internal/templater"
	"github.com/Paintersrp/promptorg/internal/views"
)

type State struct {
	Config        *config.Config
	Workspace     *config.Workspace
	Effective     config.Workspace
	WorkspaceName string
	Home          string
	Logger        *zap.Logger
	Store         store.Store
	Engine        *search.Engine
	Templater     *templater.Templater
	ViewManager   *views.ViewManager
	Status        *StatusLine
}

// Options tune NewState. Zero values are fine.
type Options struct {
	// Workspace selects a workspace for this process only.
	Workspace string
	// Home overrides the user's home directory.
	Home   string
	Logger *zap.Logger
}

func NewState(ctx context.Context, opts Options) (*State, error) {
	LoadDotEnv("")

	home := opts.Home
	if home == "" {
		var err error
		if home, err = GetHomeDir(); err != nil {
			return nil, err
		}
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	cfg, err := LoadConfig(home)
	if err != nil {
		return nil, err
	}

	if opts.Workspace != "" {
		if err := cfg.ActivateWorkspace(opts.Workspace); err != nil {
			return nil, err
		}
	}

	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		return nil, err
	}
	eff := ws.Effective()

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return nil, err
	}

	st, err := sqlstore.Open(ctx, sqlstore.Options{
		Driver: eff.Database.Driver,
		Path:   dbPath,
		DSN:    eff.Database.DSN,
		Logger: log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open prompt library: %w", err)
	}

	t, err := templater.New(TemplateDir(cfg, eff))
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to create templater: %w", err)
	}

	op, _ := search.ParseOperator(eff.Search.DefaultOperator)
	engine := search.NewEngine(st, search.Config{
		DefaultOperator:  op,
		CaseSensitive:    eff.Search.CaseSensitive,
		PatternCacheSize: eff.Search.PatternCacheSize,
	}, log)

	log.Debug("state ready",
		zap.String("workspace", cfg.CurrentWorkspace),
		zap.String("driver", eff.Database.Driver),
		zap.String("database", dbPath),
	)

	return &State{
		Config:        cfg,
		Workspace:     ws,
		Effective:     eff,
		WorkspaceName: cfg.CurrentWorkspace,
		Home:          home,
		Logger:        log,
		Store:         st,
		Engine:        engine,
		Templater:     t,
		ViewManager:   views.NewViewManager(st, ws),
		Status:        &StatusLine{},
	}, nil
}

// LoadDotEnv loads a .env file from dir, or the working directory when dir is
// empty. A missing file is not an error; existing variables win.
func LoadDotEnv(dir string) {
	path := ".env"
	if dir != "" {
		path = filepath.Join(dir, ".env")
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	_ = godotenv.Load(path)
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

func LoadConfig(home string) (*config.Config, error) {
	viper.AddConfigPath(filepath.Join(home, constants.ConfigDir))
	viper.SetConfigName(constants.ConfigFile)
	viper.SetConfigType(constants.ConfigFileType)
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()

	err := config.EnsureConfigExists(home)
	if err != nil {
		return nil, err
	}

	return config.Load(home)
}

// TemplateDir is where user starter templates live for the active workspace.
func TemplateDir(cfg *config.Config, eff config.Workspace) string {
	dir := strings.TrimSpace(eff.TemplateDir)
	if dir == "" {
		return filepath.Join(filepath.Dir(cfg.GetConfigPath()), "templates")
	}
	return dir
}

// Backup builds a backup writer for the workspace's configured bucket.
// Credentials come from PROMPTORG_AWS_ACCESS_KEY_ID and
// PROMPTORG_AWS_SECRET_ACCESS_KEY, or the default AWS chain.
func (s *State) Backup(ctx context.Context) (*backup.Backup, error) {
	b := s.Effective.Backup
	dst, err := backup.NewS3(ctx, backup.S3Config{
		Bucket:          b.Bucket,
		Region:          b.Region,
		Endpoint:        b.Endpoint,
		AccessKeyID:     viper.GetString("aws_access_key_id"),
		SecretAccessKey: viper.GetString("aws_secret_access_key"),
	})
	if err != nil {
		return nil, err
	}
	return backup.New(dst, b.Prefix, s.Logger), nil
}

// WatchTemplates reloads the templater whenever the user template directory
// changes. It blocks until ctx is done.
func (s *State) WatchTemplates(ctx context.Context) error {
	w, err := NewTemplateWatcher(s.Templater.UserDir(), s.Logger)
	if err != nil {
		return err
	}
	defer w.Close()

	w.OnChange(func(names []string) {
		if err := s.Templater.Reload(); err != nil {
			s.Logger.Warn("template reload failed", zap.Error(err))
			return
		}
		s.Logger.Info("templates reloaded", zap.Strings("changed", names))
	})

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Close releases the prompt library connection.
func (s *State) Close() error {
	if s == nil || s.Store == nil {
		return nil
	}

	var errs []error
	if err := s.Store.Close(); err != nil {
		errs = append(errs, err)
	}
	s.Store = nil

	return errors.Join(errs...)
}
