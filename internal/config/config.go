package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/promptorg/internal/constants"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Driver string `yaml:"driver" json:"driver"`
	Path   string `yaml:"path"   json:"path"`
	DSN    string `yaml:"dsn"    json:"dsn"`
}

type SearchConfig struct {
	DefaultOperator      string `yaml:"default_operator"       json:"default_operator"`
	CaseSensitive        bool   `yaml:"case_sensitive"         json:"case_sensitive"`
	DefaultFavoritesOnly bool   `yaml:"default_favorites_only" json:"default_favorites_only"`
	PatternCacheSize     int    `yaml:"pattern_cache_size"     json:"pattern_cache_size"`
}

type BackupConfig struct {
	Bucket   string `yaml:"bucket"   json:"bucket"`
	Prefix   string `yaml:"prefix"   json:"prefix"`
	Region   string `yaml:"region"   json:"region"`
	Endpoint string `yaml:"endpoint" json:"endpoint"`
}

// ViewDefinition is a saved search. Folder and Tags are names, resolved to
// ids when the view runs.
type ViewDefinition struct {
	Query    string   `yaml:"query"    json:"query"`
	Folder   string   `yaml:"folder"   json:"folder"`
	Tags     []string `yaml:"tags"     json:"tags"`
	Favorite *bool    `yaml:"favorite" json:"favorite"`
	Template *bool    `yaml:"template" json:"template"`
}

type Workspace struct {
	Database    DatabaseConfig            `yaml:"database"     json:"database"`
	Search      SearchConfig              `yaml:"search"       json:"search"`
	Views       map[string]ViewDefinition `yaml:"views"        json:"views"`
	ViewOrder   []string                  `yaml:"view_order"   json:"view_order"`
	Backup      BackupConfig              `yaml:"backup"       json:"backup"`
	Editor      string                    `yaml:"editor"       json:"editor"`
	TemplateDir string                    `yaml:"template_dir" json:"template_dir"`
}

type Config struct {
	Workspaces       map[string]*Workspace `yaml:"workspaces"        json:"workspaces"`
	CurrentWorkspace string                `yaml:"current_workspace" json:"current_workspace"`

	home   string     `yaml:"-"`
	active *Workspace `yaml:"-"`
}

const (
	defaultWorkspaceName = "default"
	defaultDriver        = "sqlite"
	defaultOperator      = "AND"
	defaultBackupPrefix  = "promptorg"
)

var validEditorNames = []string{"nvim", "vim", "nano", "code", "vscode", "emacs", "hx", "custom"}

var ValidEditors = func() map[string]bool {
	editors := make(map[string]bool, len(validEditorNames))
	for _, editor := range validEditorNames {
		editors[editor] = true
	}

	return editors
}()

var ValidDrivers = map[string]bool{
	"sqlite":   true,
	"postgres": true,
}

// EditorNames lists the supported editors in display order.
func EditorNames() []string {
	return append([]string(nil), validEditorNames...)
}

func ValidateEditor(editor string) error {
	if _, valid := ValidEditors[editor]; valid {
		return nil
	}

	return fmt.Errorf(
		"invalid editor: %q. Please choose from %s.",
		editor,
		quotedList(validEditorNames),
	)
}

func ValidateDriver(driver string) error {
	if _, valid := ValidDrivers[driver]; valid {
		return nil
	}

	return fmt.Errorf(
		"invalid database driver: %q. Please choose from %s.",
		driver,
		quotedList([]string{"sqlite", "postgres"}),
	)
}

func validateOperator(op string) error {
	switch strings.ToUpper(op) {
	case "", "AND", "OR":
		return nil
	}
	return fmt.Errorf("invalid default operator: %q. Please choose from 'AND' or 'OR'.", op)
}

func quotedList(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = fmt.Sprintf("'%s'", name)
	}

	if len(quoted) == 0 {
		return ""
	}

	if len(quoted) == 1 {
		return quoted[0]
	}

	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}

func newWorkspace() *Workspace {
	return &Workspace{
		Database: DatabaseConfig{Driver: defaultDriver},
		Search:   SearchConfig{DefaultOperator: defaultOperator},
		Views:    make(map[string]ViewDefinition),
		Backup:   BackupConfig{Prefix: defaultBackupPrefix},
	}
}

func (ws *Workspace) ensureDefaults() {
	if ws.Database.Driver == "" {
		ws.Database.Driver = defaultDriver
	}
	if ws.Search.DefaultOperator == "" {
		ws.Search.DefaultOperator = defaultOperator
	}
	ws.Search.DefaultOperator = strings.ToUpper(ws.Search.DefaultOperator)
	if ws.Views == nil {
		ws.Views = make(map[string]ViewDefinition)
	}
	if ws.Backup.Prefix == "" {
		ws.Backup.Prefix = defaultBackupPrefix
	}
}

func (ws *Workspace) validate() error {
	if err := ValidateDriver(ws.Database.Driver); err != nil {
		return err
	}
	if err := validateOperator(ws.Search.DefaultOperator); err != nil {
		return err
	}
	if ws.Editor != "" {
		if err := ValidateEditor(ws.Editor); err != nil {
			return err
		}
	}
	return nil
}

// Effective returns a copy of the workspace with PROMPTORG_* environment
// overrides applied. The overrides are never written back to the file.
func (ws *Workspace) Effective() Workspace {
	env := viper.New()
	env.SetEnvPrefix(constants.EnvPrefix)
	env.AutomaticEnv()

	out := *ws
	override := func(key string, dst *string) {
		if v := strings.TrimSpace(env.GetString(key)); v != "" {
			*dst = v
		}
	}
	override("db_driver", &out.Database.Driver)
	override("db_path", &out.Database.Path)
	override("db_dsn", &out.Database.DSN)
	override("editor", &out.Editor)
	override("backup_bucket", &out.Backup.Bucket)
	override("backup_prefix", &out.Backup.Prefix)
	override("backup_region", &out.Backup.Region)
	override("backup_endpoint", &out.Backup.Endpoint)
	override("template_dir", &out.TemplateDir)
	override("default_operator", &out.Search.DefaultOperator)
	if env.IsSet("case_sensitive") {
		out.Search.CaseSensitive = env.GetBool("case_sensitive")
	}
	return out
}

func Load(home string) (*Config, error) {
	path := GetConfigPath(home)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{home: home}
	if len(strings.TrimSpace(string(data))) == 0 {
		cfg.Workspaces = map[string]*Workspace{
			defaultWorkspaceName: newWorkspace(),
		}
		cfg.CurrentWorkspace = defaultWorkspaceName
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.ensureInitialized(); err != nil {
		return nil, err
	}

	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		return nil, err
	}

	if err := ws.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) ensureInitialized() error {
	if cfg.Workspaces == nil {
		cfg.Workspaces = make(map[string]*Workspace)
	}

	if cfg.CurrentWorkspace == "" {
		if len(cfg.Workspaces) == 0 {
			cfg.Workspaces[defaultWorkspaceName] = newWorkspace()
			cfg.CurrentWorkspace = defaultWorkspaceName
		} else {
			cfg.CurrentWorkspace = cfg.WorkspaceNames()[0]
		}
	}

	return cfg.setActiveWorkspace(cfg.CurrentWorkspace)
}

func (cfg *Config) setActiveWorkspace(name string) error {
	if name == "" {
		return fmt.Errorf("workspace name cannot be empty")
	}
	ws, ok := cfg.Workspaces[name]
	if !ok {
		return fmt.Errorf("workspace %q does not exist", name)
	}
	if ws == nil {
		ws = newWorkspace()
		cfg.Workspaces[name] = ws
	}

	ws.ensureDefaults()
	cfg.CurrentWorkspace = name
	cfg.active = ws

	syncWorkspaceWithViper(name, ws)

	return nil
}

func syncWorkspaceWithViper(name string, ws *Workspace) {
	viper.Set("workspace", name)
	viper.Set("editor", ws.Editor)
	viper.Set("database.driver", ws.Database.Driver)
	viper.Set("database.path", ws.Database.Path)
	viper.Set("search.default_operator", ws.Search.DefaultOperator)
	viper.Set("search.case_sensitive", ws.Search.CaseSensitive)
	viper.Set("backup.bucket", ws.Backup.Bucket)
	if ws.ViewOrder == nil {
		viper.Set("view_order", []string{})
	} else {
		viper.Set("view_order", append([]string(nil), ws.ViewOrder...))
	}
}

func (cfg *Config) ActiveWorkspace() (*Workspace, error) {
	if cfg.active != nil {
		return cfg.active, nil
	}

	if cfg.CurrentWorkspace == "" {
		return nil, fmt.Errorf("no workspace is currently selected")
	}

	if err := cfg.setActiveWorkspace(cfg.CurrentWorkspace); err != nil {
		return nil, err
	}

	return cfg.active, nil
}

func (cfg *Config) WorkspaceNames() []string {
	names := make([]string, 0, len(cfg.Workspaces))
	for name := range cfg.Workspaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DatabasePath is the SQLite file for the active workspace. Relative paths
// are taken from the config directory.
func (cfg *Config) DatabasePath() (string, error) {
	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		return "", err
	}
	eff := ws.Effective()
	dir := filepath.Dir(cfg.GetConfigPath())

	path := strings.TrimSpace(eff.Database.Path)
	if path == "" {
		return filepath.Join(dir, "workspaces", cfg.CurrentWorkspace, constants.DatabaseFile), nil
	}
	if strings.HasPrefix(path, "~/") && cfg.home != "" {
		return filepath.Join(cfg.home, path[2:]), nil
	}
	if !filepath.IsAbs(path) {
		return filepath.Join(dir, path), nil
	}
	return path, nil
}

func (cfg *Config) SwitchWorkspace(name string) error {
	if err := cfg.setActiveWorkspace(name); err != nil {
		return err
	}
	return cfg.Save()
}

// ActivateWorkspace selects a workspace for this process without saving.
func (cfg *Config) ActivateWorkspace(name string) error {
	return cfg.setActiveWorkspace(name)
}

func (cfg *Config) AddWorkspace(name string, ws *Workspace, makeCurrent bool) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("workspace name cannot be empty")
	}

	if cfg.Workspaces == nil {
		cfg.Workspaces = make(map[string]*Workspace)
	}

	if _, exists := cfg.Workspaces[trimmed]; exists {
		return fmt.Errorf("workspace %q already exists", trimmed)
	}

	if ws == nil {
		ws = newWorkspace()
	}
	ws.ensureDefaults()
	if err := ws.validate(); err != nil {
		return err
	}
	cfg.Workspaces[trimmed] = ws

	if cfg.CurrentWorkspace == "" || makeCurrent {
		if err := cfg.setActiveWorkspace(trimmed); err != nil {
			return err
		}
	}

	return cfg.Save()
}

func (cfg *Config) RemoveWorkspace(name string) error {
	if len(cfg.Workspaces) <= 1 {
		return fmt.Errorf("cannot remove the last workspace")
	}

	if _, exists := cfg.Workspaces[name]; !exists {
		return fmt.Errorf("workspace %q does not exist", name)
	}

	delete(cfg.Workspaces, name)

	if cfg.CurrentWorkspace == name {
		cfg.active = nil
		cfg.CurrentWorkspace = ""
		if err := cfg.ensureInitialized(); err != nil {
			return err
		}
	}

	return cfg.Save()
}

func (cfg *Config) GetConfigPath() string {
	if cfg.home != "" {
		return GetConfigPath(cfg.home)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return GetConfigPath(homeDir)
}

func (cfg *Config) AddView(name string, view ViewDefinition) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("view name cannot be empty")
	}

	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		return err
	}

	if ws.Views == nil {
		ws.Views = make(map[string]ViewDefinition)
	}

	ws.Views[name] = view
	ws.ViewOrder = appendViewOrder(ws.ViewOrder, name)

	return cfg.Save()
}

func (cfg *Config) RemoveView(name string) error {
	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		return err
	}

	if len(ws.Views) == 0 {
		return fmt.Errorf("no views are configured")
	}

	if _, ok := ws.Views[name]; !ok {
		return fmt.Errorf("view %q does not exist", name)
	}

	delete(ws.Views, name)
	ws.ViewOrder = removeFromOrder(ws.ViewOrder, name)

	return cfg.Save()
}

func (cfg *Config) SetViewOrder(order []string) error {
	deduped := make([]string, 0, len(order))
	seen := make(map[string]struct{}, len(order))

	for _, name := range order {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}

		if _, exists := seen[trimmed]; exists {
			continue
		}

		seen[trimmed] = struct{}{}
		deduped = append(deduped, trimmed)
	}

	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		return err
	}

	ws.ViewOrder = deduped
	return cfg.Save()
}

func appendViewOrder(order []string, name string) []string {
	filtered := removeFromOrder(order, name)
	return append(filtered, name)
}

func removeFromOrder(order []string, target string) []string {
	if len(order) == 0 {
		return order
	}

	filtered := order[:0]
	for _, name := range order {
		if name == target {
			continue
		}
		filtered = append(filtered, name)
	}

	return filtered
}

func (cfg *Config) ChangeEditor(editor string) error {
	if err := ValidateEditor(editor); err != nil {
		return err
	}

	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		return err
	}

	ws.Editor = editor
	return cfg.Save()
}

func (cfg *Config) Save() error {
	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		return err
	}

	if err := ws.validate(); err != nil {
		return err
	}

	syncWorkspaceWithViper(cfg.CurrentWorkspace, ws)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	configPath := cfg.GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}
