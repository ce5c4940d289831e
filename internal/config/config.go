// Package config loads the notebook configuration for the CLI.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	configFileName = "benchbook"
	configFileType = "yaml"

	cfgKeyExperimentsDir = "folders.experiments"
	cfgKeyDailyDir       = "folders.daily"
	cfgKeyTemplatesDir   = "folders.templates"
	cfgKeyTemplate       = "templates.experiment"
	cfgKeyOngoingTag     = "tags.ongoing"
	cfgKeyArchivedTag    = "tags.archived"
	cfgKeyExclude        = "exclude"
	cfgKeyIndexPath      = "index.path"
)

// Config names the folders, templates, and tags the CLI uses for lookups.
type Config struct {
	ExperimentsDir string
	DailyDir       string
	TemplatesDir   string
	Template       string
	OngoingTag     string
	ArchivedTag    string
	Exclude        []string
	IndexPath      string
}

// Load reads benchbook.yaml from the notebook directory. A missing config
// file is not an error; defaults cover the conventional notebook layout.
func Load(notebookDir string) (Config, error) {
	v := viper.New()
	v.SetDefault(cfgKeyExperimentsDir, "Experiments")
	v.SetDefault(cfgKeyDailyDir, "Daily")
	v.SetDefault(cfgKeyTemplatesDir, "Templates")
	v.SetDefault(cfgKeyTemplate, "experiment")
	v.SetDefault(cfgKeyOngoingTag, "#OngoingExperiments")
	v.SetDefault(cfgKeyArchivedTag, "#ArchivedExperiments")
	v.SetDefault(cfgKeyExclude, []string{"template"})
	v.SetDefault(cfgKeyIndexPath, "")

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(notebookDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return Config{
		ExperimentsDir: v.GetString(cfgKeyExperimentsDir),
		DailyDir:       v.GetString(cfgKeyDailyDir),
		TemplatesDir:   v.GetString(cfgKeyTemplatesDir),
		Template:       v.GetString(cfgKeyTemplate),
		OngoingTag:     v.GetString(cfgKeyOngoingTag),
		ArchivedTag:    v.GetString(cfgKeyArchivedTag),
		Exclude:        v.GetStringSlice(cfgKeyExclude),
		IndexPath:      v.GetString(cfgKeyIndexPath),
	}, nil
}
