// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docproc CLI, a workspace
// client for the document processing service: authentication, document
// upload and retrieval, semantic search, and engine administration.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Marbrgr/DocProc/internal/api"
	"github.com/Marbrgr/DocProc/internal/session"
	"github.com/Marbrgr/DocProc/internal/workspace"
	"github.com/Marbrgr/DocProc/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the docproc CLI.
var rootCmd = &cobra.Command{
	Use:   "docproc",
	Short: "Client for the document processing service",
	Long: `docproc is a command-line workspace for the document processing service.
It uploads scans and PDFs, tracks their AI classification as it completes,
searches stored documents, asks questions over them, and administers the
retrieval engines.

Log in once with "docproc login"; the session persists across invocations
until it expires or you log out.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docproc.yaml or ~/.config/docproc/config.yaml)")
	rootCmd.PersistentFlags().String("server", "", "service base URL (overrides config)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docproc")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docproc"))
		}
	}

	viper.SetEnvPrefix("DOCPROC")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the effective configuration from the config file,
// environment, and flags, with defaults filling the gaps.
func loadConfig() types.Config {
	cfg := types.Config{
		Client: types.ClientConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("client.timeout"),
				UserAgent: viper.GetString("client.user_agent"),
			},
			BaseURL:    viper.GetString("client.base_url"),
			StatePath:  viper.GetString("client.state_path"),
			MaxRetries: viper.GetInt("client.max_retries"),
		},
		Upload: types.UploadConfig{
			MaxFileSize:      viper.GetInt64("upload.max_file_size"),
			AllowedMIMETypes: viper.GetStringSlice("upload.allowed_mime_types"),
		},
		Poll: types.PollConfig{
			InitialDelay: viper.GetDuration("poll.initial_delay"),
			Interval:     viper.GetDuration("poll.interval"),
			MaxAttempts:  viper.GetInt("poll.max_attempts"),
		},
	}

	if server, _ := rootCmd.PersistentFlags().GetString("server"); server != "" {
		cfg.Client.BaseURL = server
	}

	return cfg.WithDefaults()
}

// newClient opens the persisted session store and builds a resource
// client around it. The caller closes the store.
func newClient() (*api.Client, *session.Store, error) {
	return newClientWith(loadConfig())
}

func newClientWith(cfg types.Config) (*api.Client, *session.Store, error) {
	path := cfg.Client.StatePath
	if path == "" {
		p, err := session.DefaultPath()
		if err != nil {
			return nil, nil, err
		}
		path = p
	}

	store, err := session.Open(path)
	if err != nil {
		return nil, nil, err
	}

	return api.New(cfg.Client, cfg.Upload, store), store, nil
}

// newWorkspace builds a workspace controller over a fresh client. The
// configuration is loaded once and shared between the client and the
// poller. The caller closes both the workspace and the store.
func newWorkspace() (*workspace.Workspace, *session.Store, error) {
	cfg := loadConfig()
	client, store, err := newClientWith(cfg)
	if err != nil {
		return nil, nil, err
	}
	return workspace.New(client, cfg.Poll), store, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
