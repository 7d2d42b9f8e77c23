// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/sortdir/cmd/sortdir/commands"
	"github.com/walteh/sortdir/cmd/sortdir/opts"
	"github.com/walteh/sortdir/pkg/config"
	"github.com/walteh/sortdir/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// newRootCmd builds the command tree
func newRootCmd() *cobra.Command {
	ro := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "sortdir",
		Short: "Sort a directory's loose files into category folders",
		Long: `sortdir moves every regular file at the top level of a directory
(your Desktop by default) into a folder named after its type: Images, PDFs,
Documents, Videos, Music, Archives or Others.
Existing files are never overwritten; name clashes get a "(N)" suffix.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), ro.Debug, cmd.ErrOrStderr())

			ctx, err := initRootOpts(ctx, ro, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Add shared flags
	addRootFlags(rootCmd, ro)

	// Add commands
	rootCmd.AddCommand(
		commands.NewOrganizeCmd(ro),
		commands.NewCategoriesCmd(ro),
		newVersionCmd(),
	)

	return rootCmd
}

// initRootOpts loads the config and adds the console logger to the context
func initRootOpts(ctx context.Context, ro *opts.RootOpts, console io.Writer) (context.Context, error) {
	out := log.New(console, *zerolog.Ctx(ctx))
	ctx = log.NewContext(ctx, out)

	cfg := config.Default()
	if ro.ConfigFile != "" {
		loaded, err := config.Load(ctx, ro.ConfigFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
		out.Infof("using config %s", ro.ConfigFile)
	}

	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Msg("configuration ready")

	ro.Config = cfg
	return ctx, nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, ro *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&ro.ConfigFile, "config", "c", "", "config file path (.yaml, .json, .hcl or .toml)")
	cmd.PersistentFlags().BoolVarP(&ro.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging(ctx context.Context, debug bool, w io.Writer) context.Context {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}
