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

package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/sortdir/cmd/sortdir/opts"
	"github.com/walteh/sortdir/pkg/category"
	"github.com/walteh/sortdir/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// NewCategoriesCmd creates the categories command
func NewCategoriesCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Show the category table in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := ro.Config.Table()
			if err != nil {
				return err
			}

			rendered, err := RenderTable(table)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rendered)

			for _, o := range table.Overlaps() {
				log.FromContext(cmd.Context()).Warningf("extension %s is listed in %s and %s; using %s", o.Extension, o.Winner, o.Shadowed, o.Winner)
			}
			return nil
		},
	}

	return cmd
}

// RenderTable draws the category table, first match first
func RenderTable(table *category.Table) (string, error) {
	data := pterm.TableData{{"Category", "Extensions"}}
	for _, c := range table.Categories() {
		exts := strings.Join(c.Extensions, " ")
		if c.Name == category.CatchAll && exts == "" {
			exts = "(everything else)"
		}
		data = append(data, []string{c.Name, exts})
	}

	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", errors.Errorf("rendering category table: %w", err)
	}
	return rendered, nil
}
