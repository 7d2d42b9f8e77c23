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

package config

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
//
//	root = "~/Downloads"
//	ignore_patterns = ["*.part"]
//
//	category "Images" {
//	  extensions = [".jpg", ".png"]
//	}
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclConfig struct {
		Root       string `hcl:"root,optional"`
		Categories []struct {
			Name       string   `hcl:"name,label"`
			Extensions []string `hcl:"extensions,optional"`
		} `hcl:"category,block"`
		IgnoreFiles          []string `hcl:"ignore_files,optional"`
		IgnorePatterns       []string `hcl:"ignore_patterns,optional"`
		MaxCollisionAttempts int      `hcl:"max_collision_attempts,optional"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		Root:                 hclCfg.Root,
		IgnoreFiles:          hclCfg.IgnoreFiles,
		IgnorePatterns:       hclCfg.IgnorePatterns,
		MaxCollisionAttempts: hclCfg.MaxCollisionAttempts,
	}
	for _, c := range hclCfg.Categories {
		cfg.Categories = append(cfg.Categories, CategoryConfig{
			Name:       c.Name,
			Extensions: c.Extensions,
		})
	}

	return cfg, nil
}
