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

/*
Package config loads the optional sortdir configuration file.

	                 +-------------+
	                 |   Config    |
	                 +------+------+
	                        |
	    +---------+---------+---------+---------+
	    |         |                   |         |
	+---+---+ +---+---+           +---+---+ +---+---+
	| YAML  | | JSON  |           |  HCL  | | TOML  |
	+-------+ +-------+           +-------+ +-------+

🎯 Purpose:
- Picks a parser from the file extension
- Rejects unknown keys in every format
- Turns the file into a category table and ignore rules

🔄 Flow:
1. Reads the file
2. Parses the format-specific syntax
3. Validates (names, extensions, patterns, collision cap)
4. Hands Table() and Ignore() to the organizer

Running without a file is the normal case. Default() yields the built-in
table, the built-in ignore set and the Desktop as root.

🚧 Current Issues & TODOs:
1. Root does not expand environment variables, only a leading "~"
*/
package config
