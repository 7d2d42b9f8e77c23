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
Package organize sorts the files of one directory into category subfolders.

	+-------------+     +------------+     +-----------+
	|  Snapshot   | --> |  Classify  | --> | Deconflict|
	|  (ReadDir)  |     | (category) |     |  (naming) |
	+-------------+     +------------+     +-----+-----+
	                                             |
	                  +-----------+        +-----+-----+
	                  |  Summary  | <----- |   Move    |
	                  |  (Tally)  |        |   (fs)    |
	                  +-----------+        +-----------+

🎯 Purpose:
- Lists the root once and works from that fixed snapshot
- Skips non-files, hidden files, the ignore set and ignore patterns
- Moves each remaining file to <root>/<Category>/<unique name>
- Tallies successful moves per category

🔄 Flow per entry:
 1. Filter (SKIPPED)
 2. Classify by extension
 3. Ensure the category folder exists
 4. Pick a free name inside it
 5. Move (MOVED or FAILED)

⚡ Failure policy:
  - A missing or unreadable root aborts the run before any move.
  - Anything that goes wrong for one entry is recorded on its MoveRecord;
    the run carries on with the next entry and the Tally only counts
    successful moves.

Entries are processed one at a time. The only mutable state is the Summary,
owned by the running Organize call.

🔍 Example:

	org, err := organize.New(organize.Options{
		Root:     root,
		FS:       filesystem.NewOS(),
		Reporter: logger,
	})
	summary, err := org.Organize(ctx)
*/
package organize
