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

package category

// 🗂️ Defaults returns the built-in categories in classification order
func Defaults() []Category {
	return []Category{
		{Name: "Images", Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg", ".ico", ".tiff", ".webp", ".heic"}},
		{Name: "PDFs", Extensions: []string{".pdf"}},
		{Name: "Documents", Extensions: []string{".doc", ".docx", ".txt", ".rtf", ".odt", ".pages", ".tex", ".md", ".csv", ".xlsx", ".xls", ".ppt", ".pptx"}},
		{Name: "Videos", Extensions: []string{".mp4", ".avi", ".mov", ".mkv", ".flv", ".wmv", ".webm", ".m4v"}},
		{Name: "Music", Extensions: []string{".mp3", ".wav", ".flac", ".aac", ".ogg", ".wma", ".m4a"}},
		{Name: "Archives", Extensions: []string{".zip", ".tar", ".gz", ".rar", ".7z", ".bz2", ".xz"}},
		{Name: CatchAll},
	}
}

// 🏭 DefaultTable returns a table built from Defaults
func DefaultTable() *Table {
	t, err := NewTable(Defaults()...)
	if err != nil {
		panic("default category table is invalid: " + err.Error())
	}
	return t
}
