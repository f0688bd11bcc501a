package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// maxFileBytes is the per-file size limit for loaded content.
const maxFileBytes = 1 << 20 // 1MB

// File is one loaded source file.
type File struct {
	Path    string
	Content string
}

// Filter decides whether a listed file is loaded.
type Filter func(rel string) bool

// ExtensionFilter accepts files whose name ends with one of exts. With no
// extensions every file is accepted.
func ExtensionFilter(exts ...string) Filter {
	var clean []string
	for _, e := range exts {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		clean = append(clean, e)
	}
	return func(rel string) bool {
		if len(clean) == 0 {
			return true
		}
		for _, e := range clean {
			if strings.HasSuffix(rel, e) {
				return true
			}
		}
		return false
	}
}

// ListStructure returns every file under the include paths that survives the
// exclude rules, relative to root.
func ListStructure(root string, includes, excludes []string) ([]string, error) {
	var paths []string
	err := walk(root, includes, excludes, func(rel, _ string) error {
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// LoadFiles reads the listed files accepted by filter. Bytes that are not
// valid UTF-8 are dropped; files over 1MB are skipped.
func LoadFiles(root string, includes, excludes []string, filter Filter) ([]File, error) {
	if filter == nil {
		filter = ExtensionFilter()
	}
	var files []File
	err := walk(root, includes, excludes, func(rel, abs string) error {
		if !filter(rel) {
			return nil
		}
		content, ok, err := readText(abs)
		if err != nil {
			return err
		}
		if ok {
			files = append(files, File{Path: rel, Content: content})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func readText(abs string) (string, bool, error) {
	info, err := os.Stat(abs)
	if err != nil {
		return "", false, fmt.Errorf("stat %s: %w", abs, err)
	}
	if info.Size() > maxFileBytes {
		return "", false, nil
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", abs, err)
	}
	return strings.ToValidUTF8(string(data), ""), true, nil
}

// walk visits each regular file once, in include order then WalkDir order.
// Missing include paths are skipped.
func walk(root string, includes, excludes []string, visit func(rel, abs string) error) error {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving root %s: %w", root, err)
	}
	ex := newExcluder(rootAbs, excludes)
	seen := make(map[string]bool)

	relTo := func(abs string) string {
		rel, err := filepath.Rel(rootAbs, abs)
		if err != nil {
			return filepath.ToSlash(abs)
		}
		return filepath.ToSlash(rel)
	}

	for _, inc := range includes {
		start := resolve(rootAbs, inc)
		if _, err := os.Stat(start); errors.Is(err, fs.ErrNotExist) {
			continue
		}

		err := filepath.WalkDir(start, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel := relTo(p)
			if ex.excluded(p, rel) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() || seen[p] {
				return nil
			}
			seen[p] = true
			return visit(rel, p)
		})
		if err != nil {
			return fmt.Errorf("walking %s: %w", inc, err)
		}
	}
	return nil
}

// Context is the assembled review input.
type Context struct {
	Structure []string
	Files     []File
}

// Build lists and loads in one call.
func Build(root string, includes, excludes []string, filter Filter) (Context, error) {
	structure, err := ListStructure(root, includes, excludes)
	if err != nil {
		return Context{}, err
	}
	files, err := LoadFiles(root, includes, excludes, filter)
	if err != nil {
		return Context{}, err
	}
	return Context{Structure: structure, Files: files}, nil
}

// Empty reports whether no file was loaded.
func (c Context) Empty() bool { return len(c.Files) == 0 }

// StructureText renders the listing one path per line.
func (c Context) StructureText() string {
	return strings.Join(c.Structure, "\n")
}

// CodeText renders every file as a "### path ###" block.
func (c Context) CodeText() string {
	blocks := make([]string, len(c.Files))
	for i, f := range c.Files {
		blocks[i] = "### " + f.Path + " ###\n" + f.Content
	}
	return strings.Join(blocks, "\n\n")
}
