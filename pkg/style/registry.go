// registry.go — Scan the asset root once at startup and index styles by id.
package style

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Registry is the immutable style catalog. It is built once by Load and is
// safe for unsynchronized concurrent reads afterwards.
type Registry struct {
	byID    map[string]Style
	ordered []Style // sorted by display name
}

// Load scans assetRoot for style folders. Each folder must contain exactly
// one metadata JSON file (with "name" and "source"), one PNG base image and
// one MP4 base video; anything missing or ambiguous is an *AssetError.
// Duplicate ids are rejected rather than silently resolved.
func Load(assetRoot string) (*Registry, error) {
	entries, err := os.ReadDir(assetRoot)
	if err != nil {
		return nil, &AssetError{Path: assetRoot, Err: err}
	}

	r := &Registry{byID: make(map[string]Style)}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		s, err := loadStyle(entry.Name(), filepath.Join(assetRoot, entry.Name()))
		if err != nil {
			return nil, err
		}
		if _, dup := r.byID[s.ID]; dup {
			return nil, &AssetError{Path: assetRoot, Err: fmt.Errorf("duplicate style id %q", s.ID)}
		}
		r.byID[s.ID] = s
		r.ordered = append(r.ordered, s)
	}

	if len(r.ordered) == 0 {
		return nil, &AssetError{Path: assetRoot, Err: errors.New("no style folders found")}
	}

	sort.Slice(r.ordered, func(i, j int) bool {
		return r.ordered[i].Name < r.ordered[j].Name
	})

	return r, nil
}

// Lookup returns the style with the given id.
func (r *Registry) Lookup(id string) (Style, error) {
	s, ok := r.byID[id]
	if !ok {
		return Style{}, &UnknownStyleError{ID: id}
	}
	return s, nil
}

// List returns the catalog in display-name order.
func (r *Registry) List() []Info {
	infos := make([]Info, 0, len(r.ordered))
	for _, s := range r.ordered {
		infos = append(infos, Info{ID: s.ID, Name: s.Name, Source: s.Source})
	}
	return infos
}

// Len returns the number of loaded styles.
func (r *Registry) Len() int { return len(r.byID) }

// loadStyle reads one style folder into a Style.
func loadStyle(id, dir string) (Style, error) {
	metaPath, err := singleFile(dir, ".json")
	if err != nil {
		return Style{}, err
	}
	imagePath, err := singleFile(dir, ".png")
	if err != nil {
		return Style{}, err
	}
	videoPath, err := singleFile(dir, ".mp4")
	if err != nil {
		return Style{}, err
	}

	data, err := os.ReadFile(metaPath)
	if err != nil {
		return Style{}, &AssetError{Path: metaPath, Err: err}
	}

	var meta metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return Style{}, &AssetError{Path: metaPath, Err: fmt.Errorf("parse metadata: %w", err)}
	}
	if meta.Name == "" {
		return Style{}, &AssetError{Path: metaPath, Err: errors.New(`metadata missing "name"`)}
	}
	if meta.Source == "" {
		return Style{}, &AssetError{Path: metaPath, Err: errors.New(`metadata missing "source"`)}
	}

	return Style{
		ID:        id,
		Name:      meta.Name,
		Source:    meta.Source,
		ImagePath: imagePath,
		VideoPath: videoPath,
	}, nil
}

// singleFile returns the one file in dir with the given extension.
func singleFile(dir, ext string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", &AssetError{Path: dir, Err: err}
	}

	var found []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			found = append(found, filepath.Join(dir, entry.Name()))
		}
	}

	switch len(found) {
	case 0:
		return "", &AssetError{Path: dir, Err: fmt.Errorf("no %s file", ext)}
	case 1:
		return found[0], nil
	default:
		return "", &AssetError{Path: dir, Err: fmt.Errorf("expected one %s file, found %d", ext, len(found))}
	}
}
