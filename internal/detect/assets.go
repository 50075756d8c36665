package detect

import (
	"io/fs"
	"path"
	"path/filepath"
	"strings"
)

// Assets is the locator output: every 3D model path, every image path
// under a recognized asset directory, and one representative thumbnail.
type Assets struct {
	Models    []string
	Images    []string
	Thumbnail string
}

var modelExts = map[string]bool{
	".stl":  true,
	".gltf": true,
	".glb":  true,
	".obj":  true,
	".fbx":  true,
	".3mf":  true,
}

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

// assetDirs are the top-level directories images are expected to live
// under. publicAssetDir is honored only when walking a local checkout.
var assetDirs = map[string]bool{
	"docs":        true,
	"assets":      true,
	"images":      true,
	"screenshots": true,
	"media":       true,
}

const publicAssetDir = "public"

// prunedDirs are infrastructure directories skipped before recursing
// into a local tree.
var prunedDirs = map[string]bool{
	".git":          true,
	"node_modules":  true,
	"vendor":        true,
	"dist":          true,
	"build":         true,
	"target":        true,
	"coverage":      true,
	"__pycache__":   true,
	".pytest_cache": true,
	".venv":         true,
	"venv":          true,
	".next":         true,
	".cache":        true,
	".idea":         true,
	".vscode":       true,
}

// thumbnailPrefixes are checked in priority order against image
// basenames; the first pattern with any match decides the thumbnail.
var thumbnailPrefixes = []string{"thumb", "cover", "hero", "banner", "preview"}

// FromFileList locates assets in a flat file-path listing, as returned
// by a remote tree fetch.
func FromFileList(paths []string) Assets {
	return classify(paths, false)
}

// WalkDir locates assets under a local repository root, pruning
// infrastructure directories before recursion. Returned paths are
// slash-separated and relative to root. An unreadable root yields an
// empty result.
func WalkDir(root string) Assets {
	return classify(ListFiles(root), true)
}

// ListFiles walks a local tree and returns relative slash-separated
// file paths, skipping pruned directories. Failures are treated as an
// empty listing.
func ListFiles(root string) []string {
	var paths []string
	_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != root && prunedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	return paths
}

func classify(paths []string, includePublic bool) Assets {
	var a Assets
	for _, p := range paths {
		ext := strings.ToLower(path.Ext(p))
		switch {
		case modelExts[ext]:
			a.Models = append(a.Models, p)
		case imageExts[ext] && underAssetDir(p, includePublic):
			a.Images = append(a.Images, p)
		}
	}
	a.Thumbnail = pickThumbnail(a.Images)
	return a
}

// underAssetDir reports whether a path's top-level directory is one of
// the conventional asset directories. Only the first path segment is
// restricted; anything below a qualifying directory counts.
func underAssetDir(p string, includePublic bool) bool {
	idx := strings.Index(p, "/")
	if idx < 0 {
		return false
	}
	top := strings.ToLower(p[:idx])
	if includePublic && top == publicAssetDir {
		return true
	}
	return assetDirs[top]
}

func pickThumbnail(images []string) string {
	for _, prefix := range thumbnailPrefixes {
		for _, img := range images {
			base := strings.ToLower(path.Base(img))
			if strings.HasPrefix(base, prefix) {
				return img
			}
		}
	}
	if len(images) > 0 {
		return images[0]
	}
	return ""
}
