package export

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"bic/config"
	"bic/state"
)

const (
	outExt        = ".png"
	batchSuffix   = "-composite"
	previewSuffix = "-preview"
)

// buildOutputPath returns output file path for single main image. In batch
// mode "dir" is output directory and names are always derived, otherwise
// explicitly requested output wins over configured naming.
func buildOutputPath(req *Request, main, dir string, batch bool, env *state.LocalEnv) string {
	if !batch && req.Output != "" {
		if fi, err := os.Stat(req.Output); err == nil && fi.IsDir() {
			return filepath.Join(req.Output, defaultFileName(req, main, batch, env))
		}
		return forceExt(req.Output)
	}

	if env.Cfg.Output.NameTemplate == "" {
		return filepath.Join(dir, defaultFileName(req, main, batch, env))
	}

	expandedName := expandOutputNameTemplate(req, main, env)
	if expandedName == "" {
		// fallback to default name if template expansion failed
		return filepath.Join(dir, defaultFileName(req, main, batch, env))
	}
	return assemblePathWithSubdirs(dir, expandedName, env)
}

// defaultFileName is configured default name for single image and main image
// name with suffix for batches, so results do not overwrite each other.
func defaultFileName(req *Request, main string, batch bool, env *state.LocalEnv) string {
	var baseName string
	if batch {
		baseName = stem(main) + batchSuffix
	} else {
		baseName = stem(env.Cfg.Output.DefaultName)
	}
	if req.Preview {
		baseName += previewSuffix
	}
	return cleanPathSegment(baseName, env) + outExt
}

func forceExt(name string) string {
	if strings.EqualFold(filepath.Ext(name), outExt) {
		return name
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + outExt
}

func expandOutputNameTemplate(req *Request, main string, env *state.LocalEnv) string {
	expandedName, err := expandTemplate(req, main, config.OutputNameTemplateFieldName, env.Cfg.Output.NameTemplate)
	if err != nil {
		env.Log.Warn("Unable to prepare output filename", zap.Error(err))
		return ""
	}
	return filepath.FromSlash(strings.TrimSpace(expandedName))
}

// assemblePathWithSubdirs takes an expanded template name (which may contain
// path separators for subdirectories) and assembles it into a full output path,
// cleaning and transliterating segments as needed
func assemblePathWithSubdirs(outDir, expandedName string, env *state.LocalEnv) string {
	pathSegments := splitAndCleanPath(expandedName)

	if len(pathSegments) == 0 {
		return filepath.Join(outDir, cleanPathSegment("", env)+outExt)
	}

	last := pathSegments[len(pathSegments)-1]
	last = strings.TrimSuffix(last, filepath.Ext(last))
	fileName := cleanPathSegment(last, env) + outExt

	dirParts := make([]string, 0, len(pathSegments)+1)
	dirParts = append(dirParts, outDir)
	for _, segment := range pathSegments[:len(pathSegments)-1] {
		dirParts = append(dirParts, cleanPathSegment(segment, env))
	}
	dirParts = append(dirParts, fileName)
	return filepath.Join(dirParts...)
}

func splitAndCleanPath(path string) []string {
	path = strings.TrimSuffix(path, string(os.PathSeparator))
	segments := make([]string, 0, 8)

	for head, tail := filepath.Split(path); tail != ""; head, tail = filepath.Split(head) {
		segments = slices.Insert(segments, 0, tail)
		head = strings.TrimSuffix(head, string(os.PathSeparator))
		if head == "" {
			break
		}
	}
	return segments
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Output.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}

// isBatchResult reports whether name looks like file produced by batch run
// with default naming.
func isBatchResult(name string) bool {
	if !strings.EqualFold(filepath.Ext(name), outExt) {
		return false
	}
	base := strings.TrimSuffix(stem(name), previewSuffix)
	return strings.HasSuffix(base, batchSuffix)
}
