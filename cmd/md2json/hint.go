package main

import (
	"errors"
	"os"
	"path/filepath"
	"sort"

	md2json "github.com/alnah/go-md2json"
	"github.com/alnah/go-md2json/internal/assets"
	"github.com/alnah/go-md2json/internal/config"
	"github.com/alnah/go-md2json/internal/dateutil"
	"github.com/alnah/go-md2json/internal/fileutil"
	"github.com/alnah/go-md2json/internal/hints"
)

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, ErrNoInput):
		return hints.ForNoInput()
	case errors.Is(err, ErrNoOptions), errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(userConfigCandidates(), assets.Presets())
	case errors.Is(err, ErrUnknownStyle):
		return hints.ForUnknownStyle(md2json.Styles())
	case errors.Is(err, dateutil.ErrInvalidDateFormat):
		return hints.ForDateFormat(presetNames())
	case errors.Is(err, md2json.ErrMalformedFrontmatter):
		return hints.ForMalformedFrontmatter()
	case errors.Is(err, fileutil.ErrOutputDirState):
		return hints.ForOutputDirectory()
	}
	return ""
}

// userConfigCandidates lists where a default options file could be created.
func userConfigCandidates() []string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, config.AppDirName, "options.json")}
}

func presetNames() []string {
	names := make([]string, 0, len(dateutil.DatePresets))
	for name := range dateutil.DatePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
