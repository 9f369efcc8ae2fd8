package manifest

import (
	"sort"
	"strings"

	"github.com/shelf-sh/shelf/pkg/installerr"
)

// Filter restricts the manifest to the requested script names.
// Completions follow their scripts. An empty request means everything;
// a name with no matching script is a selection error and no subset is
// returned.
func Filter(m Manifest, requested []string) (Manifest, error) {
	if len(requested) == 0 {
		return m, nil
	}

	available := make(map[string]struct{}, len(m.Scripts))
	for _, s := range m.Scripts {
		available[s.Name] = struct{}{}
	}

	wanted := make(map[string]struct{}, len(requested))
	var missing []string
	for _, name := range requested {
		if _, ok := available[name]; !ok {
			missing = append(missing, name)
			continue
		}
		wanted[name] = struct{}{}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return Manifest{}, installerr.Newf(installerr.ErrSelectionNotFound,
			"unknown script name(s): %s", strings.Join(missing, ", "))
	}

	var out Manifest
	for _, s := range m.Scripts {
		if _, ok := wanted[s.Name]; ok {
			out.Scripts = append(out.Scripts, s)
		}
	}
	for _, c := range m.Completions {
		if _, ok := wanted[c.ScriptName]; ok {
			out.Completions = append(out.Completions, c)
		}
	}
	return out, nil
}
