package batchinfo

import (
	"sort"

	"gopkg.in/guregu/null.v3"
)

// EditorResolver supplies prime editor names for batches whose names omit
// one. It receives the full set of unresolved batch names in sorted order
// and returns an editor per name. This is the one human-interaction point in
// the ingestion pipeline; ResolveEditors guarantees it runs at most once.
type EditorResolver func(missing []string) (map[string]string, error)

// UniformResolver assigns the same editor to every unresolved batch. Useful
// for scripted (non-interactive) ingestion.
func UniformResolver(editor string) EditorResolver {
	return func(missing []string) (map[string]string, error) {
		out := make(map[string]string, len(missing))
		for _, name := range missing {
			out[name] = editor
		}
		return out, nil
	}
}

// ResolveEditors fills in the Editor field of every entry in infos that
// lacks one, using the supplied resolver. It must be called after all batch
// names have been parsed so the resolver sees the complete unresolved set.
// Batches for which the resolver returns no usable value are removed from
// infos and reported back so the caller can warn about them; that is a
// deliberate exclusion, not an error.
func ResolveEditors(infos map[string]BatchInfo, resolve EditorResolver) (excluded []string, err error) {
	var missing []string
	for name, info := range infos {
		if !info.Editor.Valid {
			missing = append(missing, name)
		}
	}

	if len(missing) == 0 {
		return nil, nil
	}

	sort.Strings(missing)

	resolved, err := resolve(missing)
	if err != nil {
		return nil, err
	}

	for _, name := range missing {
		editor, ok := resolved[name]
		if !ok || editor == "" {
			delete(infos, name)
			excluded = append(excluded, name)
			continue
		}

		info := infos[name]
		info.Editor = null.StringFrom(editor)
		infos[name] = info
	}

	return excluded, nil
}
