package classify

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Overlay is an operator-supplied extension to the built-in reference
// sets: extra organizational IDs per cohort. Patterns are not
// extensible; heuristic substrings stay compiled-in and unit-tested.
type Overlay struct {
	Cohorts map[string]OverlayCohort `yaml:"cohorts"`
}

// OverlayCohort lists extra IDs for one cohort.
type OverlayCohort struct {
	Districts []string `yaml:"districts"`
	Schools   []string `yaml:"schools"`
	Groups    []string `yaml:"groups"`
}

// LoadOverlay reads an overlay YAML file and returns a merged copy of
// the default ruleset. The built-in sets are never mutated.
func LoadOverlay(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "classify: read overlay %s", path)
	}

	var ov Overlay
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return nil, eris.Wrapf(err, "classify: parse overlay %s", path)
	}

	rs := Default().merged()
	for name, oc := range ov.Cohorts {
		c := Cohort(name)
		if !knownCohort(c) {
			return nil, eris.Errorf("classify: overlay names unknown cohort %q", name)
		}
		addAll(rs.Districts[c], oc.Districts)
		addAll(rs.Schools[c], oc.Schools)
		addAll(rs.Groups[c], oc.Groups)
	}
	return rs, nil
}

// merged returns a ruleset with copied set maps, safe to extend.
func (rs *Ruleset) merged() *Ruleset {
	return &Ruleset{
		Districts: copySets(rs.Districts),
		Schools:   copySets(rs.Schools),
		Groups:    copySets(rs.Groups),
		Patterns:  rs.Patterns,
	}
}

func copySets(in map[Cohort]map[string]bool) map[Cohort]map[string]bool {
	out := make(map[Cohort]map[string]bool, len(in))
	for c, set := range in {
		cp := make(map[string]bool, len(set))
		for id := range set {
			cp[id] = true
		}
		out[c] = cp
	}
	return out
}

func addAll(set map[string]bool, ids []string) {
	for _, id := range ids {
		if id != "" {
			set[id] = true
		}
	}
}

func knownCohort(c Cohort) bool {
	for _, k := range Cohorts {
		if k == c {
			return true
		}
	}
	return false
}
