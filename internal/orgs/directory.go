package orgs

import (
	"errors"
	"sort"
	"strings"

	"rippl-backend/internal/tasks"
)

var ErrOrgNotFound = errors.New("organization not found")

// Slug turns an organization name into a URL-safe key: "EcoWatch Global" -> "ecowatch-global".
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Directory groups missions by organization, sorted by mission count then name.
func Directory(all []tasks.Task) []Organization {
	byName := map[string]*Organization{}
	var order []string

	for _, t := range all {
		name := strings.TrimSpace(t.Organization)
		if name == "" {
			continue
		}
		o, ok := byName[name]
		if !ok {
			o = &Organization{Slug: Slug(name), Name: name, Categories: []string{}}
			byName[name] = o
			order = append(order, name)
		}
		add(o, t)
	}

	out := make([]Organization, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Missions != out[j].Missions {
			return out[i].Missions > out[j].Missions
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Find returns the organization whose slug or name matches key.
func Find(all []tasks.Task, key string) (Detail, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Detail{}, ErrOrgNotFound
	}
	slug := Slug(key)

	var d Detail
	found := false
	for _, t := range all {
		if Slug(t.Organization) != slug {
			continue
		}
		if !found {
			d.Organization = Organization{Slug: slug, Name: strings.TrimSpace(t.Organization), Categories: []string{}}
			found = true
		}
		add(&d.Organization, t)
		d.Tasks = append(d.Tasks, t)
	}
	if !found {
		return Detail{}, ErrOrgNotFound
	}
	return d, nil
}

func add(o *Organization, t tasks.Task) {
	if o.Logo == "" {
		o.Logo = t.OrgLogo
	}
	if t.Category != "" && !contains(o.Categories, t.Category) {
		o.Categories = append(o.Categories, t.Category)
	}

	o.Missions++
	o.XPOffered += t.XP
	switch {
	case t.Status == tasks.StatusCompleted:
		o.Completed++
		o.Hours += t.Hours
	case t.Status.IsValid() && t.Status.IsOpen():
		o.Open++
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
