package service

import (
	"sort"
	"strings"

	"gotera/internal/models"
)

// Options builds select options from fetched items, sorted by label.
func Options[T any](items []T, value func(T) string, label func(T) string) []models.Option {
	out := make([]models.Option, 0, len(items))
	for _, item := range items {
		v := value(item)
		if v == "" {
			continue
		}
		out = append(out, models.Option{Value: v, Label: label(item)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Label) < strings.ToLower(out[j].Label)
	})
	return out
}

// FamilyOptions lists families for a select.
func FamilyOptions(families []models.Family) []models.Option {
	return Options(families,
		func(f models.Family) string { return f.ID },
		func(f models.Family) string { return f.Name })
}

// MinistryOptions lists ministries for a select.
func MinistryOptions(ministries []models.Ministry) []models.Option {
	return Options(ministries,
		func(m models.Ministry) string { return m.ID },
		func(m models.Ministry) string { return m.Name })
}

// ProfessionOptions lists professions for a select.
func ProfessionOptions(professions []models.Profession) []models.Option {
	return Options(professions,
		func(p models.Profession) string { return p.ID },
		func(p models.Profession) string { return p.Name })
}

// LocationOptions lists locations for a select.
func LocationOptions(locations []models.Location) []models.Option {
	return Options(locations,
		func(l models.Location) string { return l.ID },
		func(l models.Location) string { return l.Name })
}

// StatusOptions lists member statuses for a select.
func StatusOptions(statuses []models.Status) []models.Option {
	return Options(statuses,
		func(s models.Status) string { return s.ID },
		func(s models.Status) string { return s.Name })
}
