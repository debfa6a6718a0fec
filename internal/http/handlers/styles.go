package handlers

import (
	"net/http"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"iconforge/internal/iconset"
)

type styleEntry struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Descriptor string `json:"descriptor"`
}

type stylesResponse struct {
	Styles     []styleEntry `json:"styles"`
	Variations []string     `json:"variations"`
}

// Styles returns the catalog of style profiles and variation descriptors so
// clients can render pickers without hardcoding the tables.
func (a *App) Styles(w http.ResponseWriter, r *http.Request) {
	title := cases.Title(language.English)
	styles := make([]styleEntry, 0, len(iconset.StyleProfiles))
	for id, profile := range iconset.StyleProfiles {
		styles = append(styles, styleEntry{
			ID:         id,
			Name:       title.String(profile.Name),
			Descriptor: profile.Descriptor,
		})
	}
	sort.Slice(styles, func(i, j int) bool { return styles[i].ID < styles[j].ID })

	a.json(w, http.StatusOK, stylesResponse{
		Styles:     styles,
		Variations: iconset.VariationDescriptors[:],
	})
}
