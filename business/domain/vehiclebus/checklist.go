package vehiclebus

import (
	"sort"
	"strings"
)

// Checklist is the inspection document attached to a vehicle: categories of
// named items, each item optionally carrying a free text observation.
type Checklist struct {
	Categories []Category `json:"categories"`
}

// Category groups related checklist items under a name.
type Category struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Item is a single inspection point.
type Item struct {
	Name        string `json:"name"`
	Done        bool   `json:"done"`
	Observation string `json:"observation,omitempty"`
}

// Normalize returns a canonical form of the checklist: names trimmed, empty
// items and categories dropped, duplicates removed keeping the first
// occurrence, categories and items sorted by name. Normalizing an already
// normalized checklist returns an identical value.
func (c Checklist) Normalize() Checklist {
	cats := make([]Category, 0, len(c.Categories))
	seenCats := make(map[string]bool)

	for _, cat := range c.Categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" || seenCats[name] {
			continue
		}

		items := make([]Item, 0, len(cat.Items))
		seenItems := make(map[string]bool)

		for _, itm := range cat.Items {
			itmName := strings.TrimSpace(itm.Name)
			if itmName == "" || seenItems[itmName] {
				continue
			}
			seenItems[itmName] = true

			items = append(items, Item{
				Name:        itmName,
				Done:        itm.Done,
				Observation: strings.TrimSpace(itm.Observation),
			})
		}

		if len(items) == 0 {
			continue
		}

		sort.Slice(items, func(i, j int) bool {
			return items[i].Name < items[j].Name
		})

		seenCats[name] = true
		cats = append(cats, Category{
			Name:  name,
			Items: items,
		})
	}

	sort.Slice(cats, func(i, j int) bool {
		return cats[i].Name < cats[j].Name
	})

	if len(cats) == 0 {
		return Checklist{}
	}

	return Checklist{Categories: cats}
}
