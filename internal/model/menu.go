package model

import (
	"fmt"
	"sort"
)

// MenuItem is one search result. ID doubles as the pagination cursor and
// Last marks the final item of the final page.
type MenuItem struct {
	ID             string            `json:"id"`
	MenuID         string            `json:"menuId"`
	MenuName       string            `json:"menuName"`
	RestaurantID   string            `json:"restaurantId"`
	RestaurantName string            `json:"restaurantName"`
	ImageURL       string            `json:"imageUrl,omitempty"`
	Facets         map[string]string `json:"facets,omitempty"`
	Last           bool              `json:"last"`
}

// Menu is a dish as listed under a restaurant.
type Menu struct {
	MenuID       string `json:"menuId"`
	MenuName     string `json:"menuName"`
	RestaurantID string `json:"restaurantId"`
	ImageURL     string `json:"imageUrl,omitempty"`
}

// Restaurant identifies a place menus are evaluated at.
type Restaurant struct {
	RestaurantID string `json:"restaurantId" validate:"required"`
	Name         string `json:"restaurantName" validate:"required"`
	Address      string `json:"address,omitempty"`
}

// Evaluation is the result part of an evaluation submission: one option ID
// per facet key, plus an optional comment.
type Evaluation struct {
	Scores  map[string]string `json:"scores"`
	Comment string            `json:"comment,omitempty"`
}

// Validate checks every score against the facet catalog.
func (e Evaluation) Validate() error {
	if len(e.Scores) == 0 {
		return fmt.Errorf("evaluation has no scores")
	}

	keys := make([]string, 0, len(e.Scores))
	for k := range e.Scores {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		f, ok := FacetByKey(k)
		if !ok {
			return fmt.Errorf("unknown facet %q", k)
		}
		if _, ok := f.Option(e.Scores[k]); !ok {
			return fmt.Errorf("facet %q has no option %q", k, e.Scores[k])
		}
	}
	return nil
}
