package dietary

import (
	"github.com/abaleemmo/food-festival-express-checkout/pkg/db/models"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/enums"
)

// RestrictionSet is the set of dietary tags a shopper has switched on.
// An item is eligible only when it carries every tag in the set, so the
// set acts as a requirement list, not an exclusion list.
type RestrictionSet map[enums.DietaryTag]struct{}

// NewRestrictionSet builds a set from the given tags, dropping invalid ones.
func NewRestrictionSet(tags ...enums.DietaryTag) RestrictionSet {
	set := RestrictionSet{}
	for _, tag := range tags {
		if tag.IsValid() {
			set[tag] = struct{}{}
		}
	}
	return set
}

// Toggle flips the presence of a tag and reports whether it is now active.
// An invalid tag is ignored.
func (r RestrictionSet) Toggle(tag enums.DietaryTag) bool {
	if !tag.IsValid() {
		return false
	}
	if _, ok := r[tag]; ok {
		delete(r, tag)
		return false
	}
	r[tag] = struct{}{}
	return true
}

// Has reports whether a tag is active.
func (r RestrictionSet) Has(tag enums.DietaryTag) bool {
	_, ok := r[tag]
	return ok
}

// Active returns the active tags in the enum's canonical order.
func (r RestrictionSet) Active() []enums.DietaryTag {
	out := make([]enums.DietaryTag, 0, len(r))
	for _, tag := range enums.AllDietaryTags() {
		if r.Has(tag) {
			out = append(out, tag)
		}
	}
	return out
}

// Unmet returns the active restrictions the item does not satisfy, in the
// enum's canonical order. An empty result means the item is eligible.
func (r RestrictionSet) Unmet(item models.FoodItem) []enums.DietaryTag {
	if len(r) == 0 {
		return nil
	}

	itemTags := map[enums.DietaryTag]struct{}{}
	for _, tag := range item.Tags() {
		itemTags[tag] = struct{}{}
	}

	var unmet []enums.DietaryTag
	for _, tag := range enums.AllDietaryTags() {
		if !r.Has(tag) {
			continue
		}
		if _, ok := itemTags[tag]; !ok {
			unmet = append(unmet, tag)
		}
	}
	return unmet
}

// Eligible reports whether the item carries every active restriction tag.
// With no restrictions active, every item is eligible.
func (r RestrictionSet) Eligible(item models.FoodItem) bool {
	return len(r.Unmet(item)) == 0
}

// Annotation pairs a menu item with its eligibility under a restriction set.
// Ineligible items stay in the menu, the kiosk renders them greyed out with
// the unmet tags listed.
type Annotation struct {
	Item     models.FoodItem   `json:"item"`
	Eligible bool              `json:"eligible"`
	Unmet    []enums.DietaryTag `json:"unmet_restrictions,omitempty"`
}

// Annotate classifies every item against the restriction set, preserving
// the input order. No item is ever filtered out.
func (r RestrictionSet) Annotate(items []models.FoodItem) []Annotation {
	out := make([]Annotation, 0, len(items))
	for _, item := range items {
		unmet := r.Unmet(item)
		out = append(out, Annotation{
			Item:     item,
			Eligible: len(unmet) == 0,
			Unmet:    unmet,
		})
	}
	return out
}
