package dietary

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abaleemmo/food-festival-express-checkout/pkg/db/models"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/enums"
)

func tagged(name string, tags ...string) models.FoodItem {
	return models.FoodItem{Name: name, DietaryTags: pq.StringArray(tags)}
}

func TestEmptySetLeavesEverythingEligible(t *testing.T) {
	set := NewRestrictionSet()
	beef := tagged("Beef Bulgogi Bowl")

	assert.True(t, set.Eligible(beef))
	assert.Empty(t, set.Unmet(beef))
}

func TestEligibleRequiresEveryActiveTag(t *testing.T) {
	set := NewRestrictionSet(enums.DietaryTagVegan, enums.DietaryTagGlutenFree)

	quinoa := tagged("Quinoa Salad", "Vegetarian", "Vegan", "Gluten-Free")
	rolls := tagged("Vegetable Spring Rolls", "Vegetarian", "Vegan")
	pho := tagged("Beef Pho", "Gluten-Free")

	assert.True(t, set.Eligible(quinoa), "superset of restrictions is eligible")
	assert.False(t, set.Eligible(rolls), "missing Gluten-Free")
	assert.False(t, set.Eligible(pho), "missing Vegan")

	assert.Equal(t, []enums.DietaryTag{enums.DietaryTagGlutenFree}, set.Unmet(rolls))
	assert.Equal(t, []enums.DietaryTag{enums.DietaryTagVegan}, set.Unmet(pho))
}

func TestToggleFlipsMembership(t *testing.T) {
	set := NewRestrictionSet()

	assert.True(t, set.Toggle(enums.DietaryTagVegan))
	assert.True(t, set.Has(enums.DietaryTagVegan))

	assert.False(t, set.Toggle(enums.DietaryTagVegan))
	assert.False(t, set.Has(enums.DietaryTagVegan))
}

func TestToggleIgnoresUnknownTag(t *testing.T) {
	set := NewRestrictionSet()

	assert.False(t, set.Toggle(enums.DietaryTag("Keto")))
	assert.Empty(t, set.Active())
}

func TestAnnotateKeepsOrderAndEveryItem(t *testing.T) {
	set := NewRestrictionSet(enums.DietaryTagVegetarian)
	items := []models.FoodItem{
		tagged("Spicy Tofu Stir-fry", "Vegetarian", "Vegan"),
		tagged("Fish Tacos"),
		tagged("Lentil Soup", "Vegetarian", "Vegan", "Gluten-Free"),
	}

	annotated := set.Annotate(items)
	require.Len(t, annotated, 3, "ineligible items are annotated, never dropped")

	assert.True(t, annotated[0].Eligible)
	assert.False(t, annotated[1].Eligible)
	assert.Equal(t, []enums.DietaryTag{enums.DietaryTagVegetarian}, annotated[1].Unmet)
	assert.True(t, annotated[2].Eligible)
	assert.Equal(t, "Fish Tacos", annotated[1].Item.Name)
}

func TestActiveUsesCanonicalOrder(t *testing.T) {
	set := NewRestrictionSet(enums.DietaryTagGlutenFree, enums.DietaryTagVegetarian)

	assert.Equal(t,
		[]enums.DietaryTag{enums.DietaryTagVegetarian, enums.DietaryTagGlutenFree},
		set.Active())
}
