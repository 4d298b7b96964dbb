package meals

import (
	"net/url"
	"testing"

	"maskon/models"

	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildFilter(t *testing.T) {
	cases := []struct {
		name   string
		params url.Values
		check  func(t *testing.T, q bson.M)
	}{
		{
			"empty", url.Values{},
			func(t *testing.T, q bson.M) {
				if len(q) != 0 {
					t.Errorf("expected empty filter, got %v", q)
				}
			},
		},
		{
			"category and region", url.Values{"category": {"breakfast"}, "region": {"Kara"}},
			func(t *testing.T, q bson.M) {
				if q["category"] != "breakfast" || q["region"] != "Kara" {
					t.Errorf("unexpected filter %v", q)
				}
			},
		},
		{
			"search fans out", url.Values{"search": {"fufu"}},
			func(t *testing.T, q bson.M) {
				or, ok := q["$or"].([]bson.M)
				if !ok || len(or) != 2 {
					t.Fatalf("expected 2 $or branches, got %v", q["$or"])
				}
				name := or[0]["name"].(bson.M)
				if name["$regex"] != "fufu" || name["$options"] != "i" {
					t.Errorf("name branch = %v", name)
				}
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.check(t, BuildFilter(tc.params))
		})
	}
}

func validMeal() models.Meal {
	return models.Meal{
		Name:             "Ayimolou",
		Description:      "Rice and beans with spicy sauce",
		Ingredients:      []models.Ingredient{{Name: "Rice", Quantity: "2 cups"}},
		PreparationSteps: []string{"Cook rice and beans together"},
		Category:         "lunch",
		Region:           "Maritime",
		PreparationTime:  45,
		ServingSize:      4,
	}
}

func TestValidate(t *testing.T) {
	if errs := Validate(validMeal()); len(errs) != 0 {
		t.Fatalf("valid meal rejected: %+v", errs)
	}

	cases := []struct {
		name  string
		mut   func(*models.Meal)
		field string
	}{
		{"blank name", func(m *models.Meal) { m.Name = "  " }, "name"},
		{"no ingredients", func(m *models.Meal) { m.Ingredients = nil }, "ingredients"},
		{"no steps", func(m *models.Meal) { m.PreparationSteps = nil }, "preparationSteps"},
		{"bad category", func(m *models.Meal) { m.Category = "brunch" }, "category"},
		{"no region", func(m *models.Meal) { m.Region = "" }, "region"},
		{"zero prep time", func(m *models.Meal) { m.PreparationTime = 0 }, "preparationTime"},
		{"negative serving", func(m *models.Meal) { m.ServingSize = -1 }, "servingSize"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := validMeal()
			tc.mut(&m)
			errs := Validate(m)
			found := false
			for _, e := range errs {
				if e.Field == tc.field {
					found = true
				}
			}
			if !found {
				t.Errorf("no error for %q in %+v", tc.field, errs)
			}
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	if errs := ValidateUpdate(bson.M{"name": "New name", "servingSize": float64(2)}); len(errs) != 0 {
		t.Fatalf("valid update rejected: %+v", errs)
	}
	if errs := ValidateUpdate(bson.M{"category": "midnight"}); len(errs) == 0 {
		t.Error("invalid category accepted")
	}
	if errs := ValidateUpdate(bson.M{"preparationTime": float64(0)}); len(errs) == 0 {
		t.Error("zero preparation time accepted")
	}
	// Fields absent from the payload are not re-validated.
	if errs := ValidateUpdate(bson.M{"description": ""}); len(errs) != 0 {
		t.Errorf("untouched fields validated: %+v", errs)
	}
}

func TestStripImmutable(t *testing.T) {
	update := bson.M{"_id": "x", "id": "y", "createdAt": "z", "updatedAt": "w", "name": "keep"}
	stripImmutable(update)
	if len(update) != 1 || update["name"] != "keep" {
		t.Errorf("stripImmutable left %v", update)
	}
}
