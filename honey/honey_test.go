package honey

import (
	"net/url"
	"testing"
	"time"

	"maskon/models"

	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildFilter(t *testing.T) {
	q, err := BuildFilter(url.Values{"type": {"raw"}, "region": {"Kara"}, "minPurity": {"85"}})
	if err != nil {
		t.Fatalf("BuildFilter: %v", err)
	}
	if q["type"] != "raw" || q["region"] != "Kara" {
		t.Errorf("unexpected filter %v", q)
	}
	purity, ok := q["quality.purity"].(bson.M)
	if !ok || purity["$gte"] != 85.0 {
		t.Errorf("minPurity filter = %v", q["quality.purity"])
	}
}

func TestBuildFilterBadMinPurity(t *testing.T) {
	if _, err := BuildFilter(url.Values{"minPurity": {"very-pure"}}); err == nil {
		t.Error("non-numeric minPurity accepted")
	}
}

func TestBuildFilterSearch(t *testing.T) {
	q, err := BuildFilter(url.Values{"search": {"acacia"}})
	if err != nil {
		t.Fatalf("BuildFilter: %v", err)
	}
	or, ok := q["$or"].([]bson.M)
	if !ok || len(or) != 3 {
		t.Fatalf("expected 3 $or branches, got %v", q["$or"])
	}
	flower := or[2]["flowerSource"].(bson.M)
	if flower["$regex"] != "acacia" {
		t.Errorf("flowerSource branch = %v", flower)
	}
}

func validHoney() models.Honey {
	return models.Honey{
		Name:         "Wild Acacia Honey",
		Type:         "raw",
		FlowerSource: []string{"Acacia"},
		Description:  "Light amber honey from the northern plains",
		Region:       "Savanes",
		Benefits:     []string{"Soothes sore throat"},
		Quality:      models.HoneyQuality{Purity: 92, Moisture: 17},
	}
}

func TestValidate(t *testing.T) {
	if errs := Validate(validHoney()); len(errs) != 0 {
		t.Fatalf("valid honey rejected: %+v", errs)
	}

	cases := []struct {
		name  string
		mut   func(*models.Honey)
		field string
	}{
		{"blank name", func(h *models.Honey) { h.Name = "" }, "name"},
		{"bad type", func(h *models.Honey) { h.Type = "synthetic" }, "type"},
		{"no flower source", func(h *models.Honey) { h.FlowerSource = nil }, "flowerSource"},
		{"no benefits", func(h *models.Honey) { h.Benefits = nil }, "benefits"},
		{"purity over 100", func(h *models.Honey) { h.Quality.Purity = 101 }, "quality.purity"},
		{"negative purity", func(h *models.Honey) { h.Quality.Purity = -1 }, "quality.purity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := validHoney()
			tc.mut(&h)
			errs := Validate(h)
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

func TestNewHoneyDocKeepsHarvestInfoOptional(t *testing.T) {
	now := time.Now()

	doc := newHoneyDoc(validHoney(), now)
	if !doc.HarvestInfo.Date.IsZero() {
		t.Errorf("absent harvest date was fabricated: %v", doc.HarvestInfo.Date)
	}
	if doc.Rating != 0 || doc.Reviews == nil || len(doc.Reviews) != 0 {
		t.Errorf("derived fields not reset: rating=%v reviews=%v", doc.Rating, doc.Reviews)
	}
	if doc.CreatedAt != now || doc.UpdatedAt != now {
		t.Error("timestamps not stamped")
	}

	h := validHoney()
	h.HarvestInfo.Date = time.Date(2023, 11, 2, 0, 0, 0, 0, time.UTC)
	doc = newHoneyDoc(h, now)
	if !doc.HarvestInfo.Date.Equal(h.HarvestInfo.Date) {
		t.Errorf("caller-supplied harvest date changed: %v", doc.HarvestInfo.Date)
	}
}

func TestValidateUpdate(t *testing.T) {
	if errs := ValidateUpdate(bson.M{"type": "comb"}); len(errs) != 0 {
		t.Fatalf("valid update rejected: %+v", errs)
	}
	if errs := ValidateUpdate(bson.M{"type": "fake"}); len(errs) == 0 {
		t.Error("invalid type accepted")
	}
	if errs := ValidateUpdate(bson.M{"quality": map[string]interface{}{"purity": 150.0}}); len(errs) == 0 {
		t.Error("out-of-range purity accepted")
	}
}
