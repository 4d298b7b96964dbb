package workouts

import (
	"net/url"
	"testing"

	"maskon/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildFilter(t *testing.T) {
	trainerID := primitive.NewObjectID()
	q, err := BuildFilter(url.Values{
		"type":       {"traditional"},
		"category":   {"strength"},
		"difficulty": {"beginner"},
		"trainer":    {trainerID.Hex()},
	})
	if err != nil {
		t.Fatalf("BuildFilter: %v", err)
	}
	if q["type"] != "traditional" || q["category"] != "strength" || q["difficulty"] != "beginner" {
		t.Errorf("unexpected filter %v", q)
	}
	if q["trainer"] != trainerID {
		t.Errorf("trainer filter = %v, want %v", q["trainer"], trainerID)
	}
}

func TestBuildFilterBadTrainer(t *testing.T) {
	if _, err := BuildFilter(url.Values{"trainer": {"not-an-id"}}); err == nil {
		t.Error("malformed trainer id accepted")
	}
}

func TestBuildFilterSearchCoversExercises(t *testing.T) {
	q, err := BuildFilter(url.Values{"search": {"squat"}})
	if err != nil {
		t.Fatalf("BuildFilter: %v", err)
	}
	or, ok := q["$or"].([]bson.M)
	if !ok || len(or) != 3 {
		t.Fatalf("expected 3 $or branches, got %v", q["$or"])
	}
	ex := or[2]["exercises.name"].(bson.M)
	if ex["$regex"] != "squat" || ex["$options"] != "i" {
		t.Errorf("exercises.name branch = %v", ex)
	}
}

func validWorkout() models.Workout {
	return models.Workout{
		Name:        "Morning Mobility Flow",
		Description: "Joint mobility routine rooted in traditional movement",
		Type:        "traditional",
		Category:    "flexibility",
		Difficulty:  "beginner",
		Duration:    models.Duration{Value: 30, Unit: "minutes"},
		Exercises: []models.Exercise{
			{Name: "Hip circles", Description: "Slow controlled circles in both directions"},
		},
		Benefits: []string{"Improves range of motion"},
		Trainer:  primitive.NewObjectID(),
	}
}

func TestValidate(t *testing.T) {
	if errs := Validate(validWorkout()); len(errs) != 0 {
		t.Fatalf("valid workout rejected: %+v", errs)
	}

	cases := []struct {
		name  string
		mut   func(*models.Workout)
		field string
	}{
		{"blank name", func(w *models.Workout) { w.Name = " " }, "name"},
		{"bad type", func(w *models.Workout) { w.Type = "futuristic" }, "type"},
		{"bad category", func(w *models.Workout) { w.Category = "dance" }, "category"},
		{"bad difficulty", func(w *models.Workout) { w.Difficulty = "expert" }, "difficulty"},
		{"zero duration", func(w *models.Workout) { w.Duration.Value = 0 }, "duration.value"},
		{"no exercises", func(w *models.Workout) { w.Exercises = nil }, "exercises"},
		{"nameless exercise", func(w *models.Workout) { w.Exercises[0].Name = "" }, "exercises"},
		{"no benefits", func(w *models.Workout) { w.Benefits = nil }, "benefits"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := validWorkout()
			tc.mut(&w)
			errs := Validate(w)
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
	if errs := ValidateUpdate(bson.M{"difficulty": "advanced"}); len(errs) != 0 {
		t.Fatalf("valid update rejected: %+v", errs)
	}
	if errs := ValidateUpdate(bson.M{"type": "imaginary"}); len(errs) == 0 {
		t.Error("invalid type accepted")
	}
	if errs := ValidateUpdate(bson.M{"category": "juggling"}); len(errs) == 0 {
		t.Error("invalid category accepted")
	}
}
