package reviews

import (
	"testing"
	"time"

	"maskon/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidate(t *testing.T) {
	if errs := Validate(4, "Very effective"); len(errs) != 0 {
		t.Fatalf("valid review rejected: %+v", errs)
	}

	cases := []struct {
		name    string
		rating  int
		comment string
		field   string
	}{
		{"rating too low", 0, "ok", "rating"},
		{"rating too high", 6, "ok", "rating"},
		{"missing comment", 3, "", "comment"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := Validate(tc.rating, tc.comment)
			if len(errs) == 0 {
				t.Fatal("expected a validation error")
			}
			if errs[0].Field != tc.field {
				t.Errorf("field = %q, want %q", errs[0].Field, tc.field)
			}
		})
	}
}

func TestAppendPipelineShape(t *testing.T) {
	userID := primitive.NewObjectID()
	now := time.Now()
	pipeline := AppendPipeline(userID, 5, "Excellent", now)

	if len(pipeline) != 2 {
		t.Fatalf("pipeline has %d stages, want 2", len(pipeline))
	}

	first := pipeline[0]
	if first[0].Key != "$set" {
		t.Fatalf("first stage is %q, want $set", first[0].Key)
	}
	set, ok := first[0].Value.(bson.M)
	if !ok {
		t.Fatalf("first $set value is %T", first[0].Value)
	}
	concat, ok := set["reviews"].(bson.M)
	if !ok || concat["$concatArrays"] == nil {
		t.Error("first stage does not append via $concatArrays")
	}
	if set["updatedAt"] != now {
		t.Error("first stage does not bump updatedAt")
	}

	second := pipeline[1]
	if second[0].Key != "$set" {
		t.Fatalf("second stage is %q, want $set", second[0].Key)
	}
	set2 := second[0].Value.(bson.M)
	round, ok := set2["rating"].(bson.M)
	if !ok {
		t.Fatal("second stage does not set rating")
	}
	args, ok := round["$round"].(bson.A)
	if !ok || len(args) != 2 {
		t.Fatalf("rating is not rounded: %+v", round)
	}
	avg, ok := args[0].(bson.M)
	if !ok || avg["$avg"] != "$reviews.rating" {
		t.Errorf("rating does not average $reviews.rating: %+v", args[0])
	}
	if args[1] != 1 {
		t.Errorf("rating rounded to %v decimals, want 1", args[1])
	}
}

func TestReviewerIDs(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	revs := []models.Review{
		{User: a, Rating: 5},
		{User: b, Rating: 3},
		{User: a, Rating: 4},
		{Rating: 2}, // zero user, e.g. legacy data
	}

	ids := reviewerIDs(revs)
	if len(ids) != 2 {
		t.Fatalf("got %d ids, want 2", len(ids))
	}
	if ids[0] != a || ids[1] != b {
		t.Errorf("ids = %v, want [%v %v]", ids, a, b)
	}

	if got := reviewerIDs(nil); len(got) != 0 {
		t.Errorf("reviewerIDs(nil) = %v", got)
	}
}

func TestApplyReviewerCards(t *testing.T) {
	a := primitive.NewObjectID()
	gone := primitive.NewObjectID()
	revs := []models.Review{
		{User: a, Rating: 5},
		{User: gone, Rating: 1},
	}

	applyReviewerCards(revs, []models.ReviewerCard{{ID: a, Name: "Afi Mensah"}})

	if revs[0].UserInfo == nil || revs[0].UserInfo.Name != "Afi Mensah" {
		t.Errorf("known reviewer not resolved: %+v", revs[0].UserInfo)
	}
	// A deleted reviewer keeps the bare id.
	if revs[1].UserInfo != nil {
		t.Errorf("unknown reviewer resolved to %+v", revs[1].UserInfo)
	}
}

func TestAppendPipelineEmbedsReview(t *testing.T) {
	userID := primitive.NewObjectID()
	now := time.Now()
	pipeline := AppendPipeline(userID, 2, "Too intense", now)

	set := pipeline[0][0].Value.(bson.M)
	concat := set["reviews"].(bson.M)["$concatArrays"].(bson.A)
	if len(concat) != 2 {
		t.Fatalf("$concatArrays has %d operands, want 2", len(concat))
	}

	appended := concat[1].(bson.A)
	review := appended[0].(bson.M)
	if review["user"] != userID {
		t.Errorf("review user = %v", review["user"])
	}
	if review["rating"] != 2 {
		t.Errorf("review rating = %v", review["rating"])
	}
	if review["comment"] != "Too intense" {
		t.Errorf("review comment = %v", review["comment"])
	}
	if review["date"] != now {
		t.Errorf("review date = %v", review["date"])
	}
}
