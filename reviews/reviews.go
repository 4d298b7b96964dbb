// Package reviews owns the append-review-and-recompute-rating step
// shared by the honey, workout and personnel resources.
package reviews

import (
	"context"
	"errors"
	"time"

	"maskon/db"
	"maskon/models"
	"maskon/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("already reviewed")
)

// Validate checks the caller-supplied review fields.
func Validate(rating int, comment string) []utils.FieldError {
	var errs []utils.FieldError
	if rating < 1 || rating > 5 {
		errs = append(errs, utils.FieldError{Field: "rating", Message: "Rating must be between 1 and 5"})
	}
	if comment == "" {
		errs = append(errs, utils.FieldError{Field: "comment", Message: "Comment is required"})
	}
	return errs
}

// AppendPipeline builds the aggregation update that pushes one review
// and recomputes the denormalized rating in the same document write.
// The second stage runs against the already-extended review list, so
// the stored rating is always the mean over all reviews, rounded to
// one decimal.
func AppendPipeline(userID primitive.ObjectID, rating int, comment string, now time.Time) mongo.Pipeline {
	review := bson.M{
		"user":    userID,
		"rating":  rating,
		"comment": comment,
		"date":    now,
	}
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"reviews": bson.M{"$concatArrays": bson.A{
				bson.M{"$ifNull": bson.A{"$reviews", bson.A{}}},
				bson.A{review},
			}},
			"updatedAt": now,
		}}},
		{{Key: "$set", Value: bson.M{
			"rating": bson.M{"$round": bson.A{bson.M{"$avg": "$reviews.rating"}, 1}},
		}}},
	}
}

// Add appends a review to the document with resourceID and stores the
// recomputed rating, as one atomic update. With enforceUnique set, a
// reviewer already present in the review list gets ErrDuplicate. The
// updated document is decoded into out.
func Add(ctx context.Context, coll *mongo.Collection, resourceID, userID primitive.ObjectID, rating int, comment string, enforceUnique bool, out interface{}) error {
	filter := bson.M{"_id": resourceID}
	if enforceUnique {
		filter["reviews.user"] = bson.M{"$ne": userID}
	}

	err := coll.FindOneAndUpdate(ctx, filter,
		AppendPipeline(userID, rating, comment, time.Now()),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(out)
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	if !enforceUnique {
		return ErrNotFound
	}

	// The filtered update matched nothing: either the document is absent
	// or this reviewer already appears in it.
	count, countErr := coll.CountDocuments(ctx, bson.M{"_id": resourceID})
	if countErr != nil {
		return countErr
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrDuplicate
}

// reviewerIDs collects the distinct reviewer ids in order of appearance.
func reviewerIDs(revs []models.Review) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(revs))
	seen := make(map[primitive.ObjectID]bool, len(revs))
	for _, rev := range revs {
		if !rev.User.IsZero() && !seen[rev.User] {
			seen[rev.User] = true
			ids = append(ids, rev.User)
		}
	}
	return ids
}

func applyReviewerCards(revs []models.Review, cards []models.ReviewerCard) {
	byID := make(map[primitive.ObjectID]*models.ReviewerCard, len(cards))
	for i := range cards {
		byID[cards[i].ID] = &cards[i]
	}
	for i := range revs {
		revs[i].UserInfo = byID[revs[i].User]
	}
}

// AttachReviewers resolves reviewer names for display on detail reads
// with one personnel query. Reviewers that no longer exist keep a bare
// id. Failures leave the list untouched.
func AttachReviewers(ctx context.Context, revs []models.Review) {
	ids := reviewerIDs(revs)
	if len(ids) == 0 {
		return
	}

	cursor, err := db.PersonnelCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"name": 1}))
	if err != nil {
		return
	}
	var cards []models.ReviewerCard
	if err := cursor.All(ctx, &cards); err != nil {
		return
	}
	applyReviewerCards(revs, cards)
}
