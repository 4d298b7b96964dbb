package honey

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"maskon/db"
	"maskon/models"
	"maskon/mq"
	"maskon/reviews"
	"maskon/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var errBadMinPurity = errors.New("minPurity must be a number")

// BuildFilter turns list query parameters into a honey filter. Search
// covers name, description and flower sources. A non-numeric minPurity
// is rejected rather than ignored.
func BuildFilter(params url.Values) (bson.M, error) {
	query := bson.M{}
	if honeyType := params.Get("type"); honeyType != "" {
		query["type"] = honeyType
	}
	if region := params.Get("region"); region != "" {
		query["region"] = region
	}
	if minPurity := params.Get("minPurity"); minPurity != "" {
		purity, err := strconv.ParseFloat(minPurity, 64)
		if err != nil {
			return nil, errBadMinPurity
		}
		query["quality.purity"] = bson.M{"$gte": purity}
	}
	if search := params.Get("search"); search != "" {
		query["$or"] = []bson.M{
			{"name": bson.M{"$regex": search, "$options": "i"}},
			{"description": bson.M{"$regex": search, "$options": "i"}},
			{"flowerSource": bson.M{"$regex": search, "$options": "i"}},
		}
	}
	return query, nil
}

func Validate(h models.Honey) []utils.FieldError {
	var errs []utils.FieldError
	if strings.TrimSpace(h.Name) == "" {
		errs = append(errs, utils.FieldError{Field: "name", Message: "Honey name is required"})
	}
	if !models.ValidHoneyType(h.Type) {
		errs = append(errs, utils.FieldError{Field: "type", Message: "Type must be one of raw, processed, comb, creamed"})
	}
	if len(h.FlowerSource) == 0 {
		errs = append(errs, utils.FieldError{Field: "flowerSource", Message: "Flower source is required"})
	}
	if h.Description == "" {
		errs = append(errs, utils.FieldError{Field: "description", Message: "Description is required"})
	}
	if h.Region == "" {
		errs = append(errs, utils.FieldError{Field: "region", Message: "Region is required"})
	}
	if len(h.Benefits) == 0 {
		errs = append(errs, utils.FieldError{Field: "benefits", Message: "Benefits are required"})
	}
	if h.Quality.Purity < 0 || h.Quality.Purity > 100 {
		errs = append(errs, utils.FieldError{Field: "quality.purity", Message: "Purity must be between 0 and 100"})
	}
	return errs
}

func ValidateUpdate(update bson.M) []utils.FieldError {
	var errs []utils.FieldError
	if v, ok := update["name"]; ok {
		if s, _ := v.(string); strings.TrimSpace(s) == "" {
			errs = append(errs, utils.FieldError{Field: "name", Message: "Honey name is required"})
		}
	}
	if v, ok := update["type"]; ok {
		if s, _ := v.(string); !models.ValidHoneyType(s) {
			errs = append(errs, utils.FieldError{Field: "type", Message: "Type must be one of raw, processed, comb, creamed"})
		}
	}
	if quality, ok := update["quality"].(map[string]interface{}); ok {
		if v, ok := quality["purity"]; ok {
			if f, _ := v.(float64); f < 0 || f > 100 {
				errs = append(errs, utils.FieldError{Field: "quality.purity", Message: "Purity must be between 0 and 100"})
			}
		}
	}
	return errs
}

// GetHoney handles GET /api/v1/honey.
func GetHoney(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter, err := BuildFilter(r.URL.Query())
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.HoneyCollection.Find(ctx, filter, db.OptionsFindLatest(0))
	if err != nil {
		utils.RespondServerError(w)
		return
	}
	defer cursor.Close(ctx)

	var items []models.Honey
	if err := cursor.All(ctx, &items); err != nil {
		utils.RespondServerError(w)
		return
	}
	if items == nil {
		items = []models.Honey{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "count": len(items), "data": items})
}

// GetHoneyByID handles GET /api/v1/honey/:id.
func GetHoneyByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Honey product not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var item models.Honey
	if err := db.HoneyCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Honey product not found")
			return
		}
		utils.RespondServerError(w)
		return
	}
	reviews.AttachReviewers(ctx, item.Reviews)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": item})
}

// newHoneyDoc stamps the server-owned fields on a create payload.
// Harvest info is optional and stays exactly as the caller sent it.
func newHoneyDoc(item models.Honey, now time.Time) models.Honey {
	item.ID = primitive.NewObjectID()
	item.Rating = 0
	item.Reviews = []models.Review{}
	item.CreatedAt = now
	item.UpdatedAt = now
	return item
}

// CreateHoney handles POST /api/v1/honey.
func CreateHoney(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var item models.Honey
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := Validate(item); len(errs) > 0 {
		utils.RespondWithFieldErrors(w, errs)
		return
	}

	item = newHoneyDoc(item, time.Now())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.HoneyCollection.InsertOne(ctx, item); err != nil {
		utils.RespondServerError(w)
		return
	}

	mq.Emit("honey-created", mq.Index{EntityType: "honey", EntityId: item.ID.Hex(), Method: "POST"})
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "data": item})
}

// UpdateHoney handles PUT /api/v1/honey/:id.
func UpdateHoney(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Honey product not found")
		return
	}

	var update bson.M
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	delete(update, "_id")
	delete(update, "id")
	delete(update, "createdAt")
	delete(update, "updatedAt")
	// Derived fields are only writable through the review endpoint.
	delete(update, "rating")
	delete(update, "reviews")

	if errs := ValidateUpdate(update); len(errs) > 0 {
		utils.RespondWithFieldErrors(w, errs)
		return
	}
	update["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var item models.Honey
	err = db.HoneyCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Honey product not found")
			return
		}
		utils.RespondServerError(w)
		return
	}

	mq.Emit("honey-updated", mq.Index{EntityType: "honey", EntityId: item.ID.Hex(), Method: "PUT"})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": item})
}

// DeleteHoney handles DELETE /api/v1/honey/:id.
func DeleteHoney(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Honey product not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.HoneyCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.RespondServerError(w)
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Honey product not found")
		return
	}

	mq.Emit("honey-deleted", mq.Index{EntityType: "honey", EntityId: id.Hex(), Method: "DELETE"})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": utils.M{}})
}

// AddReview handles POST /api/v1/honey/:id/reviews. Honey does not
// reject repeat reviewers; that asymmetry with workouts and personnel
// mirrors the upstream behavior and is covered by tests.
func AddReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Honey product not found")
		return
	}

	userID, err := primitive.ObjectIDFromHex(utils.GetUserIDFromContext(r.Context()))
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var payload struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := reviews.Validate(payload.Rating, payload.Comment); len(errs) > 0 {
		utils.RespondWithFieldErrors(w, errs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var item models.Honey
	err = reviews.Add(ctx, db.HoneyCollection, id, userID, payload.Rating, payload.Comment, false, &item)
	if err != nil {
		if errors.Is(err, reviews.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Honey product not found")
			return
		}
		utils.RespondServerError(w)
		return
	}
	reviews.AttachReviewers(ctx, item.Reviews)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "data": item})
}
