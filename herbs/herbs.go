package herbs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"maskon/db"
	"maskon/models"
	"maskon/mq"
	"maskon/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BuildFilter turns list query parameters into a herbs filter. Search
// covers name, scientific name and description, case-insensitively.
func BuildFilter(params url.Values) bson.M {
	query := bson.M{}
	if category := params.Get("category"); category != "" {
		query["category"] = category
	}
	if region := params.Get("region"); region != "" {
		query["region"] = region
	}
	if availability := params.Get("availability"); availability != "" {
		query["availability"] = availability
	}
	if search := params.Get("search"); search != "" {
		query["$or"] = []bson.M{
			{"name": bson.M{"$regex": search, "$options": "i"}},
			{"scientificName": bson.M{"$regex": search, "$options": "i"}},
			{"description": bson.M{"$regex": search, "$options": "i"}},
		}
	}
	return query
}

func Validate(h models.Herb) []utils.FieldError {
	var errs []utils.FieldError
	if strings.TrimSpace(h.Name) == "" {
		errs = append(errs, utils.FieldError{Field: "name", Message: "Herb name is required"})
	}
	if h.Description == "" {
		errs = append(errs, utils.FieldError{Field: "description", Message: "Description is required"})
	}
	if len(h.Benefits) == 0 {
		errs = append(errs, utils.FieldError{Field: "benefits", Message: "Benefits are required"})
	}
	if h.Region == "" {
		errs = append(errs, utils.FieldError{Field: "region", Message: "Region is required"})
	}
	if !models.ValidHerbCategory(h.Category) {
		errs = append(errs, utils.FieldError{Field: "category", Message: "Category must be one of medicinal, culinary, aromatic, ceremonial"})
	}
	if h.Availability != "" && !models.ValidHerbAvailability(h.Availability) {
		errs = append(errs, utils.FieldError{Field: "availability", Message: "Availability must be one of in-stock, out-of-stock, seasonal"})
	}
	if h.Price.Amount <= 0 {
		errs = append(errs, utils.FieldError{Field: "price.amount", Message: "Price amount is required"})
	}
	if h.Price.Unit == "" {
		errs = append(errs, utils.FieldError{Field: "price.unit", Message: "Price unit is required"})
	}
	for _, usage := range h.Usages {
		if usage.Condition == "" || usage.Preparation == "" || usage.Dosage == "" {
			errs = append(errs, utils.FieldError{Field: "usages", Message: "Each usage needs condition, preparation and dosage"})
			break
		}
	}
	return errs
}

func ValidateUpdate(update bson.M) []utils.FieldError {
	var errs []utils.FieldError
	if v, ok := update["name"]; ok {
		if s, _ := v.(string); strings.TrimSpace(s) == "" {
			errs = append(errs, utils.FieldError{Field: "name", Message: "Herb name is required"})
		}
	}
	if v, ok := update["category"]; ok {
		if s, _ := v.(string); !models.ValidHerbCategory(s) {
			errs = append(errs, utils.FieldError{Field: "category", Message: "Category must be one of medicinal, culinary, aromatic, ceremonial"})
		}
	}
	if v, ok := update["availability"]; ok {
		if s, _ := v.(string); !models.ValidHerbAvailability(s) {
			errs = append(errs, utils.FieldError{Field: "availability", Message: "Availability must be one of in-stock, out-of-stock, seasonal"})
		}
	}
	return errs
}

// GetHerbs handles GET /api/v1/herbs.
func GetHerbs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.HerbsCollection.Find(ctx, BuildFilter(r.URL.Query()), db.OptionsFindLatest(0))
	if err != nil {
		utils.RespondServerError(w)
		return
	}
	defer cursor.Close(ctx)

	var herbs []models.Herb
	if err := cursor.All(ctx, &herbs); err != nil {
		utils.RespondServerError(w)
		return
	}
	if herbs == nil {
		herbs = []models.Herb{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "count": len(herbs), "data": herbs})
}

// GetHerb handles GET /api/v1/herbs/:id.
func GetHerb(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Herb not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var herb models.Herb
	if err := db.HerbsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&herb); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Herb not found")
			return
		}
		utils.RespondServerError(w)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": herb})
}

// CreateHerb handles POST /api/v1/herbs. Herb names are unique; a
// duplicate insert maps to a 400 like the store's duplicate-key error.
func CreateHerb(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var herb models.Herb
	if err := json.NewDecoder(r.Body).Decode(&herb); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := Validate(herb); len(errs) > 0 {
		utils.RespondWithFieldErrors(w, errs)
		return
	}

	now := time.Now()
	herb.ID = primitive.NewObjectID()
	if herb.Availability == "" {
		herb.Availability = "in-stock"
	}
	herb.CreatedAt = now
	herb.UpdatedAt = now

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := db.HerbsCollection.CountDocuments(ctx, bson.M{"name": herb.Name})
	if err != nil {
		utils.RespondServerError(w)
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "This herb already exists")
		return
	}

	if _, err := db.HerbsCollection.InsertOne(ctx, herb); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, "This herb already exists")
			return
		}
		utils.RespondServerError(w)
		return
	}

	mq.Emit("herb-created", mq.Index{EntityType: "herb", EntityId: herb.ID.Hex(), Method: "POST"})
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "data": herb})
}

// UpdateHerb handles PUT /api/v1/herbs/:id.
func UpdateHerb(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Herb not found")
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

	if errs := ValidateUpdate(update); len(errs) > 0 {
		utils.RespondWithFieldErrors(w, errs)
		return
	}
	update["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var herb models.Herb
	err = db.HerbsCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&herb)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Herb not found")
			return
		}
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, "This herb already exists")
			return
		}
		utils.RespondServerError(w)
		return
	}

	mq.Emit("herb-updated", mq.Index{EntityType: "herb", EntityId: herb.ID.Hex(), Method: "PUT"})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": herb})
}

// DeleteHerb handles DELETE /api/v1/herbs/:id.
func DeleteHerb(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Herb not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.HerbsCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.RespondServerError(w)
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Herb not found")
		return
	}

	mq.Emit("herb-deleted", mq.Index{EntityType: "herb", EntityId: id.Hex(), Method: "DELETE"})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "data": utils.M{}})
}
