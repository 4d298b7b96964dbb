package search

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"maskon/db"
	"maskon/models"
	"maskon/utils"
	"maskon/workouts"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultLimit  = 10
	advancedLimit = 20
)

var allTypes = []string{"meals", "herbs", "honey", "workouts", "personnel"}

func regexOr(query string, fields ...string) bson.M {
	or := make([]bson.M, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: bson.M{"$regex": query, "$options": "i"}})
	}
	return bson.M{"$or": or}
}

func searchFields(resource string) []string {
	switch resource {
	case "meals":
		return []string{"name", "description"}
	case "herbs":
		return []string{"name", "scientificName", "description"}
	case "honey":
		return []string{"name", "description", "flowerSource"}
	case "workouts":
		return []string{"name", "description", "exercises.name"}
	case "personnel":
		return []string{"name", "specialization", "email"}
	}
	return nil
}

// thinProjection is the reduced field set the global search answers
// with; detail endpoints serve the full documents.
func thinProjection(resource string) bson.M {
	switch resource {
	case "meals":
		return bson.M{"name": 1, "description": 1, "category": 1, "region": 1, "image": 1, "createdAt": 1}
	case "herbs":
		return bson.M{"name": 1, "scientificName": 1, "description": 1, "category": 1, "region": 1, "price": 1, "image": 1, "createdAt": 1}
	case "honey":
		return bson.M{"name": 1, "type": 1, "description": 1, "region": 1, "rating": 1, "packaging": 1, "image": 1, "createdAt": 1}
	case "workouts":
		return bson.M{"name": 1, "description": 1, "type": 1, "category": 1, "difficulty": 1, "duration": 1, "rating": 1, "trainer": 1, "image": 1, "createdAt": 1}
	case "personnel":
		return bson.M{"name": 1, "role": 1, "specialization": 1, "rating": 1, "isVerified": 1, "location": 1, "profileImage": 1, "createdAt": 1}
	}
	return nil
}

func collectionFor(resource string) *mongo.Collection {
	switch resource {
	case "meals":
		return db.MealsCollection
	case "herbs":
		return db.HerbsCollection
	case "honey":
		return db.HoneyCollection
	case "workouts":
		return db.WorkoutsCollection
	case "personnel":
		return db.PersonnelCollection
	}
	return nil
}

// findDocs runs one per-type search. A failing type logs and yields an
// empty list so one bad collection never sinks the whole response.
func findDocs(ctx context.Context, resource string, filter bson.M, limit int64, thin bool) []bson.M {
	coll := collectionFor(resource)
	opts := options.Find().
		SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if thin {
		opts.SetProjection(thinProjection(resource))
	} else if resource == "personnel" {
		opts.SetProjection(bson.M{"password": 0})
	}

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		log.Printf("search: %s query failed: %v", resource, err)
		return []bson.M{}
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		log.Printf("search: %s decode failed: %v", resource, err)
		return []bson.M{}
	}
	if docs == nil {
		docs = []bson.M{}
	}
	return docs
}

// findWorkouts keeps workout results typed so the trainer card can be
// resolved the same way the workout list does it.
func findWorkouts(ctx context.Context, filter bson.M, limit int64) []models.Workout {
	opts := options.Find().
		SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := db.WorkoutsCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Printf("search: workouts query failed: %v", err)
		return []models.Workout{}
	}
	defer cursor.Close(ctx)

	var docs []models.Workout
	if err := cursor.All(ctx, &docs); err != nil {
		log.Printf("search: workouts decode failed: %v", err)
		return []models.Workout{}
	}
	if docs == nil {
		docs = []models.Workout{}
	}
	workouts.AttachTrainers(ctx, docs)
	return docs
}

func wanted(types []string) map[string]bool {
	out := make(map[string]bool, len(allTypes))
	if len(types) == 0 {
		for _, t := range allTypes {
			out[t] = true
		}
		return out
	}
	for _, t := range types {
		for _, known := range allTypes {
			if t == known {
				out[t] = true
			}
		}
	}
	return out
}

func runSearch(ctx context.Context, query string, types map[string]bool, extra map[string]bson.M, limit int64, thin bool) (utils.M, int) {
	data := utils.M{}
	total := 0
	for _, resource := range allTypes {
		if !types[resource] {
			continue
		}
		filter := regexOr(query, searchFields(resource)...)
		for k, v := range extra[resource] {
			filter[k] = v
		}

		if resource == "workouts" {
			docs := findWorkouts(ctx, filter, limit)
			data[resource] = docs
			total += len(docs)
			continue
		}
		docs := findDocs(ctx, resource, filter, limit, thin)
		data[resource] = docs
		total += len(docs)
	}
	return data, total
}

// GlobalSearch handles GET /api/v1/search?q=...&type=...&limit=...
// The query is trimmed first, so a whitespace-only q is rejected.
func GlobalSearch(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Search query is required")
		return
	}

	limit := int64(defaultLimit)
	if v, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64); err == nil && v > 0 && v <= 50 {
		limit = v
	}

	var types []string
	if t := r.URL.Query().Get("type"); t != "" {
		types = []string{t}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	data, total := runSearch(ctx, query, wanted(types), nil, limit, true)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":      true,
		"query":        query,
		"totalResults": total,
		"data":         data,
	})
}

// AdvancedSearch handles POST /api/v1/search/advanced. The body names
// the query, the types to cover and optional per-type filters that are
// merged into each type's match. Results are full documents.
func AdvancedSearch(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload struct {
		Query   string                            `json:"query"`
		Types   []string                          `json:"types"`
		Filters map[string]map[string]interface{} `json:"filters"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	payload.Query = strings.TrimSpace(payload.Query)
	if payload.Query == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Search query is required")
		return
	}

	extra := make(map[string]bson.M, len(payload.Filters))
	for resource, fields := range payload.Filters {
		m := bson.M{}
		for k, v := range fields {
			m[k] = v
		}
		extra[resource] = m
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	data, total := runSearch(ctx, payload.Query, wanted(payload.Types), extra, advancedLimit, false)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":      true,
		"query":        payload.Query,
		"totalResults": total,
		"data":         data,
	})
}
