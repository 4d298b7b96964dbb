package db

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	MealsCollection     *mongo.Collection
	HerbsCollection     *mongo.Collection
	HoneyCollection     *mongo.Collection
	WorkoutsCollection  *mongo.Collection
	PersonnelCollection *mongo.Collection

	Client *mongo.Client
)

// Init wires the collection handles. Called once from main after the
// connection is established so nothing dials mongo at import time.
func Init(client *mongo.Client, dbName string) {
	Client = client
	database := client.Database(dbName)

	MealsCollection = database.Collection("meals")
	HerbsCollection = database.Collection("herbs")
	HoneyCollection = database.Collection("honey")
	WorkoutsCollection = database.Collection("workouts")
	PersonnelCollection = database.Collection("personnel")
}

func OptionsFindLatest(limit int64) *options.FindOptions {
	opts := options.Find()
	opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return opts
}
