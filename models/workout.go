package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Duration struct {
	Value float64 `bson:"value"          json:"value"`
	Unit  string  `bson:"unit,omitempty" json:"unit,omitempty"`
}

type Modification struct {
	Level       string `bson:"level,omitempty"       json:"level,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

type Exercise struct {
	Name          string         `bson:"name"                    json:"name"`
	Description   string         `bson:"description"             json:"description"`
	Sets          int            `bson:"sets,omitempty"          json:"sets,omitempty"`
	Reps          int            `bson:"reps,omitempty"          json:"reps,omitempty"`
	Duration      *Duration      `bson:"duration,omitempty"      json:"duration,omitempty"`
	Image         string         `bson:"image,omitempty"         json:"image,omitempty"`
	Video         string         `bson:"video,omitempty"         json:"video,omitempty"`
	Equipment     []string       `bson:"equipment,omitempty"     json:"equipment,omitempty"`
	Modifications []Modification `bson:"modifications,omitempty" json:"modifications,omitempty"`
}

type Workout struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"           json:"id"`
	Name          string             `bson:"name"                    json:"name"`
	Description   string             `bson:"description"             json:"description"`
	Type          string             `bson:"type"                    json:"type"`
	Category      string             `bson:"category"                json:"category"`
	Difficulty    string             `bson:"difficulty"              json:"difficulty"`
	Duration      Duration           `bson:"duration"                json:"duration"`
	Exercises     []Exercise         `bson:"exercises"               json:"exercises"`
	Equipment     []string           `bson:"equipment,omitempty"     json:"equipment,omitempty"`
	TargetMuscles []string           `bson:"targetMuscles,omitempty" json:"targetMuscles,omitempty"`
	Benefits      []string           `bson:"benefits"                json:"benefits"`
	Precautions   []string           `bson:"precautions,omitempty"   json:"precautions,omitempty"`
	Trainer       primitive.ObjectID `bson:"trainer"                 json:"trainer"`
	TrainerInfo   *TrainerCard       `bson:"trainerInfo,omitempty"   json:"trainerInfo,omitempty"`
	Image         string             `bson:"image,omitempty"         json:"image,omitempty"`
	Video         string             `bson:"video,omitempty"         json:"video,omitempty"`
	Calories      float64            `bson:"calories,omitempty"      json:"calories,omitempty"`
	Rating        float64            `bson:"rating"                  json:"rating"`
	Reviews       []Review           `bson:"reviews"                 json:"reviews"`
	CreatedAt     time.Time          `bson:"createdAt"               json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"               json:"updatedAt"`
}

// TrainerCard is the resolved trainer reference attached on reads.
type TrainerCard struct {
	ID             primitive.ObjectID `bson:"_id"                      json:"id"`
	Name           string             `bson:"name"                     json:"name"`
	Specialization string             `bson:"specialization,omitempty" json:"specialization,omitempty"`
	Rating         float64            `bson:"rating,omitempty"         json:"rating,omitempty"`
}

var (
	WorkoutTypes        = []string{"traditional", "modern", "hybrid"}
	WorkoutCategories   = []string{"strength", "cardio", "flexibility", "balance", "meditation"}
	WorkoutDifficulties = []string{"beginner", "intermediate", "advanced"}
)

func ValidWorkoutType(t string) bool {
	for _, v := range WorkoutTypes {
		if v == t {
			return true
		}
	}
	return false
}

func ValidWorkoutCategory(c string) bool {
	for _, v := range WorkoutCategories {
		if v == c {
			return true
		}
	}
	return false
}

func ValidWorkoutDifficulty(d string) bool {
	for _, v := range WorkoutDifficulties {
		if v == d {
			return true
		}
	}
	return false
}
