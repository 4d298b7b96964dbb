package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HoneyNutrition struct {
	Calories float64  `bson:"calories,omitempty" json:"calories,omitempty"`
	Sugar    float64  `bson:"sugar,omitempty"    json:"sugar,omitempty"`
	Minerals []string `bson:"minerals,omitempty" json:"minerals,omitempty"`
	Vitamins []string `bson:"vitamins,omitempty" json:"vitamins,omitempty"`
}

type HoneyQuality struct {
	Purity   float64 `bson:"purity"          json:"purity"`
	Moisture float64 `bson:"moisture"        json:"moisture"`
	Color    string  `bson:"color,omitempty" json:"color,omitempty"`
}

type PackagingSize struct {
	Value float64 `bson:"value" json:"value"`
	Unit  string  `bson:"unit"  json:"unit"`
}

type Packaging struct {
	Size      PackagingSize `bson:"size"      json:"size"`
	Price     float64       `bson:"price"     json:"price"`
	Available bool          `bson:"available" json:"available"`
}

type HarvestInfo struct {
	Date   time.Time `bson:"date,omitempty"   json:"date,omitempty"`
	Season string    `bson:"season,omitempty" json:"season,omitempty"`
	Method string    `bson:"method,omitempty" json:"method,omitempty"`
}

type Storage struct {
	Recommendations []string `bson:"recommendations,omitempty" json:"recommendations,omitempty"`
	ShelfLife       string   `bson:"shelfLife,omitempty"       json:"shelfLife,omitempty"`
	Temperature     string   `bson:"temperature,omitempty"     json:"temperature,omitempty"`
}

type Honey struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"             json:"id"`
	Name            string             `bson:"name"                      json:"name"`
	Type            string             `bson:"type"                      json:"type"`
	FlowerSource    []string           `bson:"flowerSource"              json:"flowerSource"`
	Description     string             `bson:"description"               json:"description"`
	Region          string             `bson:"region"                    json:"region"`
	Benefits        []string           `bson:"benefits"                  json:"benefits"`
	NutritionalInfo HoneyNutrition     `bson:"nutritionalInfo,omitempty" json:"nutritionalInfo,omitempty"`
	Quality         HoneyQuality       `bson:"quality"                   json:"quality"`
	Certifications  []Certification    `bson:"certifications,omitempty"  json:"certifications,omitempty"`
	Packaging       []Packaging        `bson:"packaging,omitempty"       json:"packaging,omitempty"`
	HarvestInfo     HarvestInfo        `bson:"harvestInfo,omitempty"     json:"harvestInfo,omitempty"`
	Storage         Storage            `bson:"storage,omitempty"         json:"storage,omitempty"`
	Image           string             `bson:"image,omitempty"           json:"image,omitempty"`
	Rating          float64            `bson:"rating"                    json:"rating"`
	Reviews         []Review           `bson:"reviews"                   json:"reviews"`
	CreatedAt       time.Time          `bson:"createdAt"                 json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"                 json:"updatedAt"`
}

var HoneyTypes = []string{"raw", "processed", "comb", "creamed"}

func ValidHoneyType(t string) bool {
	for _, v := range HoneyTypes {
		if v == t {
			return true
		}
	}
	return false
}
