package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is embedded in Honey, Workout and Personnel documents.
type Review struct {
	User    primitive.ObjectID `bson:"user"              json:"user"`
	Rating  int                `bson:"rating"            json:"rating"`
	Comment string             `bson:"comment,omitempty" json:"comment,omitempty"`
	Date    time.Time          `bson:"date"              json:"date"`

	// UserInfo is resolved on detail reads, never stored.
	UserInfo *ReviewerCard `bson:"-" json:"userInfo,omitempty"`
}

// ReviewerCard is the resolved reviewer reference attached on reads.
type ReviewerCard struct {
	ID   primitive.ObjectID `bson:"_id"  json:"id"`
	Name string             `bson:"name" json:"name"`
}

type Certification struct {
	Name            string `bson:"name,omitempty"            json:"name,omitempty"`
	IssuedBy        string `bson:"issuedBy,omitempty"        json:"issuedBy,omitempty"`
	Year            int    `bson:"year,omitempty"            json:"year,omitempty"`
	VerificationURL string `bson:"verificationUrl,omitempty" json:"verificationUrl,omitempty"`
}
