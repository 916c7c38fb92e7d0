package models

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	db "wonderlust/database"
)

type Review struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Rating    int                `json:"rating" bson:"rating"`
	Comment   string             `json:"comment" bson:"comment"`
	Author    primitive.ObjectID `json:"author" bson:"author"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// ReviewInput is the payload shape accepted when adding a review.
type ReviewInput struct {
	Rating  int    `json:"rating" form:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" form:"comment" binding:"required"`
}

// AddReview inserts a review and pushes its id onto the parent listing.
// Returns mongo.ErrNoDocuments when the listing does not exist; an insert
// that raced a listing delete is compensated by removing the review again.
func AddReview(listingID string, review Review) (Review, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	listingObjID, err := primitive.ObjectIDFromHex(listingID)
	if err != nil {
		return Review{}, mongo.ErrNoDocuments
	}

	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now()

	if _, err := db.ReviewCollection.InsertOne(ctx, review); err != nil {
		return Review{}, err
	}

	result, err := db.ListingCollection.UpdateOne(ctx,
		bson.M{"_id": listingObjID},
		bson.M{"$push": bson.M{"reviews": review.ID}},
	)
	if err != nil {
		return Review{}, err
	}
	if result.MatchedCount == 0 {
		if _, err := db.ReviewCollection.DeleteOne(ctx, bson.M{"_id": review.ID}); err != nil {
			log.Printf("Failed to remove orphaned review %s: %v", review.ID.Hex(), err)
		}
		return Review{}, mongo.ErrNoDocuments
	}
	return review, nil
}

func GetReviewByID(id string) (Review, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Review{}, mongo.ErrNoDocuments
	}

	var review Review
	err = db.ReviewCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&review)
	if err != nil {
		return Review{}, err
	}
	return review, nil
}

// DeleteReview pulls the review id out of the parent listing, then deletes
// the review record. The pull runs first so a failure between the two steps
// leaves an unreachable record rather than a dangling reference.
func DeleteReview(listingID, reviewID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	listingObjID, err := primitive.ObjectIDFromHex(listingID)
	if err != nil {
		return mongo.ErrNoDocuments
	}
	reviewObjID, err := primitive.ObjectIDFromHex(reviewID)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	_, err = db.ListingCollection.UpdateOne(ctx,
		bson.M{"_id": listingObjID},
		bson.M{"$pull": bson.M{"reviews": reviewObjID}},
	)
	if err != nil {
		return err
	}

	result, err := db.ReviewCollection.DeleteOne(ctx, bson.M{"_id": reviewObjID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
