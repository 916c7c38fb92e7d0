package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	db "wonderlust/database"
)

type Image struct {
	URL      string `json:"url" bson:"url"`
	Filename string `json:"filename" bson:"filename"`
}

type Listing struct {
	ID          primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Title       string               `json:"title" bson:"title"`
	Description string               `json:"description" bson:"description"`
	Image       Image                `json:"image" bson:"image"`
	Price       float64              `json:"price" bson:"price,omitempty"`
	Location    string               `json:"location" bson:"location"`
	Country     string               `json:"country" bson:"country"`
	Reviews     []primitive.ObjectID `json:"reviews" bson:"reviews"`
	Owner       primitive.ObjectID   `json:"owner" bson:"owner"`
}

// ListingInput is the payload shape accepted on create and update.
type ListingInput struct {
	Title       string  `json:"title" form:"title" binding:"required"`
	Description string  `json:"description" form:"description" binding:"required"`
	Price       float64 `json:"price" form:"price" binding:"omitempty,min=100"`
	Location    string  `json:"location" form:"location" binding:"required"`
	Country     string  `json:"country" form:"country" binding:"required"`
}

// ExpandedReview is a review with its author document joined in.
type ExpandedReview struct {
	ID        primitive.ObjectID `json:"id"`
	Rating    int                `json:"rating"`
	Comment   string             `json:"comment"`
	CreatedAt time.Time          `json:"created_at"`
	Author    User               `json:"author"`
}

// ExpandedListing is a listing with its owner and reviews joined in,
// the shape the show page renders from.
type ExpandedListing struct {
	ID          primitive.ObjectID `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Image       Image              `json:"image"`
	Price       float64            `json:"price"`
	Location    string             `json:"location"`
	Country     string             `json:"country"`
	Owner       User               `json:"owner"`
	Reviews     []ExpandedReview   `json:"reviews"`
}

func AddListing(listing Listing) (Listing, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	listing.ID = primitive.NewObjectID()
	if listing.Reviews == nil {
		listing.Reviews = []primitive.ObjectID{}
	}
	_, err := db.ListingCollection.InsertOne(ctx, listing)
	if err != nil {
		return Listing{}, err
	}
	return listing, nil
}

func GetAllListings() ([]Listing, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := db.ListingCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var listings []Listing
	if err = cursor.All(ctx, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func GetListingByID(id string) (Listing, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Listing{}, mongo.ErrNoDocuments
	}

	var listing Listing
	err = db.ListingCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&listing)
	if err != nil {
		return Listing{}, err
	}
	return listing, nil
}

// GetExpandedListing loads a listing with its owner and every review joined
// with the review's author. A review or user that has gone missing is
// skipped rather than failing the whole read.
func GetExpandedListing(id string) (ExpandedListing, error) {
	listing, err := GetListingByID(id)
	if err != nil {
		return ExpandedListing{}, err
	}

	expanded := ExpandedListing{
		ID:          listing.ID,
		Title:       listing.Title,
		Description: listing.Description,
		Image:       listing.Image,
		Price:       listing.Price,
		Location:    listing.Location,
		Country:     listing.Country,
		Reviews:     []ExpandedReview{},
	}

	if owner, err := GetUserByID(listing.Owner); err == nil {
		expanded.Owner = owner
	}

	if len(listing.Reviews) == 0 {
		return expanded, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := db.ReviewCollection.Find(ctx, bson.M{"_id": bson.M{"$in": listing.Reviews}})
	if err != nil {
		return ExpandedListing{}, err
	}
	defer cursor.Close(ctx)

	var reviews []Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return ExpandedListing{}, err
	}

	for _, review := range reviews {
		item := ExpandedReview{
			ID:        review.ID,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt,
		}
		if author, err := GetUserByID(review.Author); err == nil {
			item.Author = author
		}
		expanded.Reviews = append(expanded.Reviews, item)
	}
	return expanded, nil
}

// UpdateListing applies the validated payload, and the replacement image
// when one was uploaded, to an existing listing.
func UpdateListing(id string, input ListingInput, image *Image) (Listing, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Listing{}, mongo.ErrNoDocuments
	}

	fields := bson.M{
		"title":       input.Title,
		"description": input.Description,
		"location":    input.Location,
		"country":     input.Country,
	}
	// Price is optional in the payload; a payload without one leaves the
	// stored price alone instead of zeroing it.
	if input.Price != 0 {
		fields["price"] = input.Price
	}
	if image != nil {
		fields["image"] = *image
	}

	result, err := db.ListingCollection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": fields})
	if err != nil {
		return Listing{}, err
	}
	if result.MatchedCount == 0 {
		return Listing{}, mongo.ErrNoDocuments
	}
	return GetListingByID(id)
}

// DeleteListing removes the listing, then removes every review it
// referenced. The listing goes first: once its reference set is gone the
// reviews are unreachable even if the second delete is interrupted.
func DeleteListing(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	var listing Listing
	err = db.ListingCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&listing)
	if err != nil {
		return err
	}

	result, err := db.ListingCollection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	if len(listing.Reviews) > 0 {
		_, err = db.ReviewCollection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": listing.Reviews}})
		if err != nil {
			return err
		}
	}
	return nil
}
