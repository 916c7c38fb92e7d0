package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	db "wonderlust/database"
)

// bindCollections points the package-level handles at the mock deployment.
func bindCollections(mt *mtest.T) {
	db.ListingCollection = mt.DB.Collection("listings")
	db.ReviewCollection = mt.DB.Collection("reviews")
	db.UserCollection = mt.DB.Collection("users")
	db.SessionCollection = mt.DB.Collection("sessions")
}

func TestGetListingByIDInvalidID(t *testing.T) {
	_, err := GetListingByID("not-a-hex-id")
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
}

func TestGetListingByIDNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("missing listing is a clean not-found", func(mt *mtest.T) {
		bindCollections(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".listings", mtest.FirstBatch))

		_, err := GetListingByID(primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, mongo.ErrNoDocuments)
	})
}

func TestDeleteListingCascadesReviews(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("listing delete removes referenced reviews", func(mt *mtest.T) {
		bindCollections(mt)

		listingID := primitive.NewObjectID()
		reviewIDs := bson.A{primitive.NewObjectID(), primitive.NewObjectID()}
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, mt.DB.Name()+".listings", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: listingID},
				{Key: "title", Value: "Cabin"},
				{Key: "owner", Value: primitive.NewObjectID()},
				{Key: "reviews", Value: reviewIDs},
			}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 2}),
		)

		err := DeleteListing(listingID.Hex())
		require.NoError(mt, err)

		find := mt.GetStartedEvent()
		require.NotNil(mt, find)
		assert.Equal(mt, "find", find.CommandName)

		deleteListing := mt.GetStartedEvent()
		require.NotNil(mt, deleteListing)
		assert.Equal(mt, "delete", deleteListing.CommandName)
		assert.Equal(mt, "listings", deleteListing.Command.Lookup("delete").StringValue())

		deleteReviews := mt.GetStartedEvent()
		require.NotNil(mt, deleteReviews, "cascade must delete the referenced reviews")
		assert.Equal(mt, "delete", deleteReviews.CommandName)
		assert.Equal(mt, "reviews", deleteReviews.Command.Lookup("delete").StringValue())
	})
}

func TestDeleteListingWithoutReviews(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no review delete is issued for an empty review set", func(mt *mtest.T) {
		bindCollections(mt)

		listingID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, mt.DB.Name()+".listings", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: listingID},
				{Key: "title", Value: "Cabin"},
				{Key: "owner", Value: primitive.NewObjectID()},
				{Key: "reviews", Value: bson.A{}},
			}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		err := DeleteListing(listingID.Hex())
		require.NoError(mt, err)

		mt.GetStartedEvent() // find
		mt.GetStartedEvent() // delete listing
		assert.Nil(mt, mt.GetStartedEvent())
	})
}

func TestGetExpandedListing(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("owner and review authors are joined in", func(mt *mtest.T) {
		bindCollections(mt)

		listingID := primitive.NewObjectID()
		ownerID := primitive.NewObjectID()
		reviewID := primitive.NewObjectID()
		authorID := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, mt.DB.Name()+".listings", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: listingID},
				{Key: "title", Value: "Cabin"},
				{Key: "description", Value: "Cozy"},
				{Key: "price", Value: 150.0},
				{Key: "location", Value: "Oslo"},
				{Key: "country", Value: "NO"},
				{Key: "owner", Value: ownerID},
				{Key: "reviews", Value: bson.A{reviewID}},
			}),
			mtest.CreateCursorResponse(0, mt.DB.Name()+".users", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: ownerID},
				{Key: "username", Value: "userA"},
			}),
			mtest.CreateCursorResponse(1, mt.DB.Name()+".reviews", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: reviewID},
				{Key: "rating", Value: 5},
				{Key: "comment", Value: "Great"},
				{Key: "author", Value: authorID},
			}),
			mtest.CreateCursorResponse(0, mt.DB.Name()+".reviews", mtest.NextBatch),
			mtest.CreateCursorResponse(0, mt.DB.Name()+".users", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: authorID},
				{Key: "username", Value: "userB"},
			}),
		)

		expanded, err := GetExpandedListing(listingID.Hex())
		require.NoError(mt, err)

		assert.Equal(mt, "Cabin", expanded.Title)
		assert.Equal(mt, "userA", expanded.Owner.Username)
		require.Len(mt, expanded.Reviews, 1)
		assert.Equal(mt, 5, expanded.Reviews[0].Rating)
		assert.Equal(mt, "Great", expanded.Reviews[0].Comment)
		assert.Equal(mt, "userB", expanded.Reviews[0].Author.Username)
	})
}

func TestUpdateListingKeepsStoredPriceWhenOmitted(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("a price-less edit does not touch the stored price", func(mt *mtest.T) {
		bindCollections(mt)

		listingID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateCursorResponse(0, mt.DB.Name()+".listings", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: listingID},
				{Key: "title", Value: "Hut"},
				{Key: "price", Value: 150.0},
				{Key: "owner", Value: primitive.NewObjectID()},
			}),
		)

		listing, err := UpdateListing(listingID.Hex(), ListingInput{
			Title: "Hut", Description: "Smaller", Location: "Oslo", Country: "NO",
		}, nil)
		require.NoError(mt, err)
		assert.Equal(mt, 150.0, listing.Price)

		update := mt.GetStartedEvent()
		require.NotNil(mt, update)
		require.Equal(mt, "update", update.CommandName)

		set := update.Command.Lookup("updates", "0", "u", "$set").Document()
		assert.Equal(mt, "Hut", set.Lookup("title").StringValue())
		_, lookupErr := set.LookupErr("price")
		assert.Error(mt, lookupErr, "$set must omit price when the payload carried none")
	})
}

func TestUpdateListingSetsSubmittedPrice(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("a submitted price lands in the $set", func(mt *mtest.T) {
		bindCollections(mt)

		listingID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateCursorResponse(0, mt.DB.Name()+".listings", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: listingID},
				{Key: "title", Value: "Hut"},
				{Key: "price", Value: 200.0},
				{Key: "owner", Value: primitive.NewObjectID()},
			}),
		)

		_, err := UpdateListing(listingID.Hex(), ListingInput{
			Title: "Hut", Description: "Smaller", Price: 200, Location: "Oslo", Country: "NO",
		}, nil)
		require.NoError(mt, err)

		update := mt.GetStartedEvent()
		require.NotNil(mt, update)
		set := update.Command.Lookup("updates", "0", "u", "$set").Document()
		assert.Equal(mt, 200.0, set.Lookup("price").Double())
	})
}

func TestAddListingOmitsAbsentPrice(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("a listing created without a price stores none", func(mt *mtest.T) {
		bindCollections(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		_, err := AddListing(Listing{
			Title:       "Cabin",
			Description: "Cozy",
			Location:    "Oslo",
			Country:     "NO",
			Owner:       primitive.NewObjectID(),
		})
		require.NoError(mt, err)

		insert := mt.GetStartedEvent()
		require.NotNil(mt, insert)
		require.Equal(mt, "insert", insert.CommandName)

		doc := insert.Command.Lookup("documents", "0").Document()
		_, lookupErr := doc.LookupErr("price")
		assert.Error(mt, lookupErr, "absent price must be stored as absent, not 0")
		assert.Equal(mt, "Cabin", doc.Lookup("title").StringValue())
	})
}

func TestUpdateListingNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("update of a missing listing reports not-found", func(mt *mtest.T) {
		bindCollections(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		_, err := UpdateListing(primitive.NewObjectID().Hex(), ListingInput{
			Title: "Cabin", Description: "Cozy", Price: 150, Location: "Oslo", Country: "NO",
		}, nil)
		assert.ErrorIs(mt, err, mongo.ErrNoDocuments)
	})
}
