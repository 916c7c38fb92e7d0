package db

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const databaseName = "wonderlust_db"

// Client is the shared MongoDB connection for the whole process.
var Client *mongo.Client

var UserCollection *mongo.Collection
var ListingCollection *mongo.Collection
var ReviewCollection *mongo.Collection
var SessionCollection *mongo.Collection

// InitDB connects to MongoDB and binds the collection handles.
func InitDB() {
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI not set in .env")
	}

	clientOptions := options.Client().ApplyURI(mongoURI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}

	Client = client
	UserCollection = client.Database(databaseName).Collection("users")
	ListingCollection = client.Database(databaseName).Collection("listings")
	ReviewCollection = client.Database(databaseName).Collection("reviews")
	SessionCollection = client.Database(databaseName).Collection("sessions")

	log.Println("Connected to MongoDB")
}

// DisconnectDB closes the MongoDB connection.
func DisconnectDB() {
	if Client == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Disconnect(ctx); err != nil {
		log.Println("Failed to disconnect MongoDB:", err)
		return
	}
	log.Println("Disconnected from MongoDB")
}

// OpenCollection returns a collection handle by name.
func OpenCollection(collectionName string) *mongo.Collection {
	return Client.Database(databaseName).Collection(collectionName)
}
