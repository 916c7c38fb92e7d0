package services

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	db "wonderlust/database"
	"wonderlust/models"
)

// SessionLifetime matches the 7-day login cookie.
const SessionLifetime = 7 * 24 * time.Hour

// CreateSession records a new login for the user and returns it.
func CreateSession(userID primitive.ObjectID) (models.Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now()
	session := models.Session{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionLifetime),
	}
	_, err := db.SessionCollection.InsertOne(ctx, session)
	if err != nil {
		return models.Session{}, err
	}
	return session, nil
}

func GetSession(id primitive.ObjectID) (models.Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var session models.Session
	err := db.SessionCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err != nil {
		return models.Session{}, err
	}
	return session, nil
}

// DeleteSession ends a login; missing records are not an error.
func DeleteSession(id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.SessionCollection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// PurgeExpiredSessions drops session records past their expiry. Runs from
// the hourly cron in main.
func PurgeExpiredSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := db.SessionCollection.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": time.Now()}})
	if err != nil {
		log.Println("Failed to purge expired sessions:", err)
		return
	}
	if result.DeletedCount > 0 {
		log.Printf("Purged %d expired sessions", result.DeletedCount)
	}
}
