package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureVendorIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("vendors").Indexes()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureVendorIndexes: creating email_unique index")
	_, err := indexes.CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureVendorIndexes: email index error:", err)
		return err
	}
	return nil
}

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	vendorIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "vendor", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("vendor_createdAt"),
	}

	log.Println("EnsureOrderIndexes: creating vendor_createdAt index")
	_, err := indexes.CreateOne(ctx, vendorIndex)
	if err != nil {
		log.Println("EnsureOrderIndexes: vendor index error:", err)
		return err
	}
	return nil
}

func EnsureProductIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("products").Indexes()

	vendorIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "vendor", Value: 1}},
		Options: options.Index().SetName("vendor_index"),
	}

	log.Println("EnsureProductIndexes: creating vendor_index index")
	_, err := indexes.CreateOne(ctx, vendorIndex)
	if err != nil {
		log.Println("EnsureProductIndexes: vendor index error:", err)
		return err
	}
	return nil
}

// EnsureResetTokenIndexes lets Mongo expire password reset tokens on its own.
func EnsureResetTokenIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("reset_tokens").Indexes()

	ttlIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().
			SetName("expiresAt_ttl").
			SetExpireAfterSeconds(0),
	}

	log.Println("EnsureResetTokenIndexes: creating expiresAt_ttl index")
	_, err := indexes.CreateOne(ctx, ttlIndex)
	if err != nil {
		log.Println("EnsureResetTokenIndexes: ttl index error:", err)
		return err
	}
	return nil
}
