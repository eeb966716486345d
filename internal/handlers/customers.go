package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vendorhub/internal/models"
)

func GetCustomers(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination"})
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetSkip((page - 1) * limit).
			SetLimit(limit)

		cursor, err := db.Collection("customers").Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		customers := make([]models.Customer, 0)
		if err := cursor.All(ctx, &customers); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": customers, "page": page, "limit": limit})
	}
}

// SetCustomerRestriction mirrors the vendor flow and always reports failures.
func SetCustomerRestriction(db *mongo.Database, restricted bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		res, err := db.Collection("customers").UpdateByID(ctx, customerID, bson.M{
			"$set": bson.M{"isRestricted": restricted, "updatedAt": time.Now()},
		})
		if err != nil {
			log.Println("[CUSTOMER] [ERROR] restriction update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"isRestricted": restricted})
	}
}
