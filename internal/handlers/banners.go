package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vendorhub/internal/models"
)

func GetBanners(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := bson.M{}
		if v := strings.TrimSpace(c.Query("isActive")); v != "" {
			filter["isActive"] = v == "true"
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("banners").Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		banners := make([]models.Banner, 0)
		if err := cursor.All(ctx, &banners); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": banners})
	}
}

// CreateBanner requires an image; title and link come along in the same
// multipart payload.
func CreateBanner(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /banner"
		defer handlePanic(c, route)

		title := strings.TrimSpace(c.PostForm("title"))
		if title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image required"})
			return
		}
		path, err := saveUpload(file, "banners")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		banner := models.Banner{
			Title:     title,
			Image:     path,
			Link:      strings.TrimSpace(c.PostForm("link")),
			IsActive:  c.PostForm("isActive") != "false",
			CreatedAt: time.Now(),
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		res, err := db.Collection("banners").InsertOne(ctx, banner)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		banner.ID, _ = res.InsertedID.(primitive.ObjectID)

		c.JSON(http.StatusCreated, banner)
	}
}

func UpdateBanner(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /banner/:id"
		defer handlePanic(c, route)

		bannerID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		var banner models.Banner
		if err := db.Collection("banners").FindOne(ctx, bson.M{"_id": bannerID}).Decode(&banner); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "banner not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		update := bson.M{}
		if title := strings.TrimSpace(c.PostForm("title")); title != "" {
			update["title"] = title
		}
		if link, ok := c.GetPostForm("link"); ok {
			update["link"] = strings.TrimSpace(link)
		}

		oldImage := banner.Image
		if file, err := c.FormFile("image"); err == nil {
			path, err := saveUpload(file, "banners")
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, err.Error())
				return
			}
			update["image"] = path
		} else if existing := strings.TrimSpace(c.PostForm("existingImage")); existing != "" {
			update["image"] = existing
			oldImage = ""
		}

		if len(update) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
			return
		}

		if _, err := db.Collection("banners").UpdateByID(ctx, bannerID, bson.M{"$set": update}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if newImage, ok := update["image"].(string); ok && oldImage != "" && oldImage != newImage {
			if err := safeDeleteUpload(oldImage); err != nil {
				log.Println("[BANNER] [WARN] image cleanup failed:", err)
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "banner updated"})
	}
}

func DeleteBanner(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		bannerID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		var banner models.Banner
		if err := db.Collection("banners").FindOneAndDelete(ctx, bson.M{"_id": bannerID}).Decode(&banner); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "banner not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if err := safeDeleteUpload(banner.Image); err != nil {
			log.Println("[BANNER] [WARN] image cleanup failed:", err)
		}

		c.JSON(http.StatusOK, gin.H{"message": "banner deleted"})
	}
}

// SetBannerActive toggles a banner into or out of the public rotation.
func SetBannerActive(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		bannerID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req struct {
			IsActive *bool `json:"isActive" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "isActive is required"})
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		res, err := db.Collection("banners").UpdateByID(ctx, bannerID, bson.M{
			"$set": bson.M{"isActive": *req.IsActive},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "banner not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"isActive": *req.IsActive})
	}
}
