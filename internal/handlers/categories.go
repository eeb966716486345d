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

// Category handlers serve both the global admin-managed set and the
// vendor-scoped set; vendorScoped picks the filter.

// categoryScopeFilter builds the write filter for one category. The vendor
// routes only reach the caller's own categories; the global routes only reach
// documents with no vendor field.
func categoryScopeFilter(c *gin.Context, categoryID primitive.ObjectID, vendorScoped bool) (bson.M, bool) {
	filter := bson.M{"_id": categoryID}
	if !vendorScoped {
		filter["vendor"] = bson.M{"$exists": false}
		return filter, true
	}
	vendorID, ok := c.Get("vendorId")
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	filter["vendor"] = vendorID
	return filter, true
}

func GetCategories(db *mongo.Database, vendorScoped bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := bson.M{}
		if vendorScoped {
			vendorID, ok := c.Get("vendorId")
			if !ok {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				return
			}
			filter["vendor"] = vendorID
		} else {
			filter["vendor"] = bson.M{"$exists": false}
		}
		if v := strings.TrimSpace(c.Query("isActive")); v != "" {
			filter["isActive"] = v == "true"
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("categories").Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		categories := make([]models.Category, 0)
		if err := cursor.All(ctx, &categories); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": categories})
	}
}

func GetCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		var category models.Category
		err = db.Collection("categories").FindOne(ctx, bson.M{"_id": categoryID}).Decode(&category)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, category)
	}
}

// CreateCategory accepts multipart form data: a name, an isActive flag and an
// optional image file.
func CreateCategory(db *mongo.Database, vendorScoped bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /category"
		defer handlePanic(c, route)

		name := strings.TrimSpace(c.PostForm("name"))
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
			return
		}

		category := models.Category{
			Name:      name,
			IsActive:  c.PostForm("isActive") != "false",
			CreatedAt: time.Now(),
		}

		if vendorScoped {
			vendorID, ok := c.Get("vendorId")
			if !ok {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				return
			}
			id := vendorID.(primitive.ObjectID)
			category.VendorID = &id
		}

		if file, err := c.FormFile("image"); err == nil {
			path, err := saveUpload(file, "categories")
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, err.Error())
				return
			}
			category.Image = path
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		dupeFilter := bson.M{"name": name}
		if category.VendorID != nil {
			dupeFilter["vendor"] = *category.VendorID
		} else {
			dupeFilter["vendor"] = bson.M{"$exists": false}
		}
		count, err := db.Collection("categories").CountDocuments(ctx, dupeFilter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "category already exists"})
			return
		}

		res, err := db.Collection("categories").InsertOne(ctx, category)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		category.ID, _ = res.InsertedID.(primitive.ObjectID)

		c.JSON(http.StatusCreated, category)
	}
}

// UpdateCategory replaces fields from multipart data. A new image file
// supersedes the old one; sending existingImage keeps the current file.
func UpdateCategory(db *mongo.Database, vendorScoped bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /category/:id"
		defer handlePanic(c, route)

		categoryID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		filter, ok := categoryScopeFilter(c, categoryID, vendorScoped)
		if !ok {
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		var category models.Category
		if err := db.Collection("categories").FindOne(ctx, filter).Decode(&category); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		update := bson.M{}
		if name := strings.TrimSpace(c.PostForm("name")); name != "" {
			update["name"] = name
		}
		if v, ok := c.GetPostForm("isActive"); ok {
			update["isActive"] = v != "false"
		}

		oldImage := category.Image
		if file, err := c.FormFile("image"); err == nil {
			path, err := saveUpload(file, "categories")
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

		if _, err := db.Collection("categories").UpdateOne(ctx, filter, bson.M{"$set": update}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if newImage, ok := update["image"].(string); ok && oldImage != "" && oldImage != newImage {
			if err := safeDeleteUpload(oldImage); err != nil {
				log.Println("[CATEGORY] [WARN] image cleanup failed:", err)
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "category updated"})
	}
}

func DeleteCategory(db *mongo.Database, vendorScoped bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		filter, ok := categoryScopeFilter(c, categoryID, vendorScoped)
		if !ok {
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		var category models.Category
		if err := db.Collection("categories").FindOneAndDelete(ctx, filter).Decode(&category); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if err := safeDeleteUpload(category.Image); err != nil {
			log.Println("[CATEGORY] [WARN] image cleanup failed:", err)
		}

		c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
	}
}
