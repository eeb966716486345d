package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"vendorhub/internal/forms"
	"vendorhub/internal/models"
)

// variationMultipartInput is the parsed form of the variation editor payload:
// the scalar fields as one JSON field, the kept existing image URLs as a JSON
// array, and new files under a shared "images" field.
type variationMultipartInput struct {
	Variation      variationRequest
	ExistingImages []string
	NewImagePaths  []string
}

func parseVariationMultipart(c *gin.Context) (variationMultipartInput, error) {
	var input variationMultipartInput

	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		return input, err
	}

	raw := c.PostForm("variation")
	if raw == "" {
		return input, errMissingField("variation")
	}
	if err := json.Unmarshal([]byte(raw), &input.Variation); err != nil {
		return input, err
	}

	if rawExisting := c.PostForm("existingImages"); rawExisting != "" {
		if err := json.Unmarshal([]byte(rawExisting), &input.ExistingImages); err != nil {
			return input, err
		}
	}

	files := c.Request.MultipartForm.File["images"]
	for _, file := range files {
		if err := forms.CheckUpload(file); err != nil {
			return input, err
		}
	}

	paths, err := saveUploads(files, "products")
	if err != nil {
		return input, err
	}
	input.NewImagePaths = paths

	return input, nil
}

type missingFieldError string

func errMissingField(name string) error { return missingFieldError(name) }

func (e missingFieldError) Error() string { return string(e) + " field is required" }

func AddVariation(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /products/:id/variations"
		defer handlePanic(c, route)

		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		input, err := parseVariationMultipart(c)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		variation := models.Variation{
			ID:         primitive.NewObjectID(),
			Attributes: input.Variation.Attributes,
			Price:      input.Variation.Price,
			Discount:   input.Variation.Discount,
			Quantity:   input.Variation.Quantity,
			Images:     forms.MergeImages(input.ExistingImages, input.NewImagePaths),
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		filter, ok := productScopeFilter(c, productID)
		if !ok {
			return
		}

		res, err := db.Collection("products").UpdateOne(ctx, filter, bson.M{
			"$push": bson.M{"variations": variation},
			"$set":  bson.M{"updatedAt": time.Now()},
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		c.JSON(http.StatusCreated, variation)
	}
}

// UpdateVariation rewrites one variation. The stored image list becomes the
// union of the existing URLs the form kept and the freshly uploaded files;
// anything the form dropped is removed from disk.
func UpdateVariation(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /products/:id/variations/:variationId"
		defer handlePanic(c, route)

		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}
		variationID, err := primitive.ObjectIDFromHex(c.Param("variationId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid variation id"})
			return
		}

		input, err := parseVariationMultipart(c)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		filter, ok := productScopeFilter(c, productID)
		if !ok {
			return
		}

		var product models.Product
		if err := db.Collection("products").FindOne(ctx, filter).Decode(&product); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		var previous *models.Variation
		for i := range product.Variations {
			if product.Variations[i].ID == variationID {
				previous = &product.Variations[i]
				break
			}
		}
		if previous == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "variation not found"})
			return
		}

		merged := forms.MergeImages(input.ExistingImages, input.NewImagePaths)

		variation := models.Variation{
			ID:         variationID,
			Attributes: input.Variation.Attributes,
			Price:      input.Variation.Price,
			Discount:   input.Variation.Discount,
			Quantity:   input.Variation.Quantity,
			Images:     merged,
		}

		filter["variations._id"] = variationID
		res, err := db.Collection("products").UpdateOne(ctx, filter, bson.M{
			"$set": bson.M{
				"variations.$": variation,
				"updatedAt":    time.Now(),
			},
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "variation not found"})
			return
		}

		cleanupDroppedImages(previous.Images, merged)

		c.JSON(http.StatusOK, variation)
	}
}

func DeleteVariation(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}
		variationID, err := primitive.ObjectIDFromHex(c.Param("variationId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid variation id"})
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		filter, ok := productScopeFilter(c, productID)
		if !ok {
			return
		}

		var product models.Product
		if err := db.Collection("products").FindOne(ctx, filter).Decode(&product); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		var removed *models.Variation
		for i := range product.Variations {
			if product.Variations[i].ID == variationID {
				removed = &product.Variations[i]
				break
			}
		}
		if removed == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "variation not found"})
			return
		}

		if _, err := db.Collection("products").UpdateByID(ctx, product.ID, bson.M{
			"$pull": bson.M{"variations": bson.M{"_id": variationID}},
			"$set":  bson.M{"updatedAt": time.Now()},
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		cleanupDroppedImages(removed.Images, nil)

		c.JSON(http.StatusOK, gin.H{"message": "variation deleted"})
	}
}

// cleanupDroppedImages removes files that were in the old list but not the new
// one. Removal in the form is client-side only until submit, so this is the
// point where dropped files actually disappear.
func cleanupDroppedImages(old, kept []string) {
	keep := make(map[string]struct{}, len(kept))
	for _, image := range kept {
		keep[image] = struct{}{}
	}
	for _, image := range old {
		if _, ok := keep[image]; ok {
			continue
		}
		if err := safeDeleteUpload(image); err != nil {
			log.Println("[PRODUCT] [WARN] image cleanup failed:", err)
		}
	}
}
