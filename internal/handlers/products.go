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

type variationRequest struct {
	Attributes []models.Attribute `json:"attributes"`
	Price      float64            `json:"price"`
	Discount   float64            `json:"discount"`
	Quantity   int                `json:"quantity"`
	Images     []string           `json:"images"`
}

type ProductCreateRequest struct {
	Name            string             `json:"name" binding:"required"`
	Description     string             `json:"description"`
	Category        string             `json:"category" binding:"required"`
	Tags            []string           `json:"tags"`
	IsReturnAllowed bool               `json:"isReturnAllowed"`
	IsVisible       *bool              `json:"isVisible"`
	Variations      []variationRequest `json:"variations"`
}

type ProductUpdateRequest struct {
	Name            *string   `json:"name"`
	Description     *string   `json:"description"`
	Category        *string   `json:"category"`
	Tags            *[]string `json:"tags"`
	IsReturnAllowed *bool     `json:"isReturnAllowed"`
}

func variationsFromRequest(reqs []variationRequest) []models.Variation {
	out := make([]models.Variation, 0, len(reqs))
	for _, v := range reqs {
		images := v.Images
		if images == nil {
			images = []string{}
		}
		out = append(out, models.Variation{
			ID:         primitive.NewObjectID(),
			Attributes: v.Attributes,
			Price:      v.Price,
			Discount:   v.Discount,
			Quantity:   v.Quantity,
			Images:     images,
		})
	}
	return out
}

// GetProducts lists the whole catalog for the admin console.
func GetProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := bson.M{}
		if v := strings.TrimSpace(c.Query("isVisible")); v != "" {
			filter["isVisible"] = v == "true"
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("products").Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": products})
	}
}

// GetVendorProducts lists one vendor's products.
func GetVendorProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vendorId"})
			return
		}
		if !requireVendorScope(c, vendorID) {
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("products").Find(ctx, bson.M{"vendor": vendorID}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": products})
	}
}

func GetSingleProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		var product models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

func CreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /products"
		defer handlePanic(c, route)

		vendorID, ok := c.Get("vendorId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req ProductCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		categoryID, err := primitive.ObjectIDFromHex(req.Category)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid category")
			return
		}

		visible := true
		if req.IsVisible != nil {
			visible = *req.IsVisible
		}

		now := time.Now()
		product := models.Product{
			Name:            strings.TrimSpace(req.Name),
			Description:     strings.TrimSpace(req.Description),
			Category:        categoryID,
			VendorID:        vendorID.(primitive.ObjectID),
			Tags:            models.StringList(req.Tags),
			IsReturnAllowed: req.IsReturnAllowed,
			IsVisible:       visible,
			Variations:      variationsFromRequest(req.Variations),
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		res, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		product.ID, _ = res.InsertedID.(primitive.ObjectID)

		log.Println("[PRODUCT] [INFO] created:", product.Name)
		c.JSON(http.StatusCreated, product)
	}
}

func UpdateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req ProductUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		update := bson.M{"updatedAt": time.Now()}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
				return
			}
			update["name"] = name
		}
		if req.Description != nil {
			update["description"] = strings.TrimSpace(*req.Description)
		}
		if req.Category != nil {
			categoryID, err := primitive.ObjectIDFromHex(*req.Category)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
				return
			}
			update["category"] = categoryID
		}
		if req.Tags != nil {
			update["tags"] = models.StringList(*req.Tags)
		}
		if req.IsReturnAllowed != nil {
			update["isReturnAllowed"] = *req.IsReturnAllowed
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		filter, ok := productScopeFilter(c, productID)
		if !ok {
			return
		}

		res, err := db.Collection("products").UpdateOne(ctx, filter, bson.M{"$set": update})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "product updated"})
	}
}

func DeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		filter, ok := productScopeFilter(c, productID)
		if !ok {
			return
		}

		var product models.Product
		if err := db.Collection("products").FindOneAndDelete(ctx, filter).Decode(&product); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		for _, variation := range product.Variations {
			for _, image := range variation.Images {
				if err := safeDeleteUpload(image); err != nil {
					log.Println("[PRODUCT] [WARN] image cleanup failed:", err)
				}
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}

// ToggleProductVisibility flips isVisible without touching anything else.
func ToggleProductVisibility(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
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

		newValue := !product.IsVisible
		if _, err := db.Collection("products").UpdateByID(ctx, product.ID, bson.M{
			"$set": bson.M{"isVisible": newValue, "updatedAt": time.Now()},
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"isVisible": newValue})
	}
}

// productScopeFilter limits writes to the caller's own products unless the
// caller is an admin.
func productScopeFilter(c *gin.Context, productID primitive.ObjectID) (bson.M, bool) {
	filter := bson.M{"_id": productID}
	if role, _ := c.Get("role"); role == "admin" {
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
