package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vendorhub/internal/models"
)

type VendorProfileUpdateRequest struct {
	Name        *string                `json:"name"`
	VendorInfo  *models.VendorInfo     `json:"vendorInfo"`
	Location    *models.VendorLocation `json:"location"`
	BankDetails *models.BankDetails    `json:"bankDetails"`
	UpiDetails  *models.UpiDetails     `json:"upiDetails"`
}

func GetVendors(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := bson.M{"role": "vendor"}
		if v := strings.TrimSpace(c.Query("isRestricted")); v != "" {
			filter["isRestricted"] = v == "true"
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("vendors").Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		vendors := make([]models.Vendor, 0)
		if err := cursor.All(ctx, &vendors); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": vendors})
	}
}

func GetVendorAdmin(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		var vendor models.Vendor
		err = db.Collection("vendors").FindOne(ctx, bson.M{"_id": vendorID}).Decode(&vendor)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "vendor not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, vendor)
	}
}

func UpdateVendorAdmin(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req VendorProfileUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		update := buildVendorUpdate(req)
		if len(update) == 1 { // only updatedAt
			c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		res, err := db.Collection("vendors").UpdateByID(ctx, vendorID, bson.M{"$set": update})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "vendor not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "vendor updated"})
	}
}

func DeleteVendorAdmin(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		res, err := db.Collection("vendors").DeleteOne(ctx, bson.M{"_id": vendorID, "role": "vendor"})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "vendor not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "vendor deleted"})
	}
}

// SetVendorRestriction backs both the restrict and unrestrict routes. Failures
// are returned to the caller; a swallowed error here once made the console
// report success for restrictions that never happened.
func SetVendorRestriction(db *mongo.Database, restricted bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		res, err := db.Collection("vendors").UpdateOne(ctx, bson.M{
			"_id":  vendorID,
			"role": "vendor",
		}, bson.M{"$set": bson.M{"isRestricted": restricted, "updatedAt": time.Now()}})
		if err != nil {
			log.Println("[VENDOR] [ERROR] restriction update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "vendor not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"isRestricted": restricted})
	}
}

// UpdateMyProfile lets a vendor edit their own storefront details.
func UpdateMyProfile(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID, ok := c.Get("vendorId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req VendorProfileUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		update := buildVendorUpdate(req)
		if len(update) == 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		if _, err := db.Collection("vendors").UpdateByID(ctx, vendorID, bson.M{"$set": update}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		var vendor models.Vendor
		if err := db.Collection("vendors").FindOne(ctx, bson.M{"_id": vendorID}).Decode(&vendor); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, vendor)
	}
}

// AdminLoginAsVendor mints a vendor-scoped token so support staff can see the
// console exactly as the vendor does.
func AdminLoginAsVendor(db *mongo.Database, jwtSecret string, accessTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		var vendor models.Vendor
		err = db.Collection("vendors").FindOne(ctx, bson.M{"_id": vendorID, "role": "vendor"}).Decode(&vendor)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "vendor not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		claims := jwt.MapClaims{
			"sub":   vendor.ID.Hex(),
			"role":  "vendor",
			"email": vendor.Email,
			"exp":   time.Now().Add(accessTTL).Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(jwtSecret))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}

		log.Println("[VENDOR] [INFO] admin impersonating vendor:", vendor.Email)
		c.JSON(http.StatusOK, gin.H{
			"token": signed,
			"user":  vendor,
		})
	}
}

func buildVendorUpdate(req VendorProfileUpdateRequest) bson.M {
	update := bson.M{"updatedAt": time.Now()}
	if req.Name != nil {
		update["name"] = strings.TrimSpace(*req.Name)
	}
	if req.VendorInfo != nil {
		update["vendorInfo"] = *req.VendorInfo
	}
	if req.Location != nil {
		update["location"] = *req.Location
	}
	if req.BankDetails != nil {
		update["bankDetails"] = *req.BankDetails
	}
	if req.UpiDetails != nil {
		update["upiDetails"] = *req.UpiDetails
	}
	return update
}
