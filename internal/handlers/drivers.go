package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vendorhub/internal/forms"
	"vendorhub/internal/models"
)

var driverApprovalStatuses = map[string]struct{}{
	"pending":   {},
	"approved":  {},
	"suspended": {},
}

type DriverStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateDriver onboards a driver from one multipart payload: personal and
// vehicle fields plus 1..N document photos.
func CreateDriver(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /create-driver"
		defer handlePanic(c, route)

		if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid multipart body")
			return
		}

		name := strings.TrimSpace(c.PostForm("name"))
		phone := strings.TrimSpace(c.PostForm("phone"))
		vehicleType := strings.TrimSpace(c.PostForm("vehicleType"))
		vehicleNumber := strings.TrimSpace(c.PostForm("vehicleNumber"))

		if err := forms.RequireFields(
			forms.FieldCheck{Name: "name", Value: name},
			forms.FieldCheck{Name: "phone", Value: phone},
			forms.FieldCheck{Name: "vehicleType", Value: vehicleType},
			forms.FieldCheck{Name: "vehicleNumber", Value: vehicleNumber},
		); err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		files := c.Request.MultipartForm.File["documents"]
		if len(files) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "at least one document is required")
			return
		}
		for _, file := range files {
			if err := forms.CheckUpload(file); err != nil {
				respondWithError(c, http.StatusBadRequest, route, err.Error())
				return
			}
		}

		documents, err := saveUploads(files, "drivers")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		driver := models.Driver{
			PersonalDetails: models.DriverPersonalDetails{
				Name:    name,
				Phone:   phone,
				Email:   strings.TrimSpace(c.PostForm("email")),
				Address: strings.TrimSpace(c.PostForm("address")),
			},
			VehicleDetails: models.DriverVehicleDetails{
				VehicleType:   vehicleType,
				VehicleNumber: vehicleNumber,
				LicenseNumber: strings.TrimSpace(c.PostForm("licenseNumber")),
			},
			ApprovalStatus: "pending",
			Documents:      documents,
			CreatedAt:      time.Now(),
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		res, err := db.Collection("drivers").InsertOne(ctx, driver)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		driver.ID, _ = res.InsertedID.(primitive.ObjectID)

		c.JSON(http.StatusCreated, driver)
	}
}

func GetDrivers(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := bson.M{}
		if status := strings.TrimSpace(c.Query("approvalStatus")); status != "" {
			filter["approvalStatus"] = status
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("drivers").Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		drivers := make([]models.Driver, 0)
		if err := cursor.All(ctx, &drivers); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": drivers})
	}
}

func UpdateDriverStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		driverID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req DriverStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if _, ok := driverApprovalStatuses[req.Status]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown approval status: " + req.Status})
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		res, err := db.Collection("drivers").UpdateByID(ctx, driverID, bson.M{
			"$set": bson.M{"approvalStatus": req.Status},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "driver not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "driver status updated"})
	}
}
