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

	"vendorhub/internal/models"
)

type FAQRequest struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
	IsActive *bool  `json:"isActive"`
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

type InquiryRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type TicketRequest struct {
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type SettingsRequest struct {
	SupportEmail    *string  `json:"supportEmail"`
	SupportPhone    *string  `json:"supportPhone"`
	DeliveryFee     *float64 `json:"deliveryFee"`
	MinimumOrder    *float64 `json:"minimumOrder"`
	CommissionRate  *float64 `json:"commissionRate"`
	MaintenanceMode *bool    `json:"maintenanceMode"`
}

/* =========================
   FAQS
========================= */

func GetFAQs(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := queryContext(c)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("faqs").Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		faqs := make([]models.FAQ, 0)
		if err := cursor.All(ctx, &faqs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": faqs})
	}
}

func CreateFAQ(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FAQRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		active := true
		if req.IsActive != nil {
			active = *req.IsActive
		}

		faq := models.FAQ{
			Question:  strings.TrimSpace(req.Question),
			Answer:    strings.TrimSpace(req.Answer),
			IsActive:  active,
			CreatedAt: time.Now(),
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		res, err := db.Collection("faqs").InsertOne(ctx, faq)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		faq.ID, _ = res.InsertedID.(primitive.ObjectID)

		c.JSON(http.StatusCreated, faq)
	}
}

func UpdateFAQ(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		faqID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req FAQRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		update := bson.M{
			"question": strings.TrimSpace(req.Question),
			"answer":   strings.TrimSpace(req.Answer),
		}
		if req.IsActive != nil {
			update["isActive"] = *req.IsActive
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		res, err := db.Collection("faqs").UpdateByID(ctx, faqID, bson.M{"$set": update})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "faq not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "faq updated"})
	}
}

func DeleteFAQ(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		faqID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		res, err := db.Collection("faqs").DeleteOne(ctx, bson.M{"_id": faqID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "faq not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "faq deleted"})
	}
}

/* =========================
   CONTACT
========================= */

// SubmitContact is the public contact form endpoint.
func SubmitContact(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		message := models.ContactMessage{
			Name:      strings.TrimSpace(req.Name),
			Email:     strings.ToLower(strings.TrimSpace(req.Email)),
			Subject:   strings.TrimSpace(req.Subject),
			Message:   strings.TrimSpace(req.Message),
			CreatedAt: time.Now(),
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		if _, err := db.Collection("contact_messages").InsertOne(ctx, message); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "message received"})
	}
}

// GetContactMessages lists submitted contact messages for the admin console.
func GetContactMessages(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := queryContext(c)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("contact_messages").Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		messages := make([]models.ContactMessage, 0)
		if err := cursor.All(ctx, &messages); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": messages})
	}
}

/* =========================
   INQUIRIES
========================= */

func CreateInquiry(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req InquiryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		inquiry := models.Inquiry{
			Name:      strings.TrimSpace(req.Name),
			Phone:     strings.TrimSpace(req.Phone),
			Message:   strings.TrimSpace(req.Message),
			CreatedAt: time.Now(),
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		res, err := db.Collection("inquiries").InsertOne(ctx, inquiry)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		inquiry.ID, _ = res.InsertedID.(primitive.ObjectID)

		c.JSON(http.StatusCreated, inquiry)
	}
}

func GetInquiries(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := queryContext(c)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("inquiries").Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		inquiries := make([]models.Inquiry, 0)
		if err := cursor.All(ctx, &inquiries); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": inquiries})
	}
}

func MarkInquiryHandled(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		inquiryID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		res, err := db.Collection("inquiries").UpdateByID(ctx, inquiryID, bson.M{
			"$set": bson.M{"isHandled": true},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "inquiry not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "inquiry marked handled"})
	}
}

/* =========================
   TICKETS
========================= */

func CreateTicket(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TicketRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		now := time.Now()
		ticket := models.SupportTicket{
			Subject:   strings.TrimSpace(req.Subject),
			Message:   strings.TrimSpace(req.Message),
			Status:    "open",
			CreatedAt: now,
			UpdatedAt: now,
		}

		if vendorID, ok := c.Get("vendorId"); ok {
			id := vendorID.(primitive.ObjectID)
			ticket.VendorID = &id
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		res, err := db.Collection("tickets").InsertOne(ctx, ticket)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		ticket.ID, _ = res.InsertedID.(primitive.ObjectID)

		c.JSON(http.StatusCreated, ticket)
	}
}

func GetTickets(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, ok := scopeToVendor(c, bson.M{})
		if !ok {
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("tickets").Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		tickets := make([]models.SupportTicket, 0)
		if err := cursor.All(ctx, &tickets); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": tickets})
	}
}

func UpdateTicketStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ticketID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if req.Status != "open" && req.Status != "closed" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown ticket status: " + req.Status})
			return
		}

		filter, ok := scopeToVendor(c, bson.M{"_id": ticketID})
		if !ok {
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		res, err := db.Collection("tickets").UpdateOne(ctx, filter, bson.M{
			"$set": bson.M{"status": req.Status, "updatedAt": time.Now()},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "ticket updated"})
	}
}

/* =========================
   SETTINGS
========================= */

func GetSettings(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := queryContext(c)
		defer cancel()

		var settings models.Settings
		err := db.Collection("settings").FindOne(ctx, bson.M{}).Decode(&settings)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusOK, models.Settings{})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, settings)
	}
}

// UpdateSettings upserts the singleton settings document.
func UpdateSettings(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SettingsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		update := bson.M{"updatedAt": time.Now()}
		if req.SupportEmail != nil {
			update["supportEmail"] = strings.TrimSpace(*req.SupportEmail)
		}
		if req.SupportPhone != nil {
			update["supportPhone"] = strings.TrimSpace(*req.SupportPhone)
		}
		if req.DeliveryFee != nil {
			update["deliveryFee"] = *req.DeliveryFee
		}
		if req.MinimumOrder != nil {
			update["minimumOrder"] = *req.MinimumOrder
		}
		if req.CommissionRate != nil {
			update["commissionRate"] = *req.CommissionRate
		}
		if req.MaintenanceMode != nil {
			update["maintenanceMode"] = *req.MaintenanceMode
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		opts := options.Update().SetUpsert(true)
		if _, err := db.Collection("settings").UpdateOne(ctx, bson.M{}, bson.M{"$set": update}, opts); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "settings updated"})
	}
}
