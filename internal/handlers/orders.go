package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vendorhub/internal/cache"
	"vendorhub/internal/invoice"
	"vendorhub/internal/models"
	"vendorhub/internal/orderflow"
)

type UpdateOrderStatusRequest struct {
	NewStatus string `json:"newStatus" binding:"required"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"orderId" binding:"required"`
	NewStatus string `json:"newStatus" binding:"required"`
}

type SettlementUpdateRequest struct {
	Type   string `json:"type" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// requireVendorScope rejects vendors touching another vendor's data. Admins
// pass for any vendorId.
func requireVendorScope(c *gin.Context, vendorID primitive.ObjectID) bool {
	role, _ := c.Get("role")
	if role == "admin" {
		return true
	}
	own, ok := c.Get("vendorId")
	if !ok || own != vendorID {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return false
	}
	return true
}

func GetVendorOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID, err := primitive.ObjectIDFromHex(c.Param("vendorId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vendorId"})
			return
		}
		if !requireVendorScope(c, vendorID) {
			return
		}

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination"})
			return
		}

		filter := bson.M{"vendor": vendorID}
		if status := c.Query("orderStatus"); status != "" {
			filter["orderStatus"] = status
		}
		if status := c.Query("paymentStatus"); status != "" {
			filter["paymentStatus"] = status
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetSkip((page - 1) * limit).
			SetLimit(limit)

		cursor, err := db.Collection("orders").Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		total, err := db.Collection("orders").CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data":  orders,
			"page":  page,
			"limit": limit,
			"total": total,
		})
	}
}

// GetRecentOrders serves the dashboard's latest-orders card from a short TTL
// cache; status writes invalidate it.
func GetRecentOrders(db *mongo.Database, rcache *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID, err := primitive.ObjectIDFromHex(c.Param("vendorId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vendorId"})
			return
		}
		if !requireVendorScope(c, vendorID) {
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		key := recentOrdersKey(vendorID)
		var cached []models.Order
		if rcache.GetJSON(ctx, key, &cached) {
			c.JSON(http.StatusOK, gin.H{"data": cached, "cached": true})
			return
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(10)

		cursor, err := db.Collection("orders").Find(ctx, bson.M{"vendor": vendorID}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		rcache.SetJSON(ctx, key, orders, 30*time.Second)

		c.JSON(http.StatusOK, gin.H{"data": orders})
	}
}

func GetOrderDetail(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid orderId"})
			return
		}
		vendorID, err := primitive.ObjectIDFromHex(c.Param("vendorId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vendorId"})
			return
		}
		if !requireVendorScope(c, vendorID) {
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		var order models.Order
		err = db.Collection("orders").FindOne(ctx, bson.M{
			"_id":    orderID,
			"vendor": vendorID,
		}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// UpdateOrderStatus writes any of the six workflow values. The backend owns
// transition rules; this checks enum membership only.
func UpdateOrderStatus(db *mongo.Database, rcache *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid orderId"})
			return
		}
		vendorID, err := primitive.ObjectIDFromHex(c.Param("vendorId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vendorId"})
			return
		}
		if !requireVendorScope(c, vendorID) {
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if !orderflow.ValidOrderStatus(req.NewStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown order status: %s", req.NewStatus)})
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		res, err := db.Collection("orders").UpdateOne(ctx, bson.M{
			"_id":    orderID,
			"vendor": vendorID,
		}, bson.M{"$set": bson.M{"orderStatus": req.NewStatus}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		rcache.Invalidate(ctx, recentOrdersKey(vendorID))

		log.Println("[ORDER] [INFO] status updated:", orderID.Hex(), "->", req.NewStatus)
		c.JSON(http.StatusOK, gin.H{"message": "order status updated"})
	}
}

// ManuallyVerifyPayment flips paymentStatus between Paid and Unpaid regardless
// of the order's workflow state.
func ManuallyVerifyPayment(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		orderID, err := primitive.ObjectIDFromHex(req.OrderID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid orderId"})
			return
		}

		if !orderflow.ValidPaymentStatus(req.NewStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown payment status: %s", req.NewStatus)})
			return
		}

		filter, ok := scopeToVendor(c, bson.M{"_id": orderID})
		if !ok {
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		res, err := db.Collection("orders").UpdateOne(ctx, filter, bson.M{
			"$set": bson.M{"paymentStatus": req.NewStatus},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "payment status updated"})
	}
}

// UpdateSettlementStatus sets exactly one payout field, picked by the type
// discriminator. Settling floating cash also reduces the driver's held amount.
func UpdateSettlementStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid orderId"})
			return
		}

		var req SettlementUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		field, err := orderflow.SettlementField(req.Type)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !orderflow.ValidSettlementStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown settlement status: %s", req.Status)})
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		var order models.Order
		err = db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		// Paying out floating cash must win the write exactly once, so
		// concurrent requests cannot each decrement the driver's held amount.
		writeFilter := bson.M{"_id": orderID}
		payingOutCash := orderflow.FloatingCashPayout(req.Type, req.Status)
		if payingOutCash {
			writeFilter[field] = bson.M{"$ne": orderflow.SettlementPaid}
		}

		res, err := db.Collection("orders").UpdateOne(ctx, writeFilter, bson.M{
			"$set": bson.M{field: req.Status},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		// Floating cash settled: the driver no longer holds this order's cash.
		if payingOutCash && res.ModifiedCount == 1 && order.DriverID != nil {
			if _, err := db.Collection("drivers").UpdateByID(ctx, *order.DriverID, bson.M{
				"$inc": bson.M{"floatingCashOwed": -order.TotalAmount},
			}); err != nil {
				log.Println("[ORDER] [ERROR] floating cash adjustment failed:", err)
			}
		}

		log.Println("[ORDER] [INFO] settlement updated:", orderID.Hex(), req.Type, "->", req.Status)
		c.JSON(http.StatusOK, gin.H{"message": "settlement status updated"})
	}
}

// OrderInvoice streams the rendered invoice PDF for one order.
func OrderInvoice(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid orderId"})
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		var order models.Order
		err = db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if !requireVendorScope(c, order.VendorID) {
			return
		}

		pdf, err := invoice.Render(order)
		if err != nil {
			log.Println("[ORDER] [ERROR] invoice render failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "invoice generation failed"})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=invoice-"+order.ShortID+".pdf")
		c.Data(http.StatusOK, "application/pdf", pdf)
	}
}

func recentOrdersKey(vendorID primitive.ObjectID) string {
	return "orders:recent:" + vendorID.Hex()
}
