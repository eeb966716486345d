package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vendorhub/internal/models"
	"vendorhub/internal/orderflow"
)

type chatOrderItemRequest struct {
	ProductID string  `json:"product"`
	Name      string  `json:"name" binding:"required"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity" binding:"required"`
	Discount  float64 `json:"discount"`
}

type CreateChatOrderRequest struct {
	CustomerName  string                 `json:"customerName" binding:"required"`
	CustomerPhone string                 `json:"customerPhone"`
	OrderMessage  string                 `json:"orderMessage" binding:"required"`
	Products      []chatOrderItemRequest `json:"products"`
}

type ChatOrderAmountRequest struct {
	OrderID  string                 `json:"orderId" binding:"required"`
	Products []chatOrderItemRequest `json:"products" binding:"required"`
}

type UpdateChatOrderRequest struct {
	OrderID       string                 `json:"orderId" binding:"required"`
	OrderMessage  *string                `json:"orderMessage"`
	CustomerName  *string                `json:"customerName"`
	CustomerPhone *string                `json:"customerPhone"`
	Products      []chatOrderItemRequest `json:"products"`
}

func chatItemsFromRequest(items []chatOrderItemRequest) ([]models.OrderItem, error) {
	out := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be greater than zero")
		}
		if item.Discount < 0 || item.Discount > 100 {
			return nil, fmt.Errorf("discount must be between 0 and 100")
		}

		converted := models.OrderItem{
			Name:     strings.TrimSpace(item.Name),
			Price:    item.Price,
			Quantity: item.Quantity,
			Discount: item.Discount,
		}
		if item.ProductID != "" {
			id, err := primitive.ObjectIDFromHex(item.ProductID)
			if err != nil {
				return nil, fmt.Errorf("invalid product id: %s", item.ProductID)
			}
			converted.ProductID = id
		}
		out = append(out, converted)
	}
	return out, nil
}

// CreateChatOrder opens an order from a conversation: free-text request plus
// whatever product rows the vendor has typed in so far.
func CreateChatOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID, ok := c.Get("vendorId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req CreateChatOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		items, err := chatItemsFromRequest(req.Products)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order := models.ChatOrder{
			ShortID: shortOrderID(),
			Customer: models.OrderCustomer{
				Name:  strings.TrimSpace(req.CustomerName),
				Phone: strings.TrimSpace(req.CustomerPhone),
			},
			VendorID:      vendorID.(primitive.ObjectID),
			OrderMessage:  strings.TrimSpace(req.OrderMessage),
			Products:      items,
			OrderStatus:   orderflow.StatusInReview,
			PaymentStatus: orderflow.PaymentUnpaid,
			TotalAmount:   orderflow.OrderTotal(items),
			CreatedAt:     time.Now(),
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		res, err := db.Collection("chat_orders").InsertOne(ctx, order)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		order.ID, _ = res.InsertedID.(primitive.ObjectID)

		log.Println("[CHAT-ORDER] [INFO] created:", order.ShortID)
		c.JSON(http.StatusCreated, order)
	}
}

func GetVendorChatOrders(db *mongo.Database) gin.HandlerFunc {
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

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("chat_orders").Find(ctx, bson.M{"vendor": vendorID}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.ChatOrder, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": orders})
	}
}

func GetChatOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid orderId"})
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		var order models.ChatOrder
		err = db.Collection("chat_orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "chat order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if !requireVendorScope(c, order.VendorID) {
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// UpdateChatOrderAmount replaces the product rows and recomputes totalAmount
// server-side; a client-sent total is never trusted.
func UpdateChatOrderAmount(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChatOrderAmountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		orderID, err := primitive.ObjectIDFromHex(req.OrderID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid orderId"})
			return
		}

		items, err := chatItemsFromRequest(req.Products)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		filter, ok := scopeToVendor(c, bson.M{"_id": orderID})
		if !ok {
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		res, err := db.Collection("chat_orders").UpdateOne(ctx, filter, bson.M{
			"$set": bson.M{
				"products":    items,
				"totalAmount": orderflow.OrderTotal(items),
			},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "chat order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":     "chat order amount updated",
			"totalAmount": orderflow.OrderTotal(items),
		})
	}
}

// UpdateChatOrderStatus mirrors the regular order status write; the vendor
// comes from the token rather than the path.
func UpdateChatOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid orderId"})
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

		filter, ok := scopeToVendor(c, bson.M{"_id": orderID})
		if !ok {
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		res, err := db.Collection("chat_orders").UpdateOne(ctx, filter, bson.M{
			"$set": bson.M{"orderStatus": req.NewStatus},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "chat order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "chat order status updated"})
	}
}

func ChatVerifyPayment(db *mongo.Database) gin.HandlerFunc {
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

		res, err := db.Collection("chat_orders").UpdateOne(ctx, filter, bson.M{
			"$set": bson.M{"paymentStatus": req.NewStatus},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "chat order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "payment status updated"})
	}
}

// UpdateChatOrder edits the message, customer details and product rows in one
// call, recomputing the total whenever rows are present.
func UpdateChatOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateChatOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		orderID, err := primitive.ObjectIDFromHex(req.OrderID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid orderId"})
			return
		}

		update := bson.M{}
		if req.OrderMessage != nil {
			update["orderMessage"] = strings.TrimSpace(*req.OrderMessage)
		}
		if req.CustomerName != nil {
			update["customer.name"] = strings.TrimSpace(*req.CustomerName)
		}
		if req.CustomerPhone != nil {
			update["customer.phone"] = strings.TrimSpace(*req.CustomerPhone)
		}
		if req.Products != nil {
			items, err := chatItemsFromRequest(req.Products)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			update["products"] = items
			update["totalAmount"] = orderflow.OrderTotal(items)
		}

		if len(update) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
			return
		}

		filter, ok := scopeToVendor(c, bson.M{"_id": orderID})
		if !ok {
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		res, err := db.Collection("chat_orders").UpdateOne(ctx, filter, bson.M{"$set": update})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "chat order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "chat order updated"})
	}
}

func shortOrderID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
