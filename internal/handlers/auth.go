package handlers

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"vendorhub/internal/config"
	"vendorhub/internal/forms"
	"vendorhub/internal/models"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

func Login(db *mongo.Database, jwtSecret string, accessTTL, refreshTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := queryContext(c)
		defer cancel()

		if err := ensureDBConnection(ctx, db); err != nil {
			log.Println("[AUTH] [ERROR] database unreachable:", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
			return
		}

		var vendor models.Vendor
		if err := db.Collection("vendors").FindOne(ctx, bson.M{"email": email}).Decode(&vendor); err != nil {
			log.Println("[AUTH] [ERROR] login invalid credentials:", email)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		if vendor.IsRestricted {
			c.JSON(http.StatusForbidden, gin.H{"error": "account is restricted"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(vendor.PasswordHash), []byte(req.Password)); err != nil {
			log.Println("[AUTH] [ERROR] login invalid credentials:", email)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		tokens, err := issueTokens(c, db, vendor.ID, vendor.Email, vendor.Role, jwtSecret, accessTTL, refreshTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] login token generation failed:", err)
			return
		}

		log.Println("[AUTH] [INFO] login succeeded:", vendor.Email)
		c.JSON(http.StatusOK, gin.H{
			"token":        tokens.AccessToken,
			"refreshToken": tokens.RefreshToken,
			"expiresIn":    tokens.ExpiresIn,
			"user":         vendor,
		})
	}
}

// Signup registers a vendor from one multipart payload: plain text fields,
// JSON-stringified vendorInfo and location, and 1..N document photos.
func Signup(db *mongo.Database, jwtSecret string, accessTTL, refreshTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /vendors/signup"
		defer handlePanic(c, route)

		if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid multipart body")
			return
		}

		name := strings.TrimSpace(c.PostForm("name"))
		email := strings.ToLower(strings.TrimSpace(c.PostForm("email")))
		password := strings.TrimSpace(c.PostForm("password"))

		if err := forms.RequireFields(
			forms.FieldCheck{Name: "name", Value: name},
			forms.FieldCheck{Name: "email", Value: email},
			forms.FieldCheck{Name: "password", Value: password},
		); err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		var info models.VendorInfo
		if raw := c.PostForm("vendorInfo"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &info); err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid vendorInfo")
				return
			}
		}
		if info.ShopName == "" {
			respondWithError(c, http.StatusBadRequest, route, "vendorInfo.shopName is required")
			return
		}

		var location models.VendorLocation
		if raw := c.PostForm("location"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &location); err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid location")
				return
			}
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

		ctx, cancel := queryContext(c)
		defer cancel()

		count, err := db.Collection("vendors").CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if count > 0 {
			respondWithError(c, http.StatusConflict, route, "email already registered")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "password hash failed")
			return
		}

		documents, err := saveUploads(files, "documents")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		now := time.Now()
		vendor := models.Vendor{
			Name:         name,
			Email:        email,
			PasswordHash: string(hash),
			Role:         "vendor",
			VendorInfo:   info,
			Location:     location,
			Documents:    documents,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		res, err := db.Collection("vendors").InsertOne(ctx, vendor)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		vendor.ID, _ = res.InsertedID.(primitive.ObjectID)

		tokens, err := issueTokens(c, db, vendor.ID, vendor.Email, vendor.Role, jwtSecret, accessTTL, refreshTTL)
		if err != nil {
			return
		}

		log.Println("[AUTH] [INFO] vendor registered:", email)
		c.JSON(http.StatusCreated, gin.H{
			"token":        tokens.AccessToken,
			"refreshToken": tokens.RefreshToken,
			"expiresIn":    tokens.ExpiresIn,
			"user":         vendor,
		})
	}
}

func Refresh(db *mongo.Database, jwtSecret string, accessTTL, refreshTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		plain := strings.TrimSpace(req.RefreshToken)
		if plain == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "refreshToken is required"})
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		hash := hashToken(plain)
		var token models.RefreshToken
		if err := db.Collection("refresh_tokens").FindOne(ctx, bson.M{
			"tokenHash": hash,
			"revoked":   false,
		}).Decode(&token); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
			return
		}

		if time.Now().After(token.ExpiresAt) {
			_, _ = db.Collection("refresh_tokens").UpdateByID(ctx, token.ID, bson.M{"$set": bson.M{"revoked": true}})
			c.JSON(http.StatusUnauthorized, gin.H{"error": "refresh token expired"})
			return
		}

		var vendor models.Vendor
		if err := db.Collection("vendors").FindOne(ctx, bson.M{"_id": token.VendorID}).Decode(&vendor); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "account not found"})
			return
		}

		if vendor.IsRestricted {
			c.JSON(http.StatusForbidden, gin.H{"error": "account is restricted"})
			return
		}

		newTokens, err := issueTokens(c, db, vendor.ID, vendor.Email, vendor.Role, jwtSecret, accessTTL, refreshTTL)
		if err != nil {
			return
		}

		_, _ = db.Collection("refresh_tokens").UpdateByID(ctx, token.ID, bson.M{
			"$set": bson.M{
				"revoked":         true,
				"replacedByToken": newTokens.RefreshTokenID,
			},
		})

		c.JSON(http.StatusOK, gin.H{
			"token":        newTokens.AccessToken,
			"refreshToken": newTokens.RefreshToken,
			"expiresIn":    newTokens.ExpiresIn,
			"user":         vendor,
		})
	}
}

func Logout(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		hash := hashToken(strings.TrimSpace(req.RefreshToken))
		res, err := db.Collection("refresh_tokens").UpdateOne(ctx, bson.M{
			"tokenHash": hash,
			"revoked":   false,
		}, bson.M{"$set": bson.M{"revoked": true}})

		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	}
}

func GetMe(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID, ok := c.Get("vendorId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		var vendor models.Vendor
		if err := db.Collection("vendors").FindOne(ctx, bson.M{"_id": vendorID}).Decode(&vendor); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}

		c.JSON(http.StatusOK, vendor)
	}
}

// ForgotPassword issues a single-use reset token. The response never reveals
// whether the email exists.
func ForgotPassword(db *mongo.Database, resetTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ForgotPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := queryContext(c)
		defer cancel()

		var vendor models.Vendor
		err := db.Collection("vendors").FindOne(ctx, bson.M{"email": email}).Decode(&vendor)
		if err == nil {
			plain := uuid.NewString()
			reset := models.ResetToken{
				VendorID:  vendor.ID,
				TokenHash: hashToken(plain),
				ExpiresAt: time.Now().Add(resetTTL),
				CreatedAt: time.Now(),
			}
			if _, err := db.Collection("reset_tokens").InsertOne(ctx, reset); err != nil {
				log.Println("[AUTH] [ERROR] reset token insert failed:", err)
			} else {
				// Mail delivery is handled out of process; the link is only
				// logged in development setups.
				resetLink := resetLinkURL(config.AppEnv.PublicBaseURL, plain)
				log.Println("[AUTH] [INFO] reset link issued for", email+":", resetLink)
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "if the account exists, a reset link has been sent"})
	}
}

func ResetPassword(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		plainToken := strings.TrimSpace(c.Param("token"))
		if plainToken == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
			return
		}

		ctx, cancel := queryContext(c)
		defer cancel()

		var reset models.ResetToken
		if err := db.Collection("reset_tokens").FindOne(ctx, bson.M{
			"tokenHash": hashToken(plainToken),
			"used":      false,
		}).Decode(&reset); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired reset token"})
			return
		}

		if time.Now().After(reset.ExpiresAt) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired reset token"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "password hash failed"})
			return
		}

		if _, err := db.Collection("vendors").UpdateByID(ctx, reset.VendorID, bson.M{
			"$set": bson.M{"passwordHash": string(hash), "updatedAt": time.Now()},
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		_, _ = db.Collection("reset_tokens").UpdateByID(ctx, reset.ID, bson.M{"$set": bson.M{"used": true}})

		c.JSON(http.StatusOK, gin.H{"message": "password updated"})
	}
}

type issuedTokens struct {
	AccessToken    string
	RefreshToken   string
	RefreshTokenID primitive.ObjectID
	ExpiresIn      int64
}

func issueTokens(c *gin.Context, db *mongo.Database, vendorID primitive.ObjectID, email, role, secret string, accessTTL, refreshTTL time.Duration) (*issuedTokens, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   vendorID.Hex(),
		"role":  role,
		"email": email,
		"exp":   now.Add(accessTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := token.SignedString([]byte(secret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return nil, err
	}

	plainRefresh := generateRefreshString()
	if plainRefresh == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return nil, errors.New("could not generate refresh token")
	}

	refresh := models.RefreshToken{
		VendorID:  vendorID,
		TokenHash: hashToken(plainRefresh),
		ExpiresAt: now.Add(refreshTTL),
		Revoked:   false,
		CreatedAt: now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := db.Collection("refresh_tokens").InsertOne(ctx, refresh)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return nil, err
	}

	refreshID := res.InsertedID.(primitive.ObjectID)
	return &issuedTokens{
		AccessToken:    accessToken,
		RefreshToken:   plainRefresh,
		RefreshTokenID: refreshID,
		ExpiresIn:      int64(accessTTL.Seconds()),
	}, nil
}

// resetLinkURL builds the link a vendor follows to finish a password reset.
func resetLinkURL(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/vendors/auth/reset-password/" + token
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func generateRefreshString() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return hex.EncodeToString(buf)
}
