package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"strconv"  // Number formatting
	"strings"  // String manipulation
	"time"     // Timestamps

	"esg_portal/internal/domain"     // Importing domain models
	"esg_portal/internal/store"      // Persistence
	"esg_portal/internal/utils"      // Utility functions
	"esg_portal/internal/validation" // Violation type

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/go-playground/validator/v10" // Binding errors
	"github.com/redis/go-redis/v9"           // Redis client
	"github.com/sirupsen/logrus"             // Logging library
	"golang.org/x/crypto/bcrypt"             // Password length error
)

// Request struct for signup
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`                  // Display name must be provided
	Email    string `json:"email" binding:"required,email"`           // Valid email must be provided
	Password string `json:"password" binding:"required,min=6,max=72"` // Password of 6 to 72 characters
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID    uint   `json:"id"`    // User ID
	Name  string `json:"name"`  // Display name
	Email string `json:"email"` // Email
}

// Response struct for authentication
type AuthResponse struct {
	Token string       `json:"token"` // JWT token
	User  UserResponse `json:"user"`  // Authenticated user
}

// bindingViolations turns validator errors into field violations
func bindingViolations(err error) validation.Violations {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(validation.Violations, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:] // JSON name of the field
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "email":
			msg = "must be a valid email address"
		case "min":
			msg = "must be at least " + fe.Param() + " characters"
		case "max":
			msg = "must be at most " + fe.Param() + " characters"
		default:
			msg = "is invalid"
		}
		out = append(out, validation.Violation{Field: field, Message: msg})
	}
	return out
}

var passwordTooLong = validation.Violation{
	Field:   "password",
	Message: "must be at most " + strconv.Itoa(utils.MaxPasswordBytes) + " bytes",
}

// signupViolations checks what the binding tags cannot: a blank name after trimming
// and the byte length bcrypt accepts
func signupViolations(name, password string) validation.Violations {
	var out validation.Violations
	if name == "" {
		out = append(out, validation.Violation{Field: "name", Message: "is required"})
	}
	if len(password) > utils.MaxPasswordBytes {
		out = append(out, passwordTooLong)
	}
	return out
}

// SignupHandler registers a new user
func SignupHandler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request with every offending field
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "violations": bindingViolations(err)})
			return
		}
		name := strings.TrimSpace(req.Name)
		if v := signupViolations(name, req.Password); len(v) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "violations": v})
			return
		}
		// Hash the password and create the user
		hash, err := utils.HashPassword(req.Password)
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "violations": validation.Violations{passwordTooLong}})
			return
		}
		if err != nil {
			internalError(c, "Failed to hash password", err, logrus.Fields{"email": req.Email})
			return
		}
		user := domain.User{Name: name, Email: req.Email, Password: hash}
		// Attempt to create the user in the database
		if err := st.CreateUser(c.Request.Context(), &user); err != nil {
			if errors.Is(err, store.ErrDuplicateEmail) {
				// Email already taken, return conflict
				c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
				return
			}
			internalError(c, "Failed to create user", err, logrus.Fields{"email": user.Email})
			return
		}
		// Log successful signup
		logrus.WithFields(logrus.Fields{
			"user_id":   user.ID,                         // User ID
			"type":      "signup",                        // Event type
			"timestamp": time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("User registered")
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"userId": user.ID, "name": user.Name})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(st *store.Store, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "violations": bindingViolations(err)})
			return
		}
		user, err := st.FindUserByEmail(c.Request.Context(), req.Email) // Fetch user from database
		if errors.Is(err, store.ErrNotFound) {
			// Same answer as a wrong password
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		if err != nil {
			internalError(c, "Failed to load user", err, logrus.Fields{})
			return
		}
		// Compare provided password with stored hash
		if !utils.CheckPassword(req.Password, user.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, jwtSecret)
		if err != nil {
			internalError(c, "Failed to generate token", err, logrus.Fields{"user_id": user.ID})
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{
			Token: token,
			User:  UserResponse{ID: user.ID, Name: user.Name, Email: user.Email},
		})
	}
}

// MeHandler returns the authenticated user
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, UserResponse{ID: sess.User.ID, Name: sess.User.Name, Email: sess.User.Email})
	}
}

// DeleteAccountHandler removes the authenticated user together with every stored year
func DeleteAccountHandler(st *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}
		if err := st.DeleteUser(c.Request.Context(), sess.UserID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			internalError(c, "Failed to delete user", err, logrus.Fields{"user_id": sess.UserID})
			return
		}
		invalidateYears(c.Request.Context(), rdb, sess.UserID) // Orphan cached listings
		logrus.WithFields(logrus.Fields{
			"user_id":   sess.UserID,                     // User ID
			"type":      "delete_account",                // Event type
			"timestamp": time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("User deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
	}
}
