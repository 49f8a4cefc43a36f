package handlers

import (
	"fmt"
	"net/http"

	"github.com/Naurose/Project-GameVault/cache"
	"github.com/Naurose/Project-GameVault/db"
	"github.com/Naurose/Project-GameVault/models"
	"github.com/Naurose/Project-GameVault/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// UpdateProfile updates the authenticated user's contact fields and,
// when a password is supplied, rehashes it.
func UpdateProfile(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var input models.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		user.Password = string(hashed)
	}

	if err := db.DB.Save(&user).Error; err != nil {
		utils.LogError("failed to update profile", map[string]interface{}{
			"user_id": user.ID,
			"error":   err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	go func(uid uint) {
		if cache.IsRedisAvailable() {
			cache.Delete(fmt.Sprintf("%s%d", cache.UserCachePrefix, uid))
		}
	}(user.ID)

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// UploadAvatar stores a new avatar image for the user
func UploadAvatar(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Avatar file is required"})
		return
	}

	filename := fmt.Sprintf("uploads/avatar-%d-%s", user.ID, file.Filename)
	if err := c.SaveUploadedFile(file, filename); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save avatar"})
		return
	}

	user.Avatar = "/" + filename
	if err := db.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Avatar updated", "avatar": user.Avatar})
}

// Toggle2FA flips the two-factor flag on the profile
func Toggle2FA(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var input struct {
		Enable bool `json:"enable"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user.TwoFactorEnabled = input.Enable
	if err := db.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	state := "disabled"
	if input.Enable {
		state = "enabled"
	}
	c.JSON(http.StatusOK, gin.H{"message": "2FA " + state})
}
