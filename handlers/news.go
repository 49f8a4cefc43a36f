package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Naurose/Project-GameVault/db"
	"github.com/Naurose/Project-GameVault/models"
	"github.com/Naurose/Project-GameVault/utils"
	"github.com/gin-gonic/gin"
)

func GetNews(c *gin.Context) {
	var articles []models.NewsArticle
	if err := db.DB.Order("created_at DESC").Find(&articles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, articles)
}

func GetNewsArticle(c *gin.Context) {
	id := c.Param("id")
	var article models.NewsArticle
	if err := db.DB.First(&article, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Article not found"})
		return
	}
	c.JSON(http.StatusOK, article)
}

// CreateNewsArticle accepts multipart form data so an image can be
// attached; the file lands under uploads/ and is served statically.
func CreateNewsArticle(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	if user.Role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"message": "Admins only"})
		return
	}

	title := c.PostForm("title")
	content := c.PostForm("content")
	if title == "" || content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title and content are required"})
		return
	}

	article := models.NewsArticle{
		Title:   title,
		Content: content,
		UserID:  user.ID,
	}

	if file, err := c.FormFile("image"); err == nil {
		filename := fmt.Sprintf("news-%d%s", time.Now().UnixNano(), filepath.Ext(file.Filename))
		dst := filepath.Join("uploads", filename)
		if err := c.SaveUploadedFile(file, dst); err != nil {
			utils.LogError("failed to save news image", map[string]interface{}{"error": err.Error()})
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save image"})
			return
		}
		article.Image = "/uploads/" + filename
	}

	if err := db.DB.Create(&article).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create article"})
		return
	}

	c.JSON(http.StatusCreated, article)
}

func DeleteNewsArticle(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	if user.Role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"message": "Admins only"})
		return
	}

	id := c.Param("id")
	var article models.NewsArticle
	if err := db.DB.First(&article, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Article not found"})
		return
	}

	if err := db.DB.Delete(&article).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete article"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Article deleted"})
}
