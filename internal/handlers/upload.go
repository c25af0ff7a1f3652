package handlers

import (
	"fmt"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/notemind/notemind-backend/internal/apierr"
	"github.com/notemind/notemind-backend/internal/logger"
	"github.com/notemind/notemind-backend/internal/services"
)

type UploadHandler struct {
	log           *logger.Logger
	bucketService services.BucketService
	userService   services.UserService
}

func NewUploadHandler(log *logger.Logger, bucketService services.BucketService, userService services.UserService) *UploadHandler {
	return &UploadHandler{
		log:           log.With("handler", "UploadHandler"),
		bucketService: bucketService,
		userService:   userService,
	}
}

// upload streams the multipart "file" part into the bucket under folder and
// returns the public URL. The file never touches local disk.
func (uh *UploadHandler) upload(c *gin.Context, folder string) (string, error) {
	userID, err := requestUserID(c)
	if err != nil {
		return "", err
	}
	header, err := c.FormFile("file")
	if err != nil {
		return "", apierr.Validation(fmt.Errorf("a file is required"))
	}
	f, err := header.Open()
	if err != nil {
		return "", apierr.Validation(fmt.Errorf("could not read uploaded file"))
	}
	defer f.Close()

	filename := fmt.Sprintf("%s-%s%s", userID, uuid.New(), filepath.Ext(header.Filename))
	contentType := header.Header.Get("Content-Type")
	url, err := uh.bucketService.UploadStream(c.Request.Context(), folder, filename, contentType, f)
	if err != nil {
		return "", apierr.Upstream(err)
	}
	return url, nil
}

func (uh *UploadHandler) UploadImage(c *gin.Context) {
	url, err := uh.upload(c, services.FolderImages)
	if err != nil {
		RespondError(c, uh.log, err, "Failed to upload image")
		return
	}
	RespondOK(c, gin.H{"url": url})
}

func (uh *UploadHandler) UploadPDF(c *gin.Context) {
	url, err := uh.upload(c, services.FolderPDFs)
	if err != nil {
		RespondError(c, uh.log, err, "Failed to upload PDF")
		return
	}
	RespondOK(c, gin.H{"url": url})
}

// UploadProfileImage stores the image and patches the user's image_url.
func (uh *UploadHandler) UploadProfileImage(c *gin.Context) {
	url, err := uh.upload(c, services.FolderProfileImages)
	if err != nil {
		RespondError(c, uh.log, err, "Failed to upload profile image")
		return
	}
	userID, err := requestUserID(c)
	if err != nil {
		RespondError(c, uh.log, err, "Failed to upload profile image")
		return
	}
	user, err := uh.userService.UpdateProfile(c.Request.Context(), userID, services.ProfileInput{ImageURL: url})
	if err != nil {
		RespondError(c, uh.log, err, "Failed to upload profile image")
		return
	}
	RespondOK(c, gin.H{"url": url, "user": user})
}
