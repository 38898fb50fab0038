package service

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// MaxImageSize bounds recipe image uploads.
const MaxImageSize = 5 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// ValidateImage checks the declared type against the sniffed content and
// returns the file extension to store it under.
func ValidateImage(contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", Validation("image is empty", map[string]string{"image": "required"})
	}
	if len(data) > MaxImageSize {
		return "", Validation("image is too large", map[string]string{"image": fmt.Sprintf("max %d bytes", MaxImageSize)})
	}

	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", Validation("unsupported image type", map[string]string{"image": "jpeg, png or webp"})
	}
	if sniffed := http.DetectContentType(data); sniffed != contentType {
		return "", Validation("image content does not match its type", map[string]string{"image": "content mismatch"})
	}
	return ext, nil
}

// RecipeImageKey returns a fresh object key so replaced images never collide
// with cached URLs.
func RecipeImageKey(recipeID, ext string) string {
	return fmt.Sprintf("recipes/%s/%s.%s", recipeID, uuid.NewString(), ext)
}
