package cloudinary

import (
	"github.com/cloudinary/cloudinary-go/v2"
)

// New builds a Cloudinary client from the given URL, falling back to the
// CLOUDINARY_URL environment variable when empty.
func New(cloudinaryURL string) (*cloudinary.Cloudinary, error) {
	if cloudinaryURL != "" {
		return cloudinary.NewFromURL(cloudinaryURL)
	}
	return cloudinary.New()
}
