package content

import (
	"fmt"
	"strings"

	"inkwell/internal/models"
)

const imageCDN = "https://cdn.sanity.io/images"

// ImageURLBuilder turns image asset references into CDN URLs for one project and dataset.
type ImageURLBuilder struct {
	ProjectID string
	Dataset   string
}

func NewImageURLBuilder(projectID, dataset string) ImageURLBuilder {
	return ImageURLBuilder{ProjectID: projectID, Dataset: dataset}
}

// URL resolves an image. References that are already URLs are returned unchanged;
// references that cannot be parsed resolve to "".
func (b ImageURLBuilder) URL(img models.Image) string {
	return b.RefURL(img.Asset.Ref)
}

// RefURL resolves a raw asset reference of the form image-<id>-<width>x<height>-<format>.
func (b ImageURLBuilder) RefURL(ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "/") {
		return ref
	}
	if !strings.HasPrefix(ref, "image-") || b.ProjectID == "" {
		return ""
	}

	parts := strings.Split(strings.TrimPrefix(ref, "image-"), "-")
	if len(parts) < 3 {
		return ""
	}
	format := parts[len(parts)-1]
	dimensions := parts[len(parts)-2]
	id := strings.Join(parts[:len(parts)-2], "-")
	if id == "" || format == "" || !strings.Contains(dimensions, "x") {
		return ""
	}

	return fmt.Sprintf("%s/%s/%s/%s-%s.%s", imageCDN, b.ProjectID, b.Dataset, id, dimensions, format)
}
