package lexend

import (
	"io/fs"

	"github.com/Ayflow350/lexend-jobs/internal/site"
)

// EmbeddedTemplates exposes the built-in page templates so callers can reuse
// or extend them without reaching into the site package.
func EmbeddedTemplates() fs.FS {
	return site.TemplatesFS()
}
