package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/RetroShell/internal/domain/vfs"
)

var exportContentTypes = map[vfs.Compression]string{
	vfs.CompressionGzip: "application/gzip",
	vfs.CompressionZstd: "application/zstd",
}

// ExportDocuments streams the Documents folder as a compressed tarball.
// The archive is a download, not a save: nothing is written server-side.
func (h *Handlers) ExportDocuments(c *gin.Context) {
	comp, err := vfs.ParseCompression(c.Query("compression"))
	if err != nil {
		badRequest(c, err)
		return
	}

	data, n, err := h.shell.Export(comp)
	if err != nil {
		h.logError("document export failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if h.metrics != nil {
		h.metrics.RecordExport(string(comp), n)
	}

	filename := string(vfs.Documents) + comp.Extension()
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("X-Document-Count", fmt.Sprint(n))
	c.Data(http.StatusOK, exportContentTypes[comp], data)
}
