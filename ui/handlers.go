package ui

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"gogeomap/internal/errors"
	"gogeomap/internal/upload"
	"gogeomap/ports"
	"gogeomap/ui/middleware"

	"github.com/gin-gonic/gin"
)

// handleIndex serves the upload page
func (s *Server) handleIndex(c *gin.Context) {
	s.renderTemplate(c, http.StatusOK, "index.html", gin.H{
		"Title":        pageTitle,
		"Instructions": s.instructions,
	})
}

// handleHealth reports liveness
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleInspect reads the upload and returns its columns and detected coordinates
func (s *Server) handleInspect(c *gin.Context) {
	table, err := upload.ReadTable(c.Writer, c.Request, s.reader, s.config.Upload.MaxUploadBytes())
	if err != nil {
		s.respondError(c, "Inspect", err)
		return
	}

	c.JSON(http.StatusOK, s.service.Inspect(table))
}

// handleGenerate runs a full generation for the uploaded file. Maps are
// returned as a zip download; otherwise the grouping summary is shown.
func (s *Server) handleGenerate(c *gin.Context) {
	table, err := upload.ReadTable(c.Writer, c.Request, s.reader, s.config.Upload.MaxUploadBytes())
	if err != nil {
		s.respondError(c, "Generate", err)
		return
	}

	sel := upload.ParseSelection(c.Request.Form, false)
	result, err := s.service.GenerateMapSet(c.Request.Context(), table, sel)
	if err != nil {
		s.respondError(c, "Generate", err)
		return
	}

	log.Printf("[Generate] request %s: run %s on %s: %s", c.GetString(middleware.ContextKeyRequestID), result.RunID, table.Source, result.Message)

	if result.HasMaps() {
		writeArchive(c, result)
		return
	}

	if wantsHTML(c) {
		s.renderTemplate(c, http.StatusOK, "summary.html", result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func writeArchive(c *gin.Context, result *ports.MapSetResult) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", result.ArchiveName))
	c.Header("X-Run-ID", result.RunID.String())
	c.Header("X-Map-Count", strconv.Itoa(result.MapSet.Len()))
	c.Header("X-Message", result.Message)
	c.Data(http.StatusOK, "application/zip", result.Archive)
}

func (s *Server) respondError(c *gin.Context, handler string, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[%s] FAILED - %v", handler, err)
	} else {
		log.Printf("[%s] rejected (%d): %v", handler, status, err)
	}
	c.JSON(status, gin.H{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}

func wantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
