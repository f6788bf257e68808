package routes

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"legalease-platform/internal/config"
	"legalease-platform/middleware"
	"legalease-platform/models"
	"legalease-platform/services"
	"legalease-platform/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SetupDocumentRoutes registers the document analysis endpoints. Everything
// under /api/documents requires authentication.
func SetupDocumentRoutes(router *gin.Engine, cfg *config.Config, svc *services.AnalysisService, authMiddleware *middleware.AuthMiddleware) {
	docs := router.Group("/api/documents")
	docs.Use(authMiddleware.RequireAuth())

	// Upload a document and run the full analysis pipeline
	docs.POST("/upload", func(c *gin.Context) {
		fileHeader, err := c.FormFile("document")
		if err != nil {
			utils.RespondWithBadRequest(c, "No document file provided", gin.H{"error": err.Error()})
			return
		}

		if fileHeader.Size > cfg.MaxFileSize {
			utils.RespondWithError(c, http.StatusRequestEntityTooLarge, "file_too_large",
				fmt.Sprintf("File exceeds the %d byte upload limit", cfg.MaxFileSize), nil)
			return
		}

		mimeType := detectMimeType(fileHeader.Header.Get("Content-Type"), fileHeader.Filename)

		if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
			utils.RespondWithInternalError(c, "Failed to prepare upload directory", nil)
			return
		}

		// Retain under a generated name so concurrent uploads of the same
		// file name never collide
		storedName := uuid.NewString() + filepath.Ext(fileHeader.Filename)
		storedPath := filepath.Join(cfg.UploadDir, storedName)
		if err := c.SaveUploadedFile(fileHeader, storedPath); err != nil {
			utils.RespondWithInternalError(c, "Failed to save uploaded file", nil)
			return
		}

		record, err := svc.Upload(c.Request.Context(), storedPath, mimeType, fileHeader.Filename)
		if err != nil {
			utils.RespondWithPipelineError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.UploadResponse{
			Message:  "File uploaded and processed successfully.",
			Document: record,
		})
	})

	// List all analyzed documents
	docs.GET("", func(c *gin.Context) {
		records, err := svc.List(c.Request.Context())
		if err != nil {
			utils.RespondWithPipelineError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"documents": records})
	})

	// Fetch one document by id
	docs.GET("/:id", func(c *gin.Context) {
		record, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			utils.RespondWithPipelineError(c, err)
			return
		}
		c.JSON(http.StatusOK, record)
	})

	// Recompute a summary for a stored document
	docs.POST("/:id/summarize", func(c *gin.Context) {
		summary, err := svc.SummarizeExisting(c.Request.Context(), c.Param("id"))
		if err != nil {
			utils.RespondWithPipelineError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"summary": summary})
	})

	// Rewrite a clause in plain language against the stored document text
	docs.POST("/:id/explain", func(c *gin.Context) {
		var req models.ExplainRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Clause text is required", gin.H{"error": err.Error()})
			return
		}

		explanation, err := svc.Explain(c.Request.Context(), c.Param("id"), req.Clause)
		if err != nil {
			utils.RespondWithPipelineError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"explanation": explanation})
	})

	// Summarize ad-hoc text without persisting anything
	docs.POST("/summarize", func(c *gin.Context) {
		var req models.SummarizeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Text is required", gin.H{"error": err.Error()})
			return
		}

		summary, err := svc.SummarizeAdHoc(c.Request.Context(), req.Text)
		if err != nil {
			utils.RespondWithPipelineError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"summary": summary})
	})

	// Export all records as a spreadsheet
	docs.GET("/export", func(c *gin.Context) {
		file, err := services.ExportRecordsXLSX(c.Request.Context(), svc.Repo())
		if err != nil {
			utils.RespondWithPipelineError(c, err)
			return
		}

		fileName := fmt.Sprintf("documents-%s.xlsx", time.Now().Format("2006-01-02"))
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := file.Write(c.Writer); err != nil {
			utils.RespondWithInternalError(c, "Failed to stream export", nil)
		}
	})
}

// detectMimeType prefers the declared Content-Type of the uploaded part and
// falls back to the file extension when the client sent none.
func detectMimeType(declared, fileName string) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if byExt := mime.TypeByExtension(filepath.Ext(fileName)); byExt != "" {
		return byExt
	}
	return declared
}
