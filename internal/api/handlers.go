package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/adilg123/file-compressor/internal/compression"
	"github.com/adilg123/file-compressor/internal/config"
	"github.com/gin-gonic/gin"
)

// CompressRequest represents the compression request payload
type CompressRequest struct {
	Algorithm string `form:"algorithm" binding:"required"`
}

// DecompressRequest represents the decompression request payload
type DecompressRequest struct {
	Algorithm string `form:"algorithm" binding:"required"`
	Strict    *bool  `form:"strict"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Handler serves the compression endpoints
type Handler struct {
	cfg *config.Config
}

func NewHandler(cfg *config.Config) *Handler {
	return &Handler{cfg: cfg}
}

func abort(c *gin.Context, code int, title, message string) {
	c.JSON(code, ErrorResponse{
		Error:   title,
		Code:    code,
		Message: message,
	})
}

// readUpload validates the algorithm and returns the uploaded file content
func (h *Handler) readUpload(c *gin.Context, algorithm string) ([]byte, string, bool) {
	if !compression.IsValidAlgorithm(algorithm) {
		abort(c, http.StatusBadRequest, "Invalid algorithm",
			fmt.Sprintf("Supported algorithms: %v", compression.GetSupportedAlgorithms()))
		return nil, "", false
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		abort(c, http.StatusBadRequest, "File upload error", "No file provided or file upload failed")
		return nil, "", false
	}
	defer file.Close()

	if header.Size > h.cfg.MaxFileSize {
		abort(c, http.StatusBadRequest, "File too large",
			fmt.Sprintf("Maximum file size is %d bytes", h.cfg.MaxFileSize))
		return nil, "", false
	}

	fileContent, err := io.ReadAll(io.LimitReader(file, h.cfg.MaxFileSize+1))
	if err != nil {
		abort(c, http.StatusInternalServerError, "File read error", "Failed to read uploaded file")
		return nil, "", false
	}
	if int64(len(fileContent)) > h.cfg.MaxFileSize {
		abort(c, http.StatusBadRequest, "File too large",
			fmt.Sprintf("Maximum file size is %d bytes", h.cfg.MaxFileSize))
		return nil, "", false
	}
	return fileContent, header.Filename, true
}

func writeStats(c *gin.Context, stats *compression.Stats) {
	c.Header("X-Algorithm", stats.Algorithm)
	c.Header("X-Original-Size", strconv.Itoa(stats.OriginalSize))
	c.Header("X-Processed-Size", strconv.Itoa(stats.ProcessedSize))
	c.Header("X-Compression-Ratio", strconv.FormatFloat(stats.CompressionRatio, 'f', 2, 64))
	c.Header("X-Checksum", fmt.Sprintf("%08x", stats.Checksum))
}

// HandleCompress handles file compression requests
func (h *Handler) HandleCompress(c *gin.Context) {
	var req CompressRequest
	if err := c.ShouldBind(&req); err != nil {
		abort(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	fileContent, filename, ok := h.readUpload(c, req.Algorithm)
	if !ok {
		return
	}

	compressedData, stats, err := compression.Compress(fileContent, compression.Options{
		Algorithm: req.Algorithm,
		Workers:   h.cfg.Workers,
	})
	if err != nil {
		abort(c, http.StatusInternalServerError, "Compression failed", err.Error())
		return
	}

	name := fmt.Sprintf("%s_compressed.%s", getBaseFilename(filename), compression.Extension(req.Algorithm))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", name))
	writeStats(c, stats)
	c.Data(http.StatusOK, "application/octet-stream", compressedData)
}

// HandleDecompress handles file decompression requests
func (h *Handler) HandleDecompress(c *gin.Context) {
	var req DecompressRequest
	if err := c.ShouldBind(&req); err != nil {
		abort(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	fileContent, filename, ok := h.readUpload(c, req.Algorithm)
	if !ok {
		return
	}

	strict := h.cfg.StrictDecode
	if req.Strict != nil {
		strict = *req.Strict
	}
	decompressedData, stats, err := compression.Decompress(fileContent, compression.Options{
		Algorithm: req.Algorithm,
		Workers:   h.cfg.Workers,
		Strict:    strict,
	})
	if err != nil {
		if compression.IsCorrupt(err) {
			abort(c, http.StatusUnprocessableEntity, "Corrupt input", err.Error())
			return
		}
		abort(c, http.StatusInternalServerError, "Decompression failed", err.Error())
		return
	}

	name := fmt.Sprintf("%s_decompressed", getBaseFilename(filename))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", name))
	writeStats(c, stats)
	c.Data(http.StatusOK, "application/octet-stream", decompressedData)
}

// HandleInfo provides information about supported algorithms
func (h *Handler) HandleInfo(c *gin.Context) {
	descriptions := make(map[string]string)
	for _, name := range compression.GetSupportedAlgorithms() {
		descriptions[name] = compression.Describe(name)
	}
	info := gin.H{
		"service": "File Compression/Decompression Tool",
		"version": "2.0.0",
		"algorithms": gin.H{
			"supported":    compression.GetSupportedAlgorithms(),
			"descriptions": descriptions,
		},
		"limits": gin.H{
			"max_file_size": fmt.Sprintf("%d bytes (%.1f MB)", h.cfg.MaxFileSize, float64(h.cfg.MaxFileSize)/(1024*1024)),
		},
		"endpoints": gin.H{
			"compress":   "POST /compress - Upload file for compression",
			"decompress": "POST /decompress - Upload file for decompression",
			"info":       "GET /info - Get service information",
			"health":     "GET /health - Health check",
		},
	}

	c.JSON(http.StatusOK, info)
}

// HandleHealth provides a simple health check endpoint
func HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "compression-service",
	})
}

// getBaseFilename strips the extension from an uploaded file name
func getBaseFilename(filename string) string {
	if filename == "" {
		return "file"
	}

	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			return filename[:i]
		}
	}
	return filename
}
