// Package api exposes the extraction pipeline over HTTP: an upload →
// process → download → status lifecycle for single documents plus a
// matrix-analysis endpoint that clusters a batch of documents in one call.
package api

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/veldtlabs/docstudy/internal/config"
	"github.com/veldtlabs/docstudy/internal/session"
	"github.com/veldtlabs/docstudy/internal/study"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	uploadDirName     = "uploads"
)

// allowedUploadExtensions is the extension allow-list for uploaded files.
var allowedUploadExtensions = map[string]bool{
	".pdf": true,
	".txt": true,
}

// Server is the HTTP front end. Upload state lives in the session registry
// owned by this instance, never in package-level variables.
type Server struct {
	cfg     *config.Config
	service *study.Service
	uploads *session.Registry
	engine  *gin.Engine
}

// NewServer wires the router. The registry is injected so tests can supply
// deterministic ids and clocks.
func NewServer(cfg *config.Config, service *study.Service, uploads *session.Registry) *Server {
	if !cfg.IsDebug() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:     cfg,
		service: service,
		uploads: uploads,
	}
	s.engine = s.buildRouter()
	return s
}

// Router returns the underlying gin engine, mainly for httptest.
func (s *Server) Router() *gin.Engine {
	return s.engine
}

func (s *Server) buildRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if s.cfg.IsDebug() {
		router.Use(requestLogger())
	}

	router.GET("/health", s.handleHealth)

	api := router.Group("/api")
	extract := api.Group("/extract")
	extract.POST("/upload", s.handleUpload)
	extract.POST("/process", s.handleProcess)
	extract.GET("/download/:file_id", s.handleDownload)
	extract.GET("/status/:file_id", s.handleStatus)

	api.POST("/matrix-analysis", s.handleMatrixAnalysis)

	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("%s %s -> %d (%s)",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": s.cfg.ServerName,
		"version": s.cfg.Version,
	})
}

func (s *Server) handleUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedUploadExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "only .pdf and .txt files are supported for extraction",
		})
		return
	}
	if fileHeader.Size > s.cfg.MaxFileSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("file exceeds maximum size of %d bytes", s.cfg.MaxFileSize),
		})
		return
	}

	path, err := s.saveUpload(c, fileHeader)
	if err != nil {
		log.Printf("upload failed for %s: %v", fileHeader.Filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store uploaded file"})
		return
	}

	upload := s.uploads.Add(fileHeader.Filename, path)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"file_id":  upload.ID,
		"filename": upload.Filename,
		"message":  "File uploaded successfully for extraction",
	})
}

// saveUpload stores the file in a fresh per-upload directory under the
// configured document root so path validation keeps applying to it.
func (s *Server) saveUpload(c *gin.Context, fileHeader *multipart.FileHeader) (string, error) {
	uploadRoot := filepath.Join(s.cfg.DocumentDirectory, uploadDirName)
	if err := os.MkdirAll(uploadRoot, config.DefaultDirPerm); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	dir, err := os.MkdirTemp(uploadRoot, "upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, path); err != nil {
		return "", fmt.Errorf("failed to save uploaded file: %w", err)
	}
	return path, nil
}

func (s *Server) handleProcess(c *gin.Context) {
	fileID := c.PostForm("file_id")
	if fileID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file_id field"})
		return
	}

	upload, ok := s.uploads.Get(fileID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	stem := strings.TrimSuffix(upload.Filename, filepath.Ext(upload.Filename))
	outputPath := filepath.Join(filepath.Dir(upload.Path), "extracted_"+stem+".xlsx")

	result, err := s.service.ExtractToExcel(upload.Path, outputPath)
	if err != nil {
		log.Printf("extraction failed for %s: %v", upload.Filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fmt.Sprintf("Extraction failed: %v", err),
		})
		return
	}

	if err := s.uploads.SetOutput(fileID, result.ExcelFile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"file_id":    fileID,
		"excel_file": result.ExcelFile,
		"summary":    result.Summary,
		"message":    "Extraction completed successfully",
	})
}

func (s *Server) handleDownload(c *gin.Context) {
	fileID := c.Param("file_id")

	upload, ok := s.uploads.Get(fileID)
	if !ok || !upload.Processed() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Extracted file not found"})
		return
	}
	if _, err := os.Stat(upload.OutputPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Excel file not found"})
		return
	}

	c.FileAttachment(upload.OutputPath, fmt.Sprintf("extracted_data_%s.xlsx", fileID))
}

func (s *Server) handleStatus(c *gin.Context) {
	fileID := c.Param("file_id")

	upload, ok := s.uploads.Get(fileID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"file_id":            fileID,
		"uploaded":           true,
		"processed":          upload.Processed(),
		"download_available": upload.Processed(),
	})
}

// handleMatrixAnalysis takes a batch of document uploads and runs the full
// summarize → vectorize → cluster pipeline, returning the grouped result.
func (s *Server) handleMatrixAnalysis(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}
	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
		return
	}

	clusters := s.cfg.ClusterCount
	if v := c.PostForm("clusters"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "clusters must be a positive integer"})
			return
		}
		clusters = parsed
	}

	seed := s.cfg.Seed
	if v := c.PostForm("seed"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "seed must be an integer"})
			return
		}
		seed = parsed
	}

	paths := make([]string, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if !allowedUploadExtensions[ext] {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("unsupported file type: %s", fh.Filename),
			})
			return
		}
		if fh.Size > s.cfg.MaxFileSize {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": fmt.Sprintf("file exceeds maximum size of %d bytes: %s", s.cfg.MaxFileSize, fh.Filename),
			})
			return
		}
		path, err := s.saveUpload(c, fh)
		if err != nil {
			log.Printf("upload failed for %s: %v", fh.Filename, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store uploaded file"})
			return
		}
		paths = append(paths, path)
	}

	corpus, err := s.service.BuildCorpus(paths)
	if err != nil {
		log.Printf("matrix analysis failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fmt.Sprintf("Analysis failed: %v", err),
		})
		return
	}

	result := s.service.MetaStudy(corpus, clusters, seed)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"clusters":  result.Clusters,
		"top_terms": result.TopTerms,
		"matrix":    result.Matrix,
	})
}

// Run serves HTTP until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address(),
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on %s", s.cfg.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		return <-errCh
	}
}
