package server

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pratm1304/IntelliDocs-Ai/intellidocs"
	log "github.com/rs/zerolog/log"
)

const (
	livenessMessage      = "IntelliDocs AI backend is running!"
	noTextMessage        = "No text provided"
	noInputMessage       = "No GitHub URL, zip file, or individual files provided"
	emptySelection       = "No files were selected"
	internalErrorMessage = "An internal error occurred. Check the backend terminal for details."
)

type Handler struct {
	svc            *intellidocs.Service
	maxUploadBytes int64
}

type formatTextRequest struct {
	Text         string `json:"text"`
	SourceFormat string `json:"source_format"`
}

// Index is the liveness probe
func (h *Handler) Index(c *gin.Context) {
	c.String(http.StatusOK, livenessMessage)
}

// FormatText handles POST /api/format-text
func (h *Handler) FormatText(c *gin.Context) {
	var req formatTextRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": noTextMessage})
		return
	}
	formatted, err := h.svc.FormatText(c.Request.Context(), req.Text, req.SourceFormat)
	if err != nil {
		if errors.Is(err, intellidocs.ErrNoText) {
			c.JSON(http.StatusBadRequest, gin.H{"error": noTextMessage})
			return
		}
		logRouteError(c, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}
	c.JSON(http.StatusOK, gin.H{"formatted_text": formatted})
}

// GenerateReadme handles POST /api/generate-readme
func (h *Handler) GenerateReadme(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}
	src, err := sourceFromRequest(c)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
			return
		}
		logRouteError(c, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	readme, err := h.svc.GenerateReadme(c.Request.Context(), src)
	if err != nil {
		switch {
		case errors.Is(err, intellidocs.ErrNoInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": noInputMessage})
		case errors.Is(err, intellidocs.ErrEmptySelection):
			c.JSON(http.StatusBadRequest, gin.H{"error": emptySelection})
		default:
			logRouteError(c, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"readme_content": readme})
}

// sourceFromRequest decodes the multipart form. Browsers send an unselected
// file input as a part with an empty filename, which lands in Value, so a
// "files" key in either map counts as a files submission.
func sourceFromRequest(c *gin.Context) (intellidocs.Source, error) {
	var src intellidocs.Source
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			src.RepoURL = c.PostForm("repo_url")
			return src, nil
		}
		return src, err
	}
	if values := form.Value["repo_url"]; len(values) > 0 {
		src.RepoURL = values[0]
	}
	if headers := form.File["zip_file"]; len(headers) > 0 {
		upload := uploadFromHeader(headers[0])
		src.Archive = &upload
	}
	if headers, ok := form.File["files"]; ok && len(headers) > 0 {
		src.FilesField = true
		for _, fh := range headers {
			src.Files = append(src.Files, uploadFromHeader(fh))
		}
	} else if _, ok := form.Value["files"]; ok {
		src.FilesField = true
	}
	return src, nil
}

func uploadFromHeader(fh *multipart.FileHeader) intellidocs.Upload {
	return intellidocs.Upload{
		Filename: fh.Filename,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

func logRouteError(c *gin.Context, err error) {
	log.Error().
		Err(err).
		Str("route", c.FullPath()).
		Msg("an error occurred handling request")
}
