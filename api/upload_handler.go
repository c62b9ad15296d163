package api

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/rpupo63/boardgame-journal/config"
	"github.com/rpupo63/boardgame-journal/content"
	"github.com/rpupo63/boardgame-journal/errs"
	"github.com/rpupo63/boardgame-journal/frontmatter"
	"github.com/rpupo63/boardgame-journal/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// multipart envelope allowance on top of the file itself
	formOverhead = 64 * 1024

	maxMarkdownBodySize = content.MaxDocumentSize + formOverhead
	MaxImageSize        = 20 * 1024 * 1024
	maxImageBodySize    = MaxImageSize + formOverhead
)

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	content   *content.Repository
	images    imageUploader
}

func newUploadHandler(repo *content.Repository, images imageUploader) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		content:   repo,
		images:    images,
	}
}

// parseForm parses the multipart body once, bounded by maxBody. The auth
// middleware may already have parsed it.
func parseForm(w http.ResponseWriter, r *http.Request, maxBody int64) error {
	if r.MultipartForm != nil {
		return nil
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := r.ParseMultipartForm(maxBody); err != nil {
		return formError(err, maxBody)
	}
	return nil
}

func (h uploadHandler) logOversized(err error) {
	if errs.IsMaxBodySizeExceededError(err) {
		h.logger.Warn().Err(err).Msg("Upload body too large")
	}
}

func readFormFile(r *http.Request, field string) ([]byte, *multipart.FileHeader, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, nil, errs.NewMissingRequiredFieldError(field)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, errs.NewMalformedPayloadError("multipart", err)
	}
	return data, header, nil
}

// uploadMarkdown stores a markdown document in the posts or games collection
// @Router /api/upload-markdown [post]
func (h uploadHandler) uploadMarkdown() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := parseForm(w, r, maxMarkdownBodySize); err != nil {
			h.logOversized(err)
			h.responder.WriteError(w, err)
			return
		}

		if _, ok := r.MultipartForm.Value["collection"]; !ok {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("collection"))
			return
		}
		collection := strings.TrimSpace(r.FormValue("collection"))
		if _, ok := content.UploadDir(collection); !ok {
			h.responder.WriteError(w, errs.NewUnknownCollectionError(collection))
			return
		}

		data, header, err := readFormFile(r, "file")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if len(data) == 0 {
			h.responder.WriteError(w, errs.NewInvalidFieldError("file", "file is empty"))
			return
		}
		if len(data) > content.MaxDocumentSize {
			h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(content.MaxDocumentSize))
			return
		}

		doc, err := frontmatter.Parse(data)
		if err != nil {
			h.logger.Warn().Err(err).Str("filename", header.Filename).Msg("Failed to parse front matter")
		}

		entryID := content.ResolveEntryID(collection, r.FormValue("entryId"), doc.Metadata, header.Filename)
		if entryID == "" {
			h.responder.WriteError(w, errs.NewInvalidEntryIDError("Could not determine entry identifier"))
			return
		}

		stored, err := h.content.SaveDocument(collection, entryID, header.Filename, data, config.ParseBool(r.FormValue("overwrite"), false))
		if err != nil {
			if errs.IsAlreadyExists(err) {
				h.logger.Info().Str("filename", header.Filename).Msg("Upload refused, document exists")
			}
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().
			Str("uploader", ctxGetUploader(r.Context())).
			Str("filename", stored.Filename).
			Msg("Markdown uploaded")

		h.responder.WriteJSON(w, UploadMarkdownResponse{OK: true, StoredDocument: *stored})
	}
}

// uploadImage stores an image on the image host
// @Router /api/upload-image [post]
func (h uploadHandler) uploadImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.images == nil || !h.images.IsReady() {
			h.responder.WriteError(w, errs.NewServiceUnavailableError("Image hosting"))
			return
		}

		if err := parseForm(w, r, maxImageBodySize); err != nil {
			h.logOversized(err)
			h.responder.WriteError(w, err)
			return
		}

		data, _, err := readFormFile(r, "file")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		uploaded, err := h.images.Upload(r.Context(), data, services.ImageUploadOptions{
			Folder:   r.FormValue("folder"),
			PublicID: r.FormValue("publicId"),
			Tags:     services.SplitTags(r.FormValue("tags")),
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, UploadImageResponse{OK: true, UploadedImage: *uploaded})
	}
}
