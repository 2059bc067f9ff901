package handler

import (
	"github.com/gin-gonic/gin"

	"pulse_chat_server/internal/dto/respond"
	"pulse_chat_server/internal/infrastructure/blob"
	"pulse_chat_server/pkg/constants"
	"pulse_chat_server/pkg/errorx"
)

// UploadHandler stores media for messages and stories in the blob store
// and returns the reference clients embed in send_message or story
// payloads.
type UploadHandler struct {
	store blob.Store
}

func NewUploadHandler(store blob.Store) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload handles POST /upload (multipart field "file", optional "kind"
// of message or story).
func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		HandleParamError(c, err)
		return
	}
	if file.Size > constants.FILE_MAX_SIZE {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "file exceeds the size limit"))
		return
	}
	kind := c.PostForm("kind")
	if kind != "story" {
		kind = "message"
	}

	src, err := file.Open()
	if err != nil {
		HandleError(c, errorx.Wrap(err, errorx.CodeInvalidParam, "open uploaded file"))
		return
	}
	defer src.Close()

	url, err := h.store.Upload(c.Request.Context(), kind, file.Filename, src,
		file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, respond.UploadRespond{URL: url, FileName: file.Filename})
}
