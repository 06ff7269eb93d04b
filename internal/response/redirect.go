package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NoticeLevel is the severity of a one-shot user-facing notice.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
	NoticeDanger  NoticeLevel = "danger"
)

// Notice is a message shown once on the page the client is sent to.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// RedirectBody is the data payload of a redirect response.
type RedirectBody struct {
	Redirect string  `json:"redirect"`
	Notice   *Notice `json:"notice,omitempty"`
}

// Redirect answers 303 See Other with a Location header and the target
// echoed in the envelope, optionally carrying a notice.
func Redirect(c *gin.Context, location string, notice *Notice) {
	c.Header("Location", location)
	c.JSON(http.StatusSeeOther, Response{
		Data:     RedirectBody{Redirect: location, Notice: notice},
		Metadata: buildMetadata(c),
	})
}

// AbortRedirect is Redirect for middleware: it stops the chain.
func AbortRedirect(c *gin.Context, location string, notice *Notice) {
	Redirect(c, location, notice)
	c.Abort()
}

// NewNotice is a shorthand for building a notice pointer.
func NewNotice(level NoticeLevel, message string) *Notice {
	return &Notice{Level: level, Message: message}
}
