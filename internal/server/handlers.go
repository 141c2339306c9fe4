package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edgefn/translation-gateway/internal/config"
	"github.com/edgefn/translation-gateway/internal/requestid"
	"github.com/edgefn/translation-gateway/internal/translate"
	"github.com/edgefn/translation-gateway/internal/upstream"
)

// maxBodyBytes bounds the raw request read; the combined input is bounded
// separately by translate.max_input_bytes.
const maxBodyBytes = 16 << 20

func makeTranslateHandler(st *State) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg, client := st.Snapshot()

		in, err := parseRequest(c, cfg)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Set("tgw.lang", in.LangCode)

		prompt := translate.Prompt(in)
		c.Set("tgw.prompt_chars", len(prompt))

		out, err := client.Complete(c.Request.Context(), prompt)
		if err != nil {
			var serr *upstream.StatusError
			if errors.As(err, &serr) {
				c.Set("tgw.upstream_status", serr.Status)
			}
			writeError(c, err)
			return
		}
		c.Set("tgw.upstream_status", http.StatusOK)

		c.JSON(http.StatusOK, gin.H{
			"translation":    out,
			"targetLanguage": in.LangCode,
			"originalText":   in.Text,
		})
	}
}

// parseRequest accepts either a JSON body {text, file, lang} or a multipart
// form with fields text, lang and a file upload. The lang query parameter is
// the fallback for both.
func parseRequest(c *gin.Context, cfg *config.Config) (translate.Input, error) {
	def := cfg.Translate.DefaultLang
	max := cfg.Translate.MaxInputBytes

	if c.ContentType() == "multipart/form-data" {
		text := c.PostForm("text")
		lang := strings.TrimSpace(c.PostForm("lang"))
		if lang == "" {
			lang = strings.TrimSpace(c.Query("lang"))
		}

		var fileBytes []byte
		if fh, err := c.FormFile("file"); err == nil && fh != nil {
			f, err := fh.Open()
			if err != nil {
				return translate.Input{}, fmt.Errorf("%w: cannot open uploaded file: %v", translate.ErrInvalidInput, err)
			}
			defer f.Close()
			b, err := io.ReadAll(io.LimitReader(f, maxBodyBytes))
			if err != nil {
				return translate.Input{}, fmt.Errorf("%w: cannot read uploaded file: %v", translate.ErrInvalidInput, err)
			}
			fileBytes = b
		}
		return translate.NormalizeBytes(fileBytes, text, lang, def, max)
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		return translate.Input{}, fmt.Errorf("%w: cannot read request body: %v", translate.ErrInvalidInput, err)
	}
	var req translate.Request
	if len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			return translate.Input{}, fmt.Errorf("%w: invalid json: %v", translate.ErrInvalidInput, err)
		}
	}
	if strings.TrimSpace(req.Lang) == "" {
		req.Lang = strings.TrimSpace(c.Query("lang"))
	}
	return translate.Normalize(req, def, max)
}

// writeError maps the error kind to a status and relays the message with the
// request id appended.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, translate.ErrInvalidInput) {
		status = http.StatusBadRequest
	}
	msg := err.Error()
	if rid := strings.TrimSpace(c.GetString(requestid.HeaderKey)); rid != "" {
		msg = msg + " (request id: " + rid + ")"
	}
	c.JSON(status, gin.H{"error": msg})
}
