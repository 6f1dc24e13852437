package handler

import (
	"github.com/gin-gonic/gin"

	apperrors "contentforge-ai-api/pkg/errors"
)

// sseWriter 把生成回调翻译为 SSE 事件流
// 在写出第一个事件前出错时仍可回退为普通 JSON 错误响应
type sseWriter struct {
	c       *gin.Context
	started bool
}

func newSSEWriter(c *gin.Context) *sseWriter {
	return &sseWriter{c: c}
}

// start 写出 SSE 响应头
func (w *sseWriter) start() {
	if w.started {
		return
	}
	w.started = true
	w.c.Header("Content-Type", "text/event-stream")
	w.c.Header("Cache-Control", "no-cache")
	w.c.Header("Connection", "keep-alive")
	w.c.Header("X-Accel-Buffering", "no")
}

// Chunk 写出一个 content 事件
func (w *sseWriter) Chunk(chunk string, index int) error {
	if err := w.c.Request.Context().Err(); err != nil {
		// 客户端断开，终止生成
		return err
	}

	w.start()
	w.c.SSEvent("content", gin.H{
		"chunk": chunk,
		"index": index,
	})
	w.c.Writer.Flush()
	return nil
}

// Done 写出 done 事件，附带本次用量
func (w *sseWriter) Done(payload gin.H) {
	w.start()
	w.c.SSEvent("done", payload)
	w.c.Writer.Flush()
}

// Fail 报告错误
// 尚未开始流式输出时返回普通 JSON 错误；已开始则写出 error 事件并携带安全文案
func (w *sseWriter) Fail(operation string, err error) {
	if !w.started {
		respondError(w.c, operation, err)
		return
	}

	appErr := apperrors.AsAppError(err)
	w.c.SSEvent("error", gin.H{
		"code":    string(appErr.Code),
		"message": apperrors.UserMessage(operation, err),
	})
	w.c.Writer.Flush()
}
