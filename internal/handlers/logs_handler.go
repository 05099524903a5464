package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/logger"
)

// LogsHandler receives batched client-side logs and appends them to a
// dedicated file so wizard issues on the client can be correlated with
// server logs.
type LogsHandler struct {
	logDir string
	mu     sync.Mutex
}

type LogEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Context   map[string]interface{} `json:"context,omitempty"`
}

type LogBatchRequest struct {
	Logs []LogEntry `json:"logs" binding:"required,max=100,dive"`
}

func NewLogsHandler(logDir string) *LogsHandler {
	return &LogsHandler{
		logDir: logDir,
	}
}

// ReceiveClientLogs handles POST /api/v1/logs
func (h *LogsHandler) ReceiveClientLogs(c *gin.Context) {
	var req LogBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if len(req.Logs) == 0 {
		respondError(c, http.StatusBadRequest, "No logs provided", nil)
		return
	}

	if err := h.writeLogsToFile(req.Logs); err != nil {
		logger.Error("Failed to write client logs", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to write logs", err)
		return
	}

	logger.Info("Received client logs", zap.Int("count", len(req.Logs)))
	c.JSON(http.StatusOK, gin.H{"success": true, "received": len(req.Logs)})
}

func (h *LogsHandler) writeLogsToFile(logs []LogEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := os.MkdirAll(h.logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(h.logDir, "client.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open client log file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	for _, entry := range logs {
		if err := encoder.Encode(entry); err != nil {
			return fmt.Errorf("failed to write log entry: %w", err)
		}
	}

	return nil
}
