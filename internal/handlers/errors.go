package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/drop/internal/database"
)

// respondError отвечает статусом по виду ошибки хранилища.
// Для ошибок валидации клиент видит причину, для остальных msg.
func respondError(c *gin.Context, err error, msg string) {
	_ = c.Error(err)

	status := http.StatusInternalServerError
	switch database.KindOf(err) {
	case database.KindValidation:
		status = http.StatusBadRequest
		var dbErr *database.Error
		if errors.As(err, &dbErr) && dbErr.Err != nil {
			msg = dbErr.Err.Error()
		}
	case database.KindNotFound:
		status = http.StatusNotFound
		msg = "message not found"
	case database.KindNotReady, database.KindConnectivity:
		status = http.StatusServiceUnavailable
		msg = "database is not available"
	}

	c.JSON(status, gin.H{"error": msg})
}
