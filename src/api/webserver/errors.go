package webserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stake-plus/treasury-gov/src/api/governance"
)

// respondErr maps the engine's failure taxonomy onto HTTP statuses. Every
// engine error reaches the caller explicitly; nothing is swallowed.
func respondErr(c *gin.Context, err error) {
	var execErr *governance.ExecutionError

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, governance.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, governance.ErrInvalidPayload):
		status = http.StatusBadRequest
	case errors.Is(err, governance.ErrNotRegistered),
		errors.Is(err, governance.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, governance.ErrAlreadyVoted),
		errors.Is(err, governance.ErrAlreadyRegistered),
		errors.Is(err, governance.ErrAlreadyExecuted),
		errors.Is(err, governance.ErrProposalNotActive),
		errors.Is(err, governance.ErrNotPassed),
		errors.Is(err, governance.ErrTooEarly):
		status = http.StatusConflict
	case errors.As(err, &execErr):
		// The failure is recorded on the proposal; surface it as-is.
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"err": err.Error()})
}
