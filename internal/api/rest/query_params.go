package rest

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
	"github.com/feral-file/ff-lifecycle-bridge/internal/lifecycle"
)

// OnboardRequest is the body of POST /v1/accounts
type OnboardRequest struct {
	Subject string      `json:"subject"`
	Role    domain.Role `json:"role"`
}

// SellRequest is the body of POST /v1/raw-batches/:id/sell
type SellRequest struct {
	Quantity       uint64 `json:"quantity"`
	BuyerAccountID string `json:"buyer_account_id"`
}

// parseID reads a ledger entity id path parameter
func parseID(c *gin.Context) (uint64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, domain.NewValidationError(fmt.Sprintf("invalid id %q", raw))
	}
	return id, nil
}

// parseStage reads a stage path parameter in either its short or plural form
func parseStage(c *gin.Context) (domain.Stage, error) {
	stage, err := domain.ParseStage(c.Param("stage"))
	if err != nil {
		return "", domain.NewValidationError(err.Error())
	}
	return stage, nil
}

// parsePage reads limit and offset query parameters
func parsePage(c *gin.Context) (lifecycle.Page, error) {
	var page lifecycle.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		return lifecycle.Page{}, domain.NewValidationError(err.Error())
	}
	return page, nil
}

// bindJSON decodes a request body, mapping malformed JSON to a validation error
func bindJSON(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return domain.NewValidationError(fmt.Sprintf("malformed request body: %v", err))
	}
	return nil
}
