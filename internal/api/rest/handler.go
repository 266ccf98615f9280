package rest

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-lifecycle-bridge/internal/api/middleware"
	"github.com/feral-file/ff-lifecycle-bridge/internal/auth"
	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
	"github.com/feral-file/ff-lifecycle-bridge/internal/identity"
	"github.com/feral-file/ff-lifecycle-bridge/internal/lifecycle"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler defines the interface for REST API handlers
type Handler interface {
	// Onboard creates an account and allocates its ledger address (admin only)
	// POST /v1/accounts
	Onboard(c *gin.Context)

	// CreateRawBatch registers a raw batch
	// POST /v1/raw-batches
	CreateRawBatch(c *gin.Context)

	// SellRawBatch sells part of a raw batch to another account
	// POST /v1/raw-batches/:id/sell
	SellRawBatch(c *gin.Context)

	// CreateProductBatch makes a product batch out of a sold batch
	// POST /v1/product-batches
	CreateProductBatch(c *gin.Context)

	// CreateWasteItem registers a waste item for a depositor
	// POST /v1/waste-items
	CreateWasteItem(c *gin.Context)

	// RecycleWasteItems consumes waste items into a recycled batch
	// POST /v1/recycled-batches
	RecycleWasteItems(c *gin.Context)

	// Delete soft-deletes an entity of a stage
	// DELETE /v1/:stage/:id
	Delete(c *gin.Context)

	// ListOwned lists the caller's entities of a stage
	// GET /v1/owned/:stage?limit=<limit>&offset=<offset>
	ListOwned(c *gin.Context)

	// ListWatched lists the entities the caller watches
	// GET /v1/watched?limit=<limit>&offset=<offset>
	ListWatched(c *gin.Context)

	// Unwatch removes one of the caller's watches
	// DELETE /v1/watched/:id
	Unwatch(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /healthz
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	lifecycle  lifecycle.Service
	onboarder  identity.Onboarder
	verifier   auth.Verifier
	authorizer auth.Authorizer
	db         Pinger
}

// NewHandler creates a new REST API handler over the lifecycle core
func NewHandler(svc lifecycle.Service, onboarder identity.Onboarder, verifier auth.Verifier, authorizer auth.Authorizer, db Pinger) Handler {
	return &handler{
		lifecycle:  svc,
		onboarder:  onboarder,
		verifier:   verifier,
		authorizer: authorizer,
		db:         db,
	}
}

func (h *handler) Onboard(c *gin.Context) {
	var req OnboardRequest
	if err := bindJSON(c, &req); err != nil {
		respond(c, 0, nil, err)
		return
	}

	ctx := c.Request.Context()
	principal, err := h.verifier.Verify(ctx, middleware.Credential(c))
	if err != nil {
		respond(c, 0, nil, err)
		return
	}
	if err := h.authorizer.AuthorizeObject(*principal, domain.ObjectAccounts, domain.ActionCreate); err != nil {
		respond(c, 0, nil, err)
		return
	}

	account, err := h.onboarder.Onboard(ctx, req.Subject, req.Role)
	respond(c, http.StatusCreated, account, err)
}

func (h *handler) CreateRawBatch(c *gin.Context) {
	var input lifecycle.CreateRawBatchInput
	if err := bindJSON(c, &input); err != nil {
		respond(c, 0, nil, err)
		return
	}

	created, err := h.lifecycle.CreateRawBatch(c.Request.Context(), middleware.Credential(c), input)
	respond(c, http.StatusCreated, created, err)
}

func (h *handler) SellRawBatch(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respond(c, 0, nil, err)
		return
	}
	var req SellRequest
	if err := bindJSON(c, &req); err != nil {
		respond(c, 0, nil, err)
		return
	}

	created, err := h.lifecycle.SellRawBatch(c.Request.Context(), middleware.Credential(c), lifecycle.SellRawBatchInput{
		RawBatchID:     id,
		Quantity:       req.Quantity,
		BuyerAccountID: req.BuyerAccountID,
	})
	respond(c, http.StatusCreated, created, err)
}

func (h *handler) CreateProductBatch(c *gin.Context) {
	var input lifecycle.CreateProductBatchInput
	if err := bindJSON(c, &input); err != nil {
		respond(c, 0, nil, err)
		return
	}

	created, err := h.lifecycle.CreateProductBatch(c.Request.Context(), middleware.Credential(c), input)
	respond(c, http.StatusCreated, created, err)
}

func (h *handler) CreateWasteItem(c *gin.Context) {
	var input lifecycle.CreateWasteItemInput
	if err := bindJSON(c, &input); err != nil {
		respond(c, 0, nil, err)
		return
	}

	created, err := h.lifecycle.CreateWasteItem(c.Request.Context(), middleware.Credential(c), input)
	respond(c, http.StatusCreated, created, err)
}

func (h *handler) RecycleWasteItems(c *gin.Context) {
	var input lifecycle.RecycleWasteItemsInput
	if err := bindJSON(c, &input); err != nil {
		respond(c, 0, nil, err)
		return
	}

	created, err := h.lifecycle.RecycleWasteItems(c.Request.Context(), middleware.Credential(c), input)
	respond(c, http.StatusCreated, created, err)
}

func (h *handler) Delete(c *gin.Context) {
	stage, err := parseStage(c)
	if err != nil {
		respond(c, 0, nil, err)
		return
	}
	id, err := parseID(c)
	if err != nil {
		respond(c, 0, nil, err)
		return
	}

	err = h.lifecycle.Delete(c.Request.Context(), middleware.Credential(c), stage, id)
	respond(c, http.StatusOK, nil, err)
}

func (h *handler) ListOwned(c *gin.Context) {
	stage, err := parseStage(c)
	if err != nil {
		respond(c, 0, nil, err)
		return
	}
	page, err := parsePage(c)
	if err != nil {
		respond(c, 0, nil, err)
		return
	}

	owned, err := h.lifecycle.ListOwned(c.Request.Context(), middleware.Credential(c), stage, page)
	respond(c, http.StatusOK, owned, err)
}

func (h *handler) ListWatched(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		respond(c, 0, nil, err)
		return
	}

	watched, err := h.lifecycle.ListWatched(c.Request.Context(), middleware.Credential(c), page)
	respond(c, http.StatusOK, watched, err)
}

func (h *handler) Unwatch(c *gin.Context) {
	err := h.lifecycle.Unwatch(c.Request.Context(), middleware.Credential(c), c.Param("id"))
	respond(c, http.StatusOK, nil, err)
}

// HealthCheck reports whether the ownership index is reachable
func (h *handler) HealthCheck(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(c.Request.Context()); err != nil {
			respond(c, 0, nil, domain.NewInternalError("ping database", err))
			return
		}
	}
	respond(c, http.StatusOK, gin.H{"status": "ok"}, nil)
}
