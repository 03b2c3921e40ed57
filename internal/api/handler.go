package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"admin-gateway/internal/models"
	"admin-gateway/internal/service"
	"admin-gateway/internal/upstream"
	"admin-gateway/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	svc *service.AdminService
}

// NewHandler creates a new HTTP handler
func NewHandler(svc *service.AdminService) *Handler {
	return &Handler{svc: svc}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	v1.POST("/session", h.connect)

	authed := v1.Group("")
	authed.Use(h.requireSession())
	{
		authed.DELETE("/session", h.disconnect)

		authed.GET("/orders", h.listOrders)
		authed.POST("/orders", h.createOrder)
		authed.GET("/orders/:id", h.getOrder)
		authed.DELETE("/orders/:id", h.deleteOrder)
		authed.POST("/orders/:id/items", h.addOrderItem)
		authed.DELETE("/orders/:id/items", h.removeOrderItem)
		authed.POST("/orders/:id/recalculate", h.recalculateTotal)
		authed.POST("/orders/:id/confirm-payment", h.confirmPayment)
		authed.POST("/orders/:id/send", h.sendOrder)

		authed.GET("/products", h.listProducts)
		authed.POST("/products", h.createProduct)
		authed.GET("/products/:id", h.getProduct)
		authed.PUT("/products/:id", h.updateProduct)
		authed.DELETE("/products/:id", h.deleteProduct)

		authed.GET("/warehouses", h.listWarehouses)
		authed.POST("/warehouses", h.createWarehouse)
		authed.GET("/warehouses/:id", h.getWarehouse)
		authed.PUT("/warehouses/:id", h.updateWarehouse)
		authed.DELETE("/warehouses/:id", h.deleteWarehouse)

		authed.GET("/inventory", h.listInventory)
		authed.POST("/inventory", h.createInventoryRecord)
		authed.GET("/inventory/:id", h.getInventoryRecord)
		authed.PUT("/inventory/:id", h.updateInventoryRecord)
		authed.DELETE("/inventory/:id", h.deleteInventoryRecord)

		authed.POST("/payments", h.createPayment)

		authed.GET("/reports/sales", h.salesReport)
		authed.GET("/reports/stock", h.stockReport)
	}
}

// requireSession rejects resource requests until the operator connected.
func (h *Handler) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.svc.Connected() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Not connected to upstream API",
			})
			return
		}
		c.Next()
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"connected": h.svc.Connected(),
		"time":      time.Now().Unix(),
	})
}

func (h *Handler) connect(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.svc.Connect(c.Request.Context(), req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"connected": true})
}

func (h *Handler) disconnect(c *gin.Context) {
	if err := h.svc.Disconnect(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"connected": false})
}

func (h *Handler) listOrders(c *gin.Context) {
	force := c.Query("refresh") == "true"
	snap, err := h.svc.LoadSnapshot(c.Request.Context(), force)
	if err != nil {
		upstreamError(c, "Failed to load orders", err)
		return
	}

	orders, err := h.svc.ListOrders(c.Request.Context(), snap)
	if err != nil {
		upstreamError(c, "Failed to load orders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "fetched_at": snap.FetchedAt})
}

func (h *Handler) getOrder(c *gin.Context) {
	orderID, ok := pathID(c)
	if !ok {
		return
	}

	snap, err := h.svc.LoadSnapshot(c.Request.Context(), false)
	if err != nil {
		upstreamError(c, "Failed to load order", err)
		return
	}

	detail, err := h.svc.GetOrderDetail(c.Request.Context(), orderID, snap)
	if err != nil {
		upstreamError(c, "Order not found", err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) createOrder(c *gin.Context) {
	var req upstream.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := h.svc.CreateOrder(c.Request.Context(), &req); err != nil {
		upstreamError(c, "Failed to create order", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"created": true})
}

func (h *Handler) deleteOrder(c *gin.Context) {
	orderID, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteOrder(c.Request.Context(), orderID); err != nil {
		upstreamError(c, "Failed to delete order", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) addOrderItem(c *gin.Context) {
	orderID, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		ProductID int64 `json:"product_id" binding:"required"`
		Quantity  int   `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.svc.AddOrderItem(c.Request.Context(), orderID, req.ProductID, req.Quantity); err != nil {
		orderMutationError(c, "Failed to add item", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"added": true})
}

func (h *Handler) removeOrderItem(c *gin.Context) {
	orderID, ok := pathID(c)
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.svc.RemoveOrderItem(c.Request.Context(), orderID, req.Name); err != nil {
		orderMutationError(c, "Failed to remove item", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}

func (h *Handler) recalculateTotal(c *gin.Context) {
	orderID, ok := pathID(c)
	if !ok {
		return
	}
	total, err := h.svc.RecalculateTotal(c.Request.Context(), orderID)
	if err != nil {
		upstreamError(c, "Failed to recalculate total", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": orderID, "total_amount": total})
}

func (h *Handler) confirmPayment(c *gin.Context) {
	orderID, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.ConfirmPayment(c.Request.Context(), orderID); err != nil {
		orderMutationError(c, "Failed to confirm payment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment_status": models.PaymentStatusConfirmed})
}

func (h *Handler) sendOrder(c *gin.Context) {
	orderID, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.SendOrder(c.Request.Context(), orderID); err != nil {
		orderMutationError(c, "Failed to send order", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment_status": models.PaymentStatusSent})
}

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.svc.ListProducts(c.Request.Context())
	if err != nil {
		upstreamError(c, "Failed to load products", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *Handler) getProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	product, err := h.svc.GetProduct(c.Request.Context(), id)
	if err != nil {
		upstreamError(c, "Product not found", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) createProduct(c *gin.Context) {
	h.createResource(c, h.svc.CreateProduct)
}

func (h *Handler) updateProduct(c *gin.Context) {
	h.updateResource(c, h.svc.UpdateProduct)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	h.deleteResource(c, h.svc.DeleteProduct)
}

func (h *Handler) listWarehouses(c *gin.Context) {
	warehouses, err := h.svc.ListWarehouses(c.Request.Context())
	if err != nil {
		upstreamError(c, "Failed to load warehouses", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"warehouses": warehouses})
}

func (h *Handler) getWarehouse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	warehouse, err := h.svc.GetWarehouse(c.Request.Context(), id)
	if err != nil {
		upstreamError(c, "Warehouse not found", err)
		return
	}
	c.JSON(http.StatusOK, warehouse)
}

func (h *Handler) createWarehouse(c *gin.Context) {
	h.createResource(c, h.svc.CreateWarehouse)
}

func (h *Handler) updateWarehouse(c *gin.Context) {
	h.updateResource(c, h.svc.UpdateWarehouse)
}

func (h *Handler) deleteWarehouse(c *gin.Context) {
	h.deleteResource(c, h.svc.DeleteWarehouse)
}

func (h *Handler) listInventory(c *gin.Context) {
	ctx := c.Request.Context()

	if warehouse := c.Query("warehouse_id"); warehouse != "" {
		id, err := strconv.ParseInt(warehouse, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid warehouse_id"})
			return
		}
		records, err := h.svc.ListInventoryByWarehouse(ctx, id)
		if err != nil {
			upstreamError(c, "Failed to load inventory", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"inventory": records})
		return
	}

	if product := c.Query("product_id"); product != "" {
		id, err := strconv.ParseInt(product, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
			return
		}
		records, err := h.svc.ListInventoryByProduct(ctx, id)
		if err != nil {
			upstreamError(c, "Failed to load inventory", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"inventory": records})
		return
	}

	records, err := h.svc.ListInventory(ctx)
	if err != nil {
		upstreamError(c, "Failed to load inventory", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inventory": records})
}

func (h *Handler) getInventoryRecord(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	record, err := h.svc.GetInventoryRecord(c.Request.Context(), id)
	if err != nil {
		upstreamError(c, "Inventory record not found", err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler) createInventoryRecord(c *gin.Context) {
	h.createResource(c, h.svc.CreateInventoryRecord)
}

func (h *Handler) updateInventoryRecord(c *gin.Context) {
	h.updateResource(c, h.svc.UpdateInventoryRecord)
}

func (h *Handler) deleteInventoryRecord(c *gin.Context) {
	h.deleteResource(c, h.svc.DeleteInventoryRecord)
}

func (h *Handler) createPayment(c *gin.Context) {
	var payment models.Payment
	if err := c.ShouldBindJSON(&payment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := h.svc.CreatePayment(c.Request.Context(), &payment); err != nil {
		upstreamError(c, "Failed to create payment", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"created": true})
}

func (h *Handler) salesReport(c *gin.Context) {
	summary, err := h.svc.SalesReport(c.Request.Context())
	if err != nil {
		upstreamError(c, "Failed to load sales report", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) stockReport(c *gin.Context) {
	summary, err := h.svc.StockReport(c.Request.Context())
	if err != nil {
		upstreamError(c, "Failed to load stock report", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Shared plumbing for the map-payload CRUD passthroughs.

func (h *Handler) createResource(c *gin.Context, create func(ctx context.Context, fields map[string]any) error) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := create(c.Request.Context(), fields); err != nil {
		upstreamError(c, "Failed to create record", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"created": true})
}

func (h *Handler) updateResource(c *gin.Context, update func(ctx context.Context, id int64, fields map[string]any) error) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := update(c.Request.Context(), id, fields); err != nil {
		upstreamError(c, "Failed to update record", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func (h *Handler) deleteResource(c *gin.Context, del func(ctx context.Context, id int64) error) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := del(c.Request.Context(), id); err != nil {
		upstreamError(c, "Failed to delete record", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// pathID parses the :id route parameter; on failure it writes the error
// response and returns false.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

// upstreamError maps gateway failures onto this service's responses,
// surfacing the upstream status code when one is known.
func upstreamError(c *gin.Context, msg string, err error) {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		status := http.StatusBadGateway
		if apiErr.StatusCode == http.StatusNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": msg, "details": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg, "details": err.Error()})
}

// orderMutationError additionally maps the lifecycle guard errors to 409.
func orderMutationError(c *gin.Context, msg string, err error) {
	if errors.Is(err, service.ErrOrderFrozen) || errors.Is(err, service.ErrOrderNotConfirmed) {
		c.JSON(http.StatusConflict, gin.H{"error": msg, "details": err.Error()})
		return
	}
	upstreamError(c, msg, err)
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
