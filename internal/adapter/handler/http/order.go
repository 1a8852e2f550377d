package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mirstone/ordermart/internal/core/domain"
	"github.com/mirstone/ordermart/internal/core/port"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Handler
	service port.Service
}

func NewOrderHandler(service port.Service, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type AddressReq struct {
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
}

func (r AddressReq) toDomain() (domain.Address, error) {
	return domain.NewAddress(r.Street, r.City, r.State, r.PostalCode, r.Country)
}

type OrderLineReq struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type CreateOrderReq struct {
	CustomerID      string         `json:"customer_id" binding:"required"`
	Items           []OrderLineReq `json:"items"`
	ShippingAddress *AddressReq    `json:"shipping_address"`
}

type AddressResp struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type OrderItemResp struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
}

type OrderResp struct {
	ID              string          `json:"id"`
	CustomerID      string          `json:"customer_id"`
	Status          string          `json:"status"`
	Items           []OrderItemResp `json:"items"`
	Total           string          `json:"total"`
	Currency        string          `json:"currency,omitempty"`
	ShippingAddress *AddressResp    `json:"shipping_address,omitempty"`
	BillingAddress  *AddressResp    `json:"billing_address,omitempty"`
	Version         int64           `json:"version"`
	CreatedAt       time.Time       `json:"created_at"`
	ModifiedAt      time.Time       `json:"modified_at"`
}

func newOrderResp(order *domain.Order) (OrderResp, error) {
	total, err := order.Total()
	if err != nil {
		return OrderResp{}, err
	}

	items := make([]OrderItemResp, 0, len(order.Items()))
	for _, item := range order.Items() {
		items = append(items, OrderItemResp{
			ProductID:   item.ProductID().String(),
			ProductName: item.ProductName(),
			UnitPrice:   item.UnitPrice().Amount().String(),
			Quantity:    item.Quantity(),
		})
	}

	resp := OrderResp{
		ID:         order.ID().String(),
		CustomerID: order.CustomerID().String(),
		Status:     string(order.Status()),
		Items:      items,
		Total:      total.Amount().String(),
		Currency:   total.Currency(),
		Version:    order.Version(),
		CreatedAt:  order.CreatedAt(),
		ModifiedAt: order.ModifiedAt(),
	}
	if address, ok := order.ShippingAddress(); ok {
		resp.ShippingAddress = newAddressResp(address)
	}
	if address, ok := order.BillingAddress(); ok {
		resp.BillingAddress = newAddressResp(address)
	}
	return resp, nil
}

func newAddressResp(address domain.Address) *AddressResp {
	return &AddressResp{
		Street:     address.Street,
		City:       address.City,
		State:      address.State,
		PostalCode: address.PostalCode,
		Country:    address.Country,
	}
}

func (oh *OrderHandler) CreateOrder(ctx *gin.Context) {
	var req CreateOrderReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		oh.handleBindingError(ctx, err)
		return
	}

	customerID, err := domain.NewCustomerID(req.CustomerID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	lines := make([]port.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := domain.NewProductID(item.ProductID)
		if err != nil {
			oh.handleError(ctx, err)
			return
		}
		lines = append(lines, port.OrderLine{ProductID: productID, Quantity: item.Quantity})
	}

	var shipping *domain.Address
	if req.ShippingAddress != nil {
		address, err := req.ShippingAddress.toDomain()
		if err != nil {
			oh.handleError(ctx, err)
			return
		}
		shipping = &address
	}

	order, err := oh.service.CreateOrder(ctx, customerID, lines, shipping)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	oh.respondOrder(ctx, order, http.StatusCreated)
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	order, err := oh.service.GetOrder(ctx, domain.OrderID(ctx.Param("id")))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	oh.respondOrder(ctx, order, http.StatusOK)
}

type OrderSummaryResp struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Status     string    `json:"status"`
	Total      string    `json:"total"`
	Currency   string    `json:"currency,omitempty"`
	LineCount  int       `json:"line_count"`
	ModifiedAt time.Time `json:"modified_at"`
}

func (oh *OrderHandler) ListOrders(ctx *gin.Context) {
	var (
		list []domain.OrderSummary
		err  error
	)

	switch {
	case ctx.Query("customer") != "":
		customerID, cerr := domain.NewCustomerID(ctx.Query("customer"))
		if cerr != nil {
			oh.handleError(ctx, cerr)
			return
		}
		list, err = oh.service.ListOrdersByCustomer(ctx, customerID)
	case ctx.Query("status") != "":
		list, err = oh.service.ListOrdersByStatus(ctx, domain.OrderStatus(ctx.Query("status")))
	default:
		oh.handleValidationError(ctx,
			fmt.Errorf("%w: query parameter customer or status is required", domain.ErrBadRequest))
		return
	}
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]OrderSummaryResp, 0, len(list))
	for _, summary := range list {
		result = append(result, OrderSummaryResp{
			ID:         summary.ID.String(),
			CustomerID: summary.CustomerID.String(),
			Status:     string(summary.Status),
			Total:      summary.Total.Amount().String(),
			Currency:   summary.Total.Currency(),
			LineCount:  summary.LineCount,
			ModifiedAt: summary.ModifiedAt,
		})
	}
	oh.handleSuccess(ctx, result)
}

type AddItemReq struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

func (oh *OrderHandler) AddItem(ctx *gin.Context) {
	var req AddItemReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		oh.handleBindingError(ctx, err)
		return
	}
	productID, err := domain.NewProductID(req.ProductID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	order, err := oh.service.AddItem(ctx, domain.OrderID(ctx.Param("id")), productID, req.Quantity)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	oh.respondOrder(ctx, order, http.StatusOK)
}

func (oh *OrderHandler) RemoveItem(ctx *gin.Context) {
	order, err := oh.service.RemoveItem(ctx,
		domain.OrderID(ctx.Param("id")), domain.ProductID(ctx.Param("productId")))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	oh.respondOrder(ctx, order, http.StatusOK)
}

type UpdateQuantityReq struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (oh *OrderHandler) UpdateItemQuantity(ctx *gin.Context) {
	var req UpdateQuantityReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		oh.handleBindingError(ctx, err)
		return
	}

	order, err := oh.service.UpdateItemQuantity(ctx,
		domain.OrderID(ctx.Param("id")), domain.ProductID(ctx.Param("productId")), req.Quantity)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	oh.respondOrder(ctx, order, http.StatusOK)
}

func (oh *OrderHandler) SetShippingAddress(ctx *gin.Context) {
	oh.setAddress(ctx, oh.service.SetShippingAddress)
}

func (oh *OrderHandler) SetBillingAddress(ctx *gin.Context) {
	oh.setAddress(ctx, oh.service.SetBillingAddress)
}

func (oh *OrderHandler) setAddress(ctx *gin.Context,
	set func(ctx context.Context, orderID domain.OrderID, address domain.Address) (*domain.Order, error)) {
	var req AddressReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		oh.handleBindingError(ctx, err)
		return
	}
	address, err := req.toDomain()
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	order, err := set(ctx, domain.OrderID(ctx.Param("id")), address)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	oh.respondOrder(ctx, order, http.StatusOK)
}

func (oh *OrderHandler) PlaceOrder(ctx *gin.Context) {
	oh.lifecycle(ctx, oh.service.PlaceOrder)
}

func (oh *OrderHandler) ConfirmOrder(ctx *gin.Context) {
	oh.lifecycle(ctx, oh.service.ConfirmOrder)
}

func (oh *OrderHandler) PrepareOrder(ctx *gin.Context) {
	oh.lifecycle(ctx, oh.service.StartPreparing)
}

type ShipOrderReq struct {
	TrackingNumber string `json:"tracking_number" binding:"required"`
	Carrier        string `json:"carrier" binding:"required"`
}

func (oh *OrderHandler) ShipOrder(ctx *gin.Context) {
	var req ShipOrderReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		oh.handleBindingError(ctx, err)
		return
	}

	order, err := oh.service.ShipOrder(ctx, domain.OrderID(ctx.Param("id")), req.TrackingNumber, req.Carrier)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	oh.respondOrder(ctx, order, http.StatusOK)
}

func (oh *OrderHandler) DeliverOrder(ctx *gin.Context) {
	oh.lifecycle(ctx, oh.service.DeliverOrder)
}

type CancelOrderReq struct {
	Reason string `json:"reason"`
}

func (oh *OrderHandler) CancelOrder(ctx *gin.Context) {
	var req CancelOrderReq
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			oh.handleBindingError(ctx, err)
			return
		}
	}

	order, err := oh.service.CancelOrder(ctx, domain.OrderID(ctx.Param("id")), req.Reason)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	oh.respondOrder(ctx, order, http.StatusOK)
}

func (oh *OrderHandler) ReturnOrder(ctx *gin.Context) {
	oh.lifecycle(ctx, oh.service.ReturnOrder)
}

func (oh *OrderHandler) lifecycle(ctx *gin.Context,
	op func(ctx context.Context, orderID domain.OrderID) (*domain.Order, error)) {
	order, err := op(ctx, domain.OrderID(ctx.Param("id")))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	oh.respondOrder(ctx, order, http.StatusOK)
}

func (oh *OrderHandler) respondOrder(ctx *gin.Context, order *domain.Order, status int) {
	resp, err := newOrderResp(order)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}
	oh.handleSuccessWithStatus(ctx, resp, status)
}
