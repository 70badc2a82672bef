package ordersrs

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/momeni/dealerweb/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/dealerweb/pkg/core/model"
	"github.com/momeni/dealerweb/pkg/core/repo"
	"github.com/momeni/dealerweb/pkg/core/usecase/ordersuc"
	"github.com/shopspring/decimal"
)

type rawOrderCreateReq struct {
	VehicleID  string `json:"vehicleId" binding:"required,uuid4"`
	BuyerEmail string `json:"buyerEmail" binding:"required,email"`
	BuyerName  string `json:"buyerName" binding:"required"`
	Address    string `json:"address"`
	Notes      string `json:"notes"`
}

func (rs *resource) DserCreateOrderReq(c *gin.Context) *ordersuc.CreateOrderInput {
	req := &rawOrderCreateReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	vid, err := uuid.Parse(req.VehicleID)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "vehicleId", "Field vehicleId is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return &ordersuc.CreateOrderInput{
		VehicleID:  vid,
		BuyerEmail: req.BuyerEmail,
		BuyerName:  req.BuyerName,
		Address:    req.Address,
		Notes:      req.Notes,
	}
}

func (rs *resource) DserOrderID(c *gin.Context) (uuid.UUID, bool) {
	oid, err := uuid.Parse(c.Param("oid"))
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "oid", "Path param oid is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return uuid.Nil, false
	}
	return oid, true
}

type rawOrderUpdateReq struct {
	Status   string  `json:"status" binding:"required,oneof=pending paid shipped delivered cancelled"`
	Tracking *string `json:"tracking"`
}

type orderUpdateReq struct {
	Status   model.OrderStatus
	Tracking *string
}

func (rs *resource) DserUpdateOrderReq(c *gin.Context) (uuid.UUID, *orderUpdateReq) {
	oid, ok := rs.DserOrderID(c)
	if !ok {
		return uuid.Nil, nil
	}
	req := &rawOrderUpdateReq{}
	if ok := serdser.Bind(c, req); !ok {
		return uuid.Nil, nil
	}
	status, err := model.ParseOrderStatus(req.Status)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "status", err.Error())
		c.JSON(http.StatusBadRequest, errs)
		return uuid.Nil, nil
	}
	return oid, &orderUpdateReq{Status: status, Tracking: req.Tracking}
}

type rawOrderListReq struct {
	Status string `form:"status" binding:"omitempty,oneof=pending paid shipped delivered cancelled"`
	Search string `form:"q"`
	Limit  int    `form:"limit" binding:"omitempty,gte=1,lte=200"`
	Offset int    `form:"offset" binding:"omitempty,gte=0"`
}

func (rs *resource) DserOrderListReq(c *gin.Context) *repo.OrderFilter {
	req := &rawOrderListReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	val := &repo.OrderFilter{
		Search: req.Search,
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	if req.Status != "" {
		status, err := model.ParseOrderStatus(req.Status)
		if err != nil {
			var errs map[string][]string
			serdser.AddErr(&errs, "status", err.Error())
			c.JSON(http.StatusBadRequest, errs)
			return nil
		}
		val.Status = status
	}
	return val
}

// OrderResp publishes one order as reported to the frontend, carrying
// the vehicle model, price, and currency snapshots taken at purchase
// time rather than the current listing values.
type OrderResp struct {
	ID           uuid.UUID       `json:"id"`
	Number       string          `json:"number"`
	VehicleID    uuid.UUID       `json:"vehicleId"`
	VehicleModel string          `json:"vehicleModel"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency,omitempty"`
	BuyerEmail   string          `json:"buyerEmail"`
	BuyerName    string          `json:"buyerName"`
	Address      string          `json:"address,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	Status       string          `json:"status"`
	Tracking     string          `json:"tracking,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func SerOrder(o *model.Order) *OrderResp {
	return &OrderResp{
		ID:           o.OID,
		Number:       o.Number,
		VehicleID:    o.VehicleID,
		VehicleModel: o.VehicleModel,
		Price:        o.Price,
		Currency:     o.Currency,
		BuyerEmail:   o.BuyerEmail,
		BuyerName:    o.BuyerName,
		Address:      o.Address,
		Notes:        o.Notes,
		Status:       o.Status.String(),
		Tracking:     o.Tracking,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

// OrdersPageResp publishes one page of orders with the total count.
type OrdersPageResp struct {
	Orders []OrderResp `json:"orders"`
	Total  int64       `json:"total"`
}

func SerOrdersPage(os []model.Order, total int64) *OrdersPageResp {
	resp := &OrdersPageResp{
		Orders: make([]OrderResp, 0, len(os)),
		Total:  total,
	}
	for i := range os {
		resp.Orders = append(resp.Orders, *SerOrder(&os[i]))
	}
	return resp
}
