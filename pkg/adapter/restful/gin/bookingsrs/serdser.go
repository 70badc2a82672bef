package bookingsrs

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/momeni/dealerweb/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/dealerweb/pkg/core/model"
	"github.com/momeni/dealerweb/pkg/core/repo"
	"github.com/momeni/dealerweb/pkg/core/usecase/bookingsuc"
)

type rawBookingCreateReq struct {
	VehicleID     string `json:"vehicleId" binding:"required,uuid4"`
	CustomerEmail string `json:"customerEmail" binding:"required,email"`
	CustomerName  string `json:"customerName" binding:"required"`
	PreferredDate string `json:"preferredDate" binding:"required"`
	Notes         string `json:"notes"`
}

func (rs *resource) DserCreateBookingReq(c *gin.Context) *bookingsuc.CreateBookingInput {
	req := &rawBookingCreateReq{}
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
	return &bookingsuc.CreateBookingInput{
		VehicleID:     vid,
		CustomerEmail: req.CustomerEmail,
		CustomerName:  req.CustomerName,
		PreferredDate: req.PreferredDate,
		Notes:         req.Notes,
	}
}

type rawBookingEmailReq struct {
	Email string `form:"email" binding:"required,email"`
}

func (rs *resource) DserBookingEmail(c *gin.Context) (string, bool) {
	req := &rawBookingEmailReq{}
	if ok := serdser.Bind(c, req); !ok {
		return "", false
	}
	return req.Email, true
}

func (rs *resource) DserBookingID(c *gin.Context) (uuid.UUID, bool) {
	bid, err := uuid.Parse(c.Param("bid"))
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "bid", "Path param bid is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return uuid.Nil, false
	}
	return bid, true
}

type rawBookingUpdateReq struct {
	Status string  `json:"status" binding:"required,oneof=new confirmed completed cancelled"`
	Notes  *string `json:"notes"`
}

type bookingUpdateReq struct {
	Status model.BookingStatus
	Notes  *string
}

func (rs *resource) DserUpdateBookingReq(c *gin.Context) (uuid.UUID, *bookingUpdateReq) {
	bid, ok := rs.DserBookingID(c)
	if !ok {
		return uuid.Nil, nil
	}
	req := &rawBookingUpdateReq{}
	if ok := serdser.Bind(c, req); !ok {
		return uuid.Nil, nil
	}
	status, err := model.ParseBookingStatus(req.Status)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "status", err.Error())
		c.JSON(http.StatusBadRequest, errs)
		return uuid.Nil, nil
	}
	return bid, &bookingUpdateReq{Status: status, Notes: req.Notes}
}

type rawBookingListReq struct {
	Status string `form:"status" binding:"omitempty,oneof=new confirmed completed cancelled"`
	Search string `form:"q"`
	Limit  int    `form:"limit" binding:"omitempty,gte=1,lte=200"`
	Offset int    `form:"offset" binding:"omitempty,gte=0"`
}

func (rs *resource) DserBookingListReq(c *gin.Context) *repo.BookingFilter {
	req := &rawBookingListReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	val := &repo.BookingFilter{
		Search: req.Search,
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	if req.Status != "" {
		status, err := model.ParseBookingStatus(req.Status)
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

// BookingResp publishes one test drive booking as reported to the
// frontend. The holdReleased flag tells the back-office whether the
// reserved unit has already been returned to the inventory.
type BookingResp struct {
	ID            uuid.UUID `json:"id"`
	Number        string    `json:"number"`
	VehicleID     uuid.UUID `json:"vehicleId"`
	VehicleModel  string    `json:"vehicleModel"`
	CustomerEmail string    `json:"customerEmail"`
	CustomerName  string    `json:"customerName"`
	PreferredDate string    `json:"preferredDate"`
	Notes         string    `json:"notes,omitempty"`
	Status        string    `json:"status"`
	HoldReleased  bool      `json:"holdReleased"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func SerBooking(b *model.Booking) *BookingResp {
	return &BookingResp{
		ID:            b.BID,
		Number:        b.Number,
		VehicleID:     b.VehicleID,
		VehicleModel:  b.VehicleModel,
		CustomerEmail: b.CustomerEmail,
		CustomerName:  b.CustomerName,
		PreferredDate: b.PreferredDate,
		Notes:         b.Notes,
		Status:        b.Status.String(),
		HoldReleased:  b.HoldReleased,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func SerBookings(bs []model.Booking) []BookingResp {
	resp := make([]BookingResp, 0, len(bs))
	for i := range bs {
		resp = append(resp, *SerBooking(&bs[i]))
	}
	return resp
}

// BookingsPageResp publishes one page of bookings with the total
// count.
type BookingsPageResp struct {
	Bookings []BookingResp `json:"bookings"`
	Total    int64         `json:"total"`
}

func SerBookingsPage(bs []model.Booking, total int64) *BookingsPageResp {
	return &BookingsPageResp{
		Bookings: SerBookings(bs),
		Total:    total,
	}
}
