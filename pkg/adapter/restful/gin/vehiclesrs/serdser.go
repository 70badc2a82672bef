package vehiclesrs

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/momeni/dealerweb/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/dealerweb/pkg/core/model"
	"github.com/momeni/dealerweb/pkg/core/repo"
	"github.com/momeni/dealerweb/pkg/core/usecase/vehiclesuc"
	"github.com/shopspring/decimal"
)

type rawVehicleQueryReq struct {
	Status     string   `form:"status" binding:"omitempty,oneof=active inactive"`
	Slug       string   `form:"slug"`
	Category   string   `form:"category"`
	Mode       string   `form:"mode" binding:"omitempty,oneof=buy rent both"`
	Search     string   `form:"q"`
	PriceMin   string   `form:"priceMin" binding:"omitempty,numeric"`
	PriceMax   string   `form:"priceMax" binding:"omitempty,numeric"`
	YearMin    *int     `form:"yearMin" binding:"omitempty,gte=1900"`
	YearMax    *int     `form:"yearMax" binding:"omitempty,gte=1900"`
	Conditions []string `form:"condition"`
	Location   string   `form:"location"`
	InStock    bool     `form:"inStock"`
	Sort       string   `form:"sort" binding:"omitempty,oneof=recent price-asc price-desc"`
	Limit      int      `form:"limit" binding:"omitempty,gte=1,lte=200"`
	Offset     int      `form:"offset" binding:"omitempty,gte=0"`
}

func (rs *resource) DserVehicleQueryReq(c *gin.Context) *model.VehicleQuery {
	req := &rawVehicleQueryReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	val := &model.VehicleQuery{
		Slug:        req.Slug,
		Category:    req.Category,
		Search:      req.Search,
		YearMin:     req.YearMin,
		YearMax:     req.YearMax,
		Conditions:  req.Conditions,
		Location:    req.Location,
		InStockOnly: req.InStock,
		Sort:        model.ParseVehicleSort(req.Sort),
		Limit:       req.Limit,
		Offset:      req.Offset,
	}
	var errs map[string][]string
	defer func() {
		if errs != nil {
			c.JSON(http.StatusBadRequest, errs)
		}
	}()
	var err error
	if req.Status != "" {
		val.Status, err = model.ParseVehicleStatus(req.Status)
		serdser.Assert(&errs, err == nil, "status", req.Status)
	}
	if req.Mode != "" {
		val.Mode, err = model.ParseListingMode(req.Mode)
		serdser.Assert(&errs, err == nil, "mode", req.Mode)
	}
	if req.PriceMin != "" {
		d, err := decimal.NewFromString(req.PriceMin)
		if serdser.Assert(&errs, err == nil, "priceMin", req.PriceMin) {
			val.PriceMin = &d
		}
	}
	if req.PriceMax != "" {
		d, err := decimal.NewFromString(req.PriceMax)
		if serdser.Assert(&errs, err == nil, "priceMax", req.PriceMax) {
			val.PriceMax = &d
		}
	}
	if errs == nil {
		return val
	}
	return nil
}

type rawVehicleCreateReq struct {
	Model     string   `json:"model" binding:"required"`
	Price     string   `json:"price" binding:"required"`
	Currency  string   `json:"currency" binding:"omitempty,iso4217"`
	Mode      string   `json:"mode" binding:"required,oneof=buy rent both"`
	Category  string   `json:"category"`
	Trim      string   `json:"trim"`
	Year      int      `json:"year" binding:"omitempty,gte=1900"`
	Location  string   `json:"location"`
	Condition string   `json:"condition"`
	Rating    float64  `json:"rating" binding:"omitempty,gte=0,lte=5"`
	Reviews   int      `json:"reviews" binding:"omitempty,gte=0"`
	Colors    []string `json:"colors"`
	Images    []string `json:"images"`
	Details   string   `json:"details"`
	Units     int      `json:"units" binding:"omitempty,gte=0"`
	Status    string   `json:"status" binding:"omitempty,oneof=active inactive"`
}

func (rs *resource) DserCreateVehicleReq(c *gin.Context) *vehiclesuc.CreateVehicleInput {
	req := &rawVehicleCreateReq{}
	if ok := serdser.Bind(c, req); !ok {
		return nil
	}
	val := &vehiclesuc.CreateVehicleInput{
		Model:     req.Model,
		Currency:  req.Currency,
		Category:  req.Category,
		Trim:      req.Trim,
		Year:      req.Year,
		Location:  req.Location,
		Condition: req.Condition,
		Rating:    req.Rating,
		Reviews:   req.Reviews,
		Colors:    req.Colors,
		Images:    req.Images,
		Details:   req.Details,
		Units:     req.Units,
	}
	var errs map[string][]string
	defer func() {
		if errs != nil {
			c.JSON(http.StatusBadRequest, errs)
		}
	}()
	var err error
	val.Price, err = decimal.NewFromString(req.Price)
	serdser.Assert(&errs, err == nil, "price", req.Price)
	val.Mode, err = model.ParseListingMode(req.Mode)
	serdser.Assert(&errs, err == nil, "mode", req.Mode)
	if req.Status != "" {
		val.Status, err = model.ParseVehicleStatus(req.Status)
		serdser.Assert(&errs, err == nil, "status", req.Status)
	}
	if errs == nil {
		return val
	}
	return nil
}

type rawVehiclePatchReq struct {
	Model     *string  `json:"model" binding:"omitempty,min=1"`
	Price     *string  `json:"price" binding:"omitempty,numeric"`
	Currency  *string  `json:"currency" binding:"omitempty,iso4217"`
	Mode      *string  `json:"mode" binding:"omitempty,oneof=buy rent both"`
	Category  *string  `json:"category"`
	Trim      *string  `json:"trim"`
	Year      *int     `json:"year" binding:"omitempty,gte=1900"`
	Location  *string  `json:"location"`
	Condition *string  `json:"condition"`
	Rating    *float64 `json:"rating" binding:"omitempty,gte=0,lte=5"`
	Reviews   *int     `json:"reviews" binding:"omitempty,gte=0"`
	Colors    []string `json:"colors"`
	Images    []string `json:"images"`
	Details   *string  `json:"details"`
	Units     *int     `json:"units" binding:"omitempty,gte=0"`
	Status    *string  `json:"status" binding:"omitempty,oneof=active inactive"`
}

func (rs *resource) DserUpdateVehicleReq(c *gin.Context) (uuid.UUID, *repo.VehiclePatch) {
	var errs map[string][]string
	vid, err := uuid.Parse(c.Param("vid"))
	if err != nil {
		serdser.AddErr(&errs, "vid", "Path param vid is not UUID.")
		c.JSON(http.StatusBadRequest, errs)
		return uuid.Nil, nil
	}
	req := &rawVehiclePatchReq{}
	if ok := serdser.Bind(c, req); !ok {
		return uuid.Nil, nil
	}
	val := &repo.VehiclePatch{
		Model:     req.Model,
		Currency:  req.Currency,
		Category:  req.Category,
		Trim:      req.Trim,
		Year:      req.Year,
		Location:  req.Location,
		Condition: req.Condition,
		Rating:    req.Rating,
		Reviews:   req.Reviews,
		Colors:    req.Colors,
		Images:    req.Images,
		Details:   req.Details,
		Units:     req.Units,
	}
	defer func() {
		if errs != nil {
			c.JSON(http.StatusBadRequest, errs)
		}
	}()
	if req.Price != nil {
		d, err := decimal.NewFromString(*req.Price)
		if serdser.Assert(&errs, err == nil, "price", *req.Price) {
			val.Price = &d
		}
	}
	if req.Mode != nil {
		m, err := model.ParseListingMode(*req.Mode)
		if serdser.Assert(&errs, err == nil, "mode", *req.Mode) {
			val.Mode = &m
		}
	}
	if req.Status != nil {
		s, err := model.ParseVehicleStatus(*req.Status)
		if serdser.Assert(&errs, err == nil, "status", *req.Status) {
			val.Status = &s
		}
	}
	if errs == nil {
		return vid, val
	}
	return uuid.Nil, nil
}

// VehicleResp publishes one vehicle listing as reported to the
// frontend. The units count and the derived inStock flag are included
// so the storefront can disable the purchase and test drive actions
// for exhausted listings without a second request.
type VehicleResp struct {
	ID        uuid.UUID       `json:"id"`
	Model     string          `json:"model"`
	Slug      string          `json:"slug"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency,omitempty"`
	Mode      string          `json:"mode"`
	Category  string          `json:"category"`
	Trim      string          `json:"trim,omitempty"`
	Year      int             `json:"year"`
	Location  string          `json:"location,omitempty"`
	Condition string          `json:"condition,omitempty"`
	Rating    float64         `json:"rating"`
	Reviews   int             `json:"reviews"`
	Colors    []string        `json:"colors,omitempty"`
	Images    []string        `json:"images,omitempty"`
	Details   string          `json:"details,omitempty"`
	Units     int             `json:"units"`
	InStock   bool            `json:"inStock"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func SerVehicle(v *model.Vehicle) *VehicleResp {
	return &VehicleResp{
		ID:        v.VID,
		Model:     v.Model,
		Slug:      v.Slug,
		Price:     v.Price,
		Currency:  v.Currency,
		Mode:      v.Mode.String(),
		Category:  v.Category,
		Trim:      v.Trim,
		Year:      v.Year,
		Location:  v.Location,
		Condition: v.Condition,
		Rating:    v.Rating,
		Reviews:   v.Reviews,
		Colors:    v.Colors,
		Images:    v.Images,
		Details:   v.Details,
		Units:     v.Units,
		InStock:   v.Units > 0,
		Status:    v.Status.String(),
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

// VehiclesPageResp publishes one page of the catalog along with the
// total number of matches, so the frontend can render pagination.
type VehiclesPageResp struct {
	Vehicles []VehicleResp `json:"vehicles"`
	Total    int64         `json:"total"`
}

func SerVehiclesPage(vs []model.Vehicle, total int64) *VehiclesPageResp {
	resp := &VehiclesPageResp{
		Vehicles: make([]VehicleResp, 0, len(vs)),
		Total:    total,
	}
	for i := range vs {
		resp.Vehicles = append(resp.Vehicles, *SerVehicle(&vs[i]))
	}
	return resp
}
