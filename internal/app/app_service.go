package app

import (
	"context"
	"math"
	"strings"
	"time"

	"warehouse-manager/internal/ai"
	"warehouse-manager/internal/core"
)

type appService struct {
	users      core.UserService
	warehouses core.WarehouseService
	flows      core.FlowService
	support    core.SupportService
	advisor    ai.AdvisorService
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	users core.UserService,
	warehouses core.WarehouseService,
	flows core.FlowService,
	support core.SupportService,
	advisor ai.AdvisorService,
) ApplicationService {
	return &appService{
		users:      users,
		warehouses: warehouses,
		flows:      flows,
		support:    support,
		advisor:    advisor,
	}
}

// ── auth ──────────────────────────────────────────────────────────────────────

func (s *appService) Register(ctx context.Context, req RegisterRequest) (*UserResult, error) {
	email := strings.TrimSpace(req.Email)
	name := strings.TrimSpace(req.Name)
	if email == "" || req.Password == "" || name == "" {
		return nil, core.Validationf("Email, password, and name are required")
	}

	u, err := s.users.Create(ctx, email, req.Password, name)
	if err != nil {
		return nil, err
	}
	return &UserResult{User: userView(u)}, nil
}

func (s *appService) Authenticate(ctx context.Context, email, password string) (*UserResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, core.Validationf("Email and password are required")
	}
	u, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return &UserResult{User: userView(u)}, nil
}

func (s *appService) GetUser(ctx context.Context, userID string) (*UserResult, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserResult{User: userView(u)}, nil
}

// ── warehouses ────────────────────────────────────────────────────────────────

func (s *appService) ListWarehouses(ctx context.Context, ownerID string) (*WarehouseListResult, error) {
	warehouses, err := s.warehouses.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	views := make([]WarehouseView, len(warehouses))
	for i := range warehouses {
		views[i] = warehouseView(&warehouses[i], false)
	}
	return &WarehouseListResult{Warehouses: views}, nil
}

func (s *appService) GetWarehouse(ctx context.Context, id, ownerID string) (*WarehouseResult, error) {
	w, err := s.warehouses.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	return &WarehouseResult{Warehouse: warehouseView(w, true)}, nil
}

func (s *appService) CreateWarehouse(ctx context.Context, ownerID string, req CreateWarehouseRequest) (*WarehouseResult, error) {
	name := strings.TrimSpace(req.Name)
	address := strings.TrimSpace(req.Address)
	if name == "" || address == "" || req.Coordinates == nil {
		return nil, core.Validationf("Name, address, and coordinates are required")
	}
	coords, err := parseCoordinates(req.Coordinates)
	if err != nil {
		return nil, err
	}

	w, err := s.warehouses.Create(ctx, ownerID, name, strings.TrimSpace(req.Description), address, *coords)
	if err != nil {
		return nil, err
	}
	return &WarehouseResult{Warehouse: warehouseView(w, true)}, nil
}

func (s *appService) UpdateWarehouse(ctx context.Context, id, ownerID string, req UpdateWarehouseRequest) (*WarehouseResult, error) {
	upd := core.WarehouseUpdate{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
	}
	if req.Coordinates != nil {
		coords, err := parseCoordinates(req.Coordinates)
		if err != nil {
			return nil, err
		}
		upd.Coordinates = coords
	}

	w, err := s.warehouses.Update(ctx, id, ownerID, upd)
	if err != nil {
		return nil, err
	}
	return &WarehouseResult{Warehouse: warehouseView(w, true)}, nil
}

func (s *appService) DeleteWarehouse(ctx context.Context, id, ownerID string) error {
	return s.warehouses.Delete(ctx, id, ownerID)
}

// ── inventory ─────────────────────────────────────────────────────────────────

func (s *appService) ReplaceInventory(ctx context.Context, id, ownerID string, raw []RawInventoryItem) (*WarehouseResult, error) {
	items, err := core.ValidateInventoryItems(raw)
	if err != nil {
		return nil, err
	}
	w, err := s.warehouses.ReplaceInventory(ctx, id, ownerID, items)
	if err != nil {
		return nil, err
	}
	return &WarehouseResult{Warehouse: warehouseView(w, true)}, nil
}

func (s *appService) ImportInventoryCSV(ctx context.Context, id, ownerID string, content []byte) (*WarehouseResult, error) {
	w, err := s.warehouses.ImportCSV(ctx, id, ownerID, content)
	if err != nil {
		return nil, err
	}
	return &WarehouseResult{Warehouse: warehouseView(w, true)}, nil
}

// ── flows ─────────────────────────────────────────────────────────────────────

func (s *appService) RecordFlow(ctx context.Context, id, ownerID string, req RecordFlowRequest) (*FlowResult, error) {
	op, items, err := core.ValidateFlowRequest(req.Operation, req.Items)
	if err != nil {
		return nil, err
	}

	entry, w, err := s.flows.Record(ctx, id, ownerID, op, items, req.PerformedBy)
	if err != nil {
		return nil, err
	}
	return &FlowResult{
		Flow:      flowView(entry),
		Warehouse: warehouseView(w, true),
	}, nil
}

func (s *appService) ListFlows(ctx context.Context, id, ownerID string, page, limit int) (*FlowListResult, error) {
	p, err := s.flows.List(ctx, id, ownerID, page, limit)
	if err != nil {
		return nil, err
	}
	views := make([]FlowView, len(p.Flows))
	for i := range p.Flows {
		views[i] = flowView(&p.Flows[i])
	}
	return &FlowListResult{Flows: views, Total: p.Total, Page: p.Page, Limit: p.Limit}, nil
}

// ── analytics and advice ──────────────────────────────────────────────────────

func (s *appService) GetAnalytics(ctx context.Context, id, ownerID, period string, periods int) (*AnalyticsResult, error) {
	analytics, _, err := s.computeAnalytics(ctx, id, ownerID, core.ParsePeriod(period), core.ClampPeriods(periods), time.Now())
	if err != nil {
		return nil, err
	}
	return &AnalyticsResult{Analytics: *analytics}, nil
}

func (s *appService) computeAnalytics(ctx context.Context, id, ownerID string, period core.Period, periods int, now time.Time) (*core.AnalyticsResult, *core.Warehouse, error) {
	w, err := s.warehouses.Get(ctx, id, ownerID)
	if err != nil {
		return nil, nil, err
	}

	flows, err := s.flows.Since(ctx, id, core.WindowStart(period, periods, now))
	if err != nil {
		return nil, nil, err
	}

	result := core.Aggregate(w.Inventory, flows, period, periods, now)
	return &result, w, nil
}

func (s *appService) GetAdvice(ctx context.Context, id, ownerID string) (*AdviceResult, error) {
	now := time.Now()
	analytics, w, err := s.computeAnalytics(ctx, id, ownerID, core.PeriodMonth, core.DefaultPeriods, now)
	if err != nil {
		return nil, err
	}

	advice, err := s.advisor.Advise(ctx, ai.AdviceContext{
		Warehouse:       ai.AdviceWarehouse{Name: w.Name, Address: w.Address},
		CurrentDate:     now.Format("2006-01-02"),
		Season:          int(now.Month()),
		Summary:         analytics.Summary,
		FlowTimeSeries:  analytics.FlowTimeSeries,
		InventoryByType: analytics.InventoryByType,
		FlowByType:      analytics.FlowByType,
	})
	if err != nil {
		return nil, err
	}
	return &AdviceResult{Advice: advice, GeneratedAt: now}, nil
}

// ── support ───────────────────────────────────────────────────────────────────

func (s *appService) CreateSupportComment(ctx context.Context, userID, message string) (*CommentResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, core.Validationf("Message is required")
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	c, err := s.support.Create(ctx, u.ID, u.Name, u.Email, message)
	if err != nil {
		return nil, err
	}
	return &CommentResult{Comment: commentView(c)}, nil
}

func (s *appService) ListSupportComments(ctx context.Context) (*CommentListResult, error) {
	comments, err := s.support.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]CommentView, len(comments))
	for i := range comments {
		views[i] = commentView(&comments[i])
	}
	return &CommentListResult{Comments: views}, nil
}

func (s *appService) DeleteSupportComment(ctx context.Context, id string) error {
	return s.support.Delete(ctx, id)
}

// ── view builders ─────────────────────────────────────────────────────────────

func userView(u *core.User) UserView {
	return UserView{ID: u.ID, Email: u.Email, Name: u.Name, IsAdmin: u.IsAdmin}
}

func warehouseView(w *core.Warehouse, withInventory bool) WarehouseView {
	totalItems, typeCount := core.InventoryTotals(w.Inventory)
	v := WarehouseView{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Address:     w.Address,
		Coordinates: [2]float64{w.Coordinates.Lng, w.Coordinates.Lat},
		TotalItems:  totalItems,
		TypeCount:   typeCount,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
	if withInventory {
		v.Inventory = w.Inventory
		if v.Inventory == nil {
			v.Inventory = []core.InventoryItem{}
		}
	}
	return v
}

func flowView(f *core.FlowEntry) FlowView {
	return FlowView{
		ID:          f.ID,
		WarehouseID: f.WarehouseID,
		Operation:   f.Operation,
		Items:       f.Items,
		PerformedBy: f.PerformedBy,
		CreatedAt:   f.CreatedAt,
	}
}

func commentView(c *core.SupportComment) CommentView {
	return CommentView{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Email:     c.Email,
		Message:   c.Message,
		CreatedAt: c.CreatedAt,
	}
}

// parseCoordinates validates a raw JSON coordinates value as a [lng, lat]
// pair of finite numbers.
func parseCoordinates(v any) (*core.Coordinates, error) {
	arr, ok := v.([]any)
	if !ok || len(arr) != 2 {
		return nil, core.Validationf("Coordinates must be an array of [lng, lat]")
	}
	nums := make([]float64, 2)
	for i, el := range arr {
		n, ok := el.(float64)
		if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, core.Validationf("Coordinates must be numbers")
		}
		nums[i] = n
	}
	return &core.Coordinates{Lng: nums[0], Lat: nums[1]}, nil
}
