package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/teashop/internal/render"
	"github.com/mesh-intelligence/teashop/internal/views"
	"github.com/mesh-intelligence/teashop/pkg/datatable"
	"github.com/mesh-intelligence/teashop/pkg/types"
)

var errBadRequest = errors.New("bad request")

// pageParams reads page and page_size. A missing page is 1 and an
// out-of-range page is clamped when rendering; page_size must be positive.
func (s *Server) pageParams(r *http.Request) (int, int, error) {
	q := r.URL.Query()
	page := 1
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, fmt.Errorf("page %q is not a number: %w", v, errBadRequest)
		}
		page = n
	}
	size := s.pageSize
	if v := q.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return 0, 0, fmt.Errorf("page_size must be a positive integer: %w", errBadRequest)
		}
		size = n
	}
	return page, size, nil
}

// serveListing authorizes, loads and renders one page of a listing as JSON,
// or as CSV when format=csv.
func serveListing[T any](s *Server, w http.ResponseWriter, r *http.Request, table string,
	columns []datatable.Column[T], opts datatable.Options[T],
	load func() (string, []T, error)) {
	if err := s.session.Authorize(table); err != nil {
		s.writeError(w, err)
		return
	}
	page, size, err := s.pageParams(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	key, records, err := load()
	if err != nil {
		s.writeError(w, err)
		return
	}

	t := views.NewListing(columns, opts, size, nil).RenderPage(key, records, page)

	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", contentTypeCSV)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", table))
		if err := render.CSV(w, t); err != nil {
			s.logger.Warn("error writing csv", zap.Error(err))
		}
		return
	}
	s.writeJSON(w, http.StatusOK, TableResponse{Status: StatusSuccess, Document: render.NewDocument(t)})
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := views.InventoryFilter{Search: q.Get("q"), Category: q.Get("category"), Status: q.Get("status")}
	serveListing(s, w, r, types.InventoryTable, views.InventoryColumns(),
		views.Options[*types.InventoryItem](views.InventoryEmptyMessage),
		func() (string, []*types.InventoryItem, error) {
			items, err := views.LoadInventory(s.shop, f)
			return f.Key(), items, err
		})
}

func (s *Server) handleEmployees(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := views.EmployeeFilter{Search: q.Get("q"), Role: q.Get("role"), Status: q.Get("status")}
	serveListing(s, w, r, types.EmployeesTable, views.EmployeeColumns(),
		views.Options[*types.Employee](views.EmployeesEmptyMessage),
		func() (string, []*types.Employee, error) {
			employees, err := views.LoadEmployees(s.shop, f)
			return f.Key(), employees, err
		})
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := views.OrderFilter{Search: q.Get("q"), Status: q.Get("status")}
	serveListing(s, w, r, types.OrdersTable, views.OrderColumns(),
		views.Options[*types.Order](views.OrdersEmptyMessage),
		func() (string, []*types.Order, error) {
			orders, err := views.LoadOrders(s.shop, f)
			return f.Key(), orders, err
		})
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := views.ReportFilter{Search: q.Get("q"), Category: q.Get("category")}
	var err error
	if f.From, err = parseDate(q.Get("from")); err != nil {
		s.writeError(w, err)
		return
	}
	if f.To, err = parseDate(q.Get("to")); err != nil {
		s.writeError(w, err)
		return
	}
	serveListing(s, w, r, types.ReportsTable, views.ReportColumns(), views.ReportOptions(),
		func() (string, []*types.ReportLine, error) {
			lines, err := views.LoadReports(s.shop, f)
			return f.Key(), lines, err
		})
}

// parseDate parses a YYYY-MM-DD query value. Empty yields the zero time.
func parseDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(types.ReportDateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must be YYYY-MM-DD: %w", v, errBadRequest)
	}
	return t, nil
}

func (s *Server) handleInventoryItem(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Authorize(types.InventoryTable); err != nil {
		s.writeError(w, err)
		return
	}
	tbl, err := s.shop.GetTable(types.InventoryTable)
	if err != nil {
		s.writeError(w, err)
		return
	}
	item, err := tbl.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, NewDataResponse(item))
}

type statusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleOrderStatus(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Authorize(types.OrdersTable); err != nil {
		s.writeError(w, err)
		return
	}
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fmt.Errorf("decoding body: %v: %w", err, errBadRequest))
		return
	}

	tbl, err := s.shop.GetTable(types.OrdersTable)
	if err != nil {
		s.writeError(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	got, err := tbl.Get(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	order, ok := got.(*types.Order)
	if !ok {
		s.writeError(w, types.ErrInvalidData)
		return
	}
	from := order.Status
	if err := order.Transition(req.Status); err != nil {
		s.writeError(w, fmt.Errorf("order %s %s -> %s: %w", views.ShortID(id), from, req.Status, err))
		return
	}
	if _, err := tbl.Set(id, order); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("order status changed",
		zap.String("order_id", id),
		zap.String("from", from),
		zap.String("to", order.Status))
	s.writeJSON(w, http.StatusOK, NewDataResponse(order))
}
