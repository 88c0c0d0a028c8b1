package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/brincapark/reservations-api/internal/model"
	"github.com/brincapark/reservations-api/internal/repository"
	"github.com/brincapark/reservations-api/internal/service"
)

// stubStore implements service.ReservationStore over function fields so
// handler tests can drive the real service without a database.
type stubStore struct {
	createFn       func(ctx context.Context, res *model.Reservation) error
	findAllFn      func(ctx context.Context) ([]model.Reservation, error)
	findByIDFn     func(ctx context.Context, id string) (*model.Reservation, error)
	findBySlotFn   func(ctx context.Context, date, slot, park string) (*model.Reservation, error)
	findSlotsFn    func(ctx context.Context, date, park string) ([]string, error)
	updateFn       func(ctx context.Context, id string, upd model.ReservationUpdate) (*model.Reservation, error)
	updateStatusFn func(ctx context.Context, id, status string) (*model.Reservation, error)
	deleteFn       func(ctx context.Context, id string) (*model.Reservation, error)
}

func (s *stubStore) Create(ctx context.Context, res *model.Reservation) error {
	if s.createFn != nil {
		return s.createFn(ctx, res)
	}
	res.ID = "res-1"
	return nil
}

func (s *stubStore) FindAll(ctx context.Context) ([]model.Reservation, error) {
	if s.findAllFn != nil {
		return s.findAllFn(ctx)
	}
	return []model.Reservation{}, nil
}

func (s *stubStore) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	if s.findByIDFn != nil {
		return s.findByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (s *stubStore) FindBySlot(ctx context.Context, date, slot, park string) (*model.Reservation, error) {
	if s.findBySlotFn != nil {
		return s.findBySlotFn(ctx, date, slot, park)
	}
	return nil, repository.ErrNotFound
}

func (s *stubStore) FindSlots(ctx context.Context, date, park string) ([]string, error) {
	if s.findSlotsFn != nil {
		return s.findSlotsFn(ctx, date, park)
	}
	return []string{}, nil
}

func (s *stubStore) Update(ctx context.Context, id string, upd model.ReservationUpdate) (*model.Reservation, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, id, upd)
	}
	return nil, repository.ErrNotFound
}

func (s *stubStore) UpdateStatus(ctx context.Context, id, status string) (*model.Reservation, error) {
	if s.updateStatusFn != nil {
		return s.updateStatusFn(ctx, id, status)
	}
	return nil, repository.ErrNotFound
}

func (s *stubStore) Delete(ctx context.Context, id string) (*model.Reservation, error) {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func jsonRequest(method, target, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

const bookingBody = `{
	"customerName": "Maria Perez",
	"email": "maria@example.com",
	"phone": "04141234567",
	"package": "mini",
	"serviceDate": "2024-06-10",
	"timeSlot": "10am-1pm",
	"park": "Maracaibo",
	"locationRegion": "Zulia",
	"eventType": "birthday"
}`

func TestCreateReservation_Returns201(t *testing.T) {
	e := echo.New()
	h := NewReservationHandler(service.NewReservationService(&stubStore{}, nil))
	req, rec := jsonRequest(http.MethodPost, "/api/reservations", bookingBody)

	err := h.Create(e.NewContext(req, rec))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created model.Reservation
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "res-1", created.ID)
	assert.Equal(t, model.StatusPending, created.Status)
}

func TestCreateReservation_InvalidPhoneReturns400(t *testing.T) {
	e := echo.New()
	h := NewReservationHandler(service.NewReservationService(&stubStore{}, nil))
	body := strings.Replace(bookingBody, "04141234567", "555", 1)
	req, rec := jsonRequest(http.MethodPost, "/api/reservations", body)

	err := h.Create(e.NewContext(req, rec))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "phone")
}

func TestCreateReservation_OccupiedSlotReturns409(t *testing.T) {
	e := echo.New()
	store := &stubStore{
		findBySlotFn: func(ctx context.Context, date, slot, park string) (*model.Reservation, error) {
			return &model.Reservation{ID: "other"}, nil
		},
	}
	h := NewReservationHandler(service.NewReservationService(store, nil))
	req, rec := jsonRequest(http.MethodPost, "/api/reservations", bookingBody)

	err := h.Create(e.NewContext(req, rec))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "slot already booked")
}

func TestGetReservation_UnknownIDReturns404(t *testing.T) {
	e := echo.New()
	h := NewReservationHandler(service.NewReservationService(&stubStore{}, nil))
	req, rec := jsonRequest(http.MethodGet, "/api/reservations/missing", "")
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := h.Get(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListReservations(t *testing.T) {
	e := echo.New()
	store := &stubStore{
		findAllFn: func(ctx context.Context) ([]model.Reservation, error) {
			return []model.Reservation{{ID: "res-1"}, {ID: "res-2"}}, nil
		},
	}
	h := NewReservationHandler(service.NewReservationService(store, nil))
	req, rec := jsonRequest(http.MethodGet, "/api/reservations", "")

	err := h.List(e.NewContext(req, rec))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []model.Reservation `json:"items"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Items, 2)
}

func TestAvailability(t *testing.T) {
	e := echo.New()
	store := &stubStore{
		findSlotsFn: func(ctx context.Context, date, park string) ([]string, error) {
			return []string{model.SlotAfternoon}, nil
		},
	}
	h := NewReservationHandler(service.NewReservationService(store, nil))
	req, rec := jsonRequest(http.MethodGet, "/api/availability?date=2024-06-10&park=Caracas", "")

	err := h.Availability(e.NewContext(req, rec))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Date     string   `json:"date"`
		Park     string   `json:"park"`
		Occupied []string `json:"occupied"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2024-06-10", body.Date)
	assert.Equal(t, "Caracas", body.Park)
	assert.Equal(t, []string{model.SlotAfternoon}, body.Occupied)
}

func TestAvailability_UnknownParkReturns400(t *testing.T) {
	e := echo.New()
	h := NewReservationHandler(service.NewReservationService(&stubStore{}, nil))
	req, rec := jsonRequest(http.MethodGet, "/api/availability?date=2024-06-10&park=Valencia", "")

	err := h.Availability(e.NewContext(req, rec))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "park")
}
