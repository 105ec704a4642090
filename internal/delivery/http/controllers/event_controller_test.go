package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"eventbot/internal/delivery/http/helpers"
	"eventbot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeEventService implements domain.EventService for controller tests.
type fakeEventService struct {
	createErr error
	event     *domain.Event
	events    []*domain.Event
	err       error
}

func (f *fakeEventService) CreateEvent(_ context.Context, event *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	event.ID = "event-1"
	return nil
}

func (f *fakeEventService) GetEventByID(_ context.Context, _ string) (*domain.Event, error) {
	return f.event, f.err
}

func (f *fakeEventService) ListEvents(_ context.Context) ([]*domain.Event, error) {
	return f.events, f.err
}

func (f *fakeEventService) ListActiveEvents(_ context.Context) ([]*domain.Event, error) {
	return f.events, f.err
}

func (f *fakeEventService) UpdateEvent(_ context.Context, _ string, _, _ *string, _ *time.Time, _, _ *string, _ *bool) (*domain.Event, error) {
	return f.event, f.err
}

func (f *fakeEventService) DeleteEvent(_ context.Context, _ string) error {
	return f.err
}

// fakeSubscriptionService implements domain.SubscriptionService for controller tests.
type fakeSubscriptionService struct {
	event          *domain.Event
	subscribers    []*domain.Subscriber
	err            error
	subscribeErr   error
	unsubscribeErr error
}

func (f *fakeSubscriptionService) Subscribe(_ context.Context, _, _ string) (*domain.Event, error) {
	if f.subscribeErr != nil {
		return nil, f.subscribeErr
	}
	return f.event, nil
}

func (f *fakeSubscriptionService) Unsubscribe(_ context.Context, _, _ string) error {
	return f.unsubscribeErr
}

func (f *fakeSubscriptionService) ListActiveSubscribers(_ context.Context, _ string) ([]*domain.Subscriber, error) {
	return f.subscribers, f.err
}

func newEventController(svc *fakeEventService, subs *fakeSubscriptionService) *EventController {
	if subs == nil {
		subs = &fakeSubscriptionService{}
	}
	return NewEventController(testLogger(), svc, subs)
}

func TestEventController_CreateEvent(t *testing.T) {
	c := newEventController(&fakeEventService{}, nil)

	body := `{"name":"Semana de la Ciencia","location":"Auditorio Central","date":"2026-09-10T09:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	rr := httptest.NewRecorder()

	c.CreateEvent(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	var envelope struct {
		Data  *domain.Event     `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.Nil(t, envelope.Error)
	require.NotNil(t, envelope.Data)
	assert.Equal(t, "event-1", envelope.Data.ID)
	assert.Equal(t, "Semana de la Ciencia", envelope.Data.Name)
	assert.True(t, envelope.Data.IsActive)
}

func TestEventController_CreateEvent_MissingFields(t *testing.T) {
	c := newEventController(&fakeEventService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(`{"name":"Semana de la Ciencia"}`))
	rr := httptest.NewRecorder()

	c.CreateEvent(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, helpers.ErrCodeBadRequest, envelope.Error.Code)
	assert.Contains(t, envelope.Error.Message, "location is required")
	assert.Contains(t, envelope.Error.Message, "date is required")
}

func TestEventController_GetEventByID_NotFound(t *testing.T) {
	c := newEventController(&fakeEventService{err: domain.ErrNotFound}, nil)

	req := httptest.NewRequest(http.MethodGet, "/events/missing", nil)
	req.SetPathValue("eventID", "missing")
	rr := httptest.NewRecorder()

	c.GetEventByID(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, helpers.ErrCodeNotFound, envelope.Error.Code)
}

func TestEventController_ListEvents(t *testing.T) {
	events := []*domain.Event{
		{ID: "event-1", Name: "Semana de la Ciencia"},
		{ID: "event-2", Name: "Congreso de IA"},
	}
	c := newEventController(&fakeEventService{events: events}, nil)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rr := httptest.NewRecorder()

	c.ListEvents(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var envelope struct {
		Data  []*domain.Event   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.Len(t, envelope.Data, 2)
	assert.Equal(t, "event-1", envelope.Data[0].ID)
}

func TestEventController_ListEvents_ServiceError(t *testing.T) {
	c := newEventController(&fakeEventService{err: errors.New("db down")}, nil)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rr := httptest.NewRecorder()

	c.ListEvents(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, helpers.ErrCodeInternalError, envelope.Error.Code)
}

func TestEventController_UpdateEvent(t *testing.T) {
	updated := &domain.Event{ID: "event-1", Name: "Semana de la Ciencia 2026", IsActive: false}
	c := newEventController(&fakeEventService{event: updated}, nil)

	body := `{"name":"Semana de la Ciencia 2026","is_active":false}`
	req := httptest.NewRequest(http.MethodPatch, "/events/event-1", strings.NewReader(body))
	req.SetPathValue("eventID", "event-1")
	rr := httptest.NewRecorder()

	c.UpdateEvent(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var envelope struct {
		Data  *domain.Event     `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.NotNil(t, envelope.Data)
	assert.Equal(t, "Semana de la Ciencia 2026", envelope.Data.Name)
	assert.False(t, envelope.Data.IsActive)
}

func TestEventController_DeleteEvent_NotFound(t *testing.T) {
	c := newEventController(&fakeEventService{err: domain.ErrNotFound}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/events/missing", nil)
	req.SetPathValue("eventID", "missing")
	rr := httptest.NewRecorder()

	c.DeleteEvent(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestEventController_ListEventSubscribers(t *testing.T) {
	subs := &fakeSubscriptionService{
		subscribers: []*domain.Subscriber{
			{ID: "sub-1", PhoneNumber: "+5215550001111", EventID: "event-1", IsActive: true},
		},
	}
	c := newEventController(&fakeEventService{}, subs)

	req := httptest.NewRequest(http.MethodGet, "/events/event-1/subscribers", nil)
	req.SetPathValue("eventID", "event-1")
	rr := httptest.NewRecorder()

	c.ListEventSubscribers(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var envelope struct {
		Data  []*domain.Subscriber `json:"data"`
		Error *helpers.APIError    `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "+5215550001111", envelope.Data[0].PhoneNumber)
}
