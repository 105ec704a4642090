package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"eventbot/internal/domain"
)

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	events []*domain.Event
	nextID int
	err    error // if set, all methods return this error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{nextID: 1}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.events = append(f.events, e)
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]*domain.Event{}, f.events...), nil
}

func (f *fakeEventRepo) ListActive(ctx context.Context) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Event
	for _, e := range f.events {
		if e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, eventID string, name, location *string, date *time.Time, description, mapsLink *string, isActive *bool) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	e, err := f.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if name != nil {
		e.Name = *name
	}
	if location != nil {
		e.Location = *location
	}
	if date != nil {
		e.Date = *date
	}
	if description != nil {
		e.Description = description
	}
	if mapsLink != nil {
		e.MapsLink = mapsLink
	}
	if isActive != nil {
		e.IsActive = *isActive
	}
	return e, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	for i, e := range f.events {
		if e.ID == id {
			f.events = append(f.events[:i], f.events[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// addEvent seeds an event and returns it.
func (f *fakeEventRepo) addEvent(name string, active bool) *domain.Event {
	e := &domain.Event{
		Name:      name,
		Location:  "Auditorio Principal",
		Date:      time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
		IsActive:  active,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	_ = f.Create(context.Background(), e)
	return e
}

// fakeSpeakerRepo is an in-memory SpeakerRepository for tests.
type fakeSpeakerRepo struct {
	speakers []*domain.Speaker
	nextID   int
	err      error
}

func newFakeSpeakerRepo() *fakeSpeakerRepo {
	return &fakeSpeakerRepo{nextID: 1}
}

func (f *fakeSpeakerRepo) Create(ctx context.Context, s *domain.Speaker) error {
	if f.err != nil {
		return f.err
	}
	s.ID = fmt.Sprintf("spk-%d", f.nextID)
	f.nextID++
	f.speakers = append(f.speakers, s)
	return nil
}

func (f *fakeSpeakerRepo) GetByID(ctx context.Context, id string) (*domain.Speaker, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, s := range f.speakers {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSpeakerRepo) List(ctx context.Context) ([]*domain.Speaker, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]*domain.Speaker{}, f.speakers...), nil
}

func (f *fakeSpeakerRepo) Update(ctx context.Context, speakerID string, name, topic, bio *string) (*domain.Speaker, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, err := f.GetByID(ctx, speakerID)
	if err != nil {
		return nil, err
	}
	if name != nil {
		s.Name = *name
	}
	if topic != nil {
		s.Topic = *topic
	}
	if bio != nil {
		s.Bio = bio
	}
	return s, nil
}

func (f *fakeSpeakerRepo) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	for i, s := range f.speakers {
		if s.ID == id {
			f.speakers = append(f.speakers[:i], f.speakers[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeSpeakerRepo) addSpeaker(name, topic string) *domain.Speaker {
	s := &domain.Speaker{Name: name, Topic: topic}
	_ = f.Create(context.Background(), s)
	return s
}

// fakeScheduleRepo is an in-memory ScheduleRepository for tests. Joins resolve
// against the given event and speaker repos.
type fakeScheduleRepo struct {
	schedules []*domain.Schedule
	eventRepo *fakeEventRepo
	spkRepo   *fakeSpeakerRepo
	nextID    int

	listDueErr    error
	listMissedErr error
	markErr       error
	markCalls     []string
}

func newFakeScheduleRepo(eventRepo *fakeEventRepo, spkRepo *fakeSpeakerRepo) *fakeScheduleRepo {
	return &fakeScheduleRepo{eventRepo: eventRepo, spkRepo: spkRepo, nextID: 1}
}

func (f *fakeScheduleRepo) Create(ctx context.Context, s *domain.Schedule) error {
	s.ID = fmt.Sprintf("sch-%d", f.nextID)
	f.nextID++
	f.schedules = append(f.schedules, s)
	return nil
}

func (f *fakeScheduleRepo) GetByID(ctx context.Context, id string) (*domain.Schedule, error) {
	for _, s := range f.schedules {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeScheduleRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Schedule, error) {
	var out []*domain.Schedule
	for _, s := range f.schedules {
		if s.EventID == eventID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (f *fakeScheduleRepo) detail(s *domain.Schedule) *domain.ScheduleDetail {
	event, _ := f.eventRepo.GetByID(context.Background(), s.EventID)
	speaker, _ := f.spkRepo.GetByID(context.Background(), s.SpeakerID)
	return &domain.ScheduleDetail{Schedule: s, Event: event, Speaker: speaker}
}

func (f *fakeScheduleRepo) ListDetailsByEventID(ctx context.Context, eventID string) ([]*domain.ScheduleDetail, error) {
	schedules, _ := f.ListByEventID(ctx, eventID)
	out := make([]*domain.ScheduleDetail, 0, len(schedules))
	for _, s := range schedules {
		out = append(out, f.detail(s))
	}
	return out, nil
}

func (f *fakeScheduleRepo) ListUpcoming(ctx context.Context, now time.Time) ([]*domain.ScheduleDetail, error) {
	var out []*domain.ScheduleDetail
	for _, s := range f.schedules {
		if s.StartTime.After(now) {
			out = append(out, f.detail(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Schedule.StartTime.Before(out[j].Schedule.StartTime) })
	return out, nil
}

func (f *fakeScheduleRepo) ListDueReminders(ctx context.Context, now time.Time, lead time.Duration) ([]*domain.ScheduleDetail, error) {
	if f.listDueErr != nil {
		return nil, f.listDueErr
	}
	var out []*domain.ScheduleDetail
	for _, s := range f.schedules {
		if !s.ReminderSent && s.StartTime.After(now) && !s.StartTime.After(now.Add(lead)) {
			out = append(out, f.detail(s))
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) ListMissedReminders(ctx context.Context, now time.Time) ([]*domain.ScheduleDetail, error) {
	if f.listMissedErr != nil {
		return nil, f.listMissedErr
	}
	var out []*domain.ScheduleDetail
	for _, s := range f.schedules {
		if !s.ReminderSent && !s.StartTime.After(now) {
			out = append(out, f.detail(s))
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) MarkReminderSent(ctx context.Context, scheduleID string) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.markCalls = append(f.markCalls, scheduleID)
	for _, s := range f.schedules {
		if s.ID == scheduleID {
			s.ReminderSent = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeScheduleRepo) Delete(ctx context.Context, id string) error {
	for i, s := range f.schedules {
		if s.ID == id {
			f.schedules = append(f.schedules[:i], f.schedules[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeScheduleRepo) addSchedule(eventID, speakerID string, start, end time.Time) *domain.Schedule {
	s := &domain.Schedule{EventID: eventID, SpeakerID: speakerID, StartTime: start, EndTime: end}
	_ = f.Create(context.Background(), s)
	return s
}

// fakeSubscriberRepo is an in-memory SubscriberRepository for tests.
type fakeSubscriberRepo struct {
	rows   []*domain.Subscriber
	nextID int

	upsertErr    error
	getErr       error
	setActiveErr error
	listErr      error
}

func newFakeSubscriberRepo() *fakeSubscriberRepo {
	return &fakeSubscriberRepo{nextID: 1}
}

func (f *fakeSubscriberRepo) find(phoneNumber, eventID string) *domain.Subscriber {
	for _, r := range f.rows {
		if r.PhoneNumber == phoneNumber && r.EventID == eventID {
			return r
		}
	}
	return nil
}

func (f *fakeSubscriberRepo) Upsert(ctx context.Context, phoneNumber, eventID string, subscribedAt time.Time) (*domain.Subscriber, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	if r := f.find(phoneNumber, eventID); r != nil {
		r.IsActive = true
		return r, nil
	}
	r := &domain.Subscriber{
		ID:           fmt.Sprintf("sub-%d", f.nextID),
		PhoneNumber:  phoneNumber,
		EventID:      eventID,
		IsActive:     true,
		SubscribedAt: subscribedAt,
	}
	f.nextID++
	f.rows = append(f.rows, r)
	return r, nil
}

func (f *fakeSubscriberRepo) GetByPhoneAndEvent(ctx context.Context, phoneNumber, eventID string) (*domain.Subscriber, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if r := f.find(phoneNumber, eventID); r != nil {
		return r, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSubscriberRepo) SetActive(ctx context.Context, phoneNumber, eventID string, active bool) error {
	if f.setActiveErr != nil {
		return f.setActiveErr
	}
	r := f.find(phoneNumber, eventID)
	if r == nil {
		return domain.ErrNotFound
	}
	r.IsActive = active
	return nil
}

func (f *fakeSubscriberRepo) ListActiveByEventID(ctx context.Context, eventID string) ([]*domain.Subscriber, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Subscriber
	for _, r := range f.rows {
		if r.EventID == eventID && r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

// fakeMessenger records fan-outs. Per-recipient delivery defaults to true
// unless the phone is listed in failing.
type sendCall struct {
	phones  []string
	message string
}

type fakeMessenger struct {
	sendErr   error // if set, SendToMany returns this error
	failing   map[string]bool
	connected bool
	calls     []sendCall
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{failing: make(map[string]bool), connected: true}
}

func (f *fakeMessenger) Send(ctx context.Context, to, message string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.calls = append(f.calls, sendCall{phones: []string{to}, message: message})
	return nil
}

func (f *fakeMessenger) SendToMany(ctx context.Context, phoneNumbers []string, message string) ([]domain.SendResult, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.calls = append(f.calls, sendCall{phones: phoneNumbers, message: message})
	results := make([]domain.SendResult, 0, len(phoneNumbers))
	for _, p := range phoneNumbers {
		results = append(results, domain.SendResult{PhoneNumber: p, Delivered: !f.failing[p]})
	}
	return results, nil
}

func (f *fakeMessenger) IsConnected(ctx context.Context) bool {
	return f.connected
}

// fakeAlertService records missed-reminder alerts.
type fakeAlertService struct {
	alerts []*domain.MissedReminderEmailData
	err    error
}

func (f *fakeAlertService) SendMissedReminderAlert(ctx context.Context, data *domain.MissedReminderEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.alerts = append(f.alerts, data)
	return nil
}
