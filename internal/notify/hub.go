package notify

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"gentil/internal/models"
	"gentil/internal/reminder"

	"go.uber.org/atomic"
)

var ErrNoPushToken = errors.New("notify: user has no push token")

type Notification struct {
	UserID string
	Token  string
	Title  string
	Body   string
}

// Sender delivers one notification to a device.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

// maxCatchUp bounds how far back a tick looks for slots it has not seen.
const maxCatchUp = 5 * time.Minute

type armedTrigger struct {
	trigger reminder.DailyTrigger
	body    string
}

// slotKey identifies a trigger by its minute of the day.
func slotKey(t reminder.DailyTrigger) int {
	return t.Hour*60 + t.Minute
}

type HubInterface interface {
	Grant(userID, token string)
	Revoke(userID string)
	Permitted(userID string) bool
	Facility(userID string) reminder.Facility
	Armed(userID string) []reminder.DailyTrigger
	ArmedTotal() int
	Tick(ctx context.Context, now time.Time) TickResult
	Sent() int64
	Failed() int64
}

// Hub keeps per-user push tokens and armed daily triggers and fires them
// as wall-clock time passes.
type Hub struct {
	mu       sync.RWMutex
	tokens   map[string]string
	triggers map[string][]*armedTrigger
	fired    map[string]map[int]models.Date
	lastTick time.Time
	sender   Sender
	title    string
	loc      *time.Location
	sent     atomic.Int64
	failed   atomic.Int64
}

func NewHub(sender Sender, title string, loc *time.Location) *Hub {
	if loc == nil {
		loc = time.UTC
	}
	return &Hub{
		tokens:   make(map[string]string),
		triggers: make(map[string][]*armedTrigger),
		fired:    make(map[string]map[int]models.Date),
		sender:   sender,
		title:    title,
		loc:      loc,
	}
}

func (h *Hub) Grant(userID, token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tokens[userID] = token
}

// Revoke drops the token and every trigger armed for the user. The record of
// slots already fired today is kept so a quick re-grant cannot resend them.
func (h *Hub) Revoke(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.tokens, userID)
	delete(h.triggers, userID)
}

func (h *Hub) Permitted(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.tokens[userID]
	return ok
}

func (h *Hub) Facility(userID string) reminder.Facility {
	return &userFacility{hub: h, userID: userID}
}

func (h *Hub) Armed(userID string) []reminder.DailyTrigger {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]reminder.DailyTrigger, 0, len(h.triggers[userID]))
	for _, a := range h.triggers[userID] {
		out = append(out, a.trigger)
	}
	return out
}

func (h *Hub) ArmedTotal() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, list := range h.triggers {
		n += len(list)
	}
	return n
}

func (h *Hub) Sent() int64   { return h.sent.Load() }
func (h *Hub) Failed() int64 { return h.failed.Load() }

type TickResult struct {
	Sent   int
	Failed int
	Errors []error
}

// Tick fires every trigger whose slot lies after the previous tick and at or
// before now, in the hub's zone. The first tick only covers the current
// minute and catch-up never reaches back more than maxCatchUp. A trigger fires
// at most once per calendar day, including across reschedules. Failures are
// not retried.
func (h *Hub) Tick(ctx context.Context, now time.Time) TickResult {
	local := now.In(h.loc)

	h.mu.Lock()
	from := local.Truncate(time.Minute).Add(-time.Nanosecond)
	if !h.lastTick.IsZero() && h.lastTick.After(from) {
		from = h.lastTick
	}
	if floor := local.Add(-maxCatchUp); from.Before(floor) {
		from = floor
	}
	if local.After(h.lastTick) {
		h.lastTick = local
	}

	days := []models.Date{models.DateOf(local, nil).AddDays(-1), models.DateOf(local, nil)}
	var due []Notification
	users := make([]string, 0, len(h.triggers))
	for userID := range h.triggers {
		users = append(users, userID)
	}
	sort.Strings(users)
	for _, userID := range users {
		token := h.tokens[userID]
		for _, a := range h.triggers[userID] {
			key := slotKey(a.trigger)
			for _, day := range days {
				slot := time.Date(day.Year, day.Month, day.Day, a.trigger.Hour, a.trigger.Minute, 0, 0, h.loc)
				if !slot.After(from) || slot.After(local) || h.fired[userID][key] == day {
					continue
				}
				if h.fired[userID] == nil {
					h.fired[userID] = make(map[int]models.Date)
				}
				h.fired[userID][key] = day
				due = append(due, Notification{UserID: userID, Token: token, Title: h.title, Body: a.body})
			}
		}
	}
	h.mu.Unlock()

	var res TickResult
	for _, n := range due {
		if err := h.sender.Send(ctx, n); err != nil {
			h.failed.Inc()
			res.Failed++
			res.Errors = append(res.Errors, fmt.Errorf("notify %s: %w", n.UserID, err))
			continue
		}
		h.sent.Inc()
		res.Sent++
	}
	return res
}

// userFacility is the reminder.Facility view of one user's slots on the hub.
type userFacility struct {
	hub    *Hub
	userID string
}

func (f *userFacility) Permitted() bool {
	return f.hub.Permitted(f.userID)
}

func (f *userFacility) CancelAll(_ context.Context) error {
	f.hub.mu.Lock()
	defer f.hub.mu.Unlock()
	delete(f.hub.triggers, f.userID)
	return nil
}

func (f *userFacility) Arm(_ context.Context, trigger reminder.DailyTrigger, body string) error {
	f.hub.mu.Lock()
	defer f.hub.mu.Unlock()
	if _, ok := f.hub.tokens[f.userID]; !ok {
		return ErrNoPushToken
	}
	f.hub.triggers[f.userID] = append(f.hub.triggers[f.userID], &armedTrigger{trigger: trigger, body: body})
	return nil
}
