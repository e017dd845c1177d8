package handlers

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"lankarail-console/internal/models"
	"lankarail-console/internal/types"
)

// Index is an id lookup over a fetched collection. It copies nothing back
// into the source slice.
type Index[V any] struct {
	items map[int64]V
}

// NewIndex keys items by key
func NewIndex[V any](items []V, key func(V) int64) *Index[V] {
	idx := &Index[V]{items: make(map[int64]V, len(items))}
	for _, item := range items {
		idx.items[key(item)] = item
	}
	return idx
}

// Lookup returns the item with id
func (i *Index[V]) Lookup(id int64) (V, bool) {
	v, ok := i.items[id]
	return v, ok
}

// Label renders the item with id, or fallback when it is missing
func (i *Index[V]) Label(id int64, label func(V) string, fallback string) string {
	if v, ok := i.items[id]; ok {
		return label(v)
	}
	return fallback
}

// Len is the number of indexed items
func (i *Index[V]) Len() int {
	return len(i.items)
}

// FetchAll runs every fetch in parallel and returns once all have finished.
// The first error fails the whole join.
func FetchAll(ctx context.Context, fetches ...func(ctx context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, fetch := range fetches {
		fetch := fetch
		g.Go(func() error { return fetch(ctx) })
	}
	return g.Wait()
}

func userID(u models.User) int64         { return u.ID }
func scheduleID(s models.Schedule) int64 { return s.ID }
func trainID(t models.Train) int64       { return t.ID }

func userLabel(u models.User) string   { return u.Email }
func trainLabel(t models.Train) string { return t.Name }

func unknownUser(id int64) string     { return fmt.Sprintf("Unknown user (#%d)", id) }
func unknownSchedule(id int64) string { return fmt.Sprintf("Unknown schedule (#%d)", id) }
func unknownTrain(id int64) string    { return fmt.Sprintf("Unknown train (#%d)", id) }

// JoinScheduleTrains resolves each schedule's train
func JoinScheduleTrains(schedules []models.Schedule, trains []models.Train) []types.ScheduleRow {
	byID := NewIndex(trains, trainID)
	rows := make([]types.ScheduleRow, 0, len(schedules))
	for _, s := range schedules {
		rows = append(rows, types.ScheduleRow{
			Schedule:   s,
			TrainLabel: byID.Label(s.TrainID, trainLabel, unknownTrain(s.TrainID)),
		})
	}
	return rows
}

// JoinBookings resolves each booking's schedule and, through it, the train.
// users may be nil when the viewer is the passenger themself.
func JoinBookings(bookings []models.Booking, users []models.User, schedules []models.Schedule, trains []models.Train) []types.BookingRow {
	userIdx := NewIndex(users, userID)
	scheduleIdx := NewIndex(schedules, scheduleID)
	trainIdx := NewIndex(trains, trainID)

	rows := make([]types.BookingRow, 0, len(bookings))
	for _, bk := range bookings {
		row := types.BookingRow{
			Booking:       bk,
			UserLabel:     userIdx.Label(bk.UserID, userLabel, unknownUser(bk.UserID)),
			ScheduleLabel: unknownSchedule(bk.ScheduleID),
			TrainLabel:    "-",
		}
		if s, ok := scheduleIdx.Lookup(bk.ScheduleID); ok {
			s := s
			row.Schedule = &s
			row.ScheduleLabel = s.Label()
			row.TrainLabel = unknownTrain(s.TrainID)
			if t, ok := trainIdx.Lookup(s.TrainID); ok {
				t := t
				row.Train = &t
				row.TrainLabel = t.Name
			}
		}
		rows = append(rows, row)
	}
	return rows
}
