package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jinzhu/copier"
	"github.com/railgo/railgo/pkg/database"
	"github.com/railgo/railgo/pkg/rtdf"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// trainScheduleDocument is the persistence shape of the aggregate: the
// availability map flattened into a map keyed by availability identifier so
// occupancy deltas can be addressed with dotted update paths.
type trainScheduleDocument struct {
	rtdf.TrainSchedule `bson:",inline"`

	AvailabilityRecords map[string]*rtdf.SeatAvailability `bson:"availabilityrecords"`
}

// ScheduleRepository loads TrainSchedule aggregates and persists them with
// change detection: a deep snapshot is taken at load time and only the
// occupancy deltas against it are written back.
type ScheduleRepository struct {
	mutex     sync.Mutex
	snapshots map[string]*rtdf.TrainSchedule
}

func NewScheduleRepository() *ScheduleRepository {
	return &ScheduleRepository{
		snapshots: map[string]*rtdf.TrainSchedule{},
	}
}

func (r *ScheduleRepository) FindSchedule(ctx context.Context, identifier string) (*rtdf.TrainSchedule, error) {
	schedulesCollection := database.GetCollection("train_schedules")

	var document *trainScheduleDocument
	err := schedulesCollection.FindOne(ctx, bson.M{"primaryidentifier": identifier}).Decode(&document)
	if err != nil {
		return nil, fmt.Errorf("finding schedule %s: %w", identifier, err)
	}

	schedule := document.toAggregate()

	r.recordSnapshot(schedule)

	return schedule, nil
}

// FindScheduleByAvailability resolves the schedule owning a seat-availability
// record.
func (r *ScheduleRepository) FindScheduleByAvailability(ctx context.Context, availabilityID string) (*rtdf.TrainSchedule, error) {
	schedulesCollection := database.GetCollection("train_schedules")

	var document *trainScheduleDocument
	err := schedulesCollection.FindOne(ctx, bson.M{"availabilityrecords." + availabilityID: bson.M{"$exists": true}}).Decode(&document)
	if err != nil {
		return nil, fmt.Errorf("finding schedule for availability %s: %w", availabilityID, err)
	}

	schedule := document.toAggregate()

	r.recordSnapshot(schedule)

	return schedule, nil
}

func (r *ScheduleRepository) FindSchedulesByDate(ctx context.Context, date time.Time) ([]*rtdf.TrainSchedule, error) {
	schedulesCollection := database.GetCollection("train_schedules")

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	cursor, err := schedulesCollection.Find(ctx, bson.M{"date": bson.M{"$gte": dayStart, "$lt": dayEnd}})
	if err != nil {
		return nil, err
	}

	var documents []*trainScheduleDocument
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, err
	}

	var schedules []*rtdf.TrainSchedule
	for _, document := range documents {
		schedules = append(schedules, document.toAggregate())
	}

	return schedules, nil
}

// InsertSchedule persists a freshly materialized aggregate whole.
func (r *ScheduleRepository) InsertSchedule(ctx context.Context, schedule *rtdf.TrainSchedule) error {
	schedulesCollection := database.GetCollection("train_schedules")

	document := toDocument(schedule)

	opts := options.Replace().SetUpsert(true)
	_, err := schedulesCollection.ReplaceOne(ctx, bson.M{"primaryidentifier": schedule.PrimaryIdentifier}, document, opts)
	if err != nil {
		return err
	}

	r.recordSnapshot(schedule)

	return nil
}

// Save writes only the occupancy delta between the loaded snapshot and the
// current in-memory state. Without a snapshot the whole document is replaced.
func (r *ScheduleRepository) Save(ctx context.Context, schedule *rtdf.TrainSchedule) error {
	r.mutex.Lock()
	snapshot := r.snapshots[schedule.PrimaryIdentifier]
	r.mutex.Unlock()

	if snapshot == nil {
		return r.InsertSchedule(ctx, schedule)
	}

	changes := DiffScheduleOccupancy(snapshot, schedule)
	if len(changes) == 0 {
		return nil
	}

	set := bson.M{"modificationdatetime": schedule.ModificationDateTime}
	unset := bson.M{}

	for _, change := range changes {
		path := fmt.Sprintf("availabilityrecords.%s.occupied.%s", change.AvailabilityRef, change.SeatRef)

		switch change.Kind {
		case ChangeKindSeatOccupied, ChangeKindSeatReplaced:
			set[path] = change.New
		case ChangeKindSeatReleased:
			unset[path] = ""
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	schedulesCollection := database.GetCollection("train_schedules")
	_, err := schedulesCollection.UpdateOne(ctx, bson.M{"primaryidentifier": schedule.PrimaryIdentifier}, update)
	if err != nil {
		return err
	}

	log.Debug().Str("schedule", schedule.PrimaryIdentifier).Int("changes", len(changes)).Msg("Persisted schedule occupancy delta")

	r.recordSnapshot(schedule)

	return nil
}

func (r *ScheduleRepository) recordSnapshot(schedule *rtdf.TrainSchedule) {
	var snapshot rtdf.TrainSchedule
	if err := copier.CopyWithOption(&snapshot, schedule, copier.Option{DeepCopy: true}); err != nil {
		log.Error().Err(err).Str("schedule", schedule.PrimaryIdentifier).Msg("Failed to snapshot schedule")
		return
	}

	r.mutex.Lock()
	r.snapshots[schedule.PrimaryIdentifier] = &snapshot
	r.mutex.Unlock()
}

func toDocument(schedule *rtdf.TrainSchedule) *trainScheduleDocument {
	document := &trainScheduleDocument{
		TrainSchedule:       *schedule,
		AvailabilityRecords: map[string]*rtdf.SeatAvailability{},
	}

	for _, availability := range schedule.Availability {
		document.AvailabilityRecords[availability.PrimaryIdentifier] = availability
	}

	return document
}

func (d *trainScheduleDocument) toAggregate() *rtdf.TrainSchedule {
	schedule := d.TrainSchedule
	schedule.Availability = map[rtdf.SegmentKey]*rtdf.SeatAvailability{}

	for _, availability := range d.AvailabilityRecords {
		if availability.Occupied == nil {
			availability.Occupied = map[string]rtdf.OccupiedSeat{}
		}

		schedule.Availability[availability.SegmentKey()] = availability
	}

	return &schedule
}
