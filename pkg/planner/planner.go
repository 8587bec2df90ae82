package planner

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/railgo/railgo/pkg/redis_client"
	"github.com/railgo/railgo/pkg/rtdf"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

type RouteProvider interface {
	GetRoutes(ctx context.Context) ([]rtdf.Route, error)
	GetStations(ctx context.Context) ([]rtdf.Station, error)
}

type ScheduleFinder interface {
	FindSchedule(ctx context.Context, identifier string) (*rtdf.TrainSchedule, error)
	FindSchedulesByDate(ctx context.Context, date time.Time) ([]*rtdf.TrainSchedule, error)
}

// TransferOption is a one-transfer journey: two schedules joined at an
// interchange station.
type TransferOption struct {
	FirstScheduleRef  string
	SecondScheduleRef string

	TransferStationRef string
}

// Planner answers earliest-arrival journey queries over per-date connection
// boards. It is read-only: boards are built once per date and swapped in
// whole, so concurrent queries never observe partial state.
type Planner struct {
	Routes    RouteProvider
	Schedules ScheduleFinder

	boardCache *cache.Cache[string]
}

func NewPlanner(routes RouteProvider, schedules ScheduleFinder) *Planner {
	return &Planner{
		Routes:    routes,
		Schedules: schedules,
	}
}

// SetupCache attaches the shared redis board cache. Without it every query
// rebuilds the board from the repositories.
func (p *Planner) SetupCache() {
	redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(30*time.Minute))

	p.boardCache = cache.New[string](redisStore)
}

func (p *Planner) connectionBoard(ctx context.Context, date time.Time) (*ConnectionBoard, error) {
	dateKey := date.Format("2006-01-02")
	cacheKey := "railgo:connectionboard:" + dateKey

	if p.boardCache != nil {
		boardCacheValue, err := p.boardCache.Get(ctx, cacheKey)
		if err == nil {
			var board *ConnectionBoard
			if err := json.Unmarshal([]byte(boardCacheValue), &board); err == nil {
				return board, nil
			}
		}
	}

	routes, err := p.Routes.GetRoutes(ctx)
	if err != nil {
		return nil, err
	}

	schedules, err := p.Schedules.FindSchedulesByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	board, err := BuildConnectionBoard(dateKey, routes, schedules)
	if err != nil {
		return nil, err
	}

	if p.boardCache != nil {
		boardJSON, err := json.Marshal(board)
		if err != nil {
			log.Error().Err(err).Str("date", dateKey).Msg("Failed to encode connection board")
		} else if err := p.boardCache.Set(ctx, cacheKey, string(boardJSON)); err != nil {
			log.Error().Err(err).Str("date", dateKey).Msg("Failed to cache connection board")
		}
	}

	return board, nil
}

// DirectSchedules resolves each (origin, destination) pair to the schedule
// completing the earliest direct journey on the date. Stations with no
// connections simply contribute nothing - an empty result, not an error.
func (p *Planner) DirectSchedules(ctx context.Context, date time.Time, pairs []rtdf.StationRange) ([]*rtdf.TrainSchedule, error) {
	board, err := p.connectionBoard(ctx, date)
	if err != nil {
		return nil, err
	}

	scheduleRefs := make([]string, len(pairs))

	scanPool := pool.New().WithMaxGoroutines(8)
	for i, pair := range pairs {
		scanPool.Go(func() {
			originIndex := board.StationIndex(pair.From)
			destinationIndex := board.StationIndex(pair.To)

			if originIndex < 0 || destinationIndex < 0 {
				return
			}

			state := board.scan(originIndex, 0)

			scheduleRefs[i] = state.directScheduleRef(originIndex, destinationIndex)
		})
	}
	scanPool.Wait()

	var schedules []*rtdf.TrainSchedule
	seen := map[string]bool{}

	for _, scheduleRef := range scheduleRefs {
		if scheduleRef == "" || seen[scheduleRef] {
			continue
		}
		seen[scheduleRef] = true

		schedule, err := p.Schedules.FindSchedule(ctx, scheduleRef)
		if err != nil {
			return nil, err
		}

		schedules = append(schedules, schedule)
	}

	return schedules, nil
}

// TransferSchedules resolves each pair to a journey using exactly one
// transfer, honouring the minimum interchange buffer.
func (p *Planner) TransferSchedules(ctx context.Context, date time.Time, pairs []rtdf.StationRange) ([]TransferOption, error) {
	board, err := p.connectionBoard(ctx, date)
	if err != nil {
		return nil, err
	}

	pairOptions := make([]*TransferOption, len(pairs))

	scanPool := pool.New().WithMaxGoroutines(8)
	for i, pair := range pairs {
		scanPool.Go(func() {
			originIndex := board.StationIndex(pair.From)
			destinationIndex := board.StationIndex(pair.To)

			if originIndex < 0 || destinationIndex < 0 {
				return
			}

			state := board.scan(originIndex, 0)

			firstScheduleRef, secondScheduleRef, transferIndex, ok := state.transferJourney(originIndex, destinationIndex)
			if !ok {
				return
			}

			pairOptions[i] = &TransferOption{
				FirstScheduleRef:   firstScheduleRef,
				SecondScheduleRef:  secondScheduleRef,
				TransferStationRef: board.Stations[transferIndex],
			}
		})
	}
	scanPool.Wait()

	var options []TransferOption

	for _, option := range pairOptions {
		if option != nil {
			options = append(options, *option)
		}
	}

	return options, nil
}
