package service

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"skillbloom_backend/internal/model"
	"skillbloom_backend/internal/repository"
	"skillbloom_backend/internal/util"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"
)

var (
	MotionStates = []string{"Sleeping", "Moving", "Awake", "Restless"}
	SleepStates  = []string{"Deep Sleep", "Light Sleep", "Awake", "REM Sleep"}
)

const (
	defaultBabyHistoryLimit = 50
	maxBabyHistoryLimit     = 500
	// 24 小时内没有数据时补齐的模拟读数条数
	babyStatsSeedCount = 20
	alertMessage       = "Unusual activity detected"
)

type BabyReading struct {
	Temperature float64   `json:"temperature"`
	Motion      string    `json:"motion"`
	SleepStatus string    `json:"sleep_status"`
	Alert       *string   `json:"alert"`
	Timestamp   time.Time `json:"timestamp"`
}

type BabyStats struct {
	AverageTemperature float64        `json:"average_temperature"`
	MotionDistribution map[string]int `json:"motion_distribution"`
	TotalReadings      int            `json:"total_readings"`
	LastUpdated        time.Time      `json:"last_updated"`
}

type BabyProfileInput struct {
	Name      string  `json:"name"`
	Weight    float64 `json:"weight"`
	Height    float64 `json:"height"`
	CameraURL string  `json:"camera_url"`
}

// BabyMonitorService 生成模拟的婴儿监护数据
type BabyMonitorService struct {
	BabyRepo *repository.BabyRepository

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

func NewBabyMonitorService(babyRepo *repository.BabyRepository, rng *rand.Rand) *BabyMonitorService {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed))
	}
	return &BabyMonitorService{BabyRepo: babyRepo, rng: rng, now: time.Now}
}

func (s *BabyMonitorService) generate(at time.Time) BabyReading {
	s.mu.Lock()
	defer s.mu.Unlock()

	temp := math.Round((36.5+s.rng.Float64())*10) / 10
	motion := MotionStates[s.rng.IntN(len(MotionStates))]
	sleep := SleepStates[s.rng.IntN(len(SleepStates))]

	var alert *string
	if temp > 37.3 || motion == "Restless" {
		if s.rng.Float64() > 0.7 {
			msg := alertMessage
			alert = &msg
		}
	}

	return BabyReading{
		Temperature: temp,
		Motion:      motion,
		SleepStatus: sleep,
		Alert:       alert,
		Timestamp:   at,
	}
}

func toRecord(userID uint, r BabyReading) *model.BabyReading {
	return &model.BabyReading{
		UserID:      userID,
		Temperature: r.Temperature,
		Motion:      r.Motion,
		SleepStatus: r.SleepStatus,
		Timestamp:   r.Timestamp,
	}
}

// Current 生成一条新读数并保存
func (s *BabyMonitorService) Current(ctx context.Context, userID uint) (*BabyReading, error) {
	reading := s.generate(s.now())
	if err := s.BabyRepo.CreateReadings(ctx, toRecord(userID, reading)); err != nil {
		return nil, util.WrapStorage("create baby reading", err)
	}
	return &reading, nil
}

func (s *BabyMonitorService) History(ctx context.Context, userID uint, limit int) ([]model.BabyReading, error) {
	if limit <= 0 {
		limit = defaultBabyHistoryLimit
	}
	if limit > maxBabyHistoryLimit {
		limit = maxBabyHistoryLimit
	}
	readings, err := s.BabyRepo.ListReadings(ctx, userID, limit)
	if err != nil {
		return nil, util.WrapStorage("list baby readings", err)
	}
	return readings, nil
}

// Stats 统计最近 24 小时；没有数据时先补齐一批模拟读数
func (s *BabyMonitorService) Stats(ctx context.Context, userID uint) (*BabyStats, error) {
	now := s.now()
	recent, err := s.BabyRepo.ReadingsSince(ctx, userID, now.Add(-24*time.Hour))
	if err != nil {
		return nil, util.WrapStorage("list baby readings", err)
	}

	if len(recent) == 0 {
		seed := make([]*model.BabyReading, 0, babyStatsSeedCount)
		for i := 0; i < babyStatsSeedCount; i++ {
			seed = append(seed, toRecord(userID, s.generate(now.Add(-time.Duration(i)*time.Minute))))
		}
		if err := s.BabyRepo.CreateReadings(ctx, seed...); err != nil {
			return nil, util.WrapStorage("seed baby readings", err)
		}
		recent = make([]model.BabyReading, 0, len(seed))
		for _, r := range seed {
			recent = append(recent, *r)
		}
	}

	stats := &BabyStats{
		AverageTemperature: 37.0,
		MotionDistribution: make(map[string]int),
		TotalReadings:      len(recent),
		LastUpdated:        now,
	}
	var sum float64
	for _, r := range recent {
		sum += r.Temperature
		stats.MotionDistribution[r.Motion]++
	}
	if len(recent) > 0 {
		stats.AverageTemperature = math.Round(sum/float64(len(recent))*10) / 10
	}
	return stats, nil
}

// Profile 没有资料时返回 nil
func (s *BabyMonitorService) Profile(ctx context.Context, userID uint) (*model.BabyProfile, error) {
	p, err := s.BabyRepo.FindProfile(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, util.WrapStorage("find baby profile", err)
	}
	return p, nil
}

func (s *BabyMonitorService) SaveProfile(ctx context.Context, userID uint, in BabyProfileInput) (*model.BabyProfile, error) {
	if in.Weight < 0 {
		return nil, util.NewValidationError("weight", "Weight must not be negative")
	}
	if in.Height < 0 {
		return nil, util.NewValidationError("height", "Height must not be negative")
	}

	p := &model.BabyProfile{
		UserID:    userID,
		Name:      strings.TrimSpace(in.Name),
		Weight:    in.Weight,
		Height:    in.Height,
		CameraURL: strings.TrimSpace(in.CameraURL),
	}
	if err := s.BabyRepo.UpsertProfile(ctx, p); err != nil {
		return nil, util.WrapStorage("save baby profile", err)
	}
	return s.Profile(ctx, userID)
}
