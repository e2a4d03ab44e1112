package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"sort"
	"time"

	"portfolio-chat-be/internal/constant"
	"portfolio-chat-be/internal/dto"
	"portfolio-chat-be/internal/pkg/logger"
	"portfolio-chat-be/internal/pkg/serverutils"
	"portfolio-chat-be/internal/repository/scope"
	"portfolio-chat-be/internal/repository/specification"
	"portfolio-chat-be/internal/repository/unitofwork"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

const (
	dashboardSubject    = "dashboard"
	dashboardStatsKey   = "dashboard:stats"
	visitorWindow       = 7 * 24 * time.Hour
	activityWindow      = 14 * 24 * time.Hour
	defaultLogPageLimit = 50
	maxLogPageLimit     = 500
)

type IDashboardService interface {
	Login(ctx context.Context, request *dto.DashboardLoginRequest) (*dto.DashboardLoginResponse, error)
	GetStats(ctx context.Context) (*dto.DashboardStats, error)
	GetLogs(ctx context.Context, request *dto.DashboardLogsRequest) ([]logger.LogEntry, error)
}

type DashboardConfig struct {
	PasswordHash string
	JWTSecret    string
	TokenTTL     time.Duration
	StatsTTL     time.Duration
}

type dashboardService struct {
	uowFactory unitofwork.RepositoryFactory
	rdb        *redis.Client
	logger     logger.ILogger
	config     DashboardConfig
	now        func() time.Time
}

// NewDashboardService accepts a nil uowFactory (stats disabled) and a nil
// redis client (stats computed on every call).
func NewDashboardService(uowFactory unitofwork.RepositoryFactory, rdb *redis.Client, log logger.ILogger, config DashboardConfig) IDashboardService {
	return &dashboardService{
		uowFactory: uowFactory,
		rdb:        rdb,
		logger:     log,
		config:     config,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (ds *dashboardService) Login(ctx context.Context, request *dto.DashboardLoginRequest) (*dto.DashboardLoginResponse, error) {
	if ds.config.PasswordHash == "" || ds.config.JWTSecret == "" {
		return nil, dto.ErrFeatureDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(ds.config.PasswordHash), []byte(request.Password)); err != nil {
		ds.logger.Warn("DASHBOARD", "Rejected dashboard login", nil)
		return nil, dto.ErrInvalidCredentials
	}

	token, expiresAt, err := serverutils.IssueToken(ds.config.JWTSecret, dashboardSubject, ds.config.TokenTTL, ds.now())
	if err != nil {
		return nil, err
	}

	ds.logger.Info("DASHBOARD", "Dashboard login", nil)
	return &dto.DashboardLoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

func (ds *dashboardService) GetStats(ctx context.Context) (*dto.DashboardStats, error) {
	if ds.uowFactory == nil {
		return nil, dto.ErrFeatureDisabled
	}

	if cached, ok := ds.cachedStats(ctx); ok {
		return cached, nil
	}

	stats, err := ds.computeStats(ctx)
	if err != nil {
		return nil, &dto.StorageError{Op: "computing dashboard stats", Err: err}
	}

	ds.storeStats(ctx, stats)
	return stats, nil
}

func (ds *dashboardService) computeStats(ctx context.Context) (*dto.DashboardStats, error) {
	now := ds.now()
	visitorsSince := specification.CreatedSince{Since: now.Add(-visitorWindow)}
	uow := ds.uowFactory.NewUnitOfWork(ctx)

	visitors, err := uow.EventRepository().CountDistinctVisitors(ctx, visitorsSince)
	if err != nil {
		return nil, err
	}
	sessions, err := uow.ChatSessionRepository().Count(ctx, visitorsSince)
	if err != nil {
		return nil, err
	}
	messages, err := uow.ChatMessageRepository().Count(ctx,
		visitorsSince,
		specification.ByMessageRole{Role: constant.ChatMessageRoleUser},
	)
	if err != nil {
		return nil, err
	}

	funnelCounts, err := uow.EventRepository().CountDistinctVisitorsByEventName(ctx,
		specification.ByEventNames{Names: constant.FunnelEvents},
	)
	if err != nil {
		return nil, err
	}

	roles, err := ds.roleBreakdown(ctx, uow)
	if err != nil {
		return nil, err
	}

	recent, err := uow.EventRepository().FindAll(ctx,
		specification.CreatedSince{Since: now.Add(-activityWindow)},
		specification.Scoped(scope.OrderByCreatedAsc),
	)
	if err != nil {
		return nil, err
	}

	activity := make(map[string]*dto.DailyActivity)
	for _, e := range recent {
		day := e.CreatedAt.UTC().Format("2006-01-02")
		bucket, ok := activity[day]
		if !ok {
			bucket = &dto.DailyActivity{Date: day, Events: make(map[string]int64)}
			activity[day] = bucket
		}
		bucket.Total++
		bucket.Events[e.EventName]++
	}
	days := make([]dto.DailyActivity, 0, len(activity))
	for _, bucket := range activity {
		days = append(days, *bucket)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	counts := make(map[string]int64, len(funnelCounts))
	for _, c := range funnelCounts {
		counts[c.EventName] = c.Count
	}

	return &dto.DashboardStats{
		UniqueVisitors7d: visitors,
		ChatSessions7d:   sessions,
		ChatMessages7d:   messages,
		Funnel:           BuildFunnel(constant.FunnelEvents, counts),
		Roles:            roles,
		Activity:         days,
		GeneratedAt:      now,
	}, nil
}

func (ds *dashboardService) roleBreakdown(ctx context.Context, uow unitofwork.UnitOfWork) ([]dto.RoleBreakdown, error) {
	roleCounts, err := uow.PreferenceRepository().CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	perEvent, err := uow.EventRepository().CountDistinctVisitorsByRole(ctx, constant.FunnelEvents)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(roleCounts))
	roles := make([]dto.RoleBreakdown, 0, len(roleCounts))
	for _, rc := range roleCounts {
		index[rc.Role] = len(roles)
		roles = append(roles, dto.RoleBreakdown{Role: rc.Role, Visitors: rc.Count})
	}

	for _, c := range perEvent {
		i, ok := index[c.Role]
		if !ok {
			continue
		}
		switch c.EventName {
		case constant.EventOnboardingCompleted:
			roles[i].Onboarding = c.Count
		case constant.EventResumeClicked:
			roles[i].Resume = c.Count
		case constant.EventContactClicked:
			roles[i].Contact = c.Count
		}
	}
	return roles, nil
}

// BuildFunnel orders the steps and computes each step's conversion from the
// previous one as a percentage with one decimal. The first step converts at
// 100 when it has any visitors.
func BuildFunnel(steps []string, counts map[string]int64) []dto.FunnelStep {
	funnel := make([]dto.FunnelStep, 0, len(steps))
	for i, name := range steps {
		step := dto.FunnelStep{EventName: name, Visitors: counts[name]}
		switch {
		case i == 0 && step.Visitors > 0:
			step.ConversionRate = 100
		case i > 0 && funnel[i-1].Visitors > 0:
			rate := float64(step.Visitors) / float64(funnel[i-1].Visitors) * 100
			step.ConversionRate = math.Round(rate*10) / 10
		}
		funnel = append(funnel, step)
	}
	return funnel
}

func (ds *dashboardService) cachedStats(ctx context.Context) (*dto.DashboardStats, bool) {
	if ds.rdb == nil {
		return nil, false
	}

	raw, err := ds.rdb.Get(ctx, dashboardStatsKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			ds.logger.Warn("DASHBOARD", "Stats cache read failed", map[string]interface{}{"error": err.Error()})
		}
		return nil, false
	}

	var stats dto.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false
	}
	return &stats, true
}

func (ds *dashboardService) storeStats(ctx context.Context, stats *dto.DashboardStats) {
	if ds.rdb == nil || ds.config.StatsTTL <= 0 {
		return
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := ds.rdb.Set(ctx, dashboardStatsKey, raw, ds.config.StatsTTL).Err(); err != nil {
		ds.logger.Warn("DASHBOARD", "Stats cache write failed", map[string]interface{}{"error": err.Error()})
	}
}

func (ds *dashboardService) GetLogs(ctx context.Context, request *dto.DashboardLogsRequest) ([]logger.LogEntry, error) {
	limit := request.Limit
	if limit <= 0 {
		limit = defaultLogPageLimit
	}
	if limit > maxLogPageLimit {
		limit = maxLogPageLimit
	}
	offset := request.Offset
	if offset < 0 {
		offset = 0
	}
	return ds.logger.GetLogs(request.Level, limit, offset)
}
